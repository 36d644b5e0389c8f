package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
	"github.com/cwbudde/go-armaconfig/pkg/token"
)

var showPos bool

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Scan a config file and print its token stream",
	Long: `Tokenize reads a single source file and prints every token the
scanner produces: its kind, literal text, and (with --show-pos) its
start position. Comments are never emitted as tokens.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's start position")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", path)
		fmt.Printf("Input length: %d bytes\n", len(content))
		fmt.Println("---")
	}

	tokens, err := tokenizer.Tokenize(string(content), path)
	if err != nil {
		return formatTokenizerError(err, string(content))
	}

	for _, tp := range tokens {
		printToken(tp, showPos)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(tokens))
	}
	return nil
}

func printToken(tp *token.TokenPair, withPos bool) {
	output := fmt.Sprintf("[%-12s]", tp.Token.Kind)
	if tp.Token.Kind == token.EOI {
		output += " EOI"
	} else {
		output += fmt.Sprintf(" %q", tp.Token.Text())
	}
	if withPos {
		output += fmt.Sprintf(" @%s", tp.Start)
	}
	fmt.Println(output)
}
