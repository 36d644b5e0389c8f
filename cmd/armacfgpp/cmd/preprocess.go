package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-armaconfig/config"
	"github.com/cwbudde/go-armaconfig/internal/defines"
	"github.com/cwbudde/go-armaconfig/internal/preprocessor"
	"github.com/cwbudde/go-armaconfig/internal/tokenizer"
	"github.com/cwbudde/go-armaconfig/render"
)

var (
	configPath string
	jsonMap    bool
	setDefines []string
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <file>",
	Short: "Tokenize and run the macro preprocessor over a config file",
	Long: `Preprocess runs the full tokenizer + macro-expansion pipeline over a
single source file and prints the resulting text: #define/#undef install
and remove macros, #ifdef/#ifndef/#else/#endif gate which lines survive,
identifiers are macro-expanded, and #IDENT is stringified.

--config seeds a Defines table from a YAML file of pre-defined macros and
include search paths before the file's own directives run.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreprocess,
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
	preprocessCmd.Flags().StringVar(&configPath, "config", "", "YAML file of seed macros and include paths")
	preprocessCmd.Flags().BoolVar(&jsonMap, "json-map", false, "also print the rendered output's line map as JSON")
	preprocessCmd.Flags().StringArrayVar(&setDefines, "set", nil, "override one seed macro's body as NAME=VALUE (repeatable, requires --config)")
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	table := defines.New()
	if configPath != "" {
		seeds, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if len(setDefines) > 0 {
			cfgJSON, err := seeds.ToJSON()
			if err != nil {
				return err
			}
			for _, set := range setDefines {
				name, value, ok := strings.Cut(set, "=")
				if !ok {
					return fmt.Errorf("--set %q: expected NAME=VALUE", set)
				}
				cfgJSON, err = config.OverrideDefineBody(cfgJSON, name, value)
				if err != nil {
					return err
				}
			}
			seeds, err = config.FromJSON(cfgJSON)
			if err != nil {
				return err
			}
		}

		table, err = seeds.ToDefines()
		if err != nil {
			return err
		}
	} else if len(setDefines) > 0 {
		return fmt.Errorf("--set requires --config")
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Preprocessing: %s\n", path)
		if configPath != "" {
			fmt.Printf("Seed config: %s\n", configPath)
		}
		fmt.Println("---")
	}

	tokens, err := tokenizer.Tokenize(string(content), path)
	if err != nil {
		return formatTokenizerError(err, string(content))
	}

	out, err := preprocessor.New().Execute(tokens, table)
	if err != nil {
		return formatPreprocessorError(err, string(content))
	}

	rendered := render.Render(out)
	fmt.Print(rendered.Export())

	if jsonMap {
		mapJSON, err := rendered.ExportMapJSON()
		if err != nil {
			return fmt.Errorf("export line map: %w", err)
		}
		fmt.Println("---")
		fmt.Println(mapJSON)
	}

	return nil
}
