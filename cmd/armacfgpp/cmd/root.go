// Package cmd wires the armacfgpp commands onto a cobra root command.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "armacfgpp",
	Short: "Arma config tokenizer and macro preprocessor",
	Long: `armacfgpp tokenizes and preprocesses Bohemia Interactive's Arma
"config.cpp" dialect: object-like and function-like macros, conditional
inclusion via #ifdef/#ifndef/#else/#endif, and #IDENT stringification.

It does not parse the resulting config grammar or write binary configs;
it only runs the lexical and macro-expansion passes a downstream parser
would otherwise have to reimplement.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
