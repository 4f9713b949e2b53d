package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scheme",
	Short: "A tree-walking interpreter for a subset of Scheme",
	Long: `scheme is a small Lisp interpreter.

Getting started:
  scheme repl              Start an interactive REPL
  scheme run file.scm      Run a Scheme source file

This dialect keeps no persistent state: no configuration file and no
environment variables affect its behavior.`,
	// Invoked with no registered subcommand: zero bare arguments starts the
	// REPL, one or more treats args[0] as a file to run and the rest as the
	// script's argument list, matching the bare interpreter's entry rule
	// without requiring the explicit "repl"/"run" subcommand names.
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			replCmd.Run(cmd, args)
			return
		}
		runCmd.Run(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
