package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/724399396/write-your-self-scheme/parser"
	"github.com/724399396/write-your-self-scheme/repl"
	"github.com/724399396/write-your-self-scheme/scheme"
)

// replCmd represents the repl command.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Scheme REPL",
	Long: `Start an interactive read-eval-print loop.

Line editing and in-session command history are supported via readline.
Enter "quit" or press Ctrl-D to exit.

Example session:
  Lisp>>> (+ 1 2)
  3
  Lisp>>> (define (square x) (* x x))
  (lambda (x) ...)
  Lisp>>> (square 5)
  25`,
	Run: func(cmd *cobra.Command, args []string) {
		scheme.SetDefaultReader(parser.NewReader())
		env := scheme.InitGlobalEnv()
		if err := repl.Run(env); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
