package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/724399396/write-your-self-scheme/parser"
	"github.com/724399396/write-your-self-scheme/scheme"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <file> [args...]",
	Short: "Run a Scheme source file",
	Long: `Run a Scheme source file, binding any trailing arguments to the
global variable args as a list of strings.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scheme.SetDefaultReader(parser.NewReader())
		env := scheme.InitGlobalEnv()

		scriptArgs := make([]scheme.Value, len(args)-1)
		for i, a := range args[1:] {
			scriptArgs[i] = scheme.String(a)
		}
		env.Bind("args", scheme.NewList(scriptArgs...))

		result, err := scheme.LoadFile(env, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Fprintln(os.Stderr, result.Show())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
