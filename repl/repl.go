// Package repl implements the interactive read-eval-print loop described in
// SPEC_FULL.md's domain-stack expansion, grounded on the teacher's
// repl/repl.go and its use of github.com/ergochat/readline.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/muesli/reflow/wordwrap"

	"github.com/724399396/write-your-self-scheme/parser"
	"github.com/724399396/write-your-self-scheme/scheme"
)

// errorWrapWidth is the column width long diagnostic messages are wrapped to
// before printing, matching the teacher's libhelp doc formatting width.
const errorWrapWidth = 72

// Prompt is the literal prompt string printed before each read, per
// SPEC_FULL.md §4.5.
const Prompt = "Lisp>>> "

// Option configures Run, mirroring the teacher's repl.Option/WithStdin.
type Option func(*config)

type config struct {
	stdin  io.ReadCloser
	stdout io.Writer
}

// WithStdin overrides the stream the REPL reads lines from.
func WithStdin(r io.ReadCloser) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout overrides the stream the REPL prints values and errors to.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// Run starts an interactive loop over env: each line is echoed under Prompt,
// accumulated until its parentheses balance, parsed, and evaluated in env.
// The literal input "quit" terminates the loop.
func Run(env *scheme.Env, opts ...Option) error {
	cfg := &config{stdout: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}

	rlCfg := &readline.Config{
		Prompt:            Prompt,
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			rl.SetPrompt(Prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if buf.Len() == 0 && strings.TrimSpace(line) == "quit" {
			return nil
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if !balanced(buf.String()) {
			rl.SetPrompt(strings.Repeat(" ", len(Prompt)))
			continue
		}
		rl.SetPrompt(Prompt)

		exprs, err := parser.ParseProgram(buf.String())
		buf.Reset()
		if err != nil {
			fmt.Fprintln(cfg.stdout, wordwrap.String(err.Error(), errorWrapWidth))
			continue
		}
		for _, expr := range exprs {
			v, err := scheme.Eval(env, expr)
			if err != nil {
				fmt.Fprintln(cfg.stdout, wordwrap.String(err.Error(), errorWrapWidth))
				continue
			}
			fmt.Fprintln(cfg.stdout, v.Show())
		}
	}
}

// balanced reports whether text has no unmatched opening parenthesis outside
// a string literal, the signal this REPL uses to decide a form is complete
// enough to attempt a parse.
func balanced(text string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth <= 0
}
