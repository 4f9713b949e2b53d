// Package schemetest provides table-driven helpers for exercising the
// interpreter end to end, grounded on the teacher's
// elpstest.TestSuite/TestSequence/RunTestSuite in elpstest/lisptest.go.
package schemetest

import (
	"testing"

	"github.com/724399396/write-your-self-scheme/parser"
	"github.com/724399396/write-your-self-scheme/scheme"
)

func init() {
	scheme.SetDefaultReader(parser.NewReader())
}

// Step is one expression evaluated against a shared Env, and the canonical
// Show() of the value it is expected to produce. If Err is true, Result is
// instead matched against the evaluation error's Error() string.
type Step struct {
	Expr   string
	Result string
	Err    bool
}

// TestSequence is a sequence of expressions evaluated in order against one
// fresh Env, each checked against its expected result before the next runs.
type TestSequence []Step

// TestSuite is a set of named TestSequences, each run against its own Env.
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs every TestSequence in tests against a freshly
// initialized global Env.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			env := scheme.InitGlobalEnv()
			for j, step := range test.TestSequence {
				exprs, err := parser.ParseProgram(step.Expr)
				if err != nil {
					t.Fatalf("expr %d %q: parse error: %v", j, step.Expr, err)
				}
				if len(exprs) != 1 {
					t.Fatalf("expr %d %q: expected exactly one expression, got %d", j, step.Expr, len(exprs))
				}
				v, err := scheme.Eval(env, exprs[0])
				if step.Err {
					if err == nil {
						t.Fatalf("expr %d %q: expected error, got %s", j, step.Expr, v.Show())
					}
					if err.Error() != step.Result {
						t.Fatalf("expr %d %q: expected error %q, got %q", j, step.Expr, step.Result, err.Error())
					}
					continue
				}
				if err != nil {
					t.Fatalf("expr %d %q: unexpected error: %v", j, step.Expr, err)
				}
				if v.Show() != step.Result {
					t.Fatalf("expr %d %q: expected %q, got %q", j, step.Expr, step.Result, v.Show())
				}
			}
		})
	}
}
