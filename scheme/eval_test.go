package scheme_test

import (
	"testing"

	"github.com/724399396/write-your-self-scheme/schemetest"
)

func TestSpecialForms(t *testing.T) {
	tests := schemetest.TestSuite{
		{"quote", schemetest.TestSequence{
			{Expr: "(quote (1 2 3))", Result: "(1 2 3)"},
			{Expr: "'(a b c)", Result: "(a b c)"},
			{Expr: "(quote x)", Result: "x"},
		}},
		{"if", schemetest.TestSequence{
			{Expr: "(if #t 1 2)", Result: "1"},
			{Expr: "(if #f 1 2)", Result: "2"},
			{Expr: "(if (= 1 1) (+ 1 1) 0)", Result: "2"},
			{Expr: "(if 1 2 3)", Result: "Invalid type: expected bool, found 1", Err: true},
		}},
		{"define and set!", schemetest.TestSequence{
			{Expr: "(define x 10)", Result: "10"},
			{Expr: "x", Result: "10"},
			{Expr: "(set! x 20)", Result: "20"},
			{Expr: "x", Result: "20"},
			{Expr: "(set! y 1)", Result: "Setting an unbound variable: y", Err: true},
		}},
		{"lambda and application", schemetest.TestSequence{
			{Expr: "((lambda (x y) (+ x y)) 3 4)", Result: "7"},
			{Expr: "(define (square x) (* x x))", Result: "(lambda (x) ...)"},
			{Expr: "(square 5)", Result: "25"},
			{Expr: "(define (sum . xs) (apply + xs))", Result: "(lambda (. xs) ...)"},
			{Expr: "(sum 1 2 3 4)", Result: "10"},
		}},
		{"closures capture their defining environment", schemetest.TestSequence{
			{Expr: "(define (make-adder n) (lambda (x) (+ x n)))", Result: "(lambda (n) ...)"},
			{Expr: "(define add5 (make-adder 5))", Result: "(lambda (x) ...)"},
			{Expr: "(add5 10)", Result: "15"},
		}},
		{"cond", schemetest.TestSequence{
			{Expr: "(cond (#f 1) (#t 2) (else 3))", Result: "2"},
			{Expr: "(cond (#f 1) (else 3))", Result: "3"},
			{Expr: "(cond (#f 1))", Result: "Not viable alternative in cond", Err: true},
		}},
		{"quasiquote and unquote", schemetest.TestSequence{
			{Expr: "(define x 5)", Result: "5"},
			{Expr: "(quasiquote (1 (unquote x) 3))", Result: "(1 5 3)"},
			{Expr: "`(1 ,x 3)", Result: "(1 5 3)"},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}

func TestArity(t *testing.T) {
	tests := schemetest.TestSuite{
		{"closure arity", schemetest.TestSequence{
			{Expr: "(define (f x y) (+ x y))", Result: "(lambda (x y) ...)"},
			{Expr: "(f 1)", Result: "Expected 2 args; found values 1", Err: true},
		}},
		{"not a function", schemetest.TestSequence{
			{Expr: "(1 2 3)", Result: "Not a function: 1", Err: true},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}
