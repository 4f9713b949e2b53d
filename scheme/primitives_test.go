package scheme_test

import (
	"testing"

	"github.com/724399396/write-your-self-scheme/schemetest"
)

func TestArithmetic(t *testing.T) {
	tests := schemetest.TestSuite{
		{"basic arithmetic", schemetest.TestSequence{
			{Expr: "(+ 1 2)", Result: "3"},
			{Expr: "(+ 1 2 3 4)", Result: "10"},
			{Expr: "(- 10 3)", Result: "7"},
			{Expr: "(- 10 3 2)", Result: "5"},
			{Expr: "(* 2 3 4)", Result: "24"},
			{Expr: "(/ 12 3)", Result: "4"},
			{Expr: "(/ 12 5)", Result: "2"},
			{Expr: "(mod 7 3)", Result: "1"},
			{Expr: "(quotient 7 3)", Result: "2"},
			{Expr: "(remainder 7 3)", Result: "1"},
			{Expr: "(remainder -7 3)", Result: "-1"},
		}},
		{"division by zero", schemetest.TestSequence{
			{Expr: "(/ 1 0)", Result: "division by zero", Err: true},
			{Expr: "(mod 1 0)", Result: "division by zero", Err: true},
		}},
		{"arithmetic requires integers", schemetest.TestSequence{
			{Expr: "(+ 1 2.0)", Result: "Invalid type: expected number, found 2.0", Err: true},
		}},
		{"comparisons", schemetest.TestSequence{
			{Expr: "(= 1 1)", Result: "#t"},
			{Expr: "(= 1 2)", Result: "#f"},
			{Expr: "(< 1 2)", Result: "#t"},
			{Expr: "(> 1 2)", Result: "#f"},
			{Expr: "(<= 2 2)", Result: "#t"},
			{Expr: "(>= 1 2)", Result: "#f"},
			{Expr: "(/= 1 2)", Result: "#t"},
		}},
		{"boolean connectives", schemetest.TestSequence{
			{Expr: "(&& #t #t)", Result: "#t"},
			{Expr: "(&& #t #f)", Result: "#f"},
			{Expr: "(|| #f #t)", Result: "#t"},
			{Expr: "(|| #f #f)", Result: "#f"},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}

func TestStringPredicates(t *testing.T) {
	tests := schemetest.TestSuite{
		{"string comparisons", schemetest.TestSequence{
			{Expr: `(string=? "abc" "abc")`, Result: "#t"},
			{Expr: `(string<? "abc" "abd")`, Result: "#t"},
			{Expr: `(string>? "abd" "abc")`, Result: "#t"},
			{Expr: `(string<=? "abc" "abc")`, Result: "#t"},
			{Expr: `(string>=? "abc" "abc")`, Result: "#t"},
		}},
		{"type predicates", schemetest.TestSequence{
			{Expr: "(symbol? 'a)", Result: "#t"},
			{Expr: "(symbol? 1)", Result: "#f"},
			{Expr: `(string? "a")`, Result: "#t"},
			{Expr: "(number? 1)", Result: "#t"},
			{Expr: "(number? 1.5)", Result: "#t"},
			{Expr: "(number? 1/2)", Result: "#t"},
			{Expr: "(number? 'a)", Result: "#f"},
			{Expr: "(bool? #t)", Result: "#t"},
			{Expr: "(list? '(1 2))", Result: "#t"},
			{Expr: "(list? 1)", Result: "#f"},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}

func TestPairOperations(t *testing.T) {
	tests := schemetest.TestSuite{
		{"car and cdr", schemetest.TestSequence{
			{Expr: "(car '(1 2 3))", Result: "1"},
			{Expr: "(cdr '(1 2 3))", Result: "(2 3)"},
			{Expr: "(cdr '(1))", Result: "()"},
			{Expr: "(car '())", Result: "Invalid type: expected pair, found ()", Err: true},
		}},
		{"cons", schemetest.TestSequence{
			{Expr: "(cons 1 '(2 3))", Result: "(1 2 3)"},
			{Expr: "(cons 1 2)", Result: "(1 . 2)"},
			{Expr: "(cons 1 (cons 2 3))", Result: "(1 2 . 3)"},
		}},
		{"equality", schemetest.TestSequence{
			{Expr: "(eq? 'a 'a)", Result: "#t"},
			{Expr: "(eqv? 1 1)", Result: "#t"},
			{Expr: `(equal? '(1 2) '(1 2))`, Result: "#t"},
			{Expr: `(equal? "1" 1)`, Result: "#t"},
			{Expr: "(equal? 1 2)", Result: "#f"},
		}},
	}
	schemetest.RunTestSuite(t, tests)
}
