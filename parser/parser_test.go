package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/724399396/write-your-self-scheme/parser"
)

func parseOne(t *testing.T, text string) string {
	t.Helper()
	vals, err := parser.ParseProgram(text)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	return vals[0].Show()
}

func TestAtoms(t *testing.T) {
	assert.Equal(t, "42", parseOne(t, "42"))
	assert.Equal(t, "-7", parseOne(t, "-7"))
	assert.Equal(t, "1.5", parseOne(t, "1.5"))
	assert.Equal(t, "1/3", parseOne(t, "1/3"))
	assert.Equal(t, "3+4i", parseOne(t, "3+4i"))
	assert.Equal(t, "3-4.5i", parseOne(t, "3-4.5i"))
	assert.Equal(t, "11", parseOne(t, "#b1011"))
	assert.Equal(t, "31", parseOne(t, "#x1F"))
	assert.Equal(t, "15", parseOne(t, "#o17"))
	assert.Equal(t, "9", parseOne(t, "#d9"))
	assert.Equal(t, "#t", parseOne(t, "#t"))
	assert.Equal(t, "#f", parseOne(t, "#f"))
	assert.Equal(t, `#\space`, parseOne(t, `#\space`))
	assert.Equal(t, `#\newline`, parseOne(t, `#\newline`))
	assert.Equal(t, `#\a`, parseOne(t, `#\a`))
	assert.Equal(t, `"hi there"`, parseOne(t, `"hi there"`))
	assert.Equal(t, "foo?", parseOne(t, "foo?"))
	assert.Equal(t, "+", parseOne(t, "+"))
}

func TestLists(t *testing.T) {
	assert.Equal(t, "()", parseOne(t, "()"))
	assert.Equal(t, "(1 2 3)", parseOne(t, "(1 2 3)"))
	assert.Equal(t, "(1 (2 3) 4)", parseOne(t, "(1 (2 3) 4)"))
	assert.Equal(t, "(1 2 . 3)", parseOne(t, "(1 2 . 3)"))
	assert.Equal(t, "#(1 2 3)", parseOne(t, "#(1 2 3)"))
}

func TestReaderMacros(t *testing.T) {
	assert.Equal(t, "(quote x)", parseOne(t, "'x"))
	assert.Equal(t, "(quote (1 2))", parseOne(t, "'(1 2)"))
	assert.Equal(t, "(quasiquote (1 (unquote x) 3))", parseOne(t, "`(1 ,x 3)"))
}

func TestParseProgramMultipleExpressions(t *testing.T) {
	vals, err := parser.ParseProgram("(+ 1 2) (* 3 4)")
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, "(+ 1 2)", vals[0].Show())
	assert.Equal(t, "(* 3 4)", vals[1].Show())
}

func TestParseProgramRejectsTrailingGarbage(t *testing.T) {
	_, err := parser.ParseProgram("(+ 1 2) )")
	assert.Error(t, err)
}
