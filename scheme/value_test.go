package scheme_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/724399396/write-your-self-scheme/scheme"
)

func TestShowAtoms(t *testing.T) {
	assert.Equal(t, "42", scheme.NewInteger(42).Show())
	assert.Equal(t, "-7", scheme.NewInteger(-7).Show())
	assert.Equal(t, "1.5", scheme.Float(1.5).Show())
	assert.Equal(t, "2.0", scheme.Float(2).Show())
	assert.Equal(t, "1/3", scheme.NewRatio(big.NewInt(1), big.NewInt(3)).Show())
	assert.Equal(t, "-1/3", scheme.NewRatio(big.NewInt(1), big.NewInt(-3)).Show())
	assert.Equal(t, "2/3", scheme.NewRatio(big.NewInt(4), big.NewInt(6)).Show())
	assert.Equal(t, "3+4i", (&scheme.Complex{Re: 3, Im: 4}).Show())
	assert.Equal(t, "3-4i", (&scheme.Complex{Re: 3, Im: -4}).Show())
	assert.Equal(t, "#t", scheme.Bool(true).Show())
	assert.Equal(t, "#f", scheme.Bool(false).Show())
	assert.Equal(t, `#\a`, scheme.Char('a').Show())
	assert.Equal(t, `#\space`, scheme.Char(' ').Show())
	assert.Equal(t, `#\newline`, scheme.Char('\n').Show())
	assert.Equal(t, `"hi\n"`, scheme.String("hi\n").Show())
}

func TestShowLists(t *testing.T) {
	assert.Equal(t, "()", scheme.NewList().Show())
	assert.Equal(t, "(1 2 3)", scheme.NewList(scheme.NewInteger(1), scheme.NewInteger(2), scheme.NewInteger(3)).Show())

	dotted := scheme.NewDottedList([]scheme.Value{scheme.NewInteger(1), scheme.NewInteger(2)}, scheme.NewInteger(3))
	assert.Equal(t, "(1 2 . 3)", dotted.Show())
	assert.IsType(t, &scheme.DottedList{}, dotted)

	// A List tail is spliced away, never left as a DottedList.Tail.
	spliced := scheme.NewDottedList([]scheme.Value{scheme.NewInteger(1)}, scheme.NewList(scheme.NewInteger(2), scheme.NewInteger(3)))
	assert.Equal(t, "(1 2 3)", spliced.Show())
	assert.IsType(t, &scheme.List{}, spliced)
}

func TestIsList(t *testing.T) {
	assert.True(t, scheme.IsList(scheme.NewList()))
	assert.True(t, scheme.IsList(&scheme.DottedList{Head: []scheme.Value{scheme.NewInteger(1)}, Tail: scheme.Symbol("x")}))
	assert.False(t, scheme.IsList(scheme.NewInteger(1)))
}

func TestAsBool(t *testing.T) {
	b, err := scheme.AsBool(scheme.Bool(true))
	assert.NoError(t, err)
	assert.True(t, b)

	_, err = scheme.AsBool(scheme.NewInteger(0))
	assert.Error(t, err)
	serr, ok := err.(*scheme.SchemeError)
	assert.True(t, ok)
	assert.Equal(t, scheme.TypeMismatch, serr.Kind)
}
