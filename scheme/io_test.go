package scheme_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/724399396/write-your-self-scheme/parser"
	"github.com/724399396/write-your-self-scheme/scheme"
)

func init() {
	scheme.SetDefaultReader(parser.NewReader())
}

func TestWritePrimitive(t *testing.T) {
	var out bytes.Buffer
	env := scheme.InitGlobalEnv(scheme.WithStdout(&out))

	fn, err := env.Lookup("write")
	assert.NoError(t, err)

	_, err = scheme.Apply(env, fn, []scheme.Value{scheme.NewInteger(42)})
	assert.NoError(t, err)
	assert.Equal(t, "42", out.String())
}

func TestReadPrimitiveDefaultsToStdin(t *testing.T) {
	in := strings.NewReader("(1 2 3)\n")
	env := scheme.InitGlobalEnv(scheme.WithStdin(in))

	fn, err := env.Lookup("read")
	assert.NoError(t, err)

	v, err := scheme.Apply(env, fn, nil)
	assert.NoError(t, err)
	assert.Equal(t, "(1 2 3)", v.Show())
}

func TestApplyPrimitive(t *testing.T) {
	env := scheme.InitGlobalEnv()

	fn, err := env.Lookup("apply")
	assert.NoError(t, err)
	plus, err := env.Lookup("+")
	assert.NoError(t, err)

	v, err := scheme.Apply(env, fn, []scheme.Value{plus, scheme.NewInteger(1), scheme.NewList(scheme.NewInteger(2), scheme.NewInteger(3))})
	assert.NoError(t, err)
	assert.Equal(t, "6", v.Show())
}
