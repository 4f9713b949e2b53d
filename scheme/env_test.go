package scheme_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/724399396/write-your-self-scheme/scheme"
)

func TestEnvDefineLookup(t *testing.T) {
	env := scheme.NewRootEnv()
	_, err := env.Define("x", scheme.NewInteger(1))
	assert.NoError(t, err)

	v, err := env.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, "1", v.Show())
}

func TestEnvLookupUnbound(t *testing.T) {
	env := scheme.NewRootEnv()
	_, err := env.Lookup("nope")
	assert.Error(t, err)
	serr, ok := err.(*scheme.SchemeError)
	assert.True(t, ok)
	assert.Equal(t, scheme.UnboundVar, serr.Kind)
}

func TestEnvAssignRequiresExistingBinding(t *testing.T) {
	env := scheme.NewRootEnv()
	_, err := env.Assign("x", scheme.NewInteger(1))
	assert.Error(t, err)

	_, err = env.Define("x", scheme.NewInteger(1))
	assert.NoError(t, err)
	v, err := env.Assign("x", scheme.NewInteger(2))
	assert.NoError(t, err)
	assert.Equal(t, "2", v.Show())
}

func TestEnvDefineStaysInInnermostFrame(t *testing.T) {
	root := scheme.NewRootEnv()
	_, err := root.Define("x", scheme.NewInteger(1))
	assert.NoError(t, err)

	child := root.Extend()
	_, err = child.Define("x", scheme.NewInteger(2))
	assert.NoError(t, err)

	childVal, err := child.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, "2", childVal.Show())

	rootVal, err := root.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, "1", rootVal.Show())
}

func TestEnvSetMutatesEnclosingFrame(t *testing.T) {
	root := scheme.NewRootEnv()
	_, err := root.Define("x", scheme.NewInteger(1))
	assert.NoError(t, err)

	child := root.Extend()
	_, err = child.Assign("x", scheme.NewInteger(9))
	assert.NoError(t, err)

	rootVal, err := root.Lookup("x")
	assert.NoError(t, err)
	assert.Equal(t, "9", rootVal.Show())
}
