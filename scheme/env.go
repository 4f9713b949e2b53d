package scheme

import (
	"io"
	"os"
)

// Cell is a mutable, aliasable storage location for one binding. Closures
// that capture a frame share the same *Cell pointers as any other holder of
// that frame, so set! performed through one alias is visible to all of
// them — grounded on the teacher's observation that Scope entries in LEnv
// are shared, not copied, across closures.
type Cell struct {
	V Value
}

// runtime holds the state shared by every Env in a single root's frame
// tree: the I/O streams primitives read and write through. It is the Go
// analogue of the teacher's LEnv.Runtime indirection, trimmed to the
// streams this dialect's primitive table actually needs.
type runtime struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Env is one frame of the lexical scope chain: a mapping from symbol name
// to a mutable Cell, plus a link to the enclosing frame. Frames outlive the
// call that created them whenever a Closure captured them.
type Env struct {
	scope   map[string]*Cell
	parent  *Env
	runtime *runtime
}

// Option configures a root Env, following the teacher's functional-options
// Config pattern (lisp.Config / lisp.WithStderr / lisp.WithReader).
type Option func(*runtime)

// WithStdin overrides the stream the read primitive consumes from when no
// port is given.
func WithStdin(r io.Reader) Option {
	return func(rt *runtime) { rt.Stdin = r }
}

// WithStdout overrides the stream the write primitive targets by default.
func WithStdout(w io.Writer) Option {
	return func(rt *runtime) { rt.Stdout = w }
}

// WithStderr overrides the runtime's diagnostic stream. No primitive or
// evaluator path in this package writes to it.
func WithStderr(w io.Writer) Option {
	return func(rt *runtime) { rt.Stderr = w }
}

// NewRootEnv constructs the outermost Env of a fresh interpreter, with no
// parent frame.
func NewRootEnv(opts ...Option) *Env {
	rt := &runtime{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	for _, opt := range opts {
		opt(rt)
	}
	return &Env{scope: make(map[string]*Cell), runtime: rt}
}

// Extend pushes a new, empty frame onto env, returning the child. Used to
// build the call frame for a function application.
func (env *Env) Extend() *Env {
	return &Env{scope: make(map[string]*Cell), parent: env, runtime: env.runtime}
}

// Lookup searches frames innermost-first for name, returning UnboundVar if
// no frame binds it.
func (env *Env) Lookup(name string) (Value, error) {
	for e := env; e != nil; e = e.parent {
		if cell, ok := e.scope[name]; ok {
			return cell.V, nil
		}
	}
	return nil, UnboundVarErr("Getting an unbound variable", name)
}

// Assign finds the frame that already binds name and overwrites its cell
// in place, returning the assigned value. No new binding is created; an
// unbound name is an UnboundVar error. This backs the set! special form.
func (env *Env) Assign(name string, v Value) (Value, error) {
	for e := env; e != nil; e = e.parent {
		if cell, ok := e.scope[name]; ok {
			cell.V = v
			return v, nil
		}
	}
	return nil, UnboundVarErr("Setting an unbound variable", name)
}

// Define binds name to v in env's own (innermost) frame, overwriting any
// existing binding there, without ever touching an enclosing frame. This is
// the "innermost frame define-or-overwrite" semantics chosen for the
// define-vs-set! Open Question (see DESIGN.md / SPEC_FULL.md §9): a
// top-level define of a name a closure already captured does not alter
// that closure's captured binding.
func (env *Env) Define(name string, v Value) (Value, error) {
	if cell, ok := env.scope[name]; ok {
		cell.V = v
		return v, nil
	}
	env.scope[name] = &Cell{V: v}
	return v, nil
}

// Bind is like Define but always creates a new cell for name in env's own
// frame, replacing any cell already there. It populates call frames with
// parameter bindings and the global Env with builtins and the file-mode
// args list.
func (env *Env) Bind(name string, v Value) {
	env.scope[name] = &Cell{V: v}
}
