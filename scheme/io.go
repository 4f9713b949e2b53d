package scheme

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// portHandle is the opaque external I/O handle a Port wraps. It is an
// unexported struct of io interfaces (rather than a concrete *os.File), so a
// Port can wrap any reader or writer.
type portHandle struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer
}

func newInputPort(name string, r io.Reader) *Port {
	closer, _ := r.(io.Closer)
	return &Port{Name: name, handle: portHandle{reader: bufio.NewReader(r), closer: closer}}
}

func newOutputPort(name string, w io.Writer) *Port {
	closer, _ := w.(io.Closer)
	return &Port{Name: name, handle: portHandle{writer: w, closer: closer}}
}

// LoadFile parses path as a program and evaluates each top-level expression
// in env in sequence, returning the value of the last expression. It backs
// both the load special form and the external file-mode entry point
// described in spec.md §6.
func LoadFile(env *Env, path string) (Value, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, DefaultErr(fmt.Sprintf("could not read file %q: %v", path, err))
	}
	return loadProgram(env, string(b))
}

func loadProgram(env *Env, source string) (Value, error) {
	if defaultReader == nil {
		return nil, DefaultErr("no reader installed; call SetDefaultReader before evaluating load")
	}
	exprs, err := defaultReader.ReadProgram(source)
	if err != nil {
		return nil, ParserErr(err.Error())
	}
	var result Value = &List{}
	for _, expr := range exprs {
		result, err = Eval(env, expr)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ioPrimitives returns the table of effectful IOFunc builtins described in
// spec.md §4.4, grounded on the teacher's builtinApply/builtinLoadFile-style
// IOFunc table in builtins.go.
func ioPrimitives() []*IOFunc {
	return []*IOFunc{
		{"apply", ioApply},
		{"open-input-file", ioOpenInputFile},
		{"open-output-file", ioOpenOutputFile},
		{"close-input-port", ioClosePort},
		{"close-output-port", ioClosePort},
		{"read", ioRead},
		{"write", ioWrite},
		{"read-contents", ioReadContents},
		{"read-all", ioReadAll},
	}
}

func ioApply(env *Env, args []Value) (Value, error) {
	if len(args) < 1 {
		return nil, NumArgsErr(2, args)
	}
	fn := args[0]
	rest := args[1:]
	if len(rest) == 0 {
		return nil, NumArgsErr(2, args)
	}
	last := rest[len(rest)-1]
	tail, ok := last.(*List)
	if !ok {
		return nil, TypeMismatchErr("list", last)
	}
	callArgs := append(append([]Value{}, rest[:len(rest)-1]...), tail.Items...)
	return Apply(env, fn, callArgs)
}

func ioOpenInputFile(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	name, ok := args[0].(String)
	if !ok {
		return nil, TypeMismatchErr("string", args[0])
	}
	f, err := os.Open(string(name))
	if err != nil {
		return nil, DefaultErr(err.Error())
	}
	return newInputPort(string(name), f), nil
}

func ioOpenOutputFile(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	name, ok := args[0].(String)
	if !ok {
		return nil, TypeMismatchErr("string", args[0])
	}
	f, err := os.Create(string(name))
	if err != nil {
		return nil, DefaultErr(err.Error())
	}
	return newOutputPort(string(name), f), nil
}

func ioClosePort(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	port, ok := args[0].(*Port)
	if !ok {
		return Bool(false), nil
	}
	if port.handle.closer == nil {
		return Bool(false), nil
	}
	if err := port.handle.closer.Close(); err != nil {
		return nil, DefaultErr(err.Error())
	}
	return Bool(true), nil
}

// ioRead reads one line from port (the env's default stdin when no port is
// given) and parses it as a single expression.
func ioRead(env *Env, args []Value) (Value, error) {
	if len(args) > 1 {
		return nil, NumArgsErr(1, args)
	}
	var reader *bufio.Reader
	if len(args) == 1 {
		port, ok := args[0].(*Port)
		if !ok || port.handle.reader == nil {
			return nil, TypeMismatchErr("input port", args[0])
		}
		reader = port.handle.reader
	} else {
		reader = bufio.NewReader(env.runtime.Stdin)
	}
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, DefaultErr(err.Error())
	}
	if defaultReader == nil {
		return nil, DefaultErr("no reader installed; call SetDefaultReader before evaluating read")
	}
	exprs, err := defaultReader.ReadProgram(line)
	if err != nil {
		return nil, ParserErr(err.Error())
	}
	if len(exprs) == 0 {
		return &List{}, nil
	}
	return exprs[0], nil
}

// ioWrite prints value in canonical form to port (the env's default stdout
// when no port is given) and returns Bool(true).
func ioWrite(env *Env, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, NumArgsErr(1, args)
	}
	var w io.Writer = env.runtime.Stdout
	if len(args) == 2 {
		port, ok := args[1].(*Port)
		if !ok || port.handle.writer == nil {
			return nil, TypeMismatchErr("output port", args[1])
		}
		w = port.handle.writer
	}
	fmt.Fprint(w, args[0].Show())
	return Bool(true), nil
}

func ioReadContents(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	name, ok := args[0].(String)
	if !ok {
		return nil, TypeMismatchErr("string", args[0])
	}
	b, err := os.ReadFile(string(name))
	if err != nil {
		return nil, DefaultErr(err.Error())
	}
	return String(b), nil
}

func ioReadAll(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	name, ok := args[0].(String)
	if !ok {
		return nil, TypeMismatchErr("string", args[0])
	}
	b, err := os.ReadFile(string(name))
	if err != nil {
		return nil, DefaultErr(err.Error())
	}
	if defaultReader == nil {
		return nil, DefaultErr("no reader installed; call SetDefaultReader before evaluating read-all")
	}
	exprs, err := defaultReader.ReadProgram(string(b))
	if err != nil {
		return nil, ParserErr(err.Error())
	}
	return &List{Items: exprs}, nil
}
