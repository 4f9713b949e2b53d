package scheme

// Reader is the interface the evaluator uses to parse program text, e.g. for
// the load special form. It is implemented by package parser, kept as an
// interface here (grounded on the teacher's lisp.Reader / env.Runtime.Reader
// indirection) so the core package never imports the parser package
// directly and the two can be tested independently.
type Reader interface {
	// ReadProgram parses the full contents of a file into a sequence of
	// top-level expressions.
	ReadProgram(text string) ([]Value, error)
}

var defaultReader Reader

// SetDefaultReader installs the Reader the load special form and the
// read/read-all primitives use to parse source text. The cmd package's repl
// and run commands wire this to parser.NewReader() at startup, avoiding an
// import cycle between scheme and parser.
func SetDefaultReader(r Reader) {
	defaultReader = r
}

// Eval evaluates form in env, dispatching structurally on special forms
// before falling back to ordinary application — exactly the order the
// teacher's LEnv.Eval/EvalSExpr pair checks forms in.
func Eval(env *Env, form Value) (Value, error) {
	switch v := form.(type) {
	case Symbol:
		return env.Lookup(string(v))
	case *List:
		return evalList(env, v)
	default:
		// Every other variant (String, Integer, Float, Ratio, Complex,
		// Bool, Char, Vector, Port, PrimitiveFunc, IOFunc, Closure,
		// DottedList) is self-evaluating.
		return form, nil
	}
}

func evalList(env *Env, list *List) (Value, error) {
	if len(list.Items) == 0 {
		return list, nil
	}
	if head, ok := list.Items[0].(Symbol); ok {
		if fn, ok := specialForms[string(head)]; ok {
			return fn(env, list.Items[1:])
		}
	}
	return evalApplication(env, list.Items)
}

func evalApplication(env *Env, cells []Value) (Value, error) {
	callee, err := Eval(env, cells[0])
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(cells)-1)
	for i, a := range cells[1:] {
		v, err := Eval(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return Apply(env, callee, args)
}

// Apply invokes callee with args, dispatching on callee's concrete type per
// spec.md §4.3's application rule.
func Apply(env *Env, callee Value, args []Value) (Value, error) {
	switch fn := callee.(type) {
	case *PrimitiveFunc:
		return fn.Fn(args)
	case *IOFunc:
		return fn.Fn(env, args)
	case *Closure:
		return applyClosure(fn, args)
	default:
		return nil, NotFunctionErr("Not a function", callee.Show())
	}
}

func applyClosure(c *Closure, args []Value) (Value, error) {
	if c.HasRest {
		if len(args) < len(c.Params) {
			return nil, NumArgsErr(len(c.Params), args)
		}
	} else if len(args) != len(c.Params) {
		return nil, NumArgsErr(len(c.Params), args)
	}

	call := c.Env.Extend()
	for i, p := range c.Params {
		call.Bind(p, args[i])
	}
	if c.HasRest {
		call.Bind(c.Vararg, &List{Items: append([]Value{}, args[len(c.Params):]...)})
	}

	var result Value = &List{}
	var err error
	for _, expr := range c.Body {
		result, err = Eval(call, expr)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

type specialFormFunc func(env *Env, args []Value) (Value, error)

var specialForms map[string]specialFormFunc

func init() {
	specialForms = map[string]specialFormFunc{
		"quote":      evalQuote,
		"if":         evalIf,
		"set!":       evalSet,
		"define":     evalDefine,
		"lambda":     evalLambda,
		"cond":       evalCond,
		"load":       evalLoad,
		"quasiquote": evalQuasiquote,
	}
}

func evalQuote(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	return args[0], nil
}

// evalQuasiquote implements a minimal quasiquote: unquote splices an
// evaluated sub-expression back into the surrounding template; quasiquote
// itself does not recursively evaluate the rest of the template beyond
// that. The reader always produces the corrected spelling "quasiquote"
// (never the source's "quasiqote" typo — see SPEC_FULL.md §9).
func evalQuasiquote(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	return quasiquoteExpand(env, args[0])
}

func quasiquoteExpand(env *Env, form Value) (Value, error) {
	list, ok := form.(*List)
	if !ok {
		return form, nil
	}
	if len(list.Items) == 2 {
		if sym, ok := list.Items[0].(Symbol); ok && sym == "unquote" {
			return Eval(env, list.Items[1])
		}
	}
	out := make([]Value, len(list.Items))
	for i, item := range list.Items {
		v, err := quasiquoteExpand(env, item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &List{Items: out}, nil
}

func evalIf(env *Env, args []Value) (Value, error) {
	if len(args) != 3 {
		return nil, BadSpecialFormErr("Unrecognized special form", &List{Items: append([]Value{Symbol("if")}, args...)})
	}
	pred, err := Eval(env, args[0])
	if err != nil {
		return nil, err
	}
	b, err := AsBool(pred)
	if err != nil {
		return nil, err
	}
	if b {
		return Eval(env, args[1])
	}
	return Eval(env, args[2])
}

func evalSet(env *Env, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, NumArgsErr(2, args)
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return nil, TypeMismatchErr("symbol", args[0])
	}
	v, err := Eval(env, args[1])
	if err != nil {
		return nil, err
	}
	return env.Assign(string(sym), v)
}

func evalDefine(env *Env, args []Value) (Value, error) {
	if len(args) < 1 {
		return nil, NumArgsErr(2, args)
	}
	switch target := args[0].(type) {
	case Symbol:
		if len(args) != 2 {
			return nil, NumArgsErr(2, args)
		}
		v, err := Eval(env, args[1])
		if err != nil {
			return nil, err
		}
		return env.Define(string(target), v)
	case *List, *DottedList:
		formals, name, err := splitDefineFormals(target)
		if err != nil {
			return nil, err
		}
		params, vararg, hasRest, err := parseFormals(formals)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, NumArgsErr(2, args)
		}
		closure := &Closure{
			Name:    string(name),
			Params:  params,
			Vararg:  vararg,
			HasRest: hasRest,
			Body:    args[1:],
			Env:     env,
		}
		return env.Define(string(name), closure)
	default:
		return nil, BadSpecialFormErr("Unrecognized special form", &List{Items: append([]Value{Symbol("define")}, args...)})
	}
}

// splitDefineFormals splits (name p1 p2 ...) or (name p1 . rest) into the
// function's name symbol and its formal-argument list (as the original
// List/DottedList, with name removed).
func splitDefineFormals(target Value) (formals Value, name Symbol, err error) {
	switch t := target.(type) {
	case *List:
		if len(t.Items) == 0 {
			return nil, "", BadSpecialFormErr("Unrecognized special form", target)
		}
		name, ok := t.Items[0].(Symbol)
		if !ok {
			return nil, "", TypeMismatchErr("symbol", t.Items[0])
		}
		return &List{Items: t.Items[1:]}, name, nil
	case *DottedList:
		if len(t.Head) == 0 {
			return nil, "", BadSpecialFormErr("Unrecognized special form", target)
		}
		name, ok := t.Head[0].(Symbol)
		if !ok {
			return nil, "", TypeMismatchErr("symbol", t.Head[0])
		}
		return &DottedList{Head: t.Head[1:], Tail: t.Tail}, name, nil
	default:
		return nil, "", BadSpecialFormErr("Unrecognized special form", target)
	}
}

func evalLambda(env *Env, args []Value) (Value, error) {
	if len(args) < 1 {
		return nil, NumArgsErr(2, args)
	}
	params, vararg, hasRest, err := parseFormals(args[0])
	if err != nil {
		return nil, err
	}
	return &Closure{
		Params:  params,
		Vararg:  vararg,
		HasRest: hasRest,
		Body:    args[1:],
		Env:     env,
	}, nil
}

// parseFormals accepts the three shapes spec.md §4.3 allows for a formal
// argument list: (p...), (p... . rest), and a single bare symbol standing
// for "bind all args to this one name".
func parseFormals(formals Value) (params []string, vararg string, hasRest bool, err error) {
	switch f := formals.(type) {
	case Symbol:
		return nil, string(f), true, nil
	case *List:
		params = make([]string, len(f.Items))
		for i, item := range f.Items {
			sym, ok := item.(Symbol)
			if !ok {
				return nil, "", false, TypeMismatchErr("symbol", item)
			}
			params[i] = string(sym)
		}
		return params, "", false, nil
	case *DottedList:
		params = make([]string, len(f.Head))
		for i, item := range f.Head {
			sym, ok := item.(Symbol)
			if !ok {
				return nil, "", false, TypeMismatchErr("symbol", item)
			}
			params[i] = string(sym)
		}
		sym, ok := f.Tail.(Symbol)
		if !ok {
			return nil, "", false, TypeMismatchErr("symbol", f.Tail)
		}
		return params, string(sym), true, nil
	default:
		return nil, "", false, TypeMismatchErr("formal argument list", formals)
	}
}

// evalCond implements spec.md §4.3's cond: clauses are (test expr) or
// (else expr), tried in order; the first test to evaluate to Bool(true)
// selects its expr.
func evalCond(env *Env, clauses []Value) (Value, error) {
	for i, c := range clauses {
		clause, ok := c.(*List)
		if !ok || len(clause.Items) != 2 {
			return nil, NumArgsErr(2, []Value{c})
		}
		test := clause.Items[0]
		if sym, ok := test.(Symbol); ok && sym == "else" {
			if i != len(clauses)-1 {
				return nil, BadSpecialFormErr("else clause must be last", c)
			}
			return Eval(env, clause.Items[1])
		}
		v, err := Eval(env, test)
		if err != nil {
			return nil, err
		}
		b, err := AsBool(v)
		if err != nil {
			return nil, err
		}
		if b {
			return Eval(env, clause.Items[1])
		}
	}
	return nil, DefaultErr("Not viable alternative in cond")
}

// evalLoad implements (load "path"): parse the file as a program and
// evaluate each expression in sequence, returning the value of the last.
func evalLoad(env *Env, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	path, ok := args[0].(String)
	if !ok {
		return nil, TypeMismatchErr("string", args[0])
	}
	return LoadFile(env, string(path))
}
