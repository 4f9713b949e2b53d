package scheme

import (
	"math/big"
)

// primitiveEntry names a PrimitiveFunc for registration, mirroring the
// teacher's langBuiltin{name, formals, fn} table in builtins.go (formals are
// omitted here since this dialect's primitives do not need the teacher's
// optional/keyword argument machinery).
type primitiveEntry struct {
	name string
	fn   func(args []Value) (Value, error)
}

func primitives() []primitiveEntry {
	return []primitiveEntry{
		{"+", primAdd},
		{"-", primSub},
		{"*", primMul},
		{"/", primDiv},
		{"mod", primMod},
		{"quotient", primQuotient},
		{"remainder", primRemainder},
		{"=", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })},
		{"<", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) < 0 })},
		{">", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) > 0 })},
		{"/=", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) != 0 })},
		{">=", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) >= 0 })},
		{"<=", numBoolOp(func(a, b *big.Int) bool { return a.Cmp(b) <= 0 })},
		{"&&", boolBoolOp(func(a, b bool) bool { return a && b })},
		{"||", boolBoolOp(func(a, b bool) bool { return a || b })},
		{"string=?", strBoolOp(func(a, b string) bool { return a == b })},
		{"string<?", strBoolOp(func(a, b string) bool { return a < b })},
		{"string>?", strBoolOp(func(a, b string) bool { return a > b })},
		{"string<=?", strBoolOp(func(a, b string) bool { return a <= b })},
		{"string>=?", strBoolOp(func(a, b string) bool { return a >= b })},
		{"symbol?", unaryPredicate(func(v Value) bool { _, ok := v.(Symbol); return ok })},
		{"string?", unaryPredicate(func(v Value) bool { _, ok := v.(String); return ok })},
		{"number?", unaryPredicate(isNumeric)},
		{"bool?", unaryPredicate(func(v Value) bool { _, ok := v.(Bool); return ok })},
		{"list?", unaryPredicate(IsList)},
		{"car", primCar},
		{"cdr", primCdr},
		{"cons", primCons},
		{"eq?", binaryOp(func(a, b Value) (Value, error) { return Bool(eqvValues(a, b)), nil })},
		{"eqv?", binaryOp(func(a, b Value) (Value, error) { return Bool(eqvValues(a, b)), nil })},
		{"equal?", binaryOp(func(a, b Value) (Value, error) { return Bool(equalValues(a, b)), nil })},
	}
}

func isNumeric(v Value) bool {
	switch v.(type) {
	case *Integer, Float, *Ratio, *Complex:
		return true
	default:
		return false
	}
}

// unpackNum coerces v to an integer the way the teacher's arithmetic
// builtins coerce their operands: an Integer passes through; a String that
// parses as a base-10 integer is accepted; a single-element List is
// unwrapped and coerced recursively; anything else is a TypeMismatch.
func unpackNum(v Value) (*big.Int, error) {
	switch t := v.(type) {
	case *Integer:
		return t.V, nil
	case String:
		n, ok := new(big.Int).SetString(string(t), 10)
		if !ok {
			return nil, TypeMismatchErr("number", v)
		}
		return n, nil
	case *List:
		if len(t.Items) == 1 {
			return unpackNum(t.Items[0])
		}
		return nil, TypeMismatchErr("number", v)
	default:
		return nil, TypeMismatchErr("number", v)
	}
}

// unpackStr coerces v to a string: String passes through; Integer and Bool
// are coerced to their printed form.
func unpackStr(v Value) (string, error) {
	switch v.(type) {
	case String:
		return string(v.(String)), nil
	case *Integer, Bool:
		return v.Show(), nil
	default:
		return "", TypeMismatchErr("string", v)
	}
}

// unpackBool coerces v to a bool; only Bool is accepted.
func unpackBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, TypeMismatchErr("bool", v)
	}
	return bool(b), nil
}

func requireMinArgs(args []Value, n int) error {
	if len(args) < n {
		return NumArgsErr(n, args)
	}
	return nil
}

func unpackNumArgs(args []Value) ([]*big.Int, error) {
	nums := make([]*big.Int, len(args))
	for i, a := range args {
		n, err := unpackNum(a)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

func primAdd(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	sum := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		sum.Add(sum, n)
	}
	return &Integer{V: sum}, nil
}

func primSub(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		diff.Sub(diff, n)
	}
	return &Integer{V: diff}, nil
}

func primMul(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	prod := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		prod.Mul(prod, n)
	}
	return &Integer{V: prod}, nil
}

func primDiv(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	quo := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		if n.Sign() == 0 {
			return nil, DefaultErr("division by zero")
		}
		quo.Quo(quo, n)
	}
	return &Integer{V: quo}, nil
}

func primMod(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	acc := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		if n.Sign() == 0 {
			return nil, DefaultErr("division by zero")
		}
		acc.Mod(acc, n)
	}
	return &Integer{V: acc}, nil
}

func primQuotient(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	acc := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		if n.Sign() == 0 {
			return nil, DefaultErr("division by zero")
		}
		acc.Quo(acc, n)
	}
	return &Integer{V: acc}, nil
}

func primRemainder(args []Value) (Value, error) {
	if err := requireMinArgs(args, 2); err != nil {
		return nil, err
	}
	nums, err := unpackNumArgs(args)
	if err != nil {
		return nil, err
	}
	acc := new(big.Int).Set(nums[0])
	for _, n := range nums[1:] {
		if n.Sign() == 0 {
			return nil, DefaultErr("division by zero")
		}
		acc.Rem(acc, n)
	}
	return &Integer{V: acc}, nil
}

func numBoolOp(cmp func(a, b *big.Int) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NumArgsErr(2, args)
		}
		a, err := unpackNum(args[0])
		if err != nil {
			return nil, err
		}
		b, err := unpackNum(args[1])
		if err != nil {
			return nil, err
		}
		return Bool(cmp(a, b)), nil
	}
}

func boolBoolOp(op func(a, b bool) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NumArgsErr(2, args)
		}
		a, err := unpackBool(args[0])
		if err != nil {
			return nil, err
		}
		b, err := unpackBool(args[1])
		if err != nil {
			return nil, err
		}
		return Bool(op(a, b)), nil
	}
}

func strBoolOp(op func(a, b string) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NumArgsErr(2, args)
		}
		a, err := unpackStr(args[0])
		if err != nil {
			return nil, err
		}
		b, err := unpackStr(args[1])
		if err != nil {
			return nil, err
		}
		return Bool(op(a, b)), nil
	}
}

func unaryPredicate(pred func(v Value) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, NumArgsErr(1, args)
		}
		return Bool(pred(args[0])), nil
	}
}

func binaryOp(op func(a, b Value) (Value, error)) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if len(args) != 2 {
			return nil, NumArgsErr(2, args)
		}
		return op(args[0], args[1])
	}
}

func primCar(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	switch v := args[0].(type) {
	case *List:
		if len(v.Items) == 0 {
			return nil, TypeMismatchErr("pair", args[0])
		}
		return v.Items[0], nil
	case *DottedList:
		return v.Head[0], nil
	default:
		return nil, TypeMismatchErr("pair", args[0])
	}
}

func primCdr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, NumArgsErr(1, args)
	}
	switch v := args[0].(type) {
	case *List:
		if len(v.Items) == 0 {
			return nil, TypeMismatchErr("pair", args[0])
		}
		return &List{Items: v.Items[1:]}, nil
	case *DottedList:
		if len(v.Head) == 1 {
			return v.Tail, nil
		}
		return &DottedList{Head: v.Head[1:], Tail: v.Tail}, nil
	default:
		return nil, TypeMismatchErr("pair", args[0])
	}
}

func primCons(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, NumArgsErr(2, args)
	}
	x, y := args[0], args[1]
	switch t := y.(type) {
	case *List:
		items := make([]Value, 0, len(t.Items)+1)
		items = append(items, x)
		items = append(items, t.Items...)
		return &List{Items: items}, nil
	case *DottedList:
		head := make([]Value, 0, len(t.Head)+1)
		head = append(head, x)
		head = append(head, t.Head...)
		return &DottedList{Head: head, Tail: t.Tail}, nil
	default:
		return &DottedList{Head: []Value{x}, Tail: y}, nil
	}
}

// eqvValues implements eq?/eqv?: structural equality over same-variant
// values, with no type coercion.
func eqvValues(a, b Value) bool {
	switch x := a.(type) {
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x == y
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.V.Cmp(y.V) == 0
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case *Ratio:
		y, ok := b.(*Ratio)
		return ok && x.V.Cmp(y.V) == 0
	case *Complex:
		y, ok := b.(*Complex)
		return ok && x.Re == y.Re && x.Im == y.Im
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Char:
		y, ok := b.(Char)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !eqvValues(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *DottedList:
		y, ok := b.(*DottedList)
		if !ok {
			return false
		}
		return eqvValues(dottedAsList(x), dottedAsList(y))
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !eqvValues(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// dottedAsList normalizes a DottedList for comparison by appending its tail
// as a final element of a synthesized proper list: (a b . c) ~ (a b c).
func dottedAsList(d *DottedList) *List {
	items := make([]Value, 0, len(d.Head)+1)
	items = append(items, d.Head...)
	items = append(items, d.Tail)
	return &List{Items: items}
}

// equalValues implements equal?: eqv? plus type-coercing comparison via the
// num/str/bool unpackers, and structural recursion through equal? (not
// eqv?) for Lists and DottedLists.
func equalValues(a, b Value) bool {
	if eqvValues(a, b) {
		return true
	}
	if al, ok := a.(*List); ok {
		bl, ok := b.(*List)
		if !ok || len(al.Items) != len(bl.Items) {
			return false
		}
		for i := range al.Items {
			if !equalValues(al.Items[i], bl.Items[i]) {
				return false
			}
		}
		return true
	}
	if ad, ok := a.(*DottedList); ok {
		bd, ok := b.(*DottedList)
		if !ok {
			return false
		}
		return equalValues(dottedAsList(ad), dottedAsList(bd))
	}
	if an, err := unpackNum(a); err == nil {
		if bn, err := unpackNum(b); err == nil {
			return an.Cmp(bn) == 0
		}
	}
	if as, err := unpackStr(a); err == nil {
		if bs, err := unpackStr(b); err == nil {
			return as == bs
		}
	}
	if ab, err := unpackBool(a); err == nil {
		if bb, err := unpackBool(b); err == nil {
			return ab == bb
		}
	}
	return false
}

// InitGlobalEnv populates a root Env with every primitive and IO builtin
// described in spec.md §4.4, the Go analogue of the teacher's
// InitializeUserEnv/AddBuiltins bootstrapping in env.go.
func InitGlobalEnv(opts ...Option) *Env {
	env := NewRootEnv(opts...)
	for _, p := range primitives() {
		p := p
		env.Bind(p.name, &PrimitiveFunc{Name: p.name, Fn: p.fn})
	}
	for _, io := range ioPrimitives() {
		env.Bind(io.Name, io)
	}
	return env
}
