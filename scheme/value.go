// Package scheme implements the value model, environment, evaluator and
// primitive table for a tree-walking interpreter for a subset of Scheme.
package scheme

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Value is the tagged sum of every runtime value the interpreter knows how
// to evaluate or print. Every concrete type below implements Value.
type Value interface {
	// Show renders v in the language's canonical external representation.
	Show() string
}

// Symbol is an identifier naming a binding or a special-form keyword.
type Symbol string

// Show implements Value.
func (s Symbol) Show() string { return string(s) }

// Integer is an arbitrary-precision signed integer.
type Integer struct {
	V *big.Int
}

// NewInteger wraps an int64 as an Integer value.
func NewInteger(n int64) *Integer {
	return &Integer{V: big.NewInt(n)}
}

// Show implements Value.
func (i *Integer) Show() string { return i.V.String() }

// Float is a 64-bit binary floating point value.
type Float float64

// Show implements Value.
func (f Float) Show() string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

// Ratio is a reduced rational number with a positive denominator.
type Ratio struct {
	V *big.Rat
}

// NewRatio constructs a reduced Ratio. den must be non-zero; the sign is
// normalized onto the numerator and the fraction is reduced by *big.Rat
// itself, satisfying the "always reduced, positive denominator" invariant.
func NewRatio(num, den *big.Int) *Ratio {
	return &Ratio{V: new(big.Rat).SetFrac(num, den)}
}

// Show implements Value.
func (r *Ratio) Show() string {
	return fmt.Sprintf("%s/%s", r.V.Num().String(), r.V.Denom().String())
}

// Complex is a binary floating point complex number.
type Complex struct {
	Re, Im float64
}

// Show implements Value.
func (c *Complex) Show() string {
	sign := "+"
	im := c.Im
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("%s%s%si", formatFloatPart(c.Re), sign, formatFloatPart(im))
}

func formatFloatPart(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Bool is the Scheme booleans #t and #f.
type Bool bool

// Show implements Value.
func (b Bool) Show() string {
	if b {
		return "#t"
	}
	return "#f"
}

// Char is a single Unicode scalar value.
type Char rune

// Show implements Value.
func (c Char) Show() string {
	switch rune(c) {
	case ' ':
		return `#\space`
	case '\n':
		return `#\newline`
	default:
		return `#\` + string(rune(c))
	}
}

// String is Scheme text.
type String string

// Show implements Value.
func (s String) Show() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(s) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// List is a proper list: an ordered sequence of values terminated by the
// empty list.
type List struct {
	Items []Value
}

// NewList constructs a List from items. A nil or empty slice is the empty
// list.
func NewList(items ...Value) *List {
	return &List{Items: items}
}

// Show implements Value.
func (l *List) Show() string {
	return "(" + showCells(l.Items) + ")"
}

// DottedList is an improper list: a non-empty head followed by a tail that
// is not itself a proper list. Construct via NewDottedList, which enforces
// the "tail is never a List" invariant by splicing a List tail into head.
type DottedList struct {
	Head []Value
	Tail Value
}

// NewDottedList builds a DottedList, normalizing away a List tail (splicing
// its elements onto head) so that Tail is never itself a *List.
func NewDottedList(head []Value, tail Value) Value {
	for {
		if inner, ok := tail.(*List); ok {
			head = append(append([]Value{}, head...), inner.Items...)
			return &List{Items: head}
		}
		if inner, ok := tail.(*DottedList); ok {
			head = append(append([]Value{}, head...), inner.Head...)
			tail = inner.Tail
			continue
		}
		break
	}
	return &DottedList{Head: head, Tail: tail}
}

// Show implements Value.
func (d *DottedList) Show() string {
	return "(" + showCells(d.Head) + " . " + d.Tail.Show() + ")"
}

// Vector is a fixed-length, zero-indexed array of values.
type Vector struct {
	Items []Value
}

// Show implements Value.
func (v *Vector) Show() string {
	return "#(" + showCells(v.Items) + ")"
}

// PrimitiveFunc is a pure host-implemented builtin.
type PrimitiveFunc struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

// Show implements Value.
func (p *PrimitiveFunc) Show() string { return "<primitive>" }

// IOFunc is an effectful host-implemented builtin: it may perform I/O and
// therefore also receives the calling Env.
type IOFunc struct {
	Name string
	Fn   func(env *Env, args []Value) (Value, error)
}

// Show implements Value.
func (p *IOFunc) Show() string { return "<IO primitive>" }

// Closure pairs code (formal parameters, an optional variadic parameter,
// and a body) with the Environment active at its construction.
type Closure struct {
	Name    string
	Params  []string
	Vararg  string
	HasRest bool
	Body    []Value
	Env     *Env
}

// Show implements Value.
func (c *Closure) Show() string {
	var b strings.Builder
	b.WriteString("(lambda (")
	b.WriteString(strings.Join(c.Params, " "))
	if c.HasRest {
		if len(c.Params) > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(". ")
		b.WriteString(c.Vararg)
	}
	b.WriteString(") ...)")
	return b.String()
}

// Port is an opaque external I/O handle.
type Port struct {
	Name   string
	handle portHandle
}

// Show implements Value.
func (p *Port) Show() string { return "<IO port>" }

func showCells(cells []Value) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Show()
	}
	return strings.Join(parts, " ")
}

// IsList reports whether v is a proper or improper list, matching the
// semantics of the list? primitive.
func IsList(v Value) bool {
	switch v.(type) {
	case *List, *DottedList:
		return true
	default:
		return false
	}
}

// AsBool requires v to be a Bool, returning TypeMismatch otherwise. if and
// cond predicates must be literal booleans; unlike many Lisps this dialect
// does not treat other values as truthy.
func AsBool(v Value) (bool, error) {
	b, ok := v.(Bool)
	if !ok {
		return false, TypeMismatchErr("bool", v)
	}
	return bool(b), nil
}
