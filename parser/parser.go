// Package parser implements the text-to-Value reader for the interpreter:
// a recursive-descent combinator parser built on top of
// github.com/prataprc/goparsec, grounded on
// _examples/luthersystems-elps/parser/regexparser/parser.go, which reads
// the teacher's own Lisp dialect the same way.
package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/724399396/write-your-self-scheme/scheme"
)

// NewReader returns a scheme.Reader backed by this package's grammar, for
// wiring into scheme.SetDefaultReader.
func NewReader() scheme.Reader {
	return &reader{}
}

type reader struct{}

func (r *reader) ReadProgram(text string) ([]scheme.Value, error) {
	return ParseProgram(text)
}

// ParseProgram parses text as a sequence of top-level expressions separated
// by whitespace, per spec.md §4.1's parse-program.
func ParseProgram(text string) ([]scheme.Value, error) {
	s := parsec.NewScanner([]byte(text))
	s = s.TrackLineno()
	p := grammar()

	var vals []scheme.Value
	root, rest := p(s)
	for root != nil {
		v, err := asValue(root)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		s = rest
		root, rest = p(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		snippet, _ := s.Match(`.{1,16}`)
		return vals, fmt.Errorf("%d: unexpected input starting: %s", s.Lineno(), snippet)
	}
	return vals, nil
}

// ParseOne parses exactly one expression from text and returns it along
// with the unconsumed remainder.
func ParseOne(text string) (scheme.Value, string, error) {
	s := parsec.NewScanner([]byte(text))
	p := grammar()
	root, rest := p(s)
	if root == nil {
		return nil, "", fmt.Errorf("no expression found")
	}
	v, err := asValue(root)
	if err != nil {
		return nil, "", err
	}
	remainder, _ := rest.Match(`(?s).*`)
	return v, string(remainder), nil
}

func asValue(node parsec.ParsecNode) (scheme.Value, error) {
	switch v := node.(type) {
	case []parsec.ParsecNode:
		// OrdChoice with a nil Nodify callback (as used for the top-level
		// expr rule) wraps its matched alternative in a single-element
		// []parsec.ParsecNode rather than returning it directly; unwrap it
		// the same way cleanNodes does for nested occurrences.
		cleaned, err := cleanNodes(v)
		if err != nil {
			return nil, scheme.ParserErr(err.Error())
		}
		if len(cleaned) != 1 {
			return nil, scheme.ParserErr(fmt.Sprintf("expected a single expression, got %d", len(cleaned)))
		}
		return asValue(cleaned[0])
	case error:
		return nil, scheme.ParserErr(v.Error())
	case scheme.Value:
		return v, nil
	default:
		return nil, scheme.ParserErr(fmt.Sprintf("unrecognized parse result: %T", node))
	}
}

type nodeKind int

const (
	nodeTerm nodeKind = iota
	nodeList
	nodeDotted
	nodeVector
	nodeQuote
	nodeQuasiquote
	nodeUnquote
)

func grammar() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openVec := parsec.Atom("#(", "OPENVEC")
	quoteMark := parsec.Atom("'", "QUOTE")
	quasiquoteMark := parsec.Atom("`", "QUASIQUOTE")
	unquoteMark := parsec.Atom(",", "UNQUOTE")
	dot := parsec.Atom(".", "DOT")

	charTok := parsec.Token(`(?:#\\(?:space|newline)\b|#\\[A-Za-z]\b|#\\[^A-Za-z])`, "CHAR")
	boolTok := parsec.Token(`(?:#t|#f)`, "BOOL")
	hexTok := parsec.Token(`#x[0-9a-fA-F]+`, "HEX")
	octTok := parsec.Token(`#o[0-7]+`, "OCT")
	binTok := parsec.Token(`#b[01]+`, "BIN")
	dprefixTok := parsec.Token(`#d[+-]?[0-9]+`, "DPREFIX")
	complexTok := parsec.Token(`[+-]?(?:[0-9]+\.[0-9]+|[0-9]+)[+-](?:[0-9]+\.[0-9]+|[0-9]+)i`, "COMPLEX")
	ratioTok := parsec.Token(`[+-]?[0-9]+/[0-9]+`, "RATIO")
	floatTok := parsec.Token(`[+-]?[0-9]+\.[0-9]+`, "FLOAT")
	decimalTok := parsec.Token(`[+-]?[0-9]+`, "DECIMAL")
	symbolTok := parsec.Token(`(?:\pL|[!$%&|*+\-/:<=>?@^_~])(?:\pL|[0-9]|[!$%&|*+\-/:<=>?@^_~])*`, "SYMBOL")

	// Alternatives tried in this order so more specific numeric forms are
	// attempted before the prefixes they share with shorter ones (e.g.
	// COMPLEX before FLOAT before DECIMAL) — the same ambiguous-prefix
	// backtracking spec.md §4.1 calls out, resolved by OrdChoice trying
	// each alternative at the same position until one fully matches.
	term := parsec.OrdChoice(astNode(nodeTerm),
		parsec.String(),
		charTok,
		boolTok,
		hexTok,
		octTok,
		binTok,
		dprefixTok,
		complexTok,
		ratioTok,
		floatTok,
		decimalTok,
		symbolTok,
	)

	var expr parsec.Parser // forward declaration for recursive grammar rules
	elements := parsec.Kleene(nil, &expr)

	quoted := parsec.And(astNode(nodeQuote), quoteMark, &expr)
	quasiquoted := parsec.And(astNode(nodeQuasiquote), quasiquoteMark, &expr)
	unquoted := parsec.And(astNode(nodeUnquote), unquoteMark, &expr)
	vector := parsec.And(astNode(nodeVector), openVec, elements, closeP)
	dottedList := parsec.And(astNode(nodeDotted), openP, elements, dot, &expr, closeP)
	properList := parsec.And(astNode(nodeList), openP, elements, closeP)

	expr = parsec.OrdChoice(nil,
		quoted,
		quasiquoted,
		unquoted,
		vector,
		dottedList,
		properList,
		term,
	)
	return expr
}

func astNode(kind nodeKind) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		cleaned, err := cleanNodes(nodes)
		if err != nil {
			return err
		}
		return buildNode(kind, cleaned)
	}
}

// cleanNodes flattens Kleene-produced []parsec.ParsecNode children into the
// surrounding slice and propagates the first error node encountered,
// mirroring the teacher's cleanParsecNodeList in regexparser/parser.go.
func cleanNodes(nodes []parsec.ParsecNode) ([]parsec.ParsecNode, error) {
	var out []parsec.ParsecNode
	for _, n := range nodes {
		switch v := n.(type) {
		case []parsec.ParsecNode:
			clean, err := cleanNodes(v)
			if err != nil {
				return nil, err
			}
			out = append(out, clean...)
		case error:
			return nil, v
		default:
			out = append(out, v)
		}
	}
	return out, nil
}

func valuesOf(nodes []parsec.ParsecNode) []scheme.Value {
	var vals []scheme.Value
	for _, n := range nodes {
		if v, ok := n.(scheme.Value); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func buildNode(kind nodeKind, nodes []parsec.ParsecNode) parsec.ParsecNode {
	switch kind {
	case nodeTerm:
		return buildTerm(nodes)
	case nodeList:
		return scheme.NewList(valuesOf(nodes)...)
	case nodeVector:
		return &scheme.Vector{Items: valuesOf(nodes)}
	case nodeDotted:
		return buildDotted(nodes)
	case nodeQuote:
		vals := valuesOf(nodes)
		if len(vals) != 1 {
			return fmt.Errorf("malformed quote")
		}
		return scheme.NewList(scheme.Symbol("quote"), vals[0])
	case nodeQuasiquote:
		vals := valuesOf(nodes)
		if len(vals) != 1 {
			return fmt.Errorf("malformed quasiquote")
		}
		return scheme.NewList(scheme.Symbol("quasiquote"), vals[0])
	case nodeUnquote:
		vals := valuesOf(nodes)
		if len(vals) != 1 {
			return fmt.Errorf("malformed unquote")
		}
		return scheme.NewList(scheme.Symbol("unquote"), vals[0])
	default:
		return fmt.Errorf("unknown node kind %d", kind)
	}
}

func buildDotted(nodes []parsec.ParsecNode) parsec.ParsecNode {
	dotIdx := -1
	for i, n := range nodes {
		if t, ok := n.(*parsec.Terminal); ok && t.Name == "DOT" {
			dotIdx = i
			break
		}
	}
	if dotIdx < 0 {
		return fmt.Errorf("malformed dotted list: missing '.'")
	}
	head := valuesOf(nodes[:dotIdx])
	tailVals := valuesOf(nodes[dotIdx+1:])
	if len(head) == 0 {
		return fmt.Errorf("malformed dotted list: empty head")
	}
	if len(tailVals) != 1 {
		return fmt.Errorf("malformed dotted list: expected exactly one tail expression")
	}
	return scheme.NewDottedList(head, tailVals[0])
}

func buildTerm(nodes []parsec.ParsecNode) parsec.ParsecNode {
	if len(nodes) != 1 {
		return fmt.Errorf("malformed term")
	}
	switch t := nodes[0].(type) {
	case string:
		return scheme.String(unquoteString(t))
	case *parsec.Terminal:
		return buildTerminal(t)
	default:
		return fmt.Errorf("unrecognized term node: %T", nodes[0])
	}
}

// unquoteString strips the surrounding double quotes that goparsec's
// String() parser leaves on its already-unescaped result.
func unquoteString(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

func buildTerminal(t *parsec.Terminal) parsec.ParsecNode {
	switch t.Name {
	case "CHAR":
		return buildChar(t.Value)
	case "BOOL":
		return scheme.Bool(t.Value == "#t")
	case "HEX":
		return buildRadixInt(t.Value[2:], 16)
	case "OCT":
		return buildRadixInt(t.Value[2:], 8)
	case "BIN":
		return buildRadixInt(t.Value[2:], 2)
	case "DPREFIX":
		return buildRadixInt(t.Value[2:], 10)
	case "COMPLEX":
		return buildComplex(t.Value)
	case "RATIO":
		return buildRatio(t.Value)
	case "FLOAT":
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return fmt.Errorf("bad float literal %q: %v", t.Value, err)
		}
		return scheme.Float(f)
	case "DECIMAL":
		return buildRadixInt(t.Value, 10)
	case "SYMBOL":
		return scheme.Symbol(t.Value)
	default:
		return fmt.Errorf("unrecognized terminal %s %q", t.Name, t.Value)
	}
}

func buildChar(lit string) parsec.ParsecNode {
	switch lit {
	case `#\space`:
		return scheme.Char(' ')
	case `#\newline`:
		return scheme.Char('\n')
	default:
		runes := []rune(strings.TrimPrefix(lit, `#\`))
		if len(runes) != 1 {
			return fmt.Errorf("bad character literal %q", lit)
		}
		return scheme.Char(runes[0])
	}
}

func buildRadixInt(digits string, base int) parsec.ParsecNode {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return fmt.Errorf("bad integer literal %q (base %d)", digits, base)
	}
	return &scheme.Integer{V: n}
}

func buildRatio(lit string) parsec.ParsecNode {
	parts := strings.SplitN(lit, "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("bad ratio literal %q", lit)
	}
	num, ok := new(big.Int).SetString(parts[0], 10)
	if !ok {
		return fmt.Errorf("bad ratio numerator %q", lit)
	}
	den, ok := new(big.Int).SetString(parts[1], 10)
	if !ok {
		return fmt.Errorf("bad ratio denominator %q", lit)
	}
	if den.Sign() == 0 {
		return fmt.Errorf("ratio with zero denominator %q", lit)
	}
	return scheme.NewRatio(num, den)
}

func buildComplex(lit string) parsec.ParsecNode {
	if !strings.HasSuffix(lit, "i") {
		return fmt.Errorf("bad complex literal %q", lit)
	}
	body := lit[:len(lit)-1]
	splitAt := -1
	for i := 1; i < len(body); i++ {
		if body[i] == '+' || body[i] == '-' {
			splitAt = i
			break
		}
	}
	if splitAt < 0 {
		return fmt.Errorf("bad complex literal %q", lit)
	}
	re, err := strconv.ParseFloat(body[:splitAt], 64)
	if err != nil {
		return fmt.Errorf("bad complex real part %q: %v", lit, err)
	}
	im, err := strconv.ParseFloat(body[splitAt:], 64)
	if err != nil {
		return fmt.Errorf("bad complex imaginary part %q: %v", lit, err)
	}
	return &scheme.Complex{Re: re, Im: im}
}
