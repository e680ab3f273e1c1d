package eval

import (
	"fmt"

	"github.com/darksharpness/int2048/bigint"
	apperrors "github.com/darksharpness/int2048/internal/errors"
)

// node is an element of a parsed expression.
type node interface {
	offset() int
}

type (
	numberLit struct {
		val *bigint.Int
		at  int
	}
	ansRef struct {
		at int
	}
	unaryExpr struct {
		op byte
		x  node
		at int
	}
	binaryExpr struct {
		op   byte
		x, y node
		at   int
	}
	callExpr struct {
		name string
		args []node
		at   int
	}
)

func (n numberLit) offset() int  { return n.at }
func (n ansRef) offset() int     { return n.at }
func (n unaryExpr) offset() int  { return n.at }
func (n binaryExpr) offset() int { return n.at }
func (n callExpr) offset() int   { return n.at }

// AnsName is the variable holding the last successful result.
const AnsName = "ans"

// functions maps every callable name to its arity.
var functions = map[string]int{
	"inc":    1,
	"dec":    1,
	"abs":    1,
	"neg":    1,
	"digits": 1,
	"cmp":    2,
	"shl":    2,
	"shr":    2,
}

// Functions returns the callable names, for completion and help.
func Functions() []string {
	return []string{"abs", "cmp", "dec", "digits", "inc", "neg", "shl", "shr"}
}

// MaxDepth bounds the height of a parsed expression. Parenthesized groups,
// calls, unary signs and each binary operator of a chain count one level;
// parsing and evaluation both recurse once per level.
const MaxDepth = 10000

type parser struct {
	src   string
	toks  []token
	i     int
	depth int
}

// Parse checks the syntax of src without evaluating it.
func Parse(src string) error {
	_, err := parse(src)
	return err
}

func parse(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %s", t)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return apperrors.SyntaxError{Input: p.src, Offset: t.pos, Message: fmt.Sprintf(format, args...)}
}

// descend enters one more level below t. Callers restore p.depth on return.
func (p *parser) descend(t token) error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorf(t, "expression nested too deeply (limit %d)", MaxDepth)
	}
	return nil
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errorf(t, "expected %s, found %s", what, t)
	}
	return t, nil
}

// expr := term { ("+" | "-") term }
func (p *parser) expr() (node, error) {
	defer func(d int) { p.depth = d }(p.depth)
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return x, nil
		}
		p.next()
		if err := p.descend(t); err != nil {
			return nil, err
		}
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = binaryExpr{op: t.text[0], x: x, y: y, at: t.pos}
	}
}

// term := unary { ("*" | "/" | "%") unary }
func (p *parser) term() (node, error) {
	defer func(d int) { p.depth = d }(p.depth)
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.text != "*" && t.text != "/" && t.text != "%") {
			return x, nil
		}
		p.next()
		if err := p.descend(t); err != nil {
			return nil, err
		}
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = binaryExpr{op: t.text[0], x: x, y: y, at: t.pos}
	}
}

// unary := ("-" | "+") unary | primary
func (p *parser) unary() (node, error) {
	t := p.peek()
	if t.kind == tokOp && (t.text == "-" || t.text == "+") {
		p.next()
		defer func(d int) { p.depth = d }(p.depth)
		if err := p.descend(t); err != nil {
			return nil, err
		}
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if t.text == "+" {
			return x, nil
		}
		return unaryExpr{op: '-', x: x, at: t.pos}, nil
	}
	return p.primary()
}

// primary := number | "ans" | name "(" args ")" | "(" expr ")"
func (p *parser) primary() (node, error) {
	t := p.next()
	if t.kind == tokIdent || t.kind == tokLParen {
		defer func(d int) { p.depth = d }(p.depth)
		if err := p.descend(t); err != nil {
			return nil, err
		}
	}
	switch t.kind {
	case tokNumber:
		v, err := bigint.Parse(t.text)
		if err != nil {
			return nil, p.errorf(t, "invalid number %s", t)
		}
		return numberLit{val: v, at: t.pos}, nil
	case tokIdent:
		if t.text == AnsName {
			return ansRef{at: t.pos}, nil
		}
		arity, ok := functions[t.text]
		if !ok {
			return nil, p.errorf(t, "unknown identifier %s", t)
		}
		return p.call(t, arity)
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, p.errorf(t, "expected operand, found %s", t)
}

func (p *parser) call(name token, arity int) (node, error) {
	if _, err := p.expect(tokLParen, fmt.Sprintf(`"(" after %s`, name.text)); err != nil {
		return nil, err
	}
	args := make([]node, 0, arity)
	for {
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if p.peek().kind != tokComma {
			break
		}
		p.next()
	}
	if len(args) != arity {
		return nil, p.errorf(name, "%s takes %d argument(s), got %d", name.text, arity, len(args))
	}
	if _, err := p.expect(tokRParen, `")"`); err != nil {
		return nil, err
	}
	return callExpr{name: name.text, args: args, at: name.pos}, nil
}
