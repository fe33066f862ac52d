package condition

import (
	"github.com/arthur-debert/templater/pkg/errors"
)

// Parse compiles condition text into an Expression. Malformed input
// returns an error with code errors.ErrParse carrying the offending
// token position under the "position" detail.
func Parse(input string) (Expression, error) {
	p := &parser{input: input, tokens: lex(input)}
	if len(p.tokens) == 0 {
		return nil, errors.New(errors.ErrParse, "empty condition").
			WithDetail("condition", input)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.errorf(tok, "unexpected token %q after condition", tok.text)
	}
	return expr, nil
}

type parser struct {
	input  string
	tokens []token
	next   int
}

func (p *parser) peek() (token, bool) {
	if p.next >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.next], true
}

func (p *parser) advance() token {
	tok := p.tokens[p.next]
	p.next++
	return tok
}

func (p *parser) errorf(tok token, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrParse, format, args...).
		WithDetail("condition", p.input).
		WithDetail("position", tok.pos)
}

// expr := term ('or' term)*
func (p *parser) parseExpr() (Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokenOr {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
}

// term := factor ('and' factor)*
func (p *parser) parseTerm() (Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokenAnd {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
}

// factor := FLAG | '(' ('and'|'or') factor+ ')' | '(' expr ')'
func (p *parser) parseFactor() (Expression, error) {
	tok, ok := p.peek()
	if !ok {
		last := p.tokens[len(p.tokens)-1]
		return nil, p.errorf(last, "condition ends unexpectedly after %q", last.text)
	}

	switch tok.kind {
	case tokenFlag:
		p.advance()
		return Test{Flag: tok.text}, nil
	case tokenLParen:
		p.advance()
		return p.parseGroup(tok)
	default:
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
}

// parseGroup handles the text after an opening parenthesis. A leading
// "and"/"or" keyword selects the prefix list form; anything else is an
// infix subexpression.
func (p *parser) parseGroup(open token) (Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errorf(open, "unclosed parenthesis")
	}

	if tok.kind == tokenAnd || tok.kind == tokenOr {
		op := p.advance()
		return p.parsePrefixList(open, op)
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	closing, ok := p.peek()
	if !ok {
		return nil, p.errorf(open, "unclosed parenthesis")
	}
	if closing.kind != tokenRParen {
		return nil, p.errorf(closing, "expected ')', found %q", closing.text)
	}
	p.advance()
	return expr, nil
}

// parsePrefixList parses the n-ary "(and f1 f2 ...)" / "(or f1 f2 ...)"
// form, folding the operands left into the binary AST.
func (p *parser) parsePrefixList(open, op token) (Expression, error) {
	var operands []Expression
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, p.errorf(open, "unclosed parenthesis")
		}
		if tok.kind == tokenRParen {
			p.advance()
			break
		}
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		operands = append(operands, operand)
	}

	if len(operands) == 0 {
		return nil, p.errorf(op, "%q needs at least one operand", op.text)
	}

	expr := operands[0]
	for _, operand := range operands[1:] {
		if op.kind == tokenAnd {
			expr = And{Left: expr, Right: operand}
		} else {
			expr = Or{Left: expr, Right: operand}
		}
	}
	return expr, nil
}
