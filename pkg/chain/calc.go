package chain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Evaluate computes a simple arithmetic expression supporting + - * /,
// parentheses, unary minus, and the usual precedence. The parser accepts
// nothing but arithmetic, so model-routed input cannot smuggle anything in.
func Evaluate(expr string) (float64, error) {
	p := &calcParser{input: expr}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

// FormatNumber renders a result without a trailing ".000000" for whole
// numbers, so "12 * 7 + 5" answers "89" rather than "89.000000".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return s
}

type calcParser struct {
	input string
	pos   int
}

// parseExpr handles + and - (lowest precedence).
func (p *calcParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.peek() == '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case p.peek() == '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value -= rhs
		default:
			return value, nil
		}
	}
}

// parseTerm handles * and /.
func (p *calcParser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch {
		case p.peek() == '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case p.peek() == '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

// parseFactor handles numbers, parentheses, and unary minus.
func (p *calcParser) parseFactor() (float64, error) {
	p.skipSpaces()
	switch {
	case p.peek() == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case p.peek() == '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -value, nil
	default:
		return p.parseNumber()
	}
}

func (p *calcParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(rune(p.input[p.pos])) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		if p.pos >= len(p.input) {
			return 0, fmt.Errorf("unexpected end of expression")
		}
		return 0, fmt.Errorf("expected a number at position %d", p.pos)
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

func (p *calcParser) skipSpaces() {
	p.pos += len(p.input[p.pos:]) - len(strings.TrimLeft(p.input[p.pos:], " \t"))
}

func (p *calcParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}
