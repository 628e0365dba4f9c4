package validation

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
)

// EquationEvaluationError reports a consistency-rule equation that could
// not be parsed or evaluated against the supplied fields. The engine treats
// it as "cannot assess": the rule is skipped and the failure logged, never
// surfaced as a validation issue.
type EquationEvaluationError struct {
	Equation string
	Reason   string
}

func (e *EquationEvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate equation %q: %s", e.Equation, e.Reason)
}

// evalEquation evaluates a small arithmetic expression over named numeric
// fields. The grammar is deliberately minimal — numbers, field names, the
// four operators, unary minus, and parentheses — so rule files can never
// smuggle in anything beyond arithmetic:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := number | field | '-' factor | '(' expr ')'
func evalEquation(equation string, fields map[string]float64) (float64, error) {
	p := &exprParser{equation: equation, input: []rune(equation), fields: fields}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, p.errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, p.errorf("result is not finite")
	}
	return value, nil
}

type exprParser struct {
	equation string
	input    []rune
	pos      int
	fields   map[string]float64
}

func (p *exprParser) errorf(format string, args ...any) error {
	return &EquationEvaluationError{Equation: p.equation, Reason: fmt.Sprintf(format, args...)}
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}

func (p *exprParser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseExpr() (float64, error) {
	value, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			value += rhs
		case '-':
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

func (p *exprParser) parseTerm() (float64, error) {
	value, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			value *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, p.errorf("division by zero")
			}
			value /= rhs
		default:
			return value, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpaces()

	switch c := p.peek(); {
	case c == 0:
		return 0, p.errorf("unexpected end of expression")

	case c == '-':
		p.pos++
		value, err := p.parseFactor()
		return -value, err

	case c == '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, p.errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil

	case unicode.IsDigit(c) || c == '.':
		return p.parseNumber()

	case unicode.IsLetter(c) || c == '_':
		return p.parseField()

	default:
		return 0, p.errorf("unexpected %q at position %d", c, p.pos)
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	text := string(p.input[start:p.pos])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", text)
	}
	return value, nil
}

func (p *exprParser) parseField() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '.' {
			break
		}
		p.pos++
	}
	name := string(p.input[start:p.pos])

	value, ok := p.fields[name]
	if !ok {
		return 0, p.errorf("unknown field %q", name)
	}
	return value, nil
}

// equationFields lists the field names referenced by an equation, used to
// resolve values from the data document before evaluation.
func equationFields(equation string) []string {
	var names []string
	seen := map[string]bool{}

	runes := []rune(equation)
	for i := 0; i < len(runes); i++ {
		if !unicode.IsLetter(runes[i]) && runes[i] != '_' {
			continue
		}
		start := i
		for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_' || runes[i] == '.') {
			i++
		}
		name := string(runes[start:i])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}
