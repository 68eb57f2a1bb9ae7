package motive

import (
	"fmt"
	"strings"
)

// calc() evaluation: tokenize into value and operator tokens, convert to
// postfix with standard precedence (* / over + -), then evaluate. Division
// by zero is a returned error — it must never leave the evaluator as
// Inf/NaN.

type calcTokenKind uint8

const (
	tokenValue calcTokenKind = iota
	tokenOperator
	tokenLParen
	tokenRParen
)

type calcToken struct {
	kind calcTokenKind
	text string // raw value text, or one of "+-*/()"
}

// EvaluateCalcExpression evaluates a full "calc(...)" string (the wrapper is
// optional) against the context. Value operands go through the same simple
// conversion as standalone values, so percentages inside calc stay
// property-aware.
func EvaluateCalcExpression(expr string, ctx ConversionContext, property string) (float64, error) {
	body := strings.TrimSpace(expr)
	if inner, ok := calcBody(body); ok {
		body = inner
	}
	return evalCalcBody(body, ctx, property)
}

func evalCalcBody(body string, ctx ConversionContext, property string) (float64, error) {
	tokens, err := tokenizeCalc(body)
	if err != nil {
		return 0, err
	}
	postfix, err := toPostfix(tokens)
	if err != nil {
		return 0, err
	}
	return evalPostfix(postfix, ctx, property)
}

// tokenizeCalc splits a calc body into value, operator, and paren tokens.
// A '-' or '+' directly preceding a numeric literal is part of the literal
// when the previous token is an operator or open paren (unary sign).
func tokenizeCalc(body string) ([]calcToken, error) {
	var tokens []calcToken
	i := 0
	for i < len(body) {
		c := body[i]
		switch {
		case c == ' ' || c == '\t':
			i++

		case c == '(':
			tokens = append(tokens, calcToken{kind: tokenLParen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, calcToken{kind: tokenRParen, text: ")"})
			i++

		case c == '*' || c == '/':
			tokens = append(tokens, calcToken{kind: tokenOperator, text: string(c)})
			i++

		case c == '+' || c == '-':
			if unarySign(tokens) {
				start := i
				i++
				j, ok := scanValue(body, i)
				if !ok {
					return nil, fmt.Errorf("dangling sign at %q", body[start:])
				}
				tokens = append(tokens, calcToken{kind: tokenValue, text: body[start:j]})
				i = j
			} else {
				tokens = append(tokens, calcToken{kind: tokenOperator, text: string(c)})
				i++
			}

		default:
			j, ok := scanValue(body, i)
			if !ok {
				return nil, fmt.Errorf("unexpected character %q", string(c))
			}
			tokens = append(tokens, calcToken{kind: tokenValue, text: body[i:j]})
			i = j
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	return tokens, nil
}

// unarySign reports whether a sign at the current position starts a signed
// literal rather than acting as a binary operator.
func unarySign(tokens []calcToken) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last.kind == tokenOperator || last.kind == tokenLParen
}

// scanValue advances past one value token (number + optional unit suffix,
// including '%'). Returns the end index.
func scanValue(s string, start int) (int, bool) {
	i := start
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '%' {
			i++
			continue
		}
		break
	}
	if i == start {
		return start, false
	}
	return i, true
}

// precedence returns operator binding strength.
func precedence(op string) int {
	if op == "*" || op == "/" {
		return 2
	}
	return 1
}

// toPostfix converts the token stream to postfix order (shunting-yard),
// tracking paren nesting with a depth counter so unbalanced expressions are
// caught rather than silently truncated.
func toPostfix(tokens []calcToken) ([]calcToken, error) {
	var out []calcToken
	var ops []calcToken
	depth := 0

	for _, tok := range tokens {
		switch tok.kind {
		case tokenValue:
			out = append(out, tok)

		case tokenOperator:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokenOperator || precedence(top.text) < precedence(tok.text) {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)

		case tokenLParen:
			depth++
			ops = append(ops, tok)

		case tokenRParen:
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			for len(ops) > 0 && ops[len(ops)-1].kind != tokenLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			ops = ops[:len(ops)-1] // discard the open paren
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.kind == tokenLParen {
			return nil, fmt.Errorf("unbalanced parentheses")
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}

// evalPostfix evaluates a postfix token stream left to right. Value tokens
// convert to pixels via the simple-value path before any arithmetic.
func evalPostfix(postfix []calcToken, ctx ConversionContext, property string) (float64, error) {
	var stack []float64

	for _, tok := range postfix {
		if tok.kind == tokenValue {
			num, unit, ok := splitNumberUnit(tok.text)
			if !ok {
				return 0, fmt.Errorf("malformed operand %q", tok.text)
			}
			stack = append(stack, convertSimple(num, unit, ctx, property))
			continue
		}

		if len(stack) < 2 {
			return 0, fmt.Errorf("malformed expression: operator %q missing operands", tok.text)
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var result float64
		switch tok.text {
		case "+":
			result = a + b
		case "-":
			result = a - b
		case "*":
			result = a * b
		case "/":
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			result = a / b
		}
		stack = append(stack, result)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("malformed expression: %d values left on stack", len(stack))
	}
	return stack[0], nil
}
