// Copyright 2026 The Dyncore Authors
// This file is part of dyncore.
//
// dyncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dyncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with dyncore. If not, see <http://www.gnu.org/licenses/>.

package expr

import (
	"fmt"
	"strconv"

	"github.com/dyncore/dyncore/variant"
)

// SyntaxErrorKind enumerates the parser's error kinds (§4.6, §7 family 2).
type SyntaxErrorKind uint8

const (
	MissingRightParenthesis SyntaxErrorKind = iota
	ExpressionExpected
	UnexpectedToken
	LexError
)

// SyntaxError is the single error type Parse returns; the parser reports
// only the first syntax error it encounters (§7: "the expression parser
// reports the first syntax error encountered").
type SyntaxError struct {
	Kind  SyntaxErrorKind
	Token Token
}

func (e *SyntaxError) Error() string {
	switch e.Kind {
	case MissingRightParenthesis:
		return fmt.Sprintf("expected ')' at position %d, got %s", e.Token.Start, e.Token)
	case ExpressionExpected:
		return fmt.Sprintf("expected an expression at position %d, got %s", e.Token.Start, e.Token)
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %s", e.Token)
	case LexError:
		return fmt.Sprintf("lexical error at position %d: %s", e.Token.Start, e.Token.Kind)
	default:
		return "syntax error"
	}
}

// Parser is a recursive-descent parser over the precedence chain of §4.6.
type Parser struct {
	lex *Lexer
	cur Token
}

// Parse lexes and parses src as one complete expression.
func Parse(src string) (Expr, error) {
	p := &Parser{lex: NewLexer(src)}
	p.advance()
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != Empty {
		return nil, &SyntaxError{Kind: UnexpectedToken, Token: p.cur}
	}
	return e, nil
}

func (p *Parser) advance() { p.cur = p.lex.Next() }

func (p *Parser) parseExpression() (Expr, error) { return p.parseEquality() }

func (p *Parser) parseEquality() (Expr, error) {
	return p.parseBinaryLevel(p.parseComparison, "==", "!=")
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.parseBinaryLevel(p.parseTerm, "<", "<=", ">", ">=")
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.parseBinaryLevel(p.parseFactor, "+", "-")
}

func (p *Parser) parseFactor() (Expr, error) {
	return p.parseBinaryLevel(p.parseExponent, "*", "/", "%")
}

func (p *Parser) parseExponent() (Expr, error) {
	// Left-associative per §9.1's decision: the grammar as given is the
	// authority, not a suggestion to make exponentiation right-associative.
	return p.parseBinaryLevel(p.parseUnary, "^")
}

func (p *Parser) parseBinaryLevel(next func() (Expr, error), ops ...string) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == Operator && containsOp(ops, p.cur.Text) {
		op := p.cur.Text
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: reservedOperatorName(op, false), Left: left, Right: right}
	}
	return left, nil
}

func containsOp(ops []string, text string) bool {
	for _, o := range ops {
		if o == text {
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.cur.Type == Operator && p.cur.Text == "-" {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: reservedOperatorName("-", true), Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	switch p.cur.Type {
	case Int:
		text := p.cur.Text
		p.advance()
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &SyntaxError{Kind: ExpressionExpected, Token: p.cur}
		}
		return Value{V: variant.FromInt(v)}, nil
	case Float:
		text := p.cur.Text
		p.advance()
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &SyntaxError{Kind: ExpressionExpected, Token: p.cur}
		}
		return Value{V: variant.FromDouble(v)}, nil
	case Identifier:
		return p.parseVariableOrCall()
	case LeftParen:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != RightParen {
			return nil, &SyntaxError{Kind: MissingRightParenthesis, Token: p.cur}
		}
		p.advance()
		return e, nil
	case ErrorToken:
		return nil, &SyntaxError{Kind: LexError, Token: p.cur}
	default:
		return nil, &SyntaxError{Kind: ExpressionExpected, Token: p.cur}
	}
}

func (p *Parser) parseVariableOrCall() (Expr, error) {
	name := p.cur.Text
	p.advance()
	if p.cur.Type != LeftParen {
		return Variable{Name: name}, nil
	}
	p.advance()
	var args []Expr
	if p.cur.Type != RightParen {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Type == Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur.Type != RightParen {
		return nil, &SyntaxError{Kind: MissingRightParenthesis, Token: p.cur}
	}
	p.advance()
	return Call{Name: name, Args: args}, nil
}
