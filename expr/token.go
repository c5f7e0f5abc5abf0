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

// Package expr implements the expression sub-language of §4.6: a
// single-pass lexer, a recursive-descent parser producing an unbound AST,
// a binder that resolves names against variables/functions, and an
// evaluator.
package expr

import "fmt"

// TokenType enumerates the lexer's token kinds.
type TokenType uint8

const (
	Int TokenType = iota
	Float
	Identifier
	Operator
	LeftParen
	RightParen
	Comma
	Empty
	ErrorToken
)

func (t TokenType) String() string {
	switch t {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case Comma:
		return "Comma"
	case Empty:
		return "Empty"
	case ErrorToken:
		return "Error"
	default:
		return fmt.Sprintf("tokenType(%d)", uint8(t))
	}
}

// ErrorKind enumerates the ways the lexer can fail on an input span.
type ErrorKind uint8

const (
	LetterAfterNumber ErrorKind = iota
	InvalidEquals
	InvalidBang
	UnknownCharacter
)

func (k ErrorKind) String() string {
	switch k {
	case LetterAfterNumber:
		return "letter immediately follows a number"
	case InvalidEquals:
		return "'=' must be followed by '=' to form '=='"
	case InvalidBang:
		return "'!' must be followed by '=' to form '!='"
	case UnknownCharacter:
		return "unknown character"
	default:
		return fmt.Sprintf("errorKind(%d)", uint8(k))
	}
}

// Token is one lexical unit: a type, its source text, and its span
// (byte offsets into the original input, half-open [Start, End)).
type Token struct {
	Type       TokenType
	Text       string
	Start, End int
	Kind       ErrorKind // meaningful only when Type == ErrorToken
}

func (t Token) String() string {
	if t.Type == ErrorToken {
		return fmt.Sprintf("%s(%s)@[%d:%d]", t.Type, t.Kind, t.Start, t.End)
	}
	return fmt.Sprintf("%s(%q)@[%d:%d]", t.Type, t.Text, t.Start, t.End)
}
