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

import "strings"

// Lexer is a single-pass scanner over a string (§4.6 Lexer).
type Lexer struct {
	src []byte
	pos int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer { return &Lexer{src: []byte(src)} }

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isSpace(b byte) bool  { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// Next scans and returns the next token, advancing the lexer's position.
// Calling Next past the end of input repeatedly returns Empty tokens.
func (l *Lexer) Next() Token {
	for isSpace(l.peek()) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return Token{Type: Empty, Start: start, End: start}
	}

	c := l.peek()
	switch {
	// A '-' directly followed by a digit always starts a number literal, so
	// "5-3" lexes as 5 followed by -3, not as a subtraction.
	case c == '-' && isDigit(l.peekAt(1)):
		return l.scanNumber(start)
	case isDigit(c):
		return l.scanNumber(start)
	case isLetter(c):
		return l.scanIdentifier(start)
	case c == '(':
		l.pos++
		return Token{Type: LeftParen, Text: "(", Start: start, End: l.pos}
	case c == ')':
		l.pos++
		return Token{Type: RightParen, Text: ")", Start: start, End: l.pos}
	case c == ',':
		l.pos++
		return Token{Type: Comma, Text: ",", Start: start, End: l.pos}
	default:
		return l.scanOperator(start)
	}
}

func (l *Lexer) scanNumber(start int) Token {
	if l.peek() == '-' {
		l.pos++
	}
	for isDigit(l.peek()) || l.peek() == '_' {
		l.pos++
	}
	isFloat := false
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for isDigit(l.peek()) || l.peek() == '_' {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		if isDigit(l.peek()) {
			isFloat = true
			for isDigit(l.peek()) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	if isLetter(l.peek()) {
		for isLetter(l.peek()) || isDigit(l.peek()) {
			l.pos++
		}
		return Token{Type: ErrorToken, Kind: LetterAfterNumber, Start: start, End: l.pos, Text: string(l.src[start:l.pos])}
	}

	text := strings.ReplaceAll(string(l.src[start:l.pos]), "_", "")
	if isFloat {
		return Token{Type: Float, Text: text, Start: start, End: l.pos}
	}
	return Token{Type: Int, Text: text, Start: start, End: l.pos}
}

func (l *Lexer) scanIdentifier(start int) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.pos++
	}
	return Token{Type: Identifier, Text: string(l.src[start:l.pos]), Start: start, End: l.pos}
}

func (l *Lexer) scanOperator(start int) Token {
	c := l.peek()
	switch c {
	case '+', '-', '*', '/', '%', '^':
		l.pos++
		return Token{Type: Operator, Text: string(c), Start: start, End: l.pos}
	case '=':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: Operator, Text: "==", Start: start, End: l.pos}
		}
		l.pos++
		return Token{Type: ErrorToken, Kind: InvalidEquals, Start: start, End: l.pos, Text: "="}
	case '!':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: Operator, Text: "!=", Start: start, End: l.pos}
		}
		l.pos++
		return Token{Type: ErrorToken, Kind: InvalidBang, Start: start, End: l.pos, Text: "!"}
	case '<':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: Operator, Text: "<=", Start: start, End: l.pos}
		}
		l.pos++
		return Token{Type: Operator, Text: "<", Start: start, End: l.pos}
	case '>':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: Operator, Text: ">=", Start: start, End: l.pos}
		}
		l.pos++
		return Token{Type: Operator, Text: ">", Start: start, End: l.pos}
	default:
		l.pos++
		return Token{Type: ErrorToken, Kind: UnknownCharacter, Start: start, End: l.pos, Text: string(c)}
	}
}
