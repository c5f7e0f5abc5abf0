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

import "github.com/dyncore/dyncore/variant"

// Expr is the unbound AST (§4.6): Value | Variable | Unary | Binary | Call,
// with string-typed variable and function references.
type Expr interface{ isExpr() }

// Value is a literal.
type Value struct{ V variant.Variant }

// Variable references a name to be resolved at bind time.
type Variable struct{ Name string }

// Unary applies a named unary operator function to one operand.
type Unary struct {
	Op      string
	Operand Expr
}

// Binary applies a named binary operator function to two operands.
type Binary struct {
	Op          string
	Left, Right Expr
}

// Call is a named function application (§4.6's Function(String, list<Expr>)).
type Call struct {
	Name string
	Args []Expr
}

func (Value) isExpr()    {}
func (Variable) isExpr() {}
func (Unary) isExpr()    {}
func (Binary) isExpr()   {}
func (Call) isExpr()     {}

// reservedOperatorName maps an operator token to the function name the
// binder resolves it against (§4.6 binding).
func reservedOperatorName(op string, isUnary bool) string {
	if isUnary {
		return "__neg__"
	}
	switch op {
	case "+":
		return "__add__"
	case "-":
		return "__sub__"
	case "*":
		return "__mul__"
	case "/":
		return "__div__"
	case "%":
		return "__mod__"
	case "^":
		return "__pow__"
	case "==":
		return "__eq__"
	case "!=":
		return "__ne__"
	case "<":
		return "__lt__"
	case "<=":
		return "__le__"
	case ">":
		return "__gt__"
	case ">=":
		return "__ge__"
	default:
		return op
	}
}
