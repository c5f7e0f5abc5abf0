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

// Package fn implements callable functions for the expression language
// (§4.6): signatures, argument-type matching, and the builtin catalog the
// binder resolves operator and call names against.
package fn

import (
	"fmt"

	"github.com/dyncore/dyncore/variant"
)

// ArgumentType is Any | Concrete(AtomType) | Union(set<AtomType>) (§4.6).
type ArgumentType interface {
	matches(t variant.ValueType) bool
	String() string
}

// Any accepts any value type.
type Any struct{}

func (Any) matches(variant.ValueType) bool { return true }
func (Any) String() string                 { return "any" }

// Concrete accepts values convertible to one specific atom type (arrays
// included, matched elementwise by the caller's ValueType).
type Concrete struct{ Atom variant.AtomType }

func (c Concrete) matches(t variant.ValueType) bool {
	return variant.IsConvertible(t.Atom, c.Atom)
}
func (c Concrete) String() string { return c.Atom.String() }

// Union accepts values convertible to any one of a fixed set of atom types.
type Union struct{ Atoms []variant.AtomType }

func (u Union) matches(t variant.ValueType) bool {
	for _, a := range u.Atoms {
		if variant.IsConvertible(t.Atom, a) {
			return true
		}
	}
	return false
}

func (u Union) String() string {
	s := "{"
	for i, a := range u.Atoms {
		if i > 0 {
			s += ","
		}
		s += a.String()
	}
	return s + "}"
}

// FunctionArgument names one positional (or variadic) parameter slot.
type FunctionArgument struct {
	Name       string
	Type       ArgumentType
	IsConstant bool
}

// TypeMismatch lists the zero-based argument indices whose type didn't
// satisfy the corresponding FunctionArgument.
type TypeMismatch struct{ Indices []int }

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("argument type mismatch at position(s) %v", e.Indices)
}

// InvalidNumberOfArguments is raised when a call's argument count doesn't
// satisfy the signature's arity (§4.6 binding and §7 family 2).
type InvalidNumberOfArguments struct {
	Given, MinRequired int
}

func (e *InvalidNumberOfArguments) Error() string {
	return fmt.Sprintf("expected at least %d argument(s), got %d", e.MinRequired, e.Given)
}

// Signature describes a callable's arity and argument/return types (§4.6).
type Signature struct {
	Positional []FunctionArgument
	Variadic   *FunctionArgument
	Returns    variant.ValueType
}

// Validate checks argTypes against the signature's arity and per-position
// types, returning nil if argTypes is an acceptable call.
func (s Signature) Validate(argTypes []variant.ValueType) error {
	min := len(s.Positional)
	if s.Variadic == nil {
		if len(argTypes) != min {
			return &InvalidNumberOfArguments{Given: len(argTypes), MinRequired: min}
		}
	} else if len(argTypes) < min+1 {
		return &InvalidNumberOfArguments{Given: len(argTypes), MinRequired: min + 1}
	}

	var mismatched []int
	for i, t := range argTypes {
		var arg FunctionArgument
		if i < len(s.Positional) {
			arg = s.Positional[i]
		} else {
			arg = *s.Variadic
		}
		if !arg.Type.matches(t) {
			mismatched = append(mismatched, i)
		}
	}
	if len(mismatched) > 0 {
		return &TypeMismatch{Indices: mismatched}
	}
	return nil
}
