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
	"github.com/dyncore/dyncore/fn"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/variant"
)

// Bound is a bound expression node: its variables and functions are
// resolved objects, and its result Type is known (§4.6 Binding).
type Bound interface {
	Type() variant.ValueType
	Evaluate(values map[VariableReference]variant.Variant) (variant.Variant, error)
}

type BoundValue struct{ V variant.Variant }

func (b BoundValue) Type() variant.ValueType { return b.V.Type() }
func (b BoundValue) Evaluate(map[VariableReference]variant.Variant) (variant.Variant, error) {
	return b.V, nil
}

type BoundVariable struct {
	Ref VariableReference
	T   variant.ValueType
}

func (b BoundVariable) Type() variant.ValueType { return b.T }
func (b BoundVariable) Evaluate(values map[VariableReference]variant.Variant) (variant.Variant, error) {
	v, ok := values[b.Ref]
	if !ok {
		model.Panic(model.Faultf("expr: no value supplied for variable reference %s", b.Ref))
	}
	return v, nil
}

type BoundUnary struct {
	Fn      fn.Function
	Operand Bound
	T       variant.ValueType
}

func (b BoundUnary) Type() variant.ValueType { return b.T }
func (b BoundUnary) Evaluate(values map[VariableReference]variant.Variant) (variant.Variant, error) {
	v, err := b.Operand.Evaluate(values)
	if err != nil {
		return variant.Variant{}, err
	}
	return apply(b.Fn, []variant.Variant{v})
}

type BoundBinary struct {
	Fn          fn.Function
	Left, Right Bound
	T           variant.ValueType
}

func (b BoundBinary) Type() variant.ValueType { return b.T }
func (b BoundBinary) Evaluate(values map[VariableReference]variant.Variant) (variant.Variant, error) {
	l, err := b.Left.Evaluate(values)
	if err != nil {
		return variant.Variant{}, err
	}
	r, err := b.Right.Evaluate(values)
	if err != nil {
		return variant.Variant{}, err
	}
	return apply(b.Fn, []variant.Variant{l, r})
}

type BoundCall struct {
	Fn   fn.Function
	Args []Bound
	T    variant.ValueType
}

func (b BoundCall) Type() variant.ValueType { return b.T }
func (b BoundCall) Evaluate(values map[VariableReference]variant.Variant) (variant.Variant, error) {
	args := make([]variant.Variant, len(b.Args))
	for i, a := range b.Args {
		v, err := a.Evaluate(values)
		if err != nil {
			return variant.Variant{}, err
		}
		args[i] = v
	}
	return apply(b.Fn, args)
}

// apply calls f and wraps any failure into a FunctionError (§4.6
// Evaluation, §7 family 2: "Function bodies may fail... these propagate
// as FunctionError").
func apply(f fn.Function, args []variant.Variant) (variant.Variant, error) {
	v, err := f.Apply(args)
	if err != nil {
		return variant.Variant{}, &fn.FunctionError{FunctionName: f.Name(), Err: err}
	}
	return v, nil
}
