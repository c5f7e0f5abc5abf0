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

package fn

import (
	"fmt"

	"github.com/dyncore/dyncore/variant"
)

// InvalidArgument is one of the two ways a Function body may fail at call
// time (§4.6 evaluation, §7 family 2): the argument at Index failed a
// variant conversion the function needed to perform.
type InvalidArgument struct {
	Index int
	Err   error
}

func (e *InvalidArgument) Error() string {
	return fmt.Sprintf("argument %d: %v", e.Index, e.Err)
}
func (e *InvalidArgument) Unwrap() error { return e.Err }

// CallArityError is the call-time counterpart of InvalidNumberOfArguments,
// raised from inside Apply rather than from Signature.Validate.
type CallArityError struct{ Count int }

func (e *CallArityError) Error() string {
	return fmt.Sprintf("invalid number of arguments: %d", e.Count)
}

// FunctionError wraps any failure a Function's Apply returns, so evaluation
// call sites have one error type to match against regardless of cause.
type FunctionError struct {
	FunctionName string
	Err          error
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function %q: %v", e.FunctionName, e.Err)
}
func (e *FunctionError) Unwrap() error { return e.Err }

// Function is a callable the binder resolves names to and the evaluator
// applies (§4.6). ResultType computes the statically-known return type
// from the concrete argument types at a call site, supporting functions
// whose return type depends on argument types (e.g. the arithmetic
// operators return Int only when every argument is Int, Double otherwise);
// functions with a fixed return type just return Signature().Returns.
type Function interface {
	Name() string
	Signature() Signature
	ResultType(argTypes []variant.ValueType) variant.ValueType
	Apply(args []variant.Variant) (variant.Variant, error)
}

// fixedReturn is embedded by builtins whose return type never depends on
// argument types.
type fixedReturn struct{ t variant.ValueType }

func (f fixedReturn) ResultType([]variant.ValueType) variant.ValueType { return f.t }

// numericPromotion returns Int if every argType is Int, Double otherwise
// (used by the arithmetic operators and the additive min/max/abs/etc., all
// of which stay Int-typed only when every operand is Int).
type numericPromotion struct{}

func (numericPromotion) ResultType(argTypes []variant.ValueType) variant.ValueType {
	for _, t := range argTypes {
		if t.Atom != variant.Int {
			return variant.Atom(variant.Double)
		}
	}
	return variant.Atom(variant.Int)
}

func numeric(v variant.Variant, index int) (float64, error) {
	d, err := v.DoubleValue()
	if err != nil {
		return 0, &InvalidArgument{Index: index, Err: err}
	}
	return d, nil
}

func bothInt(a, b variant.Variant) bool {
	return a.Type().Atom == variant.Int && b.Type().Atom == variant.Int
}

func numericResult(isInt bool, d float64) variant.Variant {
	if isInt {
		return variant.FromInt(int64(d))
	}
	return variant.FromDouble(d)
}
