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
	"math"

	"github.com/dyncore/dyncore/variant"
)

// DivisionByZero is the ValueError-family failure the boundary behaviours
// require division operators to raise, propagated through FunctionError.
type DivisionByZero struct{}

func (e *DivisionByZero) Error() string { return "division by zero" }

func numericArg(name string) FunctionArgument {
	return FunctionArgument{Name: name, Type: Union{Atoms: []variant.AtomType{variant.Int, variant.Double}}}
}

type binaryNumeric struct {
	name string
	numericPromotion
	apply func(a, b float64) (float64, error)
}

func (f binaryNumeric) Name() string { return f.name }
func (f binaryNumeric) Signature() Signature {
	return Signature{
		Positional: []FunctionArgument{numericArg("a"), numericArg("b")},
		Returns:    variant.Atom(variant.Double),
	}
}
func (f binaryNumeric) Apply(args []variant.Variant) (variant.Variant, error) {
	a, err := numeric(args[0], 0)
	if err != nil {
		return variant.Variant{}, err
	}
	b, err := numeric(args[1], 1)
	if err != nil {
		return variant.Variant{}, err
	}
	r, err := f.apply(a, b)
	if err != nil {
		return variant.Variant{}, err
	}
	return numericResult(bothInt(args[0], args[1]), r), nil
}

type unaryNumeric struct {
	name string
	numericPromotion
	apply func(a float64) float64
}

func (f unaryNumeric) Name() string { return f.name }
func (f unaryNumeric) Signature() Signature {
	return Signature{Positional: []FunctionArgument{numericArg("a")}, Returns: variant.Atom(variant.Double)}
}
func (f unaryNumeric) Apply(args []variant.Variant) (variant.Variant, error) {
	a, err := numeric(args[0], 0)
	if err != nil {
		return variant.Variant{}, err
	}
	return numericResult(args[0].Type().Atom == variant.Int, f.apply(a)), nil
}

// Add, Sub, Mul, Div, Mod and Neg are the reserved operator functions
// §4.6's binder maps +, -, *, /, %, unary - to (__add__ etc.). Division and
// modulo raise DivisionByZero as an InvalidArgument, which Bound.Evaluate
// wraps into FunctionError, satisfying the §8 boundary behaviour.
func Add() Function {
	return binaryNumeric{name: "__add__", apply: func(a, b float64) (float64, error) { return a + b, nil }}
}
func Sub() Function {
	return binaryNumeric{name: "__sub__", apply: func(a, b float64) (float64, error) { return a - b, nil }}
}
func Mul() Function {
	return binaryNumeric{name: "__mul__", apply: func(a, b float64) (float64, error) { return a * b, nil }}
}
func Div() Function {
	return binaryNumeric{name: "__div__", apply: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, &InvalidArgument{Index: 1, Err: &DivisionByZero{}}
		}
		return a / b, nil
	}}
}
func Mod() Function {
	return binaryNumeric{name: "__mod__", apply: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, &InvalidArgument{Index: 1, Err: &DivisionByZero{}}
		}
		return math.Mod(a, b), nil
	}}
}
func Neg() Function {
	return unaryNumeric{name: "__neg__", apply: func(a float64) float64 { return -a }}
}

// comparison implements the four numeric-ordering operators, binding to
// __lt__/__le__/__gt__/__ge__ in the same reserved-name scheme as the
// arithmetic operators, filling in what §4.6's binding section leaves
// implicit for the comparison production.
type comparison struct {
	name string
	fixedReturn
	cmp func(a, b float64) bool
}

func (f comparison) Name() string { return f.name }
func (f comparison) Signature() Signature {
	return Signature{Positional: []FunctionArgument{numericArg("a"), numericArg("b")}, Returns: variant.Atom(variant.Bool)}
}
func (f comparison) Apply(args []variant.Variant) (variant.Variant, error) {
	a, err := numeric(args[0], 0)
	if err != nil {
		return variant.Variant{}, err
	}
	b, err := numeric(args[1], 1)
	if err != nil {
		return variant.Variant{}, err
	}
	return variant.FromBool(f.cmp(a, b)), nil
}

func Lt() Function {
	return comparison{name: "__lt__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, cmp: func(a, b float64) bool { return a < b }}
}
func Le() Function {
	return comparison{name: "__le__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, cmp: func(a, b float64) bool { return a <= b }}
}
func Gt() Function {
	return comparison{name: "__gt__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, cmp: func(a, b float64) bool { return a > b }}
}
func Ge() Function {
	return comparison{name: "__ge__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, cmp: func(a, b float64) bool { return a >= b }}
}

// equality implements == and != over any two variants of the same shape,
// binding to __eq__/__ne__.
type equality struct {
	name string
	fixedReturn
	negate bool
}

func (f equality) Name() string { return f.name }
func (f equality) Signature() Signature {
	return Signature{Positional: []FunctionArgument{{Name: "a", Type: Any{}}, {Name: "b", Type: Any{}}}, Returns: variant.Atom(variant.Bool)}
}
func (f equality) Apply(args []variant.Variant) (variant.Variant, error) {
	eq := args[0].Equal(args[1])
	if f.negate {
		eq = !eq
	}
	return variant.FromBool(eq), nil
}

func Eq() Function {
	return equality{name: "__eq__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}}
}
func Ne() Function {
	return equality{name: "__ne__", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, negate: true}
}

// Pow implements the "^" operator, reserved as __pow__ alongside the six
// names §4.6 enumerates explicitly; the grammar defines "^" as a binary
// operator on the same footing as the arithmetic operators, so it needs a
// catalog entry just as they do.
func Pow() Function {
	return binaryNumeric{name: "__pow__", apply: func(a, b float64) (float64, error) { return math.Pow(a, b), nil }}
}

// Min and Max are variadic over numeric arguments, widening to Double
// unless every argument is Int (§2.1 supplemented catalog).
type minMax struct {
	name string
	pick func(a, b float64) float64
}

func (f minMax) Name() string { return f.name }
func (f minMax) Signature() Signature {
	v := numericArg("rest")
	return Signature{
		Positional: []FunctionArgument{numericArg("first")},
		Variadic:   &v,
		Returns:    variant.Atom(variant.Double),
	}
}
func (f minMax) ResultType(argTypes []variant.ValueType) variant.ValueType {
	return numericPromotion{}.ResultType(argTypes)
}
func (f minMax) Apply(args []variant.Variant) (variant.Variant, error) {
	best, err := numeric(args[0], 0)
	if err != nil {
		return variant.Variant{}, err
	}
	isInt := args[0].Type().Atom == variant.Int
	for i := 1; i < len(args); i++ {
		v, err := numeric(args[i], i)
		if err != nil {
			return variant.Variant{}, err
		}
		best = f.pick(best, v)
		isInt = isInt && args[i].Type().Atom == variant.Int
	}
	return numericResult(isInt, best), nil
}

func Min() Function {
	return minMax{name: "min", pick: func(a, b float64) float64 {
		if a < b {
			return a
		}
		return b
	}}
}
func Max() Function {
	return minMax{name: "max", pick: func(a, b float64) float64 {
		if a > b {
			return a
		}
		return b
	}}
}

func Abs() Function { return unaryNumeric{name: "abs", apply: math.Abs} }

type rounding struct {
	name string
	fixedReturn
	apply func(float64) float64
}

func (f rounding) Name() string { return f.name }
func (f rounding) Signature() Signature {
	return Signature{Positional: []FunctionArgument{numericArg("a")}, Returns: variant.Atom(variant.Int)}
}
func (f rounding) Apply(args []variant.Variant) (variant.Variant, error) {
	a, err := numeric(args[0], 0)
	if err != nil {
		return variant.Variant{}, err
	}
	return variant.FromInt(int64(f.apply(a))), nil
}

func Floor() Function {
	return rounding{name: "floor", fixedReturn: fixedReturn{t: variant.Atom(variant.Int)}, apply: math.Floor}
}
func Ceil() Function {
	return rounding{name: "ceil", fixedReturn: fixedReturn{t: variant.Atom(variant.Int)}, apply: math.Ceil}
}
func Round() Function {
	return rounding{name: "round", fixedReturn: fixedReturn{t: variant.Atom(variant.Int)}, apply: math.Round}
}

// boolNary implements and/or/not over Bool arguments, returning Bool.
type boolNary struct {
	name     string
	variadic bool
	fixedReturn
	reduce func(vals []bool) bool
}

func (f boolNary) Name() string { return f.name }
func (f boolNary) Signature() Signature {
	arg := FunctionArgument{Name: "a", Type: Concrete{Atom: variant.Bool}}
	if f.variadic {
		rest := FunctionArgument{Name: "rest", Type: Concrete{Atom: variant.Bool}}
		return Signature{Positional: []FunctionArgument{arg}, Variadic: &rest, Returns: variant.Atom(variant.Bool)}
	}
	return Signature{Positional: []FunctionArgument{arg}, Returns: variant.Atom(variant.Bool)}
}
func (f boolNary) Apply(args []variant.Variant) (variant.Variant, error) {
	vals := make([]bool, len(args))
	for i, a := range args {
		b, err := a.BoolValue()
		if err != nil {
			return variant.Variant{}, &InvalidArgument{Index: i, Err: err}
		}
		vals[i] = b
	}
	return variant.FromBool(f.reduce(vals)), nil
}

func And() Function {
	return boolNary{name: "and", variadic: true, fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, reduce: func(vals []bool) bool {
		for _, v := range vals {
			if !v {
				return false
			}
		}
		return true
	}}
}
func Or() Function {
	return boolNary{name: "or", variadic: true, fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, reduce: func(vals []bool) bool {
		for _, v := range vals {
			if v {
				return true
			}
		}
		return false
	}}
}
func Not() Function {
	return boolNary{name: "not", fixedReturn: fixedReturn{t: variant.Atom(variant.Bool)}, reduce: func(vals []bool) bool { return !vals[0] }}
}

// If evaluates a Bool condition and returns whichever of then/otherwise it
// selects; ResultType reports the actual, call-site-dependent result (the
// "then" branch's type). Signature.Returns has no way to express "depends
// on argument 1" (ValueType is always concrete), so it carries a nominal
// Bool placeholder that the binder never consults for this function.
type ifFn struct{}

func (ifFn) Name() string { return "if" }
func (ifFn) Signature() Signature {
	return Signature{
		Positional: []FunctionArgument{
			{Name: "condition", Type: Concrete{Atom: variant.Bool}},
			{Name: "then", Type: Any{}},
			{Name: "otherwise", Type: Any{}},
		},
		Returns: variant.Atom(variant.Bool),
	}
}
func (ifFn) ResultType(argTypes []variant.ValueType) variant.ValueType {
	if len(argTypes) >= 2 {
		return argTypes[1]
	}
	return variant.Atom(variant.Bool)
}
func (ifFn) Apply(args []variant.Variant) (variant.Variant, error) {
	cond, err := args[0].BoolValue()
	if err != nil {
		return variant.Variant{}, &InvalidArgument{Index: 0, Err: err}
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

func If() Function { return ifFn{} }

// Concat joins a variadic list of strings.
type concatFn struct{ fixedReturn }

func (concatFn) Name() string { return "concat" }
func (f concatFn) Signature() Signature {
	rest := FunctionArgument{Name: "rest", Type: Concrete{Atom: variant.String}}
	return Signature{Variadic: &rest, Returns: variant.Atom(variant.String)}
}
func (concatFn) Apply(args []variant.Variant) (variant.Variant, error) {
	out := ""
	for i, a := range args {
		s, err := a.StringValue()
		if err != nil {
			return variant.Variant{}, &InvalidArgument{Index: i, Err: err}
		}
		out += s
	}
	return variant.FromString(out), nil
}

func Concat() Function { return concatFn{fixedReturn{t: variant.Atom(variant.String)}} }

// Len returns the length of a string or array-typed variant.
type lenFn struct{ fixedReturn }

func (lenFn) Name() string { return "len" }
func (lenFn) Signature() Signature {
	return Signature{Positional: []FunctionArgument{{Name: "a", Type: Any{}}}, Returns: variant.Atom(variant.Int)}
}
func (lenFn) Apply(args []variant.Variant) (variant.Variant, error) {
	v := args[0]
	if !v.IsArray() {
		s, err := v.StringValue()
		if err != nil {
			return variant.Variant{}, &InvalidArgument{Index: 0, Err: fmt.Errorf("len: not a string or array: %w", err)}
		}
		return variant.FromInt(int64(len(s))), nil
	}
	switch v.Type().Atom {
	case variant.Int:
		arr, _ := v.IntArrayValue()
		return variant.FromInt(int64(len(arr))), nil
	case variant.Double:
		arr, _ := v.DoubleArrayValue()
		return variant.FromInt(int64(len(arr))), nil
	case variant.Bool:
		arr, _ := v.BoolArrayValue()
		return variant.FromInt(int64(len(arr))), nil
	case variant.String:
		arr, _ := v.StringArrayValue()
		return variant.FromInt(int64(len(arr))), nil
	case variant.PointType:
		arr, _ := v.PointArrayValue()
		return variant.FromInt(int64(len(arr))), nil
	}
	return variant.Variant{}, &InvalidArgument{Index: 0, Err: fmt.Errorf("len: unsupported type %s", v.Type())}
}

func Len() Function { return lenFn{fixedReturn{t: variant.Atom(variant.Int)}} }

// Catalog returns the full set of builtin functions: the six reserved
// operator names the binder maps +,-,*,/,%,unary- to, __pow__ and the
// comparison operators (__lt__, __le__, __gt__, __ge__, __eq__, __ne__),
// plus the additive
// functions of §2.1 (min, max, abs, floor, ceil, round, if, and, or, not,
// concat, len).
func Catalog() map[string]Function {
	fns := []Function{
		Add(), Sub(), Mul(), Div(), Mod(), Neg(), Pow(),
		Lt(), Le(), Gt(), Ge(), Eq(), Ne(),
		Min(), Max(), Abs(), Floor(), Ceil(), Round(), If(), And(), Or(), Not(), Concat(), Len(),
	}
	out := make(map[string]Function, len(fns))
	for _, f := range fns {
		out[f.Name()] = f
	}
	return out
}
