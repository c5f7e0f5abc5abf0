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

// Package variant implements the tagged atomic/array value carried by every
// object attribute: a closed union of int, double, bool, string and point
// atoms, plus homogeneous arrays of each.
package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// AtomType enumerates the atomic value kinds. Only int and double are
// "numeric" for the purposes of point coercion and the conversion matrix.
type AtomType uint8

const (
	Int AtomType = iota
	Double
	Bool
	String
	PointType
)

func (t AtomType) String() string {
	switch t {
	case Int:
		return "int"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case String:
		return "string"
	case PointType:
		return "point"
	default:
		return fmt.Sprintf("atom(%d)", uint8(t))
	}
}

func (t AtomType) numeric() bool { return t == Int || t == Double }

// ValueType is atom(AtomType) | array(AtomType).
type ValueType struct {
	Atom    AtomType
	IsArray bool
}

func Atom(t AtomType) ValueType  { return ValueType{Atom: t} }
func Array(t AtomType) ValueType { return ValueType{Atom: t, IsArray: true} }

func (v ValueType) String() string {
	if v.IsArray {
		return v.Atom.String() + "[]"
	}
	return v.Atom.String()
}

// Point is a pair of doubles.
type Point struct {
	X, Y float64
}

func (p Point) String() string { return fmt.Sprintf("[%v,%v]", p.X, p.Y) }

// conversionMatrix implements the total function isConvertible(from, to)
// from §3.2. Indexed [from][to]; diagonal and the cases in the spec table
// are true, everything else false.
var conversionMatrix = map[AtomType]map[AtomType]bool{
	Bool:      {Bool: true, String: true},
	Int:       {Int: true, Double: true, String: true},
	Double:    {Int: true, Double: true, String: true},
	String:    {Bool: true, Int: true, Double: true, String: true},
	PointType: {PointType: true},
}

// IsConvertible reports whether an atom value of type from can convert to
// type to, per the §3.2 conversion matrix.
func IsConvertible(from, to AtomType) bool {
	row, ok := conversionMatrix[from]
	if !ok {
		return false
	}
	return row[to]
}

// IsValueTypeConvertible extends IsConvertible to arrays: both sides must
// agree on arrayness and the element atom types must be convertible. The
// spec's matrix is defined over atoms; arrays convert elementwise or not
// at all, never across arrayness.
func IsValueTypeConvertible(from, to ValueType) bool {
	if from.IsArray != to.IsArray {
		return false
	}
	return IsConvertible(from.Atom, to.Atom)
}

// Variant is the tagged atomic/array value.
type Variant struct {
	atom    AtomType
	isArray bool

	i  int64
	d  float64
	b  bool
	s  string
	p  Point
	ai []int64
	ad []float64
	ab []bool
	as []string
	ap []Point
}

func FromInt(v int64) Variant      { return Variant{atom: Int, i: v} }
func FromDouble(v float64) Variant { return Variant{atom: Double, d: v} }
func FromBool(v bool) Variant      { return Variant{atom: Bool, b: v} }
func FromString(v string) Variant  { return Variant{atom: String, s: v} }
func FromPoint(x, y float64) Variant {
	return Variant{atom: PointType, p: Point{X: x, Y: y}}
}

func FromIntArray(v []int64) Variant {
	return Variant{atom: Int, isArray: true, ai: append([]int64(nil), v...)}
}
func FromDoubleArray(v []float64) Variant {
	return Variant{atom: Double, isArray: true, ad: append([]float64(nil), v...)}
}
func FromBoolArray(v []bool) Variant {
	return Variant{atom: Bool, isArray: true, ab: append([]bool(nil), v...)}
}
func FromStringArray(v []string) Variant {
	return Variant{atom: String, isArray: true, as: append([]string(nil), v...)}
}
func FromPointArray(v []Point) Variant {
	return Variant{atom: PointType, isArray: true, ap: append([]Point(nil), v...)}
}

// Type returns the variant's ValueType.
func (v Variant) Type() ValueType { return ValueType{Atom: v.atom, IsArray: v.isArray} }

// IsArray reports whether the variant holds an array rather than an atom.
func (v Variant) IsArray() bool { return v.isArray }

// NotConvertible is a user/data error: no conversion path exists between
// the two value types at all (§7 ValueError.NotConvertible).
type NotConvertible struct {
	From, To ValueType
}

func (e *NotConvertible) Error() string {
	return fmt.Sprintf("variant: cannot convert %s to %s", e.From, e.To)
}

// ConversionFailed is a user/data error: a conversion path exists in
// principle but this particular value failed to convert (§7
// ValueError.ConversionFailed).
type ConversionFailed struct {
	From, To ValueType
	Reason   string
}

func (e *ConversionFailed) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("variant: conversion from %s to %s failed", e.From, e.To)
	}
	return fmt.Sprintf("variant: conversion from %s to %s failed: %s", e.From, e.To, e.Reason)
}

// InvalidBooleanValue is a user/data error: a string other than "true"/
// "false" was coerced to bool (§7 ValueError.InvalidBooleanValue).
type InvalidBooleanValue struct {
	Str string
}

func (e *InvalidBooleanValue) Error() string {
	return fmt.Sprintf("variant: %q is not a valid boolean value", e.Str)
}

func notConvertible(from, to AtomType) error {
	return &NotConvertible{From: Atom(from), To: Atom(to)}
}

func conversionFailed(from, to AtomType, reason string) error {
	return &ConversionFailed{From: Atom(from), To: Atom(to), Reason: reason}
}

// IntValue coerces the variant to int64 per the §3.2 runtime coercion rules.
func (v Variant) IntValue() (int64, error) {
	if v.isArray {
		return 0, notConvertible(v.atom, Int)
	}
	switch v.atom {
	case Int:
		return v.i, nil
	case Double:
		return int64(v.d), nil
	case Bool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, conversionFailed(String, Int, err.Error())
		}
		return n, nil
	default:
		return 0, notConvertible(v.atom, Int)
	}
}

// DoubleValue coerces the variant to float64.
func (v Variant) DoubleValue() (float64, error) {
	if v.isArray {
		return 0, notConvertible(v.atom, Double)
	}
	switch v.atom {
	case Int:
		return float64(v.i), nil
	case Double:
		return v.d, nil
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, conversionFailed(String, Double, err.Error())
		}
		return f, nil
	default:
		return 0, notConvertible(v.atom, Double)
	}
}

// BoolValue coerces the variant to bool. Only the strings "true"/"false"
// coerce; any other string is InvalidBooleanValue.
func (v Variant) BoolValue() (bool, error) {
	if v.isArray {
		return false, notConvertible(v.atom, Bool)
	}
	switch v.atom {
	case Bool:
		return v.b, nil
	case String:
		switch v.s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, &InvalidBooleanValue{Str: v.s}
		}
	default:
		return false, notConvertible(v.atom, Bool)
	}
}

// StringValue renders the variant using the obvious decimal rules; every
// atom type has a string form.
func (v Variant) StringValue() (string, error) {
	if v.isArray {
		return "", notConvertible(v.atom, String)
	}
	switch v.atom {
	case Int:
		return strconv.FormatInt(v.i, 10), nil
	case Double:
		return strconv.FormatFloat(v.d, 'g', -1, 64), nil
	case Bool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case String:
		return v.s, nil
	case PointType:
		return v.p.String(), nil
	default:
		return "", notConvertible(v.atom, String)
	}
}

// PointValue coerces the variant to a Point. Only point atoms and
// two-element numeric arrays coerce; everything else is NotConvertible.
func (v Variant) PointValue() (Point, error) {
	if !v.isArray {
		if v.atom == PointType {
			return v.p, nil
		}
		return Point{}, notConvertible(v.atom, PointType)
	}
	switch v.atom {
	case Int:
		if len(v.ai) != 2 {
			return Point{}, conversionFailed(Array(Int).Atom, PointType, "array length must be 2")
		}
		return Point{X: float64(v.ai[0]), Y: float64(v.ai[1])}, nil
	case Double:
		if len(v.ad) != 2 {
			return Point{}, conversionFailed(Array(Double).Atom, PointType, "array length must be 2")
		}
		return Point{X: v.ad[0], Y: v.ad[1]}, nil
	default:
		return Point{}, notConvertible(v.atom, PointType)
	}
}

// IntArrayValue returns the raw int array, if that's what this variant is.
func (v Variant) IntArrayValue() ([]int64, error) {
	if !v.isArray || v.atom != Int {
		return nil, notConvertible(v.Type().Atom, Int)
	}
	return append([]int64(nil), v.ai...), nil
}

// DoubleArrayValue returns the raw double array, if that's what this
// variant is.
func (v Variant) DoubleArrayValue() ([]float64, error) {
	if !v.isArray || v.atom != Double {
		return nil, notConvertible(v.Type().Atom, Double)
	}
	return append([]float64(nil), v.ad...), nil
}

// BoolArrayValue returns the raw bool array, if that's what this variant is.
func (v Variant) BoolArrayValue() ([]bool, error) {
	if !v.isArray || v.atom != Bool {
		return nil, notConvertible(v.Type().Atom, Bool)
	}
	return append([]bool(nil), v.ab...), nil
}

// StringArrayValue returns the raw string array, if that's what this
// variant is.
func (v Variant) StringArrayValue() ([]string, error) {
	if !v.isArray || v.atom != String {
		return nil, notConvertible(v.Type().Atom, String)
	}
	return append([]string(nil), v.as...), nil
}

// PointArrayValue returns the raw point array, if that's what this
// variant is.
func (v Variant) PointArrayValue() ([]Point, error) {
	if !v.isArray || v.atom != PointType {
		return nil, notConvertible(v.Type().Atom, PointType)
	}
	return append([]Point(nil), v.ap...), nil
}

// Equal compares two variants by value, not identity.
func (v Variant) Equal(o Variant) bool {
	if v.atom != o.atom || v.isArray != o.isArray {
		return false
	}
	if !v.isArray {
		switch v.atom {
		case Int:
			return v.i == o.i
		case Double:
			return v.d == o.d
		case Bool:
			return v.b == o.b
		case String:
			return v.s == o.s
		case PointType:
			return v.p == o.p
		}
		return false
	}
	switch v.atom {
	case Int:
		return int64SliceEqual(v.ai, o.ai)
	case Double:
		return float64SliceEqual(v.ad, o.ad)
	case Bool:
		return boolSliceEqual(v.ab, o.ab)
	case String:
		return stringSliceEqual(v.as, o.as)
	case PointType:
		return pointSliceEqual(v.ap, o.ap)
	}
	return false
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func float64SliceEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func boolSliceEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func pointSliceEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
