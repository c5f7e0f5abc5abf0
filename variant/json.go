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

package variant

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var atomTags = map[AtomType]string{
	Int: "i", Double: "d", Bool: "b", String: "s", PointType: "p",
}

var arrayTags = map[AtomType]string{
	Int: "ai", Double: "ad", Bool: "ab", String: "as", PointType: "ap",
}

var tagToAtom = func() map[string]AtomType {
	m := make(map[string]AtomType, len(atomTags)+len(arrayTags))
	for t, tag := range atomTags {
		m[tag] = t
	}
	for t, tag := range arrayTags {
		m[tag] = t
	}
	return m
}()

// EncodeTaggedJSON renders the variant in the §6.2 "tagged" encoding:
// ["i", int], ["ad", [1.0, 2.0]], etc.
func (v Variant) EncodeTaggedJSON() ([]byte, error) {
	tag, payload, err := v.taggedParts()
	if err != nil {
		return nil, err
	}
	return json.Marshal([]interface{}{tag, payload})
}

func (v Variant) taggedParts() (string, interface{}, error) {
	if v.isArray {
		tag, ok := arrayTags[v.atom]
		if !ok {
			return "", nil, fmt.Errorf("variant: unknown array atom type %v", v.atom)
		}
		switch v.atom {
		case Int:
			return tag, v.ai, nil
		case Double:
			return tag, v.ad, nil
		case Bool:
			return tag, v.ab, nil
		case String:
			return tag, v.as, nil
		case PointType:
			pts := make([][2]float64, len(v.ap))
			for i, p := range v.ap {
				pts[i] = [2]float64{p.X, p.Y}
			}
			return tag, pts, nil
		}
	}
	tag, ok := atomTags[v.atom]
	if !ok {
		return "", nil, fmt.Errorf("variant: unknown atom type %v", v.atom)
	}
	switch v.atom {
	case Int:
		return tag, v.i, nil
	case Double:
		return tag, v.d, nil
	case Bool:
		return tag, v.b, nil
	case String:
		return tag, v.s, nil
	case PointType:
		return tag, [2]float64{v.p.X, v.p.Y}, nil
	}
	return "", nil, fmt.Errorf("variant: unknown atom type %v", v.atom)
}

// EncodeCoalescedJSON renders the variant in the §6.2 "coalesced" encoding:
// bare ints/doubles/bools/strings, and 2-element numeric arrays as points.
func (v Variant) EncodeCoalescedJSON() ([]byte, error) {
	if !v.isArray {
		switch v.atom {
		case Int:
			return json.Marshal(v.i)
		case Double:
			return json.Marshal(v.d)
		case Bool:
			return json.Marshal(v.b)
		case String:
			return json.Marshal(v.s)
		case PointType:
			return json.Marshal([2]float64{v.p.X, v.p.Y})
		}
	}
	switch v.atom {
	case Int:
		return json.Marshal(v.ai)
	case Double:
		return json.Marshal(v.ad)
	case Bool:
		return json.Marshal(v.ab)
	case String:
		return json.Marshal(v.as)
	case PointType:
		pts := make([][2]float64, len(v.ap))
		for i, p := range v.ap {
			pts[i] = [2]float64{p.X, p.Y}
		}
		return json.Marshal(pts)
	}
	return nil, fmt.Errorf("variant: unknown value type %v", v.Type())
}

// DecodeJSON decodes a variant from either §6.2 encoding. Tagged values are
// a 2-element JSON array whose first element is one of the known tag
// strings; anything else is decoded by inference (coalesced form).
func DecodeJSON(raw []byte) (Variant, error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(raw, &probe); err == nil && len(probe) == 2 {
		var tag string
		if err := json.Unmarshal(probe[0], &tag); err == nil {
			if _, known := tagToAtom[tag]; known {
				return decodeTagged(tag, probe[1])
			}
		}
	}
	return decodeCoalesced(raw)
}

func decodeTagged(tag string, payload json.RawMessage) (Variant, error) {
	atom := tagToAtom[tag]
	isArray := len(tag) > 1 && tag[0] == 'a'
	if !isArray {
		switch atom {
		case Int:
			var n int64
			if err := json.Unmarshal(payload, &n); err != nil {
				return Variant{}, err
			}
			return FromInt(n), nil
		case Double:
			var f float64
			if err := json.Unmarshal(payload, &f); err != nil {
				return Variant{}, err
			}
			return FromDouble(f), nil
		case Bool:
			var b bool
			if err := json.Unmarshal(payload, &b); err != nil {
				return Variant{}, err
			}
			return FromBool(b), nil
		case String:
			var s string
			if err := json.Unmarshal(payload, &s); err != nil {
				return Variant{}, err
			}
			return FromString(s), nil
		case PointType:
			p, err := decodePointPayload(payload)
			if err != nil {
				return Variant{}, err
			}
			return FromPoint(p.X, p.Y), nil
		}
		return Variant{}, fmt.Errorf("variant: unknown tag %q", tag)
	}
	switch atom {
	case Int:
		var a []int64
		if err := json.Unmarshal(payload, &a); err != nil {
			return Variant{}, err
		}
		return FromIntArray(a), nil
	case Double:
		var a []float64
		if err := json.Unmarshal(payload, &a); err != nil {
			return Variant{}, err
		}
		return FromDoubleArray(a), nil
	case Bool:
		var a []bool
		if err := json.Unmarshal(payload, &a); err != nil {
			return Variant{}, err
		}
		return FromBoolArray(a), nil
	case String:
		var a []string
		if err := json.Unmarshal(payload, &a); err != nil {
			return Variant{}, err
		}
		return FromStringArray(a), nil
	case PointType:
		var raw [][2]float64
		if err := json.Unmarshal(payload, &raw); err != nil {
			return Variant{}, err
		}
		pts := make([]Point, len(raw))
		for i, p := range raw {
			pts[i] = Point{X: p[0], Y: p[1]}
		}
		return FromPointArray(pts), nil
	}
	return Variant{}, fmt.Errorf("variant: unknown tag %q", tag)
}

// decodeCoalesced infers a value type from a bare JSON value per §6.2:
// ints and doubles are distinguished by whether a decimal point/exponent is
// present in the source text; a 2-element numeric array is a point; a
// homogeneous array of atoms is the corresponding array type; mixed
// numeric arrays widen to double[].
func decodeCoalesced(raw []byte) (Variant, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return Variant{}, fmt.Errorf("variant: empty JSON value")
	}
	switch trimmed[0] {
	case '"':
		s, err := decodePointOrString(trimmed)
		if err != nil {
			return Variant{}, err
		}
		return s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Variant{}, err
		}
		return FromBool(b), nil
	case '[':
		return decodeCoalescedArray(raw)
	default:
		return decodeCoalescedNumber(trimmed)
	}
}

func decodeCoalescedNumber(trimmed string) (Variant, error) {
	if strings.ContainsAny(trimmed, ".eE") {
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Variant{}, err
		}
		return FromDouble(f), nil
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		// Falls back to double for out-of-int64-range integer literals.
		f, ferr := strconv.ParseFloat(trimmed, 64)
		if ferr != nil {
			return Variant{}, err
		}
		return FromDouble(f), nil
	}
	return FromInt(n), nil
}

// decodePointOrString accepts the backward-compatible "[x,y]" string form
// for a point and rejects the deprecated "10x20" form, per §6.2.
func decodePointOrString(quoted string) (Variant, error) {
	var s string
	if err := json.Unmarshal([]byte(quoted), &s); err != nil {
		return Variant{}, err
	}
	if parts := strings.Split(s, "x"); len(parts) == 2 {
		_, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		_, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX == nil && errY == nil {
			return Variant{}, fmt.Errorf("variant: deprecated point form %q is rejected, use \"[x,y]\"", s)
		}
	}
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		p, err := parsePointString(s)
		if err == nil {
			return FromPoint(p.X, p.Y), nil
		}
	}
	return FromString(s), nil
}

func parsePointString(s string) (Point, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("variant: invalid point string %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func decodePointPayload(payload json.RawMessage) (Point, error) {
	var pair [2]float64
	if err := json.Unmarshal(payload, &pair); err != nil {
		return Point{}, err
	}
	return Point{X: pair[0], Y: pair[1]}, nil
}

func decodeCoalescedArray(raw []byte) (Variant, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return Variant{}, err
	}
	if len(items) == 2 {
		if p, ok := tryNumericPair(items); ok {
			return FromPoint(p.X, p.Y), nil
		}
	}
	if len(items) == 0 {
		return Variant{}, fmt.Errorf("variant: cannot infer type of empty array")
	}
	decoded := make([]Variant, len(items))
	for i, it := range items {
		v, err := decodeCoalesced(it)
		if err != nil {
			return Variant{}, err
		}
		decoded[i] = v
	}
	return widenHomogeneous(decoded)
}

func tryNumericPair(items []json.RawMessage) (Point, bool) {
	var x, y float64
	if err := json.Unmarshal(items[0], &x); err != nil {
		return Point{}, false
	}
	if err := json.Unmarshal(items[1], &y); err != nil {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// widenHomogeneous builds the array variant for a decoded slice of atom
// variants, widening a mix of int and double to double[].
func widenHomogeneous(items []Variant) (Variant, error) {
	allNumeric := true
	anyDouble := false
	for _, it := range items {
		if it.isArray || !it.atom.numeric() {
			allNumeric = false
			break
		}
		if it.atom == Double {
			anyDouble = true
		}
	}
	if allNumeric {
		if anyDouble {
			out := make([]float64, len(items))
			for i, it := range items {
				out[i], _ = it.DoubleValue()
			}
			return FromDoubleArray(out), nil
		}
		out := make([]int64, len(items))
		for i, it := range items {
			out[i], _ = it.IntValue()
		}
		return FromIntArray(out), nil
	}

	first := items[0]
	switch first.atom {
	case Bool:
		out := make([]bool, len(items))
		for i, it := range items {
			if it.isArray || it.atom != Bool {
				return Variant{}, fmt.Errorf("variant: array elements are not homogeneous")
			}
			out[i] = it.b
		}
		return FromBoolArray(out), nil
	case String:
		out := make([]string, len(items))
		for i, it := range items {
			if it.isArray || it.atom != String {
				return Variant{}, fmt.Errorf("variant: array elements are not homogeneous")
			}
			out[i] = it.s
		}
		return FromStringArray(out), nil
	default:
		return Variant{}, fmt.Errorf("variant: cannot infer a homogeneous array type")
	}
}
