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

package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dyncore/dyncore/variant"
)

func TestCoercions(t *testing.T) {
	v, err := variant.FromString("10").IntValue()
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)

	d, err := variant.FromString("10").DoubleValue()
	require.NoError(t, err)
	assert.Equal(t, 10.0, d)

	_, err = variant.FromString("1.5").IntValue()
	require.Error(t, err)
	var cf *variant.ConversionFailed
	require.ErrorAs(t, err, &cf)
	assert.Equal(t, variant.Atom(variant.String), cf.From)
	assert.Equal(t, variant.Atom(variant.Int), cf.To)

	p, err := variant.FromIntArray([]int64{1, 2}).PointValue()
	require.NoError(t, err)
	assert.Equal(t, variant.Point{X: 1, Y: 2}, p)

	_, err = variant.FromInt(10).PointValue()
	require.Error(t, err)
	var nc *variant.NotConvertible
	require.ErrorAs(t, err, &nc)
}

func TestBoolStringCoercion(t *testing.T) {
	b, err := variant.FromString("true").BoolValue()
	require.NoError(t, err)
	assert.True(t, b)

	b, err = variant.FromString("false").BoolValue()
	require.NoError(t, err)
	assert.False(t, b)

	_, err = variant.FromString("yes").BoolValue()
	require.Error(t, err)
	var ib *variant.InvalidBooleanValue
	require.ErrorAs(t, err, &ib)
}

func TestIntDoubleRoundTrip(t *testing.T) {
	d, err := variant.FromInt(3).DoubleValue()
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	i, err := variant.FromDouble(3.9).IntValue()
	require.NoError(t, err)
	assert.Equal(t, int64(3), i, "int<->double round via truncation")
}

func TestIsConvertibleMatrix(t *testing.T) {
	matrix := map[variant.AtomType]map[variant.AtomType]bool{
		variant.Bool:      {variant.Bool: true, variant.Int: false, variant.Double: false, variant.String: true, variant.PointType: false},
		variant.Int:       {variant.Bool: false, variant.Int: true, variant.Double: true, variant.String: true, variant.PointType: false},
		variant.Double:    {variant.Bool: false, variant.Int: true, variant.Double: true, variant.String: true, variant.PointType: false},
		variant.String:    {variant.Bool: true, variant.Int: true, variant.Double: true, variant.String: true, variant.PointType: false},
		variant.PointType: {variant.Bool: false, variant.Int: false, variant.Double: false, variant.String: false, variant.PointType: true},
	}
	for from, row := range matrix {
		for to, want := range row {
			got := variant.IsConvertible(from, to)
			assert.Equalf(t, want, got, "IsConvertible(%v, %v)", from, to)
		}
	}
}

// TestStringValueRoundTripProperty checks §8's round-trip law:
// Variant(x).stringValue().parse() == x, for int and bool values.
func TestStringValueRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.Int64().Draw(rt, "n")
		s, err := variant.FromInt(n).StringValue()
		require.NoError(rt, err)
		back, err := variant.FromString(s).IntValue()
		require.NoError(rt, err)
		assert.Equal(rt, n, back)
	})

	rapid.Check(t, func(rt *rapid.T) {
		b := rapid.Bool().Draw(rt, "b")
		s, err := variant.FromBool(b).StringValue()
		require.NoError(rt, err)
		back, err := variant.FromString(s).BoolValue()
		require.NoError(rt, err)
		assert.Equal(rt, b, back)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, variant.FromIntArray([]int64{1, 2, 3}).Equal(variant.FromIntArray([]int64{1, 2, 3})))
	assert.False(t, variant.FromIntArray([]int64{1, 2, 3}).Equal(variant.FromIntArray([]int64{1, 2})))
	assert.True(t, variant.FromPoint(1, 2).Equal(variant.FromPoint(1, 2)))
	assert.False(t, variant.FromInt(1).Equal(variant.FromDouble(1)))
}
