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

package record_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/record"
	"github.com/dyncore/dyncore/variant"
)

func flowType() model.ObjectType {
	return &model.StaticType{
		TypeName: "flow",
		Role:     model.Edge,
	}
}

// Scenario 6 of §8: build an edge object with attributes, encode, decode,
// and assert structural equality.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	n1 := ident.ObjectID(1)
	n2 := ident.ObjectID(2)
	typ := flowType()
	snap := model.New(ident.SnapshotID(10), ident.ObjectID(3), typ, model.EdgeStructure(n1, n2))
	snap.Attributes["name"] = variant.FromString("flow")
	snap.Attributes["rate"] = variant.FromDouble(0.5)
	snap.State = model.Frozen

	rec, err := record.Encode(snap)
	require.NoError(t, err)

	mm := model.NewStaticMetamodel(typ)
	decoded, err := record.Decode(rec, mm)
	require.NoError(t, err)

	require.Equal(t, snap.ObjectID, decoded.ObjectID)
	require.Equal(t, snap.SnapshotID, decoded.SnapshotID)
	require.Equal(t, snap.Structure, decoded.Structure)
	require.Equal(t, snap.Type.Name(), decoded.Type.Name())
	require.Equal(t, len(snap.Attributes), len(decoded.Attributes))
	for k, v := range snap.Attributes {
		dv, ok := decoded.Attributes[k]
		require.True(t, ok)
		require.True(t, v.Equal(dv))
	}
}

func TestEncodeDecodeThroughJSON(t *testing.T) {
	n1 := ident.ObjectID(1)
	n2 := ident.ObjectID(2)
	typ := flowType()
	snap := model.New(ident.SnapshotID(10), ident.ObjectID(3), typ, model.EdgeStructure(n1, n2))
	snap.Attributes["name"] = variant.FromString("flow")
	snap.Attributes["rate"] = variant.FromDouble(0.5)
	parent := ident.ObjectID(42)
	snap.Parent = &parent
	snap.Children = []ident.ObjectID{7, 8}
	snap.State = model.Frozen

	rec, err := record.Encode(snap)
	require.NoError(t, err)

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var roundTripped record.Record
	require.NoError(t, json.Unmarshal(raw, &roundTripped))

	mm := model.NewStaticMetamodel(typ)
	decoded, err := record.Decode(&roundTripped, mm)
	require.NoError(t, err)

	if diff := cmp.Diff(snap.ObjectID, decoded.ObjectID); diff != "" {
		t.Fatalf("object_id mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, snap.SnapshotID, decoded.SnapshotID)
	require.Equal(t, snap.Structure, decoded.Structure)
	require.Equal(t, *snap.Parent, *decoded.Parent)
	require.ElementsMatch(t, snap.Children, decoded.Children)
	for k, v := range snap.Attributes {
		dv, ok := decoded.Attributes[k]
		require.True(t, ok)
		require.True(t, v.Equal(dv))
	}
}

func TestDecodeUnknownObjectType(t *testing.T) {
	rec := record.New()
	rec.Set(record.KeyObjectID, uint64(1))
	rec.Set(record.KeySnapshotID, uint64(1))
	rec.Set(record.KeyType, "does-not-exist")
	rec.Set(record.KeyStructure, "node")

	mm := model.NewStaticMetamodel()
	_, err := record.Decode(rec, mm)
	require.Error(t, err)
	var unknown *record.UnknownObjectType
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "does-not-exist", unknown.Name)
}

func TestDecodeInvalidStructuralType(t *testing.T) {
	typ := &model.StaticType{TypeName: "node-thing", Role: model.Node}
	rec := record.New()
	rec.Set(record.KeyObjectID, uint64(1))
	rec.Set(record.KeySnapshotID, uint64(1))
	rec.Set(record.KeyType, typ.Name())
	rec.Set(record.KeyStructure, "edge")
	rec.Set(record.KeyOrigin, uint64(2))
	rec.Set(record.KeyTarget, uint64(3))

	mm := model.NewStaticMetamodel(typ)
	_, err := record.Decode(rec, mm)
	require.Error(t, err)
	var invalid *record.InvalidStructuralType
	require.ErrorAs(t, err, &invalid)
}

func TestCacheEncodeFrozenRequiresFrozen(t *testing.T) {
	typ := &model.StaticType{TypeName: "node-thing", Role: model.Node}
	snap := model.New(ident.SnapshotID(1), ident.ObjectID(1), typ, model.NodeStructure())

	cache, err := record.NewCache(8)
	require.NoError(t, err)

	_, err = cache.EncodeFrozen(snap)
	require.Error(t, err)

	snap.State = model.Frozen
	b1, err := cache.EncodeFrozen(snap)
	require.NoError(t, err)
	b2, err := cache.EncodeFrozen(snap)
	require.NoError(t, err)
	require.Equal(t, b1, b2)
	require.Equal(t, 1, cache.Len())
}
