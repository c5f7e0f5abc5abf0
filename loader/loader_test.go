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

package loader_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/loader"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/record"
	"github.com/dyncore/dyncore/variant"
)

var stockType = &model.StaticType{TypeName: "Stock", Role: model.Node}

func stockRecord(objID, snapID uint64, value float64) *record.Record {
	rec := record.New()
	rec.Set(record.KeyObjectID, objID)
	rec.Set(record.KeySnapshotID, snapID)
	rec.Set(record.KeyType, stockType.Name())
	rec.Set(record.KeyStructure, "node")
	rec.Set("value", variant.FromDouble(value))
	return rec
}

func TestLoadBuildsFrameHistory(t *testing.T) {
	mm := model.NewStaticMetamodel(stockType)
	alloc := ident.NewAllocator(100)

	raw := loader.RawDesign{
		Snapshots: []loader.RawSnapshot{
			{SnapshotID: 1, Record: stockRecord(1, 1, 10)},
			{SnapshotID: 2, Record: stockRecord(1, 2, 20)},
		},
		Frames: []loader.RawFrame{
			{ID: 10, Snapshots: []ident.SnapshotID{1}},
			{ID: 11, Snapshots: []ident.SnapshotID{2}},
		},
		Current:    11,
		HasCurrent: true,
		Undo:       []ident.FrameID{10},
	}

	result, err := loader.Load(mm, alloc, raw)
	require.NoError(t, err)

	current, ok := result.Memory.CurrentFrame()
	require.True(t, ok)
	require.Equal(t, ident.FrameID(11), current.ID())

	snap, ok := current.Snapshot(1)
	require.True(t, ok)
	v, err := snap.Attributes["value"].DoubleValue()
	require.NoError(t, err)
	require.Equal(t, 20.0, v)

	require.NoError(t, result.Memory.Undo())
	current, ok = result.Memory.CurrentFrame()
	require.True(t, ok)
	require.Equal(t, ident.FrameID(10), current.ID())
}

func TestLoadUnknownObjectType(t *testing.T) {
	mm := model.NewStaticMetamodel()
	alloc := ident.NewAllocator(1)

	raw := loader.RawDesign{
		Snapshots: []loader.RawSnapshot{
			{SnapshotID: 1, Record: stockRecord(1, 1, 10)},
		},
		Frames: []loader.RawFrame{
			{ID: 10, Snapshots: []ident.SnapshotID{1}},
		},
		Current:    10,
		HasCurrent: true,
	}

	_, err := loader.Load(mm, alloc, raw)
	require.Error(t, err)
	var loadErr *loader.Error
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, loader.UnknownObjectType, loadErr.Kind)
}

func TestLoadUnknownFrameID(t *testing.T) {
	mm := model.NewStaticMetamodel(stockType)
	alloc := ident.NewAllocator(1)

	raw := loader.RawDesign{
		Snapshots: []loader.RawSnapshot{
			{SnapshotID: 1, Record: stockRecord(1, 1, 10)},
		},
		Frames: []loader.RawFrame{
			{ID: 10, Snapshots: []ident.SnapshotID{1}},
		},
		Current:    99,
		HasCurrent: true,
	}

	_, err := loader.Load(mm, alloc, raw)
	require.Error(t, err)
	var loadErr *loader.Error
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, loader.UnknownFrameID, loadErr.Kind)
}

func TestLoadMissingCurrentFrameWithHistory(t *testing.T) {
	mm := model.NewStaticMetamodel(stockType)
	alloc := ident.NewAllocator(1)

	raw := loader.RawDesign{
		Snapshots: []loader.RawSnapshot{
			{SnapshotID: 1, Record: stockRecord(1, 1, 10)},
		},
		Frames: []loader.RawFrame{
			{ID: 10, Snapshots: []ident.SnapshotID{1}},
		},
		Undo: []ident.FrameID{10},
	}

	_, err := loader.Load(mm, alloc, raw)
	require.Error(t, err)
	var loadErr *loader.Error
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, loader.MissingCurrentFrame, loadErr.Kind)
}
