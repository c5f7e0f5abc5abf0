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

package graphview_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/graphview"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

type fakeFrame struct {
	snapshots map[ident.ObjectID]*model.Snapshot
}

func (f *fakeFrame) ObjectIDs() []ident.ObjectID {
	ids := make([]ident.ObjectID, 0, len(f.snapshots))
	for id := range f.snapshots {
		ids = append(ids, id)
	}
	return ids
}

func (f *fakeFrame) Snapshot(id ident.ObjectID) (*model.Snapshot, bool) {
	s, ok := f.snapshots[id]
	return s, ok
}

func TestWriteDOTRendersNodesAndEdges(t *testing.T) {
	nodeType := &model.StaticType{TypeName: "Stock", Role: model.Node}
	edgeType := &model.StaticType{TypeName: "Flow", Role: model.Edge}

	n1 := model.New(1, 1, nodeType, model.NodeStructure())
	n2 := model.New(2, 2, nodeType, model.NodeStructure())
	e := model.New(3, 3, edgeType, model.EdgeStructure(1, 2))

	f := &fakeFrame{snapshots: map[ident.ObjectID]*model.Snapshot{
		1: n1, 2: n2, 3: e,
	}}

	v := graphview.New(f)
	var buf bytes.Buffer
	require.NoError(t, v.WriteDOT(&buf))

	out := buf.String()
	require.Contains(t, out, "digraph")
	require.Contains(t, out, "obj:1")
	require.Contains(t, out, "obj:2")
}
