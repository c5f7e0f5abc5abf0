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

// Package graphview implements the read-only graph projection of §4.4:
// nodes are the snapshots of a frame whose structural kind is Node, edges
// are the snapshots whose structural kind is Edge, directed from Origin to
// Target.
package graphview

import (
	"sort"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/predicate"
)

// Frame is the narrow view a graphview.View needs of a frame: enough to
// enumerate and look up snapshots, satisfied by both frame.TransientFrame
// and frame.StableFrame without either importing this package (the same
// pattern predicate.FrameView uses to avoid an import cycle).
type Frame interface {
	ObjectIDs() []ident.ObjectID
	Snapshot(id ident.ObjectID) (*model.Snapshot, bool)
}

// View is a read-only projection of a frame's graph structure (§4.4).
// It holds no state of its own beyond the frame it wraps, so it is cheap
// to construct and safe to discard. It reads the wrapped frame live: if
// that frame is mutated, the view reflects its new contents.
type View struct {
	frame Frame
}

// New wraps frame in a graph view.
func New(frame Frame) *View {
	return &View{frame: frame}
}

// Direction selects which side of an edge incident_edges matches against
// the queried node.
type Direction uint8

const (
	// Outgoing matches edges whose Origin is the queried node.
	Outgoing Direction = iota
	// Incoming matches edges whose Target is the queried node.
	Incoming
	// Both matches edges on either side.
	Both
)

// Nodes returns every snapshot whose structural kind is Node, ordered by
// ObjectID for deterministic iteration (DOT export and tests both rely on
// this, and the underlying frame's ObjectIDs order is unspecified).
func (v *View) Nodes() []*model.Snapshot {
	return v.filterByKind(model.Node)
}

// Edges returns every snapshot whose structural kind is Edge, ordered by
// ObjectID.
func (v *View) Edges() []*model.Snapshot {
	return v.filterByKind(model.Edge)
}

func (v *View) filterByKind(kind model.StructuralKind) []*model.Snapshot {
	ids := v.frame.ObjectIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*model.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, ok := v.frame.Snapshot(id)
		if !ok || snap.Structure.Kind != kind {
			continue
		}
		out = append(out, snap)
	}
	return out
}

// ContainsNode reports whether id names a node snapshot in this frame.
func (v *View) ContainsNode(id ident.ObjectID) bool {
	snap, ok := v.frame.Snapshot(id)
	return ok && snap.Structure.Kind == model.Node
}

// ContainsEdge reports whether id names an edge snapshot in this frame.
func (v *View) ContainsEdge(id ident.ObjectID) bool {
	snap, ok := v.frame.Snapshot(id)
	return ok && snap.Structure.Kind == model.Edge
}

// IncidentEdges returns the edges touching node in the given direction,
// optionally narrowed by an additional predicate.Predicate matched against
// the edge snapshot itself (§4.4's "neighbourhood query").
func (v *View) IncidentEdges(node ident.ObjectID, dir Direction, match predicate.Predicate) []*model.Snapshot {
	out := make([]*model.Snapshot, 0)
	for _, edge := range v.Edges() {
		touches := false
		switch dir {
		case Outgoing:
			touches = edge.Structure.Origin == node
		case Incoming:
			touches = edge.Structure.Target == node
		case Both:
			touches = edge.Structure.Origin == node || edge.Structure.Target == node
		}
		if !touches {
			continue
		}
		if match != nil && !match.Match(edge, v) {
			continue
		}
		out = append(out, edge)
	}
	return out
}

// Snapshot satisfies predicate.FrameView, letting a View double as the
// lookup a predicate.EdgeEndpoint needs to inspect an edge's endpoints.
func (v *View) Snapshot(id ident.ObjectID) (*model.Snapshot, bool) {
	return v.frame.Snapshot(id)
}
