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

package graphview

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

// WriteDOT renders the view's node/edge projection as a Graphviz DOT
// document: nodes labelled with their object ID and type name, edges drawn
// directed from origin to target. This is a read-only consumer of the
// graph view for diagram preview and debugging, not a persistence format
// (§1 keeps IO external).
func (v *View) WriteDOT(w io.Writer) error {
	g := dot.NewGraph(dot.Directed)

	dotNodes := make(map[string]dot.Node, len(v.frame.ObjectIDs()))
	for _, snap := range v.Nodes() {
		label := fmt.Sprintf("%s", snap.ObjectID)
		if snap.Type != nil {
			label = fmt.Sprintf("%s\\n%s", snap.ObjectID, snap.Type.Name())
		}
		id := snap.ObjectID.String()
		dotNodes[id] = g.Node(id).Label(label)
	}
	for _, edge := range v.Edges() {
		originID := edge.Structure.Origin.String()
		targetID := edge.Structure.Target.String()
		origin, ok := dotNodes[originID]
		if !ok {
			origin = g.Node(originID)
			dotNodes[originID] = origin
		}
		target, ok := dotNodes[targetID]
		if !ok {
			target = g.Node(targetID)
			dotNodes[targetID] = target
		}
		label := edge.ObjectID.String()
		if edge.Type != nil {
			label = edge.Type.Name()
		}
		g.Edge(origin, target, label)
	}

	_, err := w.Write([]byte(g.String()))
	return err
}
