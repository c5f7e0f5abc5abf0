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

package frame

import (
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

// RemoveCascading removes objectID from the frame and everything that
// would otherwise dangle as a result: incident edges, children, and this
// object's entry in its parent's Children (§4.3). The traversal order is
// unspecified but the final state is deterministic.
func (f *TransientFrame) RemoveCascading(objectID ident.ObjectID) (map[ident.ObjectID]struct{}, error) {
	if !f.Contains(objectID) {
		return nil, &ErrUnknownObject{ID: objectID}
	}

	toRemove := []ident.ObjectID{objectID}
	queued := map[ident.ObjectID]struct{}{objectID: {}}
	removed := map[ident.ObjectID]struct{}{}

	for len(toRemove) > 0 {
		y := toRemove[0]
		toRemove = toRemove[1:]

		ySnap, ok := f.Snapshot(y)
		if !ok {
			continue
		}

		for _, objID := range f.ObjectIDs() {
			if _, already := removed[objID]; already {
				continue
			}
			if _, already := queued[objID]; already {
				continue
			}
			s, ok := f.Snapshot(objID)
			if !ok || s.Structure.Kind != model.Edge {
				continue
			}
			if s.Structure.Origin == y || s.Structure.Target == y {
				queued[objID] = struct{}{}
				toRemove = append(toRemove, objID)
			}
		}

		for _, c := range append([]ident.ObjectID(nil), ySnap.Children...) {
			if _, already := removed[c]; already {
				continue
			}
			if _, already := queued[c]; already {
				continue
			}
			queued[c] = struct{}{}
			toRemove = append(toRemove, c)
		}

		if ySnap.Parent != nil {
			parent := *ySnap.Parent
			if _, parentRemoved := removed[parent]; !parentRemoved {
				if parentSnap, err := f.Mutate(parent); err == nil {
					parentSnap.RemoveChild(y)
				}
			}
		}

		delete(f.snapshots, y)
		delete(f.owned, y)
		f.removed[y] = struct{}{}
		removed[y] = struct{}{}
	}

	return removed, nil
}
