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

// Package frame implements the two frame kinds of §3.4: the immutable
// StableFrame and the mutable TransientFrame, plus the hierarchy (§3.5)
// and cascading-removal (§4.3) helpers that keep a frame's structural
// invariants intact as it is edited.
package frame

import (
	"fmt"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

// ErrUnknownObject is returned (not panicked) when a caller names an
// object ID that is not present in the frame; unlike the defensive checks
// inside acceptance, every TransientFrame mutator is expected to return
// this instead of leaving the frame inconsistent, so the frame's own
// mutation API never produces the fatal conditions §4.1 step 1 defends
// against.
type ErrUnknownObject struct {
	ID ident.ObjectID
}

func (e *ErrUnknownObject) Error() string {
	return fmt.Sprintf("frame: object %s not found in frame", e.ID)
}

// StableFrame is an immutable, accepted frame: all its snapshots are
// frozen (§3.4).
type StableFrame struct {
	id        ident.FrameID
	snapshots map[ident.ObjectID]*model.Snapshot
}

// NewStableFrame builds a StableFrame from a completed, frozen snapshot
// set. Called by memory.Memory.Accept and by loader.Load; snapshots must
// already be model.Frozen.
func NewStableFrame(id ident.FrameID, snapshots map[ident.ObjectID]*model.Snapshot) *StableFrame {
	cp := make(map[ident.ObjectID]*model.Snapshot, len(snapshots))
	for k, v := range snapshots {
		cp[k] = v
	}
	return &StableFrame{id: id, snapshots: cp}
}

func (f *StableFrame) ID() ident.FrameID { return f.id }

func (f *StableFrame) Contains(id ident.ObjectID) bool {
	_, ok := f.snapshots[id]
	return ok
}

func (f *StableFrame) Snapshot(id ident.ObjectID) (*model.Snapshot, bool) {
	s, ok := f.snapshots[id]
	return s, ok
}

// ObjectIDs returns every object ID present in the frame, in no
// particular order.
func (f *StableFrame) ObjectIDs() []ident.ObjectID {
	ids := make([]ident.ObjectID, 0, len(f.snapshots))
	for id := range f.snapshots {
		ids = append(ids, id)
	}
	return ids
}

func (f *StableFrame) Len() int { return len(f.snapshots) }

// Snapshots returns the full snapshot map. Frozen snapshots are immutable,
// so sharing the map's values is safe (§5: "Read-only graph views on a
// stable frame are inherently safe to share once the frame is frozen").
func (f *StableFrame) Snapshots() map[ident.ObjectID]*model.Snapshot {
	return f.snapshots
}
