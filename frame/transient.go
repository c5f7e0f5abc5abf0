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
	"github.com/dyncore/dyncore/variant"
)

// State is a TransientFrame's own lifecycle (§3.4: "open -> accepted |
// discarded").
type State uint8

const (
	Open State = iota
	Accepted
	Discarded
)

// TransientFrame accumulates edits. Every snapshot it contains is either
// owned (writable, created or mutated in this frame) or shared (a frozen
// snapshot inherited unmodified from the parent frame); only owned
// snapshots can be mutated (§3.4).
type TransientFrame struct {
	id    ident.FrameID
	mm    model.Metamodel
	alloc *ident.Allocator

	snapshots map[ident.ObjectID]*model.Snapshot
	owned     map[ident.ObjectID]bool
	removed   map[ident.ObjectID]struct{}

	state State
}

// New returns an empty transient frame (Memory.CreateFrame, §4.1).
func New(id ident.FrameID, mm model.Metamodel, alloc *ident.Allocator) *TransientFrame {
	return &TransientFrame{
		id:        id,
		mm:        mm,
		alloc:     alloc,
		snapshots: make(map[ident.ObjectID]*model.Snapshot),
		owned:     make(map[ident.ObjectID]bool),
		removed:   make(map[ident.ObjectID]struct{}),
		state:     Open,
	}
}

// Derive returns a transient frame whose initial snapshots are parent's,
// all marked shared (Memory.DeriveFrame, §4.1). parent may be nil, in
// which case Derive behaves like New.
func Derive(id ident.FrameID, mm model.Metamodel, alloc *ident.Allocator, parent *StableFrame) *TransientFrame {
	f := New(id, mm, alloc)
	if parent == nil {
		return f
	}
	for objID, snap := range parent.snapshots {
		f.snapshots[objID] = snap
		f.owned[objID] = false
	}
	return f
}

func (f *TransientFrame) ID() ident.FrameID { return f.id }
func (f *TransientFrame) State() State      { return f.state }

// MarkAccepted and MarkDiscarded are called by memory.Memory once it has
// finished processing the frame; they exist so the frame's own state
// mirrors the lifecycle even though Memory holds the authoritative history.
func (f *TransientFrame) MarkAccepted()  { f.state = Accepted }
func (f *TransientFrame) MarkDiscarded() { f.state = Discarded }

func (f *TransientFrame) Contains(id ident.ObjectID) bool {
	_, ok := f.snapshots[id]
	return ok
}

func (f *TransientFrame) Snapshot(id ident.ObjectID) (*model.Snapshot, bool) {
	s, ok := f.snapshots[id]
	return s, ok
}

func (f *TransientFrame) IsOwned(id ident.ObjectID) bool { return f.owned[id] }

// ObjectIDs returns every object ID currently in the frame.
func (f *TransientFrame) ObjectIDs() []ident.ObjectID {
	ids := make([]ident.ObjectID, 0, len(f.snapshots))
	for id := range f.snapshots {
		ids = append(ids, id)
	}
	return ids
}

// OwnedSnapshots returns the frame's owned snapshots, keyed by object ID;
// used by Memory.Accept for the validation passes and by Discard to know
// which snapshot IDs to release.
func (f *TransientFrame) OwnedSnapshots() map[ident.ObjectID]*model.Snapshot {
	out := make(map[ident.ObjectID]*model.Snapshot)
	for id, owned := range f.owned {
		if owned {
			out[id] = f.snapshots[id]
		}
	}
	return out
}

// RemovedObjects returns the set of objects removed in this frame
// relative to its starting snapshot set.
func (f *TransientFrame) RemovedObjects() map[ident.ObjectID]struct{} {
	out := make(map[ident.ObjectID]struct{}, len(f.removed))
	for id := range f.removed {
		out[id] = struct{}{}
	}
	return out
}

func (f *TransientFrame) resolveStructure(typ model.ObjectType, structure *model.Structure) (model.Structure, error) {
	if structure != nil {
		if structure.Kind != typ.StructuralRole() {
			model.Panic(model.Faultf("frame: structure kind %s does not match type %q's structural role %s", structure.Kind, typ.Name(), typ.StructuralRole()))
		}
		if structure.Kind == model.Edge {
			if !f.Contains(structure.Origin) {
				return model.Structure{}, &ErrUnknownObject{ID: structure.Origin}
			}
			if !f.Contains(structure.Target) {
				return model.Structure{}, &ErrUnknownObject{ID: structure.Target}
			}
		}
		return *structure, nil
	}
	switch typ.StructuralRole() {
	case model.Unstructured:
		return model.UnstructuredStructure(), nil
	case model.Node:
		return model.NodeStructure(), nil
	case model.Edge:
		model.Panic(model.Faultf("frame: creating an edge-typed object requires explicit endpoints"))
	}
	model.Panic(model.Faultf("frame: unknown structural role %v", typ.StructuralRole()))
	panic("unreachable")
}

// UnknownObjectType is a user/data error: the named type is not in the
// metamodel.
type UnknownObjectType struct {
	Name string
}

func (e *UnknownObjectType) Error() string {
	return "frame: unknown object type " + e.Name
}

// Create allocates (or reserves, if provided) an object/snapshot ID pair,
// builds a new owned, transient snapshot of the named type, and inserts
// it into the frame (§4.2 TransientFrame.create).
func (f *TransientFrame) Create(typeName string, structure *model.Structure, attributes map[string]variant.Variant, proposedObjectID *ident.ObjectID, proposedSnapshotID *ident.SnapshotID) (ident.ObjectID, error) {
	typ, ok := f.mm.ObjectType(typeName)
	if !ok {
		return 0, &UnknownObjectType{Name: typeName}
	}
	resolved, err := f.resolveStructure(typ, structure)
	if err != nil {
		return 0, err
	}

	objID, err := f.idOrAllocateObject(proposedObjectID)
	if err != nil {
		return 0, err
	}
	snapID, err := f.idOrAllocateSnapshot(proposedSnapshotID)
	if err != nil {
		return 0, err
	}

	snap := model.New(snapID, objID, typ, resolved)
	for k, v := range attributes {
		snap.Attributes[k] = v
	}
	f.snapshots[objID] = snap
	f.owned[objID] = true
	delete(f.removed, objID)
	return objID, nil
}

func (f *TransientFrame) idOrAllocateObject(proposed *ident.ObjectID) (ident.ObjectID, error) {
	if proposed != nil {
		if err := f.alloc.ReserveObjectID(*proposed); err != nil {
			return 0, err
		}
		return *proposed, nil
	}
	return f.alloc.NextObjectID(), nil
}

func (f *TransientFrame) idOrAllocateSnapshot(proposed *ident.SnapshotID) (ident.SnapshotID, error) {
	if proposed != nil {
		if err := f.alloc.ReserveSnapshotID(*proposed); err != nil {
			return 0, err
		}
		return *proposed, nil
	}
	return f.alloc.NextSnapshotID(), nil
}

// Insert places a pre-built snapshot into the frame. If owned is false the
// snapshot must already be frozen (it's being shared from elsewhere); if
// owned is true it must be transient. Violating either precondition is a
// programming error (§4.2 insert).
func (f *TransientFrame) Insert(snap *model.Snapshot, owned bool) error {
	if owned && snap.State != model.Transient {
		model.Panic(model.Faultf("frame: Insert(owned=true) requires a transient snapshot, got %s", snap.State))
	}
	if !owned && snap.State != model.Frozen {
		model.Panic(model.Faultf("frame: Insert(owned=false) requires a frozen snapshot, got %s", snap.State))
	}
	if snap.Structure.Kind == model.Edge {
		if owned {
			if !f.Contains(snap.Structure.Origin) {
				return &ErrUnknownObject{ID: snap.Structure.Origin}
			}
			if !f.Contains(snap.Structure.Target) {
				return &ErrUnknownObject{ID: snap.Structure.Target}
			}
		}
	}
	f.snapshots[snap.ObjectID] = snap
	f.owned[snap.ObjectID] = owned
	delete(f.removed, snap.ObjectID)
	return nil
}

// InsertUnsafe inserts a snapshot without the referential-integrity check
// Insert performs, for bulk loading where references may be temporarily
// broken (§4.2 "ordering-independence"). The loader must restore
// referential integrity before handing the frame to Memory.Accept.
func (f *TransientFrame) InsertUnsafe(snap *model.Snapshot, owned bool) {
	f.snapshots[snap.ObjectID] = snap
	f.owned[snap.ObjectID] = owned
	delete(f.removed, snap.ObjectID)
}

// Mutate returns a writable version of objectID's snapshot: if it is
// already owned, the same snapshot is returned; otherwise the shared
// snapshot is cloned with a fresh snapshot ID, marked owned, and that
// clone is returned. Mutate is idempotent within a frame (§4.2, §8).
func (f *TransientFrame) Mutate(objectID ident.ObjectID) (*model.Snapshot, error) {
	snap, ok := f.snapshots[objectID]
	if !ok {
		return nil, &ErrUnknownObject{ID: objectID}
	}
	if f.owned[objectID] {
		return snap, nil
	}
	clone := snap.Clone(f.alloc.NextSnapshotID())
	f.snapshots[objectID] = clone
	f.owned[objectID] = true
	return clone, nil
}

// SetAttribute mutates objectID's snapshot and sets one attribute.
func (f *TransientFrame) SetAttribute(objectID ident.ObjectID, name string, value variant.Variant) error {
	snap, err := f.Mutate(objectID)
	if err != nil {
		return err
	}
	snap.Attributes[name] = value
	return nil
}
