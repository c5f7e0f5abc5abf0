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

// Package loader implements the design loader contract of §6.3: it
// consumes a deserialized "raw design" (already parsed from whatever
// on-disk format the external persistence layer uses, §1) and produces a
// populated memory.Memory. The raw design's own JSON shape is not
// specified by §6.3; this package defines RawDesign as the minimal
// structure a concrete format deserializes into before calling Load.
package loader

import (
	"errors"
	"fmt"

	"github.com/dyncore/dyncore/frame"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/memory"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/record"
)

// Kind enumerates the §6.3 loader failure kinds.
type Kind uint8

const (
	MissingObjectType Kind = iota
	UnknownObjectType
	InvalidStructuralType
	UnknownObjectID
	MissingCurrentFrame
	UnknownFrameID
)

func (k Kind) String() string {
	switch k {
	case MissingObjectType:
		return "MissingObjectType"
	case UnknownObjectType:
		return "UnknownObjectType"
	case InvalidStructuralType:
		return "InvalidStructuralType"
	case UnknownObjectID:
		return "UnknownObjectID"
	case MissingCurrentFrame:
		return "MissingCurrentFrame"
	case UnknownFrameID:
		return "UnknownFrameID"
	default:
		return fmt.Sprintf("loader.Kind(%d)", uint8(k))
	}
}

// Error is the typed failure §6.3 names. Whichever of the Name, ObjectID,
// FrameID and SnapshotID fields is relevant to Kind is set.
type Error struct {
	Kind       Kind
	Name       string
	ObjectID   ident.ObjectID
	SnapshotID ident.SnapshotID
	FrameID    ident.FrameID

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingObjectType:
		return fmt.Sprintf("loader: snapshot %s has no object type", e.SnapshotID)
	case UnknownObjectType:
		return fmt.Sprintf("loader: unknown object type %q", e.Name)
	case InvalidStructuralType:
		return fmt.Sprintf("loader: invalid structural type for snapshot %s", e.SnapshotID)
	case UnknownObjectID:
		if e.ObjectID == 0 && e.SnapshotID != 0 {
			return fmt.Sprintf("loader: frame names unknown snapshot %s", e.SnapshotID)
		}
		return fmt.Sprintf("loader: unknown object id %s", e.ObjectID)
	case MissingCurrentFrame:
		return "loader: raw design names no current frame"
	case UnknownFrameID:
		return fmt.Sprintf("loader: unknown frame id %s", e.FrameID)
	default:
		return fmt.Sprintf("loader: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// RawSnapshot is one foreign record plus the snapshot ID it will be
// reserved and decoded under.
type RawSnapshot struct {
	SnapshotID ident.SnapshotID
	Record     *record.Record
}

// RawFrame names a frame by ID and the snapshot IDs (one per object) that
// compose it.
type RawFrame struct {
	ID        ident.FrameID
	Snapshots []ident.SnapshotID
}

// RawDesign is the deserialized input to Load: every snapshot the design
// ever contained, every frame that references a subset of them, and the
// three history lists/scalars named in §6.3 ("current_frame", "undo",
// "redo").
type RawDesign struct {
	Snapshots []RawSnapshot
	Frames    []RawFrame

	Current    ident.FrameID
	HasCurrent bool
	Undo       []ident.FrameID
	Redo       []ident.FrameID
}

// Result is everything Load produces.
type Result struct {
	Memory *memory.Memory
}

// Load implements §6.3 end to end: (a) pre-reserve every ID the raw design
// names, so cross-references resolve before the referenced objects exist;
// (b) decode every snapshot via record.Decode; (c) build a frame.StableFrame
// per RawFrame; (d) install current/undo/redo via memory.LoadHistory.
func Load(mm model.Metamodel, alloc *ident.Allocator, raw RawDesign, opts ...memory.Option) (*Result, error) {
	if err := reserveIDs(alloc, raw); err != nil {
		return nil, err
	}

	snapshots := make(map[ident.SnapshotID]*model.Snapshot, len(raw.Snapshots))
	for _, rs := range raw.Snapshots {
		snap, err := record.Decode(rs.Record, mm)
		if err != nil {
			return nil, translateDecodeError(rs.SnapshotID, err)
		}
		snapshots[rs.SnapshotID] = snap
	}

	stableFrames := make(map[ident.FrameID]*frame.StableFrame, len(raw.Frames))
	for _, rf := range raw.Frames {
		byObject := make(map[ident.ObjectID]*model.Snapshot, len(rf.Snapshots))
		for _, sid := range rf.Snapshots {
			snap, ok := snapshots[sid]
			if !ok {
				return nil, &Error{Kind: UnknownObjectID, SnapshotID: sid}
			}
			byObject[snap.ObjectID] = snap
		}
		stableFrames[rf.ID] = frame.NewStableFrame(rf.ID, byObject)
	}

	if raw.HasCurrent {
		if _, ok := stableFrames[raw.Current]; !ok {
			return nil, &Error{Kind: UnknownFrameID, FrameID: raw.Current}
		}
	} else if len(raw.Undo) > 0 || len(raw.Redo) > 0 {
		return nil, &Error{Kind: MissingCurrentFrame}
	}
	for _, id := range raw.Undo {
		if _, ok := stableFrames[id]; !ok {
			return nil, &Error{Kind: UnknownFrameID, FrameID: id}
		}
	}
	for _, id := range raw.Redo {
		if _, ok := stableFrames[id]; !ok {
			return nil, &Error{Kind: UnknownFrameID, FrameID: id}
		}
	}

	m := memory.New(mm, alloc, opts...)
	if err := m.LoadHistory(stableFrames, raw.Undo, raw.Current, raw.HasCurrent, raw.Redo); err != nil {
		return nil, err
	}

	return &Result{Memory: m}, nil
}

// reserveIDs pre-reserves every ID the raw design names (§6.3 step (a)),
// so that a snapshot's parent/children/edge-endpoint references resolve
// even though the referenced objects are inserted later, in step (b)/(c).
// Each object_id is reserved once, however many snapshots name it, and an
// ID the allocator already reports as used (AlreadyUsed) is accepted
// rather than treated as a failure.
func reserveIDs(alloc *ident.Allocator, raw RawDesign) error {
	seenObjects := make(map[ident.ObjectID]struct{})
	for _, rs := range raw.Snapshots {
		if err := alloc.ReserveSnapshotID(rs.SnapshotID); err != nil {
			var already *ident.AlreadyUsed
			if !errors.As(err, &already) {
				return fmt.Errorf("loader: reserving snapshot %s: %w", rs.SnapshotID, err)
			}
		}
		objIDv, ok := rs.Record.Get(record.KeyObjectID)
		if !ok {
			continue
		}
		n, ok := objIDv.(uint64)
		if !ok {
			continue
		}
		objID := ident.ObjectID(n)
		if _, ok := seenObjects[objID]; ok {
			continue
		}
		seenObjects[objID] = struct{}{}
		if err := alloc.ReserveObjectID(objID); err != nil {
			var already *ident.AlreadyUsed
			if !errors.As(err, &already) {
				return fmt.Errorf("loader: reserving object %s: %w", objID, err)
			}
		}
	}
	for _, rf := range raw.Frames {
		if err := alloc.ReserveFrameID(rf.ID); err != nil {
			var already *ident.AlreadyUsed
			if !errors.As(err, &already) {
				return fmt.Errorf("loader: reserving frame %s: %w", rf.ID, err)
			}
		}
	}
	return nil
}

func translateDecodeError(snapID ident.SnapshotID, err error) error {
	var missingType *record.MissingObjectType
	var unknownType *record.UnknownObjectType
	var invalidStructure *record.InvalidStructuralType
	switch {
	case errors.As(err, &missingType):
		return &Error{Kind: MissingObjectType, SnapshotID: snapID, cause: err}
	case errors.As(err, &unknownType):
		return &Error{Kind: UnknownObjectType, Name: unknownType.Name, SnapshotID: snapID, cause: err}
	case errors.As(err, &invalidStructure):
		return &Error{Kind: InvalidStructuralType, SnapshotID: snapID, cause: err}
	default:
		return fmt.Errorf("loader: snapshot %s: %w", snapID, err)
	}
}
