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

// Package memory implements the transactional core of §4.1: Memory is the
// only path by which a TransientFrame becomes a stable, permanent part of
// the design's history, and it owns undo/redo and reference-counted
// garbage collection of superseded snapshots.
package memory

import (
	"sync"

	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/dyncore/dyncore/frame"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/predicate"
	"github.com/dyncore/dyncore/variant"
)

func lessFrameID(a, b ident.FrameID) bool { return a < b }

// Memory holds every stable frame reachable from the current position in
// history, plus the undo/redo lists that let the current position move.
// §3.4/§4.1: undo_list, current and redo_list are disjoint; current holds
// at most one frame.
type Memory struct {
	mu sync.Mutex

	mm     model.Metamodel
	alloc  *ident.Allocator
	logger *zap.Logger

	constraints []predicate.Constraint

	frames     map[ident.FrameID]*frame.StableFrame
	frameIndex *btree.BTreeG[ident.FrameID]
	current    ident.FrameID
	hasCurrent bool
	undoList   []ident.FrameID
	redoList   []ident.FrameID

	// snapshotRefs counts, for each snapshot ID, how many reachable stable
	// frames hold it. It reaches zero exactly when no undo/redo/current
	// frame references that snapshot anymore, at which point its ID is
	// released back to the allocator (§4.1's reference-counted GC).
	snapshotRefs map[ident.SnapshotID]int
}

// New returns an empty Memory bound to mm and alloc (§4.7's construction
// contract). Constraints may be registered now via WithConstraints or
// later via RegisterConstraint.
func New(mm model.Metamodel, alloc *ident.Allocator, opts ...Option) *Memory {
	m := &Memory{
		mm:           mm,
		alloc:        alloc,
		frames:       make(map[ident.FrameID]*frame.StableFrame),
		frameIndex:   btree.NewG[ident.FrameID](32, lessFrameID),
		snapshotRefs: make(map[ident.SnapshotID]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterConstraint adds a constraint that every future Accept call will
// check (§4.5). Constraints already satisfied by history are not
// retroactively checked.
func (m *Memory) RegisterConstraint(c predicate.Constraint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = append(m.constraints, c)
}

// CreateFrame returns a new, empty transient frame with no parent (§4.1
// create_frame).
func (m *Memory) CreateFrame() *frame.TransientFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.alloc.NextFrameID()
	return frame.New(id, m.mm, m.alloc)
}

// DeriveFrame returns a new transient frame seeded with parent's snapshots,
// all shared (§4.1 derive_frame). parent must name a frame this Memory
// currently holds.
func (m *Memory) DeriveFrame(parent ident.FrameID) (*frame.TransientFrame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parentStable, ok := m.frames[parent]
	if !ok {
		return nil, &UnknownFrame{ID: parent}
	}
	id := m.alloc.NextFrameID()
	return frame.Derive(id, m.mm, m.alloc, parentStable), nil
}

// Accept runs the three-stage validation of §4.1 step 3 (referential
// integrity, type/schema, constraints) and, if the frame passes, freezes it
// into a StableFrame that becomes the new current frame. On failure the
// transient frame is returned unchanged, still Open, for the caller to fix
// and re-submit.
func (m *Memory) Accept(tf *frame.TransientFrame) (*frame.StableFrame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tf.State() != frame.Open {
		model.Panic(model.Faultf("memory: Accept called on frame %s in state %v, not Open", tf.ID(), tf.State()))
	}

	ids := tf.ObjectIDs()
	snapshots := make(map[ident.ObjectID]*model.Snapshot, len(ids))
	all := make([]*model.Snapshot, 0, len(ids))
	for _, id := range ids {
		s, _ := tf.Snapshot(id)
		snapshots[id] = s
		all = append(all, s)
	}

	// Step 1: referential integrity. A normal TransientFrame mutator never
	// lets this break (Create/Insert check up front); only InsertUnsafe can
	// leave it broken, and only a loader that failed to restore it before
	// calling Accept would trip this. That is a programming error, not a
	// recoverable validation failure, so it Faults rather than returning a
	// FrameValidationError.
	for _, s := range all {
		if s.Structure.Kind == model.Edge {
			if _, ok := snapshots[s.Structure.Origin]; !ok {
				model.Panic(model.Faultf("memory: frame %s: edge %s has dangling origin %s", tf.ID(), s.ObjectID, s.Structure.Origin))
			}
			if _, ok := snapshots[s.Structure.Target]; !ok {
				model.Panic(model.Faultf("memory: frame %s: edge %s has dangling target %s", tf.ID(), s.ObjectID, s.Structure.Target))
			}
		}
		if s.Parent != nil {
			if _, ok := snapshots[*s.Parent]; !ok {
				model.Panic(model.Faultf("memory: frame %s: object %s has dangling parent %s", tf.ID(), s.ObjectID, *s.Parent))
			}
		}
		for _, c := range s.Children {
			if _, ok := snapshots[c]; !ok {
				model.Panic(model.Faultf("memory: frame %s: object %s has dangling child %s", tf.ID(), s.ObjectID, c))
			}
		}
	}

	// Step 2: type/schema check, over owned (newly created or mutated)
	// snapshots only — shared snapshots were already validated when they
	// were frozen into whichever earlier frame they came from.
	typeErrors := map[ident.ObjectID][]model.TypeError{}
	for id, snap := range tf.OwnedSnapshots() {
		if errs := checkSchema(snap); len(errs) > 0 {
			typeErrors[id] = errs
		}
	}

	// Step 3: constraint check, over the whole object universe.
	var violations []predicate.Violation
	for _, c := range m.constraints {
		if offenders := c.Check(all, tf); len(offenders) > 0 {
			violations = append(violations, predicate.Violation{Constraint: c, Objects: offenders})
		}
	}

	if len(typeErrors) > 0 || len(violations) > 0 {
		return nil, newFrameValidationError(typeErrors, violations)
	}

	for _, snap := range tf.OwnedSnapshots() {
		snap.State = model.Frozen
	}
	stable := frame.NewStableFrame(tf.ID(), snapshots)
	tf.MarkAccepted()

	m.frames[stable.ID()] = stable
	m.frameIndex.ReplaceOrInsert(stable.ID())
	m.retain(stable)

	if m.hasCurrent {
		m.undoList = append(m.undoList, m.current)
	}
	m.clearRedoLocked()
	m.current = stable.ID()
	m.hasCurrent = true

	if m.logger != nil {
		m.logger.Info("frame accepted", zap.Uint64("frame", uint64(stable.ID())), zap.Int("objects", stable.Len()))
	}
	return stable, nil
}

// Discard abandons a transient frame without making it part of history,
// releasing the snapshot IDs it allocated for owned (not-yet-shared)
// snapshots. Object IDs are not released: the object may still be the
// subject of other frames even though this particular edit is abandoned.
func (m *Memory) Discard(tf *frame.TransientFrame) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tf.State() != frame.Open {
		model.Panic(model.Faultf("memory: Discard called on frame %s in state %v, not Open", tf.ID(), tf.State()))
	}
	for _, snap := range tf.OwnedSnapshots() {
		m.alloc.Release(uint64(snap.SnapshotID))
	}
	tf.MarkDiscarded()
	if m.logger != nil {
		m.logger.Debug("frame discarded", zap.Uint64("frame", uint64(tf.ID())))
	}
}

// Undo moves current one step back into undo_list, pushing the previous
// current onto redo_list (§4.1 undo()).
func (m *Memory) Undo() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undoList) == 0 {
		return ErrNothingToUndo
	}
	m.undoToLocked(m.undoList[len(m.undoList)-1])
	return nil
}

// UndoTo moves current back to the frame named by to, which must currently
// be in undo_list (§4.1 undo(to: FrameID)). Every frame strictly after to in
// undo_list, plus the previous current, moves to redo_list — to's
// immediate successor landing on top (the next Redo returns it), the
// previous current landing deepest — so that this is exactly the state a caller
// would reach by calling Undo() repeatedly until current == to.
func (m *Memory) UndoTo(to ident.FrameID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.undoList, to) < 0 {
		return &UnknownFrame{ID: to}
	}
	m.undoToLocked(to)
	return nil
}

func (m *Memory) undoToLocked(to ident.FrameID) {
	idx := indexOf(m.undoList, to)
	suffix := m.undoList[idx+1:]
	moved := make([]ident.FrameID, 0, len(suffix)+1)
	moved = append(moved, m.current)
	for i := len(suffix) - 1; i >= 0; i-- {
		moved = append(moved, suffix[i])
	}
	m.redoList = append(m.redoList, moved...)
	m.undoList = m.undoList[:idx]
	m.current = to
	if m.logger != nil {
		m.logger.Debug("undo", zap.Uint64("new_current", uint64(m.current)))
	}
}

// Redo moves current one step forward into redo_list, pushing the previous
// current onto undo_list (§4.1 redo()).
func (m *Memory) Redo() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redoList) == 0 {
		return ErrNothingToRedo
	}
	m.redoToLocked(m.redoList[len(m.redoList)-1])
	return nil
}

// RedoTo moves current forward to the frame named by to, which must
// currently be in redo_list (§4.1 redo(to: FrameID)), the mirror of UndoTo:
// every frame between the current top of redo_list and to, plus the
// previous current, moves to undo_list in the order a sequence of plain
// Redo() calls would produce.
func (m *Memory) RedoTo(to ident.FrameID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.redoList, to) < 0 {
		return &UnknownFrame{ID: to}
	}
	m.redoToLocked(to)
	return nil
}

func (m *Memory) redoToLocked(to ident.FrameID) {
	idx := indexOf(m.redoList, to)
	suffix := m.redoList[idx+1:]
	moved := make([]ident.FrameID, 0, len(suffix)+1)
	moved = append(moved, m.current)
	for i := len(suffix) - 1; i >= 0; i-- {
		moved = append(moved, suffix[i])
	}
	m.undoList = append(m.undoList, moved...)
	m.redoList = m.redoList[:idx]
	m.current = to
	if m.logger != nil {
		m.logger.Debug("redo", zap.Uint64("new_current", uint64(m.current)))
	}
}

// RemoveFrame permanently drops a frame from history (§4.1 remove_frame).
// The current frame cannot be removed this way; Undo it first.
func (m *Memory) RemoveFrame(id ident.FrameID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasCurrent && id == m.current {
		return ErrCannotRemoveCurrentFrame
	}
	if idx := indexOf(m.undoList, id); idx >= 0 {
		m.undoList = append(m.undoList[:idx], m.undoList[idx+1:]...)
	} else if idx := indexOf(m.redoList, id); idx >= 0 {
		m.redoList = append(m.redoList[:idx], m.redoList[idx+1:]...)
	} else {
		return &UnknownFrame{ID: id}
	}

	stable := m.frames[id]
	m.release(stable)
	delete(m.frames, id)
	m.frameIndex.Delete(id)
	if m.logger != nil {
		m.logger.Debug("frame removed", zap.Uint64("frame", uint64(id)))
	}
	return nil
}

// Frame returns the stable frame named by id, if this Memory still holds it.
func (m *Memory) Frame(id ident.FrameID) (*frame.StableFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.frames[id]
	return f, ok
}

// CurrentFrame returns the frame at the head of history, if any exists yet.
func (m *Memory) CurrentFrame() (*frame.StableFrame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasCurrent {
		return nil, false
	}
	return m.frames[m.current], true
}

// Frames returns every frame reachable from history (undo list, current,
// redo list, in that order), for inspection and testing.
func (m *Memory) Frames() []*frame.StableFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*frame.StableFrame, 0, len(m.undoList)+len(m.redoList)+1)
	for _, id := range m.undoList {
		out = append(out, m.frames[id])
	}
	if m.hasCurrent {
		out = append(out, m.frames[m.current])
	}
	for i := len(m.redoList) - 1; i >= 0; i-- {
		out = append(out, m.frames[m.redoList[i]])
	}
	return out
}

func (m *Memory) clearRedoLocked() {
	for _, id := range m.redoList {
		if sf, ok := m.frames[id]; ok {
			m.release(sf)
			delete(m.frames, id)
			m.frameIndex.Delete(id)
		}
	}
	m.redoList = nil
}

// FrameIDsSorted returns every frame ID this Memory still holds, in
// ascending order, using the btree index kept alongside the frame map
// (§4.1) for deterministic iteration independent of undo/redo ordering.
func (m *Memory) FrameIDsSorted() []ident.FrameID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ident.FrameID, 0, m.frameIndex.Len())
	m.frameIndex.Ascend(func(id ident.FrameID) bool {
		out = append(out, id)
		return true
	})
	return out
}

func (m *Memory) retain(sf *frame.StableFrame) {
	for _, snap := range sf.Snapshots() {
		m.snapshotRefs[snap.SnapshotID]++
	}
}

func (m *Memory) release(sf *frame.StableFrame) {
	if sf == nil {
		return
	}
	for _, snap := range sf.Snapshots() {
		m.snapshotRefs[snap.SnapshotID]--
		if m.snapshotRefs[snap.SnapshotID] <= 0 {
			delete(m.snapshotRefs, snap.SnapshotID)
			m.alloc.Release(uint64(snap.SnapshotID))
		}
	}
}

func indexOf(list []ident.FrameID, id ident.FrameID) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

// checkSchema validates one owned snapshot against its type's declared
// traits (§4.1 step 2, §7 family 3).
func checkSchema(snap *model.Snapshot) []model.TypeError {
	if snap.Type == nil {
		return nil
	}
	var errs []model.TypeError
	for _, trait := range snap.Type.Traits() {
		for _, attr := range trait.Attributes {
			v, ok := snap.Attributes[attr.Name]
			if !ok {
				if attr.Required {
					errs = append(errs, model.TypeError{
						Kind: model.MissingTraitAttribute, Attribute: attr.Name, Trait: trait.Name,
					})
				}
				continue
			}
			if !variant.IsValueTypeConvertible(v.Type(), attr.Type) {
				errs = append(errs, model.TypeError{
					Kind: model.TypeMismatch, Attribute: attr.Name, Trait: trait.Name,
					Expected: attr.Type, Actual: v.Type(),
				})
			}
		}
	}
	return errs
}
