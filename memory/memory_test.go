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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dyncore/dyncore/frame"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/memory"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/predicate"
	"github.com/dyncore/dyncore/predicate/mocks"
)

var nodeType = &model.StaticType{TypeName: "Stock", Role: model.Node}

func newMemory() *memory.Memory {
	alloc := ident.NewAllocator(1)
	mm := model.NewStaticMetamodel(nodeType)
	return memory.New(mm, alloc)
}

// TestAcceptUndoRedo implements §8 end-to-end scenario 1.
func TestAcceptUndoRedo(t *testing.T) {
	m := newMemory()

	f1 := m.CreateFrame()
	a, err := f1.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	stableF1, err := m.Accept(f1)
	require.NoError(t, err)

	f2, err := m.DeriveFrame(stableF1.ID())
	require.NoError(t, err)
	b, err := f2.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	stableF2, err := m.Accept(f2)
	require.NoError(t, err)

	current, ok := m.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stableF2.ID(), current.ID())
	assert.True(t, current.Contains(a))
	assert.True(t, current.Contains(b))

	require.NoError(t, m.Undo())
	current, ok = m.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stableF1.ID(), current.ID())
	assert.True(t, current.Contains(a))
	assert.False(t, current.Contains(b))

	require.NoError(t, m.Redo())
	current, ok = m.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stableF2.ID(), current.ID())
}

// TestConstraintViolationKeepsFrameOpen implements §8 end-to-end scenario 3.
func TestConstraintViolationKeepsFrameOpen(t *testing.T) {
	m := newMemory()
	m.RegisterConstraint(predicate.Constraint{
		Name:        "no-objects-at-all",
		Match:       predicate.Any{},
		Requirement: predicate.RejectAll{},
	})

	f := m.CreateFrame()
	a, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	b, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)

	_, err = m.Accept(f)
	require.Error(t, err)

	var validationErr *memory.FrameValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Violations, 1)
	assert.ElementsMatch(t, []ident.ObjectID{a, b}, validationErr.Violations[0].Objects)

	assert.Equal(t, frame.Open, f.State(), "a failed accept must leave the frame open")
	_, ok := m.CurrentFrame()
	assert.False(t, ok, "no frame should have become current")
}

// TestAcceptInvokesRequirementOnce confirms the acceptance algorithm's
// constraint check calls the registered Requirement exactly once per
// Accept, with exactly the snapshots the constraint's predicate matched.
func TestAcceptInvokesRequirementOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	req := mocks.NewMockRequirement(ctrl)

	m := newMemory()
	m.RegisterConstraint(predicate.Constraint{
		Name:        "mocked",
		Match:       predicate.Any{},
		Requirement: req,
	})

	f := m.CreateFrame()
	a, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)

	req.EXPECT().
		Check(gomock.Len(1), gomock.Any()).
		DoAndReturn(func(matched []*model.Snapshot, _ predicate.FrameView) []ident.ObjectID {
			require.Len(t, matched, 1)
			assert.Equal(t, a, matched[0].ObjectID)
			return nil
		})

	_, err = m.Accept(f)
	require.NoError(t, err)
}

func TestAcceptClearsRedoList(t *testing.T) {
	m := newMemory()

	f1 := m.CreateFrame()
	_, err := f1.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	stableF1, err := m.Accept(f1)
	require.NoError(t, err)

	f2, err := m.DeriveFrame(stableF1.ID())
	require.NoError(t, err)
	_, err = f2.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = m.Accept(f2)
	require.NoError(t, err)

	require.NoError(t, m.Undo())

	f3, err := m.DeriveFrame(stableF1.ID())
	require.NoError(t, err)
	_, err = f3.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)
	_, err = m.Accept(f3)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Redo(), memory.ErrNothingToRedo)
}

// TestAcceptFaultsOnDanglingParent confirms §4.1 step 1's defensive
// referential-integrity pass covers parent references, not just edge
// endpoints: InsertUnsafe (the loader's escape hatch) can leave a snapshot
// pointing at a parent absent from the frame, and Accept must Fault rather
// than freeze it into a StableFrame violating §8 invariant 3.
func TestAcceptFaultsOnDanglingParent(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	a, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)

	snap, err := f.Mutate(a)
	require.NoError(t, err)
	ghost := ident.ObjectID(9999)
	snap.Parent = &ghost

	assert.Panics(t, func() { _, _ = m.Accept(f) })
}

// TestAcceptFaultsOnDanglingChild is TestAcceptFaultsOnDanglingParent's
// mirror for the Children side of the same invariant.
func TestAcceptFaultsOnDanglingChild(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	a, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)

	snap, err := f.Mutate(a)
	require.NoError(t, err)
	snap.Children = append(snap.Children, ident.ObjectID(9999))

	assert.Panics(t, func() { _, _ = m.Accept(f) })
}

// TestUndoToJumpsMultipleSteps confirms undo(to: FrameID) reaches the same
// state as calling Undo() repeatedly until current == to, and that redo()
// then replays forward one step at a time in the right order.
func TestUndoToJumpsMultipleSteps(t *testing.T) {
	m := newMemory()

	var stable []ident.FrameID
	f := m.CreateFrame()
	s, err := m.Accept(f)
	require.NoError(t, err)
	stable = append(stable, s.ID())

	for i := 0; i < 3; i++ {
		next, err := m.DeriveFrame(stable[len(stable)-1])
		require.NoError(t, err)
		s, err := m.Accept(next)
		require.NoError(t, err)
		stable = append(stable, s.ID())
	}
	// stable = [F0, F1, F2, F3], current = F3.

	require.NoError(t, m.UndoTo(stable[0]))
	current, ok := m.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stable[0], current.ID())

	// Stepping forward one redo at a time must retrace F1, F2, F3 in order.
	for i := 1; i <= 3; i++ {
		require.NoError(t, m.Redo())
		current, ok := m.CurrentFrame()
		require.True(t, ok)
		assert.Equal(t, stable[i], current.ID())
	}
}

// TestRedoToJumpsMultipleSteps is TestUndoToJumpsMultipleSteps's mirror:
// redo(to: FrameID) reaches a target several steps ahead in one call, and
// plain Undo() afterwards retraces back one step at a time.
func TestRedoToJumpsMultipleSteps(t *testing.T) {
	m := newMemory()

	var stable []ident.FrameID
	f := m.CreateFrame()
	s, err := m.Accept(f)
	require.NoError(t, err)
	stable = append(stable, s.ID())

	for i := 0; i < 3; i++ {
		next, err := m.DeriveFrame(stable[len(stable)-1])
		require.NoError(t, err)
		s, err := m.Accept(next)
		require.NoError(t, err)
		stable = append(stable, s.ID())
	}
	// stable = [F0, F1, F2, F3], current = F3.

	require.NoError(t, m.UndoTo(stable[0]))

	require.NoError(t, m.RedoTo(stable[3]))
	current, ok := m.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stable[3], current.ID())

	for i := 2; i >= 0; i-- {
		require.NoError(t, m.Undo())
		current, ok := m.CurrentFrame()
		require.True(t, ok)
		assert.Equal(t, stable[i], current.ID())
	}
}

// TestUndoToRejectsUnknownFrame confirms undo(to) reports UnknownFrame for a
// target that is not in undo_list (e.g. the current frame itself, or one
// never accepted).
func TestUndoToRejectsUnknownFrame(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	stable, err := m.Accept(f)
	require.NoError(t, err)

	err = m.UndoTo(stable.ID())
	var unknown *memory.UnknownFrame
	assert.ErrorAs(t, err, &unknown)
}

func TestDiscardLeavesFrameOutOfHistory(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	_, err := f.Create("Stock", nil, nil, nil, nil)
	require.NoError(t, err)

	m.Discard(f)
	assert.Equal(t, frame.Discarded, f.State())
	assert.Empty(t, m.Frames())
}

func TestRemoveFrameRejectsCurrent(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	stable, err := m.Accept(f)
	require.NoError(t, err)

	err = m.RemoveFrame(stable.ID())
	assert.ErrorIs(t, err, memory.ErrCannotRemoveCurrentFrame)
}

func TestAcceptingEmptyFrameSucceeds(t *testing.T) {
	m := newMemory()
	f := m.CreateFrame()
	stable, err := m.Accept(f)
	require.NoError(t, err)
	assert.Equal(t, 0, stable.Len())
}

func TestFrameIDsSortedReflectsHistory(t *testing.T) {
	m := newMemory()

	f1 := m.CreateFrame()
	stableF1, err := m.Accept(f1)
	require.NoError(t, err)

	f2, err := m.DeriveFrame(stableF1.ID())
	require.NoError(t, err)
	stableF2, err := m.Accept(f2)
	require.NoError(t, err)

	assert.Equal(t, []ident.FrameID{stableF1.ID(), stableF2.ID()}, m.FrameIDsSorted())

	require.NoError(t, m.Undo())
	f3, err := m.DeriveFrame(stableF1.ID())
	require.NoError(t, err)
	stableF3, err := m.Accept(f3)
	require.NoError(t, err)

	assert.Equal(t, []ident.FrameID{stableF1.ID(), stableF3.ID()}, m.FrameIDsSorted())

	require.NoError(t, m.RemoveFrame(stableF1.ID()))
	assert.Equal(t, []ident.FrameID{stableF3.ID()}, m.FrameIDsSorted())
}
