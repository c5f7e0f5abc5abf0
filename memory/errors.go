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

package memory

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/predicate"
)

// FrameValidationError aggregates everything Accept's three checks found
// wrong with a frame (§4.1 step 4, §7 family 4): schema violations keyed by
// the offending object, and constraint violations. The frame that produced
// it is left open so the caller can fix it and retry.
type FrameValidationError struct {
	TypeErrors map[ident.ObjectID][]model.TypeError
	Violations []predicate.Violation

	combined error
}

func newFrameValidationError(typeErrors map[ident.ObjectID][]model.TypeError, violations []predicate.Violation) *FrameValidationError {
	var errs []error
	for id, tes := range typeErrors {
		for _, te := range tes {
			errs = append(errs, fmt.Errorf("object %s: %w", id, te))
		}
	}
	for _, v := range violations {
		errs = append(errs, v)
	}
	return &FrameValidationError{
		TypeErrors: typeErrors,
		Violations: violations,
		combined:   multierr.Combine(errs...),
	}
}

func (e *FrameValidationError) Error() string { return e.combined.Error() }
func (e *FrameValidationError) Unwrap() error  { return e.combined }

// HasErrors reports whether the frame actually failed; a FrameValidationError
// value is never returned with no underlying errors, but callers assembling
// one incrementally can use this to decide whether to return it at all.
func (e *FrameValidationError) HasErrors() bool {
	return len(e.TypeErrors) > 0 || len(e.Violations) > 0
}

// UnknownFrame is returned when a frame ID does not name any frame the
// memory currently holds (current, undo history, or redo history), and by
// UndoTo/RedoTo when the ID is not in the list they move through.
type UnknownFrame struct{ ID ident.FrameID }

func (e *UnknownFrame) Error() string { return fmt.Sprintf("memory: unknown frame %s", e.ID) }

// ErrNothingToUndo is returned by Undo when the undo list is empty.
var ErrNothingToUndo = fmt.Errorf("memory: nothing to undo")

// ErrNothingToRedo is returned by Redo when the redo list is empty.
var ErrNothingToRedo = fmt.Errorf("memory: nothing to redo")

// ErrCannotRemoveCurrentFrame is returned by RemoveFrame for the frame
// currently at the head of history; removing it would leave the memory
// without a current frame, which only Undo/accept-time transitions may do.
var ErrCannotRemoveCurrentFrame = fmt.Errorf("memory: cannot remove the current frame")

// ErrFrameNotOpen describes a frame that isn't in the Open state anymore.
// Accept and Discard do not return it: they raise a model.Fault for that
// case.
type ErrFrameNotOpen struct{ ID ident.FrameID }

func (e *ErrFrameNotOpen) Error() string {
	return fmt.Sprintf("memory: frame %s is not open", e.ID)
}
