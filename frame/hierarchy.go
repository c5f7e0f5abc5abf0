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

// CycleDetected is the Fault raised when a hierarchy mutation would create
// a parent/child cycle. §9 leaves the choice between rejecting cycles and
// documenting them as an unsafe-API-only invariant; this implementation
// rejects them, because every hierarchy mutation goes through this file
// (there is no raw hierarchy setter that bypasses it).
type CycleDetected struct {
	Child, ProposedParent ident.ObjectID
}

func (e *CycleDetected) Error() string {
	return "frame: setting parent would create a cycle"
}

// AddChild mutates both parent and child: appends child to parent's
// Children and sets child.Parent = parent, restoring bidirectional
// consistency in one call (§3.3 invariant 2, §9 "store the canonical
// direction on the child... cache children on the parent").
func (f *TransientFrame) AddChild(child, parent ident.ObjectID) error {
	return f.SetParent(child, &parent)
}

// RemoveChild removes child from parent's Children and clears child's
// Parent if it pointed at parent.
func (f *TransientFrame) RemoveChild(child, parent ident.ObjectID) error {
	childSnap, err := f.Mutate(child)
	if err != nil {
		return err
	}
	parentSnap, err := f.Mutate(parent)
	if err != nil {
		return err
	}
	parentSnap.RemoveChild(child)
	if childSnap.Parent != nil && *childSnap.Parent == parent {
		childSnap.Parent = nil
	}
	return nil
}

// RemoveFromParent detaches child from its current parent, if any.
func (f *TransientFrame) RemoveFromParent(child ident.ObjectID) error {
	childSnap, ok := f.Snapshot(child)
	if !ok {
		return &ErrUnknownObject{ID: child}
	}
	if childSnap.Parent == nil {
		return nil
	}
	return f.RemoveChild(child, *childSnap.Parent)
}

// SetParent reassigns child's parent to newParent (nil detaches), walking
// newParent's ancestors first to reject a cycle, and keeping both
// endpoints of the old and new relationship consistent.
func (f *TransientFrame) SetParent(child ident.ObjectID, newParent *ident.ObjectID) error {
	if !f.Contains(child) {
		return &ErrUnknownObject{ID: child}
	}
	if newParent != nil {
		if !f.Contains(*newParent) {
			return &ErrUnknownObject{ID: *newParent}
		}
		if *newParent == child || f.isAncestor(*newParent, child) {
			model.Panic(model.WrapFault(&CycleDetected{Child: child, ProposedParent: *newParent},
				"frame: setting %s as parent of %s would create a cycle", *newParent, child))
		}
	}

	childSnap, err := f.Mutate(child)
	if err != nil {
		return err
	}
	if childSnap.Parent != nil {
		oldParent := *childSnap.Parent
		if newParent == nil || *newParent != oldParent {
			oldParentSnap, err := f.Mutate(oldParent)
			if err != nil {
				return err
			}
			oldParentSnap.RemoveChild(child)
		}
	}
	childSnap.Parent = newParent
	if newParent != nil {
		newParentSnap, err := f.Mutate(*newParent)
		if err != nil {
			return err
		}
		newParentSnap.AddChild(child)
	}
	return nil
}

// isAncestor reports whether candidate is an ancestor of node, by walking
// node's ancestor chain upward (§9's hierarchy-cycle-check note). SetParent
// calls isAncestor(newParent, child) to ask "is child already an ancestor
// of newParent", which is exactly when reparenting child under newParent
// would close a cycle.
func (f *TransientFrame) isAncestor(node, candidate ident.ObjectID) bool {
	cur := node
	seen := map[ident.ObjectID]struct{}{}
	for {
		snap, ok := f.Snapshot(cur)
		if !ok || snap.Parent == nil {
			return false
		}
		parent := *snap.Parent
		if parent == candidate {
			return true
		}
		if _, loop := seen[parent]; loop {
			return false
		}
		seen[parent] = struct{}{}
		cur = parent
	}
}
