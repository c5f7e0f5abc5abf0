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

package model

import (
	"fmt"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/variant"
)

// LifecycleState is a snapshot's position in §3.6: uninitialized ->
// transient -> validated -> frozen. Stable is carried as a named state
// because §3.3 lists it among the five, but no transition in §3.6 targets
// it directly: it describes a snapshot that belongs to a StableFrame
// without itself having been freshly validated+frozen in this acceptance
// (i.e. a frozen snapshot viewed through a stable frame). Snapshot.State
// never holds Stable; frame.StableFrame snapshots hold Frozen. The value
// exists so foreign-record round trips and loader-restored snapshots that
// name it explicitly have somewhere to decode to.
type LifecycleState uint8

const (
	Uninitialized LifecycleState = iota
	Transient
	Stable
	Validated
	Frozen
)

func (s LifecycleState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Transient:
		return "transient"
	case Stable:
		return "stable"
	case Validated:
		return "validated"
	case Frozen:
		return "frozen"
	default:
		return fmt.Sprintf("lifecycleState(%d)", uint8(s))
	}
}

// Snapshot is the unit of versioning: one version of one object (§3.3).
type Snapshot struct {
	SnapshotID ident.SnapshotID
	ObjectID   ident.ObjectID
	Type       ObjectType
	Structure  Structure
	Attributes map[string]variant.Variant

	Parent   *ident.ObjectID
	Children []ident.ObjectID

	State LifecycleState
}

// New builds an uninitialized->transient snapshot (§3.6: "uninitialized ->
// transient (via explicit initialization with a structure)"). structure
// must match typ.StructuralRole() (invariant §3.3.3); callers are expected
// to have checked this already (frame.TransientFrame.Create does).
func New(snapshotID ident.SnapshotID, objectID ident.ObjectID, typ ObjectType, structure Structure) *Snapshot {
	return &Snapshot{
		SnapshotID: snapshotID,
		ObjectID:   objectID,
		Type:       typ,
		Structure:  structure,
		Attributes: make(map[string]variant.Variant),
		State:      Transient,
	}
}

// Clone returns a deep, independent copy with the given new snapshot ID,
// used by TransientFrame.Mutate to derive a fresh owned version of a
// shared snapshot (§4.2: "clone the shared snapshot with a fresh snapshot
// ID (same object ID), mark as owned").
func (s *Snapshot) Clone(newSnapshotID ident.SnapshotID) *Snapshot {
	attrs := make(map[string]variant.Variant, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	children := append([]ident.ObjectID(nil), s.Children...)
	var parent *ident.ObjectID
	if s.Parent != nil {
		p := *s.Parent
		parent = &p
	}
	return &Snapshot{
		SnapshotID: newSnapshotID,
		ObjectID:   s.ObjectID,
		Type:       s.Type,
		Structure:  s.Structure,
		Attributes: attrs,
		Parent:     parent,
		Children:   children,
		State:      Transient,
	}
}

// HasChild reports whether id is present in Children.
func (s *Snapshot) HasChild(id ident.ObjectID) bool {
	for _, c := range s.Children {
		if c == id {
			return true
		}
	}
	return false
}

// AddChild appends id to Children if not already present (keeps the
// forest's children an order-preserving set, §3.5).
func (s *Snapshot) AddChild(id ident.ObjectID) {
	if !s.HasChild(id) {
		s.Children = append(s.Children, id)
	}
}

// RemoveChild removes id from Children, if present.
func (s *Snapshot) RemoveChild(id ident.ObjectID) {
	for i, c := range s.Children {
		if c == id {
			s.Children = append(s.Children[:i], s.Children[i+1:]...)
			return
		}
	}
}

// TypeErrorKind enumerates the two kinds of schema mismatch §7 describes.
type TypeErrorKind uint8

const (
	MissingTraitAttribute TypeErrorKind = iota
	TypeMismatch
)

// TypeError is one schema violation found during acceptance's type/schema
// check (§4.1 step 2, §7 family 3).
type TypeError struct {
	Kind      TypeErrorKind
	Attribute string
	Trait     string
	Expected  variant.ValueType
	Actual    variant.ValueType
}

func (e TypeError) Error() string {
	switch e.Kind {
	case MissingTraitAttribute:
		return fmt.Sprintf("missing required attribute %q declared by trait %q", e.Attribute, e.Trait)
	case TypeMismatch:
		return fmt.Sprintf("attribute %q: expected %s, got %s", e.Attribute, e.Expected, e.Actual)
	default:
		return "unknown type error"
	}
}
