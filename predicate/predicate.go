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

// Package predicate implements the composable matching algebra of §4.5:
// predicates that select objects within a frame, and constraints that pair
// a predicate with a requirement checked at acceptance time.
package predicate

import (
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

// FrameView is the minimal read access a predicate needs: looking up an
// object by ID (used by EdgeEndpoint to inspect an edge's origin/target).
// Both frame.TransientFrame and frame.StableFrame satisfy it.
type FrameView interface {
	Snapshot(id ident.ObjectID) (*model.Snapshot, bool)
}

// Predicate is the matching algebra of §4.5.
type Predicate interface {
	Match(snap *model.Snapshot, fw FrameView) bool
}

// Any matches every object.
type Any struct{}

func (Any) Match(*model.Snapshot, FrameView) bool { return true }

// Not negates an inner predicate.
type Not struct{ Inner Predicate }

func (p Not) Match(s *model.Snapshot, fw FrameView) bool { return !p.Inner.Match(s, fw) }

// And requires both inner predicates to match.
type And struct{ Left, Right Predicate }

func (p And) Match(s *model.Snapshot, fw FrameView) bool {
	return p.Left.Match(s, fw) && p.Right.Match(s, fw)
}

// Or requires at least one inner predicate to match.
type Or struct{ Left, Right Predicate }

func (p Or) Match(s *model.Snapshot, fw FrameView) bool {
	return p.Left.Match(s, fw) || p.Right.Match(s, fw)
}

// IsType matches objects of a given type name.
type IsType struct{ TypeName string }

func (p IsType) Match(s *model.Snapshot, _ FrameView) bool {
	return s.Type != nil && s.Type.Name() == p.TypeName
}

// HasTrait matches objects whose type carries a named trait.
type HasTrait struct{ TraitName string }

func (p HasTrait) Match(s *model.Snapshot, _ FrameView) bool {
	return s.Type != nil && s.Type.HasTrait(p.TraitName)
}

// StructuralKindIs matches objects with the given structural role.
type StructuralKindIs struct{ Kind model.StructuralKind }

func (p StructuralKindIs) Match(s *model.Snapshot, _ FrameView) bool {
	return s.Structure.Kind == p.Kind
}

// EdgeSide selects which endpoint EdgeEndpoint inspects.
type EdgeSide uint8

const (
	OriginSide EdgeSide = iota
	TargetSide
)

// EdgeEndpoint matches edges whose named endpoint snapshot itself matches
// an inner predicate. Non-edge objects never match.
type EdgeEndpoint struct {
	Side  EdgeSide
	Inner Predicate
}

func (p EdgeEndpoint) Match(s *model.Snapshot, fw FrameView) bool {
	if s.Structure.Kind != model.Edge {
		return false
	}
	var endpointID ident.ObjectID
	if p.Side == OriginSide {
		endpointID = s.Structure.Origin
	} else {
		endpointID = s.Structure.Target
	}
	endpoint, ok := fw.Snapshot(endpointID)
	if !ok {
		return false
	}
	return p.Inner.Match(endpoint, fw)
}

// Custom wraps an arbitrary matching function, for domain-specific
// predicates the metamodel wants to contribute without extending this
// package's closed algebra.
type Custom struct {
	Name string
	Fn   func(*model.Snapshot, FrameView) bool
}

func (p Custom) Match(s *model.Snapshot, fw FrameView) bool { return p.Fn(s, fw) }
