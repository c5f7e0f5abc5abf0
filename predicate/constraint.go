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

package predicate

import (
	"fmt"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

// Requirement judges the set of objects a Constraint's predicate matched
// and reports which of them are offenders (§4.5).
type Requirement interface {
	Check(matched []*model.Snapshot, fw FrameView) []ident.ObjectID
}

// RejectAll makes every matched object an offender: the constraint's
// predicate describes a condition that must never occur at all.
type RejectAll struct{}

func (RejectAll) Check(matched []*model.Snapshot, _ FrameView) []ident.ObjectID {
	if len(matched) == 0 {
		return nil
	}
	out := make([]ident.ObjectID, len(matched))
	for i, s := range matched {
		out[i] = s.ObjectID
	}
	return out
}

// AcceptAll never reports an offender: useful to register a constraint for
// documentation purposes, or while developing one incrementally.
type AcceptAll struct{}

func (AcceptAll) Check([]*model.Snapshot, FrameView) []ident.ObjectID { return nil }

// Unique reports every matched object whose named attribute value is not
// unique among the matched set (every member of a colliding group is
// reported, not just the "extra" ones, since nothing distinguishes which
// member arrived first in an unordered frame). Values are compared with
// variant.Variant.Equal, so there is no hashable key to group by; the check
// is quadratic in the matched set, which the constraint mechanism expects
// to run over modest per-type populations.
type Unique struct{ Attribute string }

func (u Unique) Check(matched []*model.Snapshot, _ FrameView) []ident.ObjectID {
	offending := map[ident.ObjectID]struct{}{}
	for i := 0; i < len(matched); i++ {
		vi, ok := matched[i].Attributes[u.Attribute]
		if !ok {
			continue
		}
		for j := i + 1; j < len(matched); j++ {
			vj, ok := matched[j].Attributes[u.Attribute]
			if !ok {
				continue
			}
			if vi.Equal(vj) {
				offending[matched[i].ObjectID] = struct{}{}
				offending[matched[j].ObjectID] = struct{}{}
			}
		}
	}
	if len(offending) == 0 {
		return nil
	}
	out := make([]ident.ObjectID, 0, len(offending))
	for id := range offending {
		out = append(out, id)
	}
	return out
}

// CustomRequirement wraps an arbitrary requirement function for domain-specific checks
// that RejectAll/AcceptAll/Unique cannot express.
type CustomRequirement struct {
	Name string
	Fn   func(matched []*model.Snapshot, fw FrameView) []ident.ObjectID
}

func (r CustomRequirement) Check(matched []*model.Snapshot, fw FrameView) []ident.ObjectID {
	return r.Fn(matched, fw)
}

// Constraint pairs a predicate selecting the objects it governs with a
// requirement that judges them (§4.5, exercised by the acceptance
// algorithm's constraint check, §4.1 step 3).
type Constraint struct {
	Name        string
	Description string
	Match       Predicate
	Requirement Requirement
}

// Violation records one constraint failing against a set of objects, as
// surfaced in a memory.FrameValidationError (§7 family 4).
type Violation struct {
	Constraint Constraint
	Objects    []ident.ObjectID
}

func (v Violation) Error() string {
	return fmt.Sprintf("constraint %q violated by %d object(s)", v.Constraint.Name, len(v.Objects))
}

// Check runs the constraint's predicate over objects (resolving referenced
// objects through fw) and judges the matched subset with its requirement,
// returning the offending object IDs (nil if none).
func (c Constraint) Check(objects []*model.Snapshot, fw FrameView) []ident.ObjectID {
	var matched []*model.Snapshot
	for _, s := range objects {
		if c.Match.Match(s, fw) {
			matched = append(matched, s)
		}
	}
	return c.Requirement.Check(matched, fw)
}
