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

// StaticType is a minimal ObjectType backed by a fixed name, structural
// role and trait list. It is not a metamodel *definition* in the domain
// sense (§1 keeps those external); it exists so tests, the loader, and
// small reference programs can satisfy the ObjectType/Metamodel interfaces
// without writing a bespoke implementation each time.
type StaticType struct {
	TypeName string
	Role     StructuralKind
	TraitSet []Trait
}

func (t *StaticType) Name() string                 { return t.TypeName }
func (t *StaticType) StructuralRole() StructuralKind { return t.Role }
func (t *StaticType) Traits() []Trait               { return t.TraitSet }

func (t *StaticType) HasTrait(name string) bool {
	for _, tr := range t.TraitSet {
		if tr.Name == name {
			return true
		}
	}
	return false
}

// StaticMetamodel is a fixed, in-memory Metamodel over a slice of types,
// keyed by name.
type StaticMetamodel struct {
	types map[string]ObjectType
}

// NewStaticMetamodel builds a StaticMetamodel from the given types.
func NewStaticMetamodel(types ...ObjectType) *StaticMetamodel {
	m := &StaticMetamodel{types: make(map[string]ObjectType, len(types))}
	for _, t := range types {
		m.types[t.Name()] = t
	}
	return m
}

func (m *StaticMetamodel) ObjectType(name string) (ObjectType, bool) {
	t, ok := m.types[name]
	return t, ok
}
