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

// Package model defines object identity, structural role, attribute schema
// and the per-version snapshot record (§3.1-§3.3, §3.6); it consumes
// domain-defined object types and attribute schemas through the Metamodel
// and ObjectType interfaces rather than defining any concrete metamodel
// itself.
package model

import (
	"fmt"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/variant"
)

// StructuralKind is an object's graph role: unstructured, node, or edge.
type StructuralKind uint8

const (
	Unstructured StructuralKind = iota
	Node
	Edge
)

func (k StructuralKind) String() string {
	switch k {
	case Unstructured:
		return "unstructured"
	case Node:
		return "node"
	case Edge:
		return "edge"
	default:
		return fmt.Sprintf("structuralKind(%d)", uint8(k))
	}
}

// Structure is the object's structural role plus, for edges, its endpoints.
type Structure struct {
	Kind           StructuralKind
	Origin, Target ident.ObjectID
}

func UnstructuredStructure() Structure { return Structure{Kind: Unstructured} }
func NodeStructure() Structure         { return Structure{Kind: Node} }
func EdgeStructure(origin, target ident.ObjectID) Structure {
	return Structure{Kind: Edge, Origin: origin, Target: target}
}

func (s Structure) IsEdge() bool { return s.Kind == Edge }
func (s Structure) IsNode() bool { return s.Kind == Node }

// AttributeSchema names one attribute a Trait requires, and the value type
// it must hold.
type AttributeSchema struct {
	Name     string
	Type     variant.ValueType
	Required bool
}

// Trait is a named attribute schema that an ObjectType may include.
type Trait struct {
	Name       string
	Attributes []AttributeSchema
}

// ObjectType is a pointer into the metamodel: it provides traits, the
// allowed structural role, and the attribute schema for one kind of object.
// Concrete implementations are supplied by domain code (§1 scope); this
// package only depends on the interface.
type ObjectType interface {
	Name() string
	StructuralRole() StructuralKind
	Traits() []Trait
	HasTrait(name string) bool
}

// Metamodel resolves type names to ObjectType. Concrete metamodels (the
// domain's catalog of object types) are supplied by domain code; see
// StaticMetamodel for a minimal reference implementation of this interface.
type Metamodel interface {
	ObjectType(name string) (ObjectType, bool)
}
