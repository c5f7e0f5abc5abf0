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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/variant"
)

func nodeType() *model.StaticType {
	return &model.StaticType{TypeName: "Stock", Role: model.Node}
}

func TestSnapshotCloneIsIndependent(t *testing.T) {
	s := model.New(1, 10, nodeType(), model.NodeStructure())
	s.Attributes["value"] = variant.FromInt(5)
	s.AddChild(20)

	clone := s.Clone(2)
	clone.Attributes["value"] = variant.FromInt(6)
	clone.AddChild(30)

	assert.NotEqual(t, s.SnapshotID, clone.SnapshotID)
	assert.Equal(t, s.ObjectID, clone.ObjectID)
	assert.Equal(t, []ident.ObjectID{20}, s.Children, "mutating the clone must not affect the original")
	assert.Equal(t, []ident.ObjectID{20, 30}, clone.Children)
}

func TestAddChildIsIdempotent(t *testing.T) {
	s := model.New(1, 10, nodeType(), model.NodeStructure())
	s.AddChild(5)
	s.AddChild(5)
	assert.Equal(t, []ident.ObjectID{5}, s.Children)
}

func TestRemoveOnlyChildLeavesEmpty(t *testing.T) {
	s := model.New(1, 10, nodeType(), model.NodeStructure())
	s.AddChild(5)
	s.RemoveChild(5)
	assert.Empty(t, s.Children)
}

func TestStaticMetamodelLookup(t *testing.T) {
	mm := model.NewStaticMetamodel(nodeType())
	typ, ok := mm.ObjectType("Stock")
	require.True(t, ok)
	assert.Equal(t, model.Node, typ.StructuralRole())

	_, ok = mm.ObjectType("Missing")
	assert.False(t, ok)
}

func TestTypeErrorMessages(t *testing.T) {
	e := model.TypeError{Kind: model.MissingTraitAttribute, Attribute: "rate", Trait: "Flow"}
	assert.Contains(t, e.Error(), "rate")
	assert.Contains(t, e.Error(), "Flow")
}
