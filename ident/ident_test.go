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

package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/ident"
)

func TestSequenceIsMonotonicAndRolesDontShare(t *testing.T) {
	a := ident.NewAllocator(1)
	o1 := a.NextObjectID()
	s1 := a.NextSnapshotID()
	f1 := a.NextFrameID()
	o2 := a.NextObjectID()
	assert.NotEqual(t, uint64(o1), uint64(s1))
	assert.NotEqual(t, uint64(s1), uint64(f1))
	assert.NotEqual(t, uint64(o1), uint64(o2))
	assert.Less(t, uint64(o1), uint64(o2))
}

func TestReserveRejectsAlreadyUsed(t *testing.T) {
	a := ident.NewAllocator(1)
	id := a.Next()
	err := a.Reserve(id)
	require.Error(t, err)
	var already *ident.AlreadyUsed
	require.ErrorAs(t, err, &already)
}

func TestReserveThenAllocateSkipsReserved(t *testing.T) {
	a := ident.NewAllocator(1)
	require.NoError(t, a.Reserve(1))
	require.NoError(t, a.Reserve(2))
	id := a.Next()
	assert.Equal(t, uint64(3), id)
}

func TestReleaseUnusedReservedFreesIDs(t *testing.T) {
	a := ident.NewAllocator(1)
	require.NoError(t, a.Reserve(5))
	require.NoError(t, a.Reserve(6))
	a.ReleaseUnusedReserved(map[uint64]struct{}{5: {}})
	assert.True(t, a.IsUsed(5))
	assert.False(t, a.IsUsed(6))
}

func TestReleaseFreesIDForReuse(t *testing.T) {
	a := ident.NewAllocator(1)
	id := a.Next()
	a.Release(id)
	assert.False(t, a.IsUsed(id))
	again := a.Next()
	assert.Equal(t, id, again)
}
