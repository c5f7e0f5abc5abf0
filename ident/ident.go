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

// Package ident draws the 64-bit identifiers shared by objects, snapshots
// and frames from one monotonic sequence, and tracks which IDs are in use
// so that a persistence loader can reserve a batch before the objects they
// name actually exist (§3.1, §4.1).
package ident

import (
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ObjectID is the stable identity of an object across all of its versions.
type ObjectID uint64

// SnapshotID is the identity of one version of one object, unique across
// the whole memory.
type SnapshotID uint64

// FrameID is the identity of a frame, unique across the memory.
type FrameID uint64

func (id ObjectID) String() string   { return fmt.Sprintf("obj:%d", uint64(id)) }
func (id SnapshotID) String() string { return fmt.Sprintf("snap:%d", uint64(id)) }
func (id FrameID) String() string    { return fmt.Sprintf("frame:%d", uint64(id)) }

// AlreadyUsed is a programming error: a caller asked to reserve a specific
// ID that is already used.
type AlreadyUsed struct {
	ID uint64
}

func (e *AlreadyUsed) Error() string {
	return fmt.Sprintf("ident: id %d is already in use", e.ID)
}

// Allocator draws IDs from one monotonic sequence shared across the three
// semantic roles (object, snapshot, frame); the roles never share values
// because they're all carved out of the same counter. It additionally
// tracks a "used" set (IDs either allocated or reserved) and a "reserved"
// subset (§4.1 identity reservation, for loaders resolving cross-references
// before the referenced objects are inserted).
//
// Every method takes the internal mutex, so individual calls are
// serialized; a sequence of calls is not atomic as a whole, in line with
// the single-threaded cooperative model of §5.
type Allocator struct {
	mu       sync.Mutex
	next     uint64
	used     *roaring64.Bitmap
	reserved *roaring64.Bitmap
}

// NewAllocator returns an allocator whose sequence starts at start (tests
// commonly pass 1; production code passes 1 too unless resuming from a
// loaded design that recorded its own high-water mark).
func NewAllocator(start uint64) *Allocator {
	return &Allocator{
		next:     start,
		used:     roaring64.New(),
		reserved: roaring64.New(),
	}
}

// Next allocates and returns a fresh, previously-unused ID.
func (a *Allocator) Next() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextLocked()
}

func (a *Allocator) nextLocked() uint64 {
	for a.used.Contains(a.next) {
		a.next++
	}
	id := a.next
	a.used.Add(id)
	a.next++
	return id
}

// Reserve allocates a specific ID for later use, failing with AlreadyUsed
// if it is already taken. Reserved IDs are tracked separately from plain
// allocations so that Release (called when a loader's in-flight reference
// turns out to be unused) can tell the two apart.
func (a *Allocator) Reserve(id uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.used.Contains(id) {
		return &AlreadyUsed{ID: id}
	}
	a.used.Add(id)
	a.reserved.Add(id)
	if id >= a.next {
		a.next = id + 1
	}
	return nil
}

// NextObjectID, NextSnapshotID and NextFrameID are typed convenience
// wrappers over Next.
func (a *Allocator) NextObjectID() ObjectID     { return ObjectID(a.Next()) }
func (a *Allocator) NextSnapshotID() SnapshotID { return SnapshotID(a.Next()) }
func (a *Allocator) NextFrameID() FrameID       { return FrameID(a.Next()) }

// ReserveObjectID, ReserveSnapshotID and ReserveFrameID are typed
// convenience wrappers over Reserve.
func (a *Allocator) ReserveObjectID(id ObjectID) error     { return a.Reserve(uint64(id)) }
func (a *Allocator) ReserveSnapshotID(id SnapshotID) error { return a.Reserve(uint64(id)) }
func (a *Allocator) ReserveFrameID(id FrameID) error       { return a.Reserve(uint64(id)) }

// ReleaseUnusedReserved releases reserved IDs that never ended up being
// used, as described in §4.1: "on frame acceptance, reserved IDs that
// ended up unused are released." stillUsed is the set of IDs that are still
// actually referenced (e.g. by an accepted frame's snapshot set).
func (a *Allocator) ReleaseUnusedReserved(stillUsed map[uint64]struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	toRelease := roaring64.New()
	it := a.reserved.Iterator()
	for it.HasNext() {
		id := it.Next()
		if _, ok := stillUsed[id]; !ok {
			toRelease.Add(id)
		}
	}
	a.used.AndNot(toRelease)
	a.reserved.AndNot(toRelease)
}

// Release frees a single ID (e.g. an owned snapshot's ID on discard, or a
// snapshot whose reference count reached zero during GC), making it
// available for reuse by a future Next.
func (a *Allocator) Release(id uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.used.Remove(id)
	a.reserved.Remove(id)
	if id < a.next {
		a.next = id
	}
}

// IsUsed reports whether id is currently allocated or reserved.
func (a *Allocator) IsUsed(id uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used.Contains(id)
}
