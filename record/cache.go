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

package record

import (
	"fmt"

	json "github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
)

// Cache memoizes the encoded JSON form of frozen snapshots. Frozen
// snapshots are immutable (§3.6), so their encoding never changes once
// computed; a bounded LRU avoids re-walking and re-encoding an unchanged
// attribute map every time the same stable frame is exported again.
type Cache struct {
	entries *lru.Cache[ident.SnapshotID, []byte]
}

// NewCache returns a Cache holding at most size encoded records.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[ident.SnapshotID, []byte](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// EncodeFrozen returns snap's foreign-record JSON encoding, from cache if
// present. snap must be Frozen; encoding a mutable snapshot would risk
// caching a value that later changes underneath the cache.
func (c *Cache) EncodeFrozen(snap *model.Snapshot) ([]byte, error) {
	if snap.State != model.Frozen {
		return nil, fmt.Errorf("record: Cache.EncodeFrozen requires a frozen snapshot, got %s", snap.State)
	}
	if b, ok := c.entries.Get(snap.SnapshotID); ok {
		return b, nil
	}
	rec, err := Encode(snap)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	c.entries.Add(snap.SnapshotID, b)
	return b, nil
}

// Invalidate drops a cached entry; callers never need this for frozen
// snapshots in steady state (they never change), but a garbage-collected
// snapshot ID may be reused by the allocator, so the memory's GC sweep
// should invalidate the old entry before a new snapshot could reuse the ID.
func (c *Cache) Invalidate(id ident.SnapshotID) {
	c.entries.Remove(id)
}

// Len reports how many entries are currently cached.
func (c *Cache) Len() int { return c.entries.Len() }
