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

package memory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dyncore/dyncore/frame"
	"github.com/dyncore/dyncore/ident"
)

// DeriveCurrentFrame derives a transient frame from the current frame, or
// returns an empty one (equivalent to CreateFrame) if no frame is current
// yet. This is §4.1's derive_frame with its parent argument omitted: "or
// of current_frame if parent is omitted; empty if no current frame."
func (m *Memory) DeriveCurrentFrame() *frame.TransientFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.alloc.NextFrameID()
	if !m.hasCurrent {
		return frame.New(id, m.mm, m.alloc)
	}
	return frame.Derive(id, m.mm, m.alloc, m.frames[m.current])
}

// ErrHistoryAlreadyLoaded is returned by LoadHistory against a Memory that
// already holds frames; a loader always runs against a freshly constructed
// Memory (§6.3).
var ErrHistoryAlreadyLoaded = fmt.Errorf("memory: LoadHistory requires an empty memory")

// LoadHistory installs a design loader's reconstructed frame history
// directly (§6.3: "set named system references (current_frame) and named
// lists (undo, redo)"), bypassing Accept's validation. A foreign record
// represents data that was already validated when it was first accepted;
// re-running referential/type/constraint checks against a design that may
// have been produced by a different, possibly now-unavailable metamodel
// version would make loading strictly more fragile than saving, which the
// loader contract does not ask for.
func (m *Memory) LoadHistory(stable map[ident.FrameID]*frame.StableFrame, undo []ident.FrameID, current ident.FrameID, hasCurrent bool, redo []ident.FrameID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) > 0 || m.hasCurrent {
		return ErrHistoryAlreadyLoaded
	}
	for id, sf := range stable {
		m.frames[id] = sf
		m.frameIndex.ReplaceOrInsert(id)
		m.retain(sf)
	}
	m.undoList = append([]ident.FrameID(nil), undo...)
	m.redoList = append([]ident.FrameID(nil), redo...)
	m.current = current
	m.hasCurrent = hasCurrent
	if m.logger != nil {
		m.logger.Info("history loaded",
			zap.Int("frames", len(stable)),
			zap.Int("undo", len(undo)),
			zap.Int("redo", len(redo)),
			zap.Bool("has_current", hasCurrent))
	}
	return nil
}
