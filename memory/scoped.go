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
	"github.com/dyncore/dyncore/frame"
	"github.com/dyncore/dyncore/ident"
)

// WithTransientFrame derives a frame from parent (or creates a fresh root
// frame if parent is nil), runs fn against it, and either accepts or
// discards the result depending on whether fn returns an error. It exists
// so callers editing a frame don't have to remember the
// derive/edit/accept-or-discard sequence by hand (§5.1).
func WithTransientFrame(m *Memory, parent *ident.FrameID, fn func(*frame.TransientFrame) error) (*frame.StableFrame, error) {
	var tf *frame.TransientFrame
	var err error
	if parent == nil {
		tf = m.CreateFrame()
	} else {
		tf, err = m.DeriveFrame(*parent)
		if err != nil {
			return nil, err
		}
	}

	if err := fn(tf); err != nil {
		m.Discard(tf)
		return nil, err
	}
	return m.Accept(tf)
}
