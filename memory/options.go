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
	"go.uber.org/zap"

	"github.com/dyncore/dyncore/predicate"
)

// Option configures a Memory at construction time.
type Option func(*Memory)

// WithLogger attaches a zap.Logger; Accept, Undo, Redo and RemoveFrame log
// at Info/Debug as they mutate history. A nil logger (the default) means no
// logging, not a panic: every call site checks before using it.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Memory) { m.logger = logger }
}

// WithConstraints registers constraints at construction time, equivalent
// to calling RegisterConstraint for each afterward.
func WithConstraints(constraints ...predicate.Constraint) Option {
	return func(m *Memory) { m.constraints = append(m.constraints, constraints...) }
}
