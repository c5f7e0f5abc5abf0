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

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fault marks a programming-error precondition violation (§7 family 1):
// an unknown ID passed to a method that requires it, mutating a frozen
// snapshot, accepting an already-accepted frame, and similar invariant
// breaks. Faults are not for user-facing reporting; callers are expected
// to let them panic (see Panic) rather than recover and display them.
type Fault struct {
	msg   string
	cause error
}

func (f *Fault) Error() string { return f.msg }
func (f *Fault) Unwrap() error { return f.cause }

// Faultf builds a Fault from a format string, wrapping any trailing error
// argument with github.com/pkg/errors for stack context.
func Faultf(format string, args ...interface{}) *Fault {
	msg := fmt.Sprintf(format, args...)
	f := &Fault{msg: msg}
	if n := len(args); n > 0 {
		if err, ok := args[n-1].(error); ok {
			f.cause = errors.Wrap(err, msg)
		}
	}
	return f
}

// WrapFault builds a Fault around an existing error.
func WrapFault(cause error, format string, args ...interface{}) *Fault {
	msg := fmt.Sprintf(format, args...)
	return &Fault{msg: msg, cause: errors.Wrap(cause, msg)}
}

// Panic raises f as a panic. Every internal precondition check that
// detects a programming error calls this instead of returning an error,
// per §7: "these terminate the process; they are not for user-facing
// reporting."
func Panic(f *Fault) {
	panic(f)
}
