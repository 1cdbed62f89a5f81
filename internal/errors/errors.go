// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// managerError indicates a failure that is the caller's fault (e.g.
// constructing an ExecBlock with non-positive capacity) as opposed to an
// internal contract violation (those panic via internal/pan) or a plain
// cache miss (those are nil return values, never errors; spec §7).
type managerError struct {
	text  string
	cause error
}

func ManagerError(text string) error {
	return &managerError{text, nil}
}

func ManagerErrorf(format string, args ...interface{}) error {
	return &managerError{fmt.Sprintf(format, args...), nil}
}

func WrapManagerError(cause error, text string) error {
	return &managerError{text, pkgerrors.WithStack(cause)}
}

func (e *managerError) Error() string       { return e.text }
func (e *managerError) PublicError() string { return e.text }
func (e *managerError) ManagerError() bool  { return true }
func (e *managerError) Unwrap() error       { return e.cause }
