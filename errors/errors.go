// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports the manager's public error type without pulling in
// its internal packages.
//
// Errors returned by this module that implement
//
//	interface{ ManagerError() bool }
//
// indicate a caller-input failure at a package boundary (e.g. a
// non-positive ExecBlock capacity). Contract violations inside the
// manager itself (spec §7: invalid inputs such as an empty basic block)
// panic instead of returning an error — see internal/pan. Cache misses are
// never errors; they are nil return values (spec §7).
package errors

import (
	internal "github.com/ehabhussein/qbdi/internal/errors"
)

// New constructs a ManagerError-flavored error with a plain message.
func New(text string) error { return internal.ManagerError(text) }

// Newf constructs a ManagerError-flavored error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return internal.ManagerErrorf(format, args...)
}

// Wrap attaches a message to a lower-level cause while preserving it for
// xerrors.Is/As.
func Wrap(cause error, text string) error { return internal.WrapManagerError(cause, text) }
