// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pan wraps import.name/pan's panic/recover zone for the manager's
// contract checks (spec §7: invalid inputs "fail early with a contract
// violation signal, analogous to assert / precondition check").  Contract
// panics are not recovered inside the module: they propagate to the caller
// of the exported entry point that raised them, which may recover and turn
// them into an error via Error.
package pan

import (
	"import.name/pan"
)

var z = new(pan.Zone)

// Check panics with err's Zone wrapping if err is non-nil.
var Check = z.Check

// Panic raises x as a contract violation within this Zone.
var Panic = z.Panic

// Wrap attaches contextual text to a recovered value without losing it.
var Wrap = z.Wrap

// Error turns a recover() result into an error, or nil if x was nil.
// Runtime errors (nil dereference, index out of range, ...) are never
// contract violations this zone owns, so Zone.Error re-panics on those.
func Error(x any) error {
	return z.Error(x)
}

// Must panics via Check if err is non-nil, otherwise returns x.  It suits
// constructor calls whose only failure mode is itself a contract violation
// (e.g. a zero-capacity ExecBlock); no package in this module calls it.
func Must[T any](x T, err error) T {
	Check(err)
	return x
}
