// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer implements the fixed-capacity host-memory slab that backs
// execblock.HostBlock.
package buffer

type sizeError string

func (s sizeError) Error() string           { return string(s) }
func (s sizeError) ManagerError() string    { return string(s) }
func (s sizeError) BufferSizeLimit() string { return string(s) }

// ErrSizeLimit is panicked by Static when a write doesn't fit in the
// remaining capacity.  ExecBlock capacity is fixed at construction time
// (spec §3), so unlike wag's buffer package this has no growable sibling.
var ErrSizeLimit = sizeError("buffer size limit exceeded")
