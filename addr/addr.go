// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package addr defines the guest address space the manager indexes: a
// concrete unsigned integer type plus half-open ranges and range sets over
// it (spec §3). Addresses are raw guest-code pointers, never owning
// references (spec §9) — the manager stores them as plain integers.
package addr

// Address is a guest instruction pointer (spec's rword): an unsigned
// integer wide enough to hold a pointer in the guest process. Modeled as a
// concrete type, not a generic parameter, matching the teacher's
// meta.TextAddr / object.TextAddr style.
type Address uint64
