// Copyright (c) 2026 The qbdi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"testing"

	stderrors "errors"

	"golang.org/x/xerrors"
)

type managerError interface {
	error
	ManagerError() bool
}

func TestManagerError(t *testing.T) {
	var _ = New("").(managerError)
	var _ = Newf("").(managerError)
	var _ = Wrap(stderrors.New("cause"), "").(managerError)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("zero capacity")
	err := Wrap(cause, "execblock: bad capacity")

	if !xerrors.Is(err, cause) {
		t.Errorf("Wrap(%v, ...) should unwrap to the cause", cause)
	}
}
