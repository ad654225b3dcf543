//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"
)

var mapErrorTests = []struct {
	err   error
	errno int64
}{
	{
		err:   nil,
		errno: 0,
	},
	{
		err:   EFAULT,
		errno: -14,
	},
	{
		err:   fmt.Errorf("translate 0x%x: %w", 0x1000, EFAULT),
		errno: -14,
	},
	{
		err:   io.EOF,
		errno: -9,
	},
	{
		err:   &fs.PathError{Op: "write", Path: "console", Err: fs.ErrClosed},
		errno: -9,
	},
	{
		err:   errors.New("something else"),
		errno: -22,
	},
}

func TestMapError(t *testing.T) {
	for i, test := range mapErrorTests {
		mapped := mapError(test.err)
		if mapped != test.errno {
			t.Errorf("test-%v: mapError(%v)=%v, expected %v\n",
				i, test.err, mapped, test.errno)
		}
	}
}

func TestErrnoString(t *testing.T) {
	if ENOSYS.String() != "ENOSYS Function not implemented" {
		t.Errorf("ENOSYS.String()=%q", ENOSYS.String())
	}
	if Errno(99).String() != "{Errno 99}" {
		t.Errorf("Errno(99).String()=%q", Errno(99).String())
	}
	if EBADF.Ret() != -9 {
		t.Errorf("EBADF.Ret()=%v, expected -9", EBADF.Ret())
	}
}
