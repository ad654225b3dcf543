//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
)

type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

var fdWriteTests = []struct {
	fd     FD
	data   string
	result int64
}{
	{
		fd:     NewWriterFD(new(bytes.Buffer)),
		data:   "hello",
		result: 5,
	},
	{
		fd:     NewWriterFD(nil),
		data:   "discarded",
		result: 9,
	},
	{
		fd:     NewDevNullFD(),
		data:   "",
		result: 0,
	},
	{
		fd:     NewWriterFD(&failWriter{err: os.ErrClosed}),
		data:   "closed",
		result: EBADF.Ret(),
	},
	{
		fd:     NewWriterFD(&failWriter{err: io.ErrShortWrite}),
		data:   "short",
		result: EINVAL.Ret(),
	},
	{
		fd:     NewWriterFD(&failWriter{err: EPERM}),
		data:   "denied",
		result: EPERM.Ret(),
	},
	{
		fd: NewWriterFD(&failWriter{
			err: errors.Join(errors.New("device"), EFAULT),
		}),
		data:   "wrapped",
		result: EFAULT.Ret(),
	},
}

func TestFDWrite(t *testing.T) {
	for idx, test := range fdWriteTests {
		ret := test.fd.Write([]byte(test.data))
		if ret != test.result {
			t.Errorf("test%d: got %v, expected %v", idx, ret, test.result)
		}
	}
}
