//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"io"
)

// FDWriter implements FDs writing to an io.Writer.
type FDWriter struct {
	w io.Writer
}

// NewWriterFD creates a new FD for the writer. A nil writer creates a
// null FD.
func NewWriterFD(w io.Writer) FD {
	if w == nil {
		return NewDevNullFD()
	}
	return &FDWriter{
		w: w,
	}
}

// Write implements FD.Write.
func (fd *FDWriter) Write(b []byte) int64 {
	n, err := fd.w.Write(b)
	if err != nil {
		return mapError(err)
	}
	return int64(n)
}
