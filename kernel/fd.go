//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

// Standard file descriptors.
const (
	FDStdout = 1
	FDStderr = 2
)

// FD implements a file descriptor.
type FD interface {
	Write(b []byte) int64
}

var (
	_ FD = &FDWriter{}
	_ FD = &FDDevNull{}
)
