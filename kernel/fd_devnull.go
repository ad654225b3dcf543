//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

// FDDevNull implements null FDs.
type FDDevNull struct {
}

// NewDevNullFD creates a null FD.
func NewDevNullFD() FD {
	return &FDDevNull{}
}

// Write implements FD.Write.
func (fd *FDDevNull) Write(b []byte) int64 {
	return int64(len(b))
}
