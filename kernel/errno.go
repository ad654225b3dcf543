//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Errno defines error numbers.
type Errno int32

// Error numbers.
const (
	EPERM  Errno = 1
	EBADF  Errno = 9
	EFAULT Errno = 14
	EINVAL Errno = 22
	ENOSYS Errno = 38
)

func (err Errno) String() string {
	name, ok := errnoNames[err]
	if ok {
		desc, ok := errnoDescriptions[err]
		if ok {
			return name + " " + desc
		}
		return name
	}
	return fmt.Sprintf("{Errno %d}", err)
}

// Error implements the error interface.
func (err Errno) Error() string {
	return err.String()
}

// Description returns a short description about the error code.
func (err Errno) Description() string {
	desc, ok := errnoDescriptions[err]
	if ok {
		return desc
	}
	return fmt.Sprintf("{Errno %d}", err)
}

// Ret returns the negative syscall return value of the error code.
func (err Errno) Ret() int64 {
	return -int64(err)
}

var errnoNames = map[Errno]string{
	EPERM:  "EPERM",
	EBADF:  "EBADF",
	EFAULT: "EFAULT",
	EINVAL: "EINVAL",
	ENOSYS: "ENOSYS",
}

var errnoDescriptions = map[Errno]string{
	EPERM:  "Operation not permitted",
	EBADF:  "Bad file descriptor",
	EFAULT: "Bad address",
	EINVAL: "Invalid argument",
	ENOSYS: "Function not implemented",
}

// mapError maps the error to a negative syscall return value.
func mapError(err error) int64 {
	if err == nil {
		return 0
	}
	var errno Errno
	if errors.As(err, &errno) {
		return errno.Ret()
	}
	var perr *fs.PathError
	if errors.As(err, &perr) || errors.Is(err, io.EOF) ||
		errors.Is(err, fs.ErrClosed) {
		return EBADF.Ret()
	}
	return EINVAL.Ret()
}
