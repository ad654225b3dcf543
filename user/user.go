//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package user implements the user library of os3 applications. The
// functions issue system calls from the environment of the calling
// task.
package user

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/os3/kernel"
)

// Standard file descriptors.
const (
	Stdout = kernel.FDStdout
	Stderr = kernel.FDStderr
)

func result(ret int64) (int, error) {
	if ret < 0 {
		return 0, kernel.Errno(-ret)
	}
	return int(ret), nil
}

// alloca allocates size bytes from the task stack for the duration of
// f.
func alloca(env *kernel.Env, size, align uint64,
	f func(mem *kernel.AddressSpace, addr uint64) error) error {

	mem := env.Memory()
	sp := mem.SP()
	defer mem.SetSP(sp)

	addr, err := mem.Alloca(size, align)
	if err != nil {
		return err
	}
	return f(mem, addr)
}

// Write writes data to the file descriptor fd.
func Write(env *kernel.Env, fd uint64, data []byte) (int, error) {
	if len(data) == 0 {
		return result(env.Ecall(uint64(kernel.SysWrite), fd, 0, 0))
	}
	var n int
	err := alloca(env, uint64(len(data)), 1,
		func(mem *kernel.AddressSpace, addr uint64) error {
			err := mem.Store(addr, data)
			if err != nil {
				return err
			}
			n, err = result(env.Ecall(uint64(kernel.SysWrite), fd, addr,
				uint64(len(data))))
			return err
		})
	return n, err
}

// Exit terminates the calling task with the exit code. It does not
// return.
func Exit(env *kernel.Env, code int32) {
	env.Ecall(uint64(kernel.SysExit), uint64(int64(code)), 0, 0)
	panic("exit returned")
}

// Yield gives up the CPU to the next ready task.
func Yield(env *kernel.Env) error {
	_, err := result(env.Ecall(uint64(kernel.SysYield), 0, 0, 0))
	return err
}

// GetTime returns the current time.
func GetTime(env *kernel.Env) (kernel.TimeVal, error) {
	var tv kernel.TimeVal
	err := alloca(env, kernel.TimeValSize, 8,
		func(mem *kernel.AddressSpace, addr uint64) error {
			_, err := result(env.Ecall(uint64(kernel.SysGetTime), addr, 0, 0))
			if err != nil {
				return err
			}
			data, err := mem.Load(addr, kernel.TimeValSize)
			if err != nil {
				return err
			}
			return tv.UnmarshalFrom(data)
		})
	return tv, err
}

// GetTimeMs returns the current time in milliseconds.
func GetTimeMs(env *kernel.Env) (uint64, error) {
	tv, err := GetTime(env)
	if err != nil {
		return 0, err
	}
	return tv.Millis(), nil
}

// TaskInfo returns the information record of the calling task.
func TaskInfo(env *kernel.Env) (*kernel.TaskInfo, error) {
	ti := new(kernel.TaskInfo)
	err := alloca(env, kernel.TaskInfoSize, 8,
		func(mem *kernel.AddressSpace, addr uint64) error {
			_, err := result(env.Ecall(uint64(kernel.SysTaskInfo), addr, 0, 0))
			if err != nil {
				return err
			}
			data, err := mem.Load(addr, kernel.TaskInfoSize)
			if err != nil {
				return err
			}
			return ti.UnmarshalFrom(data)
		})
	if err != nil {
		return nil, err
	}
	return ti, nil
}

// Sleep yields the CPU until at least d has elapsed.
func Sleep(env *kernel.Env, d time.Duration) error {
	start, err := GetTimeMs(env)
	if err != nil {
		return err
	}
	wakeup := start + uint64(d.Milliseconds())
	for {
		now, err := GetTimeMs(env)
		if err != nil {
			return err
		}
		if now >= wakeup {
			return nil
		}
		if err := Yield(env); err != nil {
			return err
		}
	}
}

// Console implements io.Writer for a file descriptor of the task.
type Console struct {
	env *kernel.Env
	fd  uint64
}

// NewConsole creates a writer for the file descriptor fd.
func NewConsole(env *kernel.Env, fd uint64) *Console {
	return &Console{
		env: env,
		fd:  fd,
	}
}

// Write implements io.Writer.Write.
func (c *Console) Write(p []byte) (int, error) {
	n, err := Write(c.env, c.fd, p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Printf formats according to a format specifier and writes to the
// standard output.
func Printf(env *kernel.Env, format string, a ...interface{}) (int, error) {
	return fmt.Fprintf(NewConsole(env, Stdout), format, a...)
}

// Println formats its operands and writes them to the standard output
// followed by a newline.
func Println(env *kernel.Env, a ...interface{}) (int, error) {
	return fmt.Fprintln(NewConsole(env, Stdout), a...)
}
