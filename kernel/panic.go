//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// ErrKernelPanic is returned by Kernel.Run when the machine was halted
// by a kernel panic.
var ErrKernelPanic = errors.New("kernel panic")

// KernelPanic is the panic value of kernel invariant violations.
type KernelPanic struct {
	Message string
}

func (p *KernelPanic) Error() string {
	return "kernel panic: " + p.Message
}

func kpanic(format string, a ...interface{}) {
	panic(&KernelPanic{
		Message: fmt.Sprintf(format, a...),
	})
}

// PanicInfo contains details about a recovered kernel panic.
type PanicInfo struct {
	Task  TaskID
	Value interface{}
	Stack []byte
}

func newPanicInfo(id TaskID, v interface{}) *PanicInfo {
	return &PanicInfo{
		Task:  id,
		Value: v,
		Stack: debug.Stack(),
	}
}

// HaltReason defines why the machine halted.
type HaltReason int

// Halt reasons.
const (
	HaltAllExited HaltReason = iota
	HaltPanic
)

var haltReasons = map[HaltReason]string{
	HaltAllExited: "all applications completed",
	HaltPanic:     "kernel panic",
}

func (r HaltReason) String() string {
	name, ok := haltReasons[r]
	if ok {
		return name
	}
	return fmt.Sprintf("{HaltReason %d}", r)
}

// Halt describes the terminal state of the machine.
type Halt struct {
	Reason HaltReason
	Time   uint64
	Panic  *PanicInfo
}

// Failure tests if the machine halted because of a failure.
func (h *Halt) Failure() bool {
	return h.Reason != HaltAllExited
}

func (h *Halt) String() string {
	if h.Panic != nil {
		return fmt.Sprintf("%v: task %v: %v", h.Reason, h.Panic.Task,
			h.Panic.Value)
	}
	return h.Reason.String()
}
