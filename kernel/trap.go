//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
)

// Registers used by the system call convention.
const (
	RegA0 = 10
	RegA1 = 11
	RegA2 = 12
	RegA7 = 17
)

// TrapFrame holds the user registers saved on a trap.
type TrapFrame struct {
	X    [32]uint64
	Sepc uint64
}

// SyscallID returns the system call number of the trap.
func (tf *TrapFrame) SyscallID() uint64 {
	return tf.X[RegA7]
}

// Arg returns the system call argument i.
func (tf *TrapFrame) Arg(i int) uint64 {
	return tf.X[RegA0+i]
}

// SetResult stores the system call result.
func (tf *TrapFrame) SetResult(ret int64) {
	tf.X[RegA0] = uint64(ret)
}

func (tf *TrapFrame) String() string {
	return fmt.Sprintf("id=%d, a0=%x, a1=%x, a2=%x, sepc=%x",
		tf.X[RegA7], tf.X[RegA0], tf.X[RegA1], tf.X[RegA2], tf.Sepc)
}

// Env is the user-mode execution environment of a task. The only way
// from Env into the kernel is Ecall.
type Env struct {
	kern *Kernel
	task *Task
	pc   uint64
}

// TaskID returns the ID of the task running in the environment.
func (env *Env) TaskID() TaskID {
	return env.task.id
}

// Memory returns the user address space of the task.
func (env *Env) Memory() *AddressSpace {
	return env.task.mem
}

// Ecall traps into the kernel with the system call id and arguments
// a0, a1, and a2 and returns the result from register a0. The exit
// system call does not return.
func (env *Env) Ecall(id, a0, a1, a2 uint64) int64 {
	var tf TrapFrame
	tf.X[RegA7] = id
	tf.X[RegA0] = a0
	tf.X[RegA1] = a1
	tf.X[RegA2] = a2
	tf.Sepc = env.pc

	env.kern.trap(env.task, &tf)

	env.pc = tf.Sepc
	return int64(tf.X[RegA0])
}
