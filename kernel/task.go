//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"time"
)

// TaskID identifies a task.
type TaskID int

// TaskStatus defines task states.
type TaskStatus uint32

// Task states.
const (
	UnInit TaskStatus = iota
	Ready
	Running
	Exited
)

var statusNames = map[TaskStatus]string{
	UnInit:  "uninit",
	Ready:   "ready",
	Running: "running",
	Exited:  "exited",
}

func (st TaskStatus) String() string {
	name, ok := statusNames[st]
	if ok {
		return name
	}
	return fmt.Sprintf("{TaskStatus %d}", st)
}

// SyscallCounters counts system call invocations, one slot per
// recognized system call.
type SyscallCounters [numSlots]uint32

// Inc increments the counter of call.
func (c *SyscallCounters) Inc(call Syscall) {
	c[call.slot()]++
}

// Get returns the counter of call.
func (c *SyscallCounters) Get(call Syscall) uint32 {
	return c[call.slot()]
}

// Sum returns the total number of counted invocations.
func (c *SyscallCounters) Sum() uint64 {
	var sum uint64
	for _, v := range c {
		sum += uint64(v)
	}
	return sum
}

// Table expands the counters into a table indexed by the system call
// numbers.
func (c *SyscallCounters) Table() [MaxSyscallNum]uint32 {
	var table [MaxSyscallNum]uint32
	for _, call := range Syscalls {
		table[call] += c[call.slot()]
	}
	return table
}

// RUsage provides task resource usage information.
type RUsage struct {
	// Rtime is the time the task has spent Running.
	Rtime time.Duration
	// Dispatches is the number of times the task was switched to
	// Running.
	Dispatches uint64
}

// Add adds the argument RUsage data to this RUsage instance.
func (rusage *RUsage) Add(o RUsage) {
	rusage.Rtime += o.Rtime
	rusage.Dispatches += o.Dispatches
}

func (rusage RUsage) String() string {
	return fmt.Sprintf("rtime=%v dispatches=%v", rusage.Rtime,
		rusage.Dispatches)
}

// Task is the kernel record of a task.
type Task struct {
	id        TaskID
	prog      *Program
	status    TaskStatus
	started   bool
	startTime uint64
	lastRun   uint64
	counters  SyscallCounters
	exitCode  int32
	rusage    RUsage
	mem       *AddressSpace
	resume    chan struct{}
}

// ID returns the task ID.
func (t *Task) ID() TaskID {
	return t.id
}

// Name returns the task's program name.
func (t *Task) Name() string {
	return t.prog.Name
}

// TaskStat is a snapshot of a task record.
type TaskStat struct {
	ID        TaskID
	Name      string
	Status    TaskStatus
	Started   bool
	StartTime uint64
	Counters  SyscallCounters
	ExitCode  int32
	RUsage    RUsage
}

func (t *Task) stat() TaskStat {
	return TaskStat{
		ID:        t.id,
		Name:      t.prog.Name,
		Status:    t.status,
		Started:   t.started,
		StartTime: t.startTime,
		Counters:  t.counters,
		ExitCode:  t.exitCode,
		RUsage:    t.rusage,
	}
}
