//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"sync"
	"time"
)

// DefaultMaxTasks is the default task table size.
const DefaultMaxTasks = 16

// TaskManager holds the task records and selects the running task.
// Only the record of the current task is modified from the system
// call path.
type TaskManager struct {
	m        sync.Mutex
	tasks    []*Task
	current  int
	maxTasks int
}

// NewTaskManager creates a task manager for up to maxTasks tasks.
func NewTaskManager(maxTasks int) *TaskManager {
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}
	return &TaskManager{
		current:  -1,
		maxTasks: maxTasks,
	}
}

// Add creates a Ready task for the program.
func (tm *TaskManager) Add(prog *Program, mem *AddressSpace) (*Task, error) {
	if err := prog.Validate(); err != nil {
		return nil, err
	}
	tm.m.Lock()
	defer tm.m.Unlock()

	if len(tm.tasks) >= tm.maxTasks {
		return nil, fmt.Errorf("task table full: %d tasks", tm.maxTasks)
	}
	t := &Task{
		id:     TaskID(len(tm.tasks)),
		prog:   prog,
		status: UnInit,
		mem:    mem,
		resume: make(chan struct{}, 1),
	}
	t.status = Ready
	tm.tasks = append(tm.tasks, t)

	return t, nil
}

// Len returns the number of tasks.
func (tm *TaskManager) Len() int {
	tm.m.Lock()
	defer tm.m.Unlock()
	return len(tm.tasks)
}

func (tm *TaskManager) currentTask() *Task {
	if tm.current < 0 {
		return nil
	}
	return tm.tasks[tm.current]
}

// CurrentStatus returns the status of the current task.
func (tm *TaskManager) CurrentStatus() TaskStatus {
	tm.m.Lock()
	defer tm.m.Unlock()

	t := tm.currentTask()
	if t == nil {
		return UnInit
	}
	return t.status
}

// CurrentStartTime returns the time when the current task first
// became Running.
func (tm *TaskManager) CurrentStartTime() uint64 {
	tm.m.Lock()
	defer tm.m.Unlock()

	t := tm.currentTask()
	if t == nil {
		return 0
	}
	return t.startTime
}

// CurrentSyscallCounts returns a copy of the current task's system
// call counters.
func (tm *TaskManager) CurrentSyscallCounts() SyscallCounters {
	tm.m.Lock()
	defer tm.m.Unlock()

	t := tm.currentTask()
	if t == nil {
		return SyscallCounters{}
	}
	return t.counters
}

// Snapshot returns the records of all tasks.
func (tm *TaskManager) Snapshot() []TaskStat {
	tm.m.Lock()
	defer tm.m.Unlock()

	result := make([]TaskStat, 0, len(tm.tasks))
	for _, t := range tm.tasks {
		result = append(result, t.stat())
	}
	return result
}

// Stat returns the record of the task id.
func (tm *TaskManager) Stat(id TaskID) (TaskStat, bool) {
	tm.m.Lock()
	defer tm.m.Unlock()

	if id < 0 || int(id) >= len(tm.tasks) {
		return TaskStat{}, false
	}
	return tm.tasks[id].stat(), true
}

func (tm *TaskManager) isCurrent(t *Task) bool {
	tm.m.Lock()
	defer tm.m.Unlock()

	return tm.current == int(t.id) && t.status == Running
}

func (tm *TaskManager) status(t *Task) TaskStatus {
	tm.m.Lock()
	defer tm.m.Unlock()

	return t.status
}

func (tm *TaskManager) countSyscall(t *Task, call Syscall) {
	slot := call.slot()

	tm.m.Lock()
	t.counters[slot]++
	tm.m.Unlock()
}

// findNext returns the next Ready task after the current one, or nil
// if no task is Ready. The caller must hold the lock.
func (tm *TaskManager) findNext() *Task {
	n := len(tm.tasks)
	for i := 1; i <= n; i++ {
		idx := (tm.current + i) % n
		if tm.tasks[idx].status == Ready {
			return tm.tasks[idx]
		}
	}
	return nil
}

// leave moves the current task t out of Running. The caller must hold
// the lock.
func (tm *TaskManager) leave(t *Task, st TaskStatus, now uint64) {
	if now > t.lastRun {
		t.rusage.Rtime += time.Duration(now-t.lastRun) * time.Microsecond
	}
	t.status = st
}

// switchTo makes t the current Running task and reports if this was
// its first dispatch. The caller must hold the lock.
func (tm *TaskManager) switchTo(t *Task, now uint64) bool {
	first := !t.started
	if first {
		t.started = true
		t.startTime = now
	}
	t.lastRun = now
	t.status = Running
	t.rusage.Dispatches++
	tm.current = int(t.id)

	return first
}
