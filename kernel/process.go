//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"go.uber.org/zap"
)

// sysExit terminates the current task with the exit code in arg0.
func sysExit(kern *Kernel, t *Task, sys *syscall) int64 {
	code := int32(sys.args[0])
	kern.log.Info("application exited",
		append(taskFields(t), zap.Int32("code", code))...)

	kern.exitCurrentAndRunNext(t, code)
	kpanic("unreachable in sys_exit")
	return 0
}

// sysYield gives the CPU to the next Ready task.
func sysYield(kern *Kernel, t *Task, sys *syscall) int64 {
	kern.suspendCurrentAndRunNext(t)
	return 0
}

// sysGetTime stores the current time into the TimeVal at arg0. The
// timezone argument arg1 is ignored.
func sysGetTime(kern *Kernel, t *Task, sys *syscall) int64 {
	tv := NewTimeVal(kern.clock.NowMicros())
	sys.buf.Put(&tv)
	return 0
}

// sysTaskInfo stores the current task's status, system call counts,
// and elapsed time into the TaskInfo at arg0.
func sysTaskInfo(kern *Kernel, t *Task, sys *syscall) int64 {
	counters := kern.tasks.CurrentSyscallCounts()
	start := kern.tasks.CurrentStartTime()

	ti := &TaskInfo{
		Status:       kern.tasks.CurrentStatus(),
		SyscallTimes: counters.Table(),
	}
	now := kern.clock.NowMicros()
	if now > start {
		ti.Time = (now - start) / 1000
	}
	sys.buf.Put(ti)
	return 0
}
