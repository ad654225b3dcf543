//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"runtime"

	"go.uber.org/zap"
)

// suspendCurrentAndRunNext moves the current task t to Ready and runs
// the next Ready task. It returns when t is selected again.
func (kern *Kernel) suspendCurrentAndRunNext(t *Task) {
	now := kern.clock.NowMicros()

	kern.tasks.m.Lock()
	kern.tasks.leave(t, Ready, now)
	next := kern.tasks.findNext()
	first := kern.tasks.switchTo(next, now)
	kern.tasks.m.Unlock()

	if next == t {
		return
	}
	kern.run(next, first)
	kern.park(t)
}

// exitCurrentAndRunNext marks the current task t Exited and runs the
// next Ready task. If no task is Ready, the machine halts. It never
// returns: the calling task goroutine terminates.
func (kern *Kernel) exitCurrentAndRunNext(t *Task, code int32) {
	now := kern.clock.NowMicros()

	kern.tasks.m.Lock()
	kern.tasks.leave(t, Exited, now)
	t.exitCode = code
	next := kern.tasks.findNext()
	var first bool
	if next != nil {
		first = kern.tasks.switchTo(next, now)
	} else {
		kern.tasks.current = -1
	}
	kern.tasks.m.Unlock()

	kern.ktraceExit(t)

	if next == nil {
		kern.log.Info("all applications completed", zap.Uint64("time", now))
		kern.halt(&Halt{
			Reason: HaltAllExited,
			Time:   now,
		})
	} else {
		kern.run(next, first)
	}
	runtime.Goexit()
}

// run transfers the CPU to the task t that was just switched to
// Running.
func (kern *Kernel) run(t *Task, first bool) {
	kern.metrics.switched(t)
	if kern.params.Verbose {
		kern.log.Debug("switch", taskFields(t)...)
	}
	if first {
		go kern.runTask(t)
		return
	}
	t.resume <- struct{}{}
}

// park blocks the task t until it is resumed. If the machine halts
// while t is parked, the task goroutine terminates.
func (kern *Kernel) park(t *Task) {
	select {
	case <-t.resume:
	case <-kern.done:
		runtime.Goexit()
	}
}

// runTask is the body of a task goroutine.
func (kern *Kernel) runTask(t *Task) {
	env := &Env{
		kern: kern,
		task: t,
	}
	defer func() {
		r := recover()
		if kern.halted() {
			return
		}
		if p, ok := r.(*KernelPanic); ok {
			kern.kernelPanic(t, p)
			return
		}
		if r == nil && kern.tasks.status(t) == Exited {
			return
		}
		// The program panicked or terminated without exit.
		kern.log.Error("application fault, kernel killed it",
			append(taskFields(t), zap.Any("fault", r))...)
		kern.exitCurrentAndRunNext(t, -1)
	}()

	code := t.prog.Main(env)
	env.Ecall(uint64(SysExit), uint64(int64(code)), 0, 0)
}

func taskFields(t *Task) []zap.Field {
	return []zap.Field{
		zap.Int("task", int(t.id)),
		zap.String("app", t.prog.Name),
	}
}
