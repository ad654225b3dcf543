//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"go.uber.org/zap"
)

// syscall holds the decoded arguments and the result of a system
// call.
type syscall struct {
	call Syscall
	pc   uint64
	args [3]uint64
	buf  UserBuffer
	ret  int64
}

// bufArg describes a user pointer argument that must be validated
// before the handler runs.
type bufArg struct {
	arg    int
	lenArg int
	size   uint64
	perm   Perm
}

func outBuf(arg int, size uint64) *bufArg {
	return &bufArg{
		arg:    arg,
		lenArg: -1,
		size:   size,
		perm:   PermW,
	}
}

func inBuf(arg, lenArg int) *bufArg {
	return &bufArg{
		arg:    arg,
		lenArg: lenArg,
		perm:   PermR,
	}
}

type sysentry struct {
	nargs int
	buf   *bufArg
	impl  func(kern *Kernel, t *Task, sys *syscall) int64
}

var sysent map[Syscall]sysentry

func init() {
	sysent = map[Syscall]sysentry{
		SysWrite:    {3, inBuf(1, 2), sysWrite},
		SysExit:     {1, nil, sysExit},
		SysYield:    {0, nil, sysYield},
		SysGetTime:  {2, outBuf(0, TimeValSize), sysGetTime},
		SysTaskInfo: {1, outBuf(0, TaskInfoSize), sysTaskInfo},
	}
}

// trap handles a user-mode environment call from the task t.
func (kern *Kernel) trap(t *Task, tf *TrapFrame) {
	tf.Sepc += 4
	tf.SetResult(kern.dispatch(t, tf))
}

// dispatch accounts the system call against the task t and runs its
// handler. The call is counted before its arguments are validated and
// before the handler runs.
func (kern *Kernel) dispatch(t *Task, tf *TrapFrame) int64 {
	if !kern.tasks.isCurrent(t) {
		kpanic("trap from task %d which is not running", t.id)
	}

	id := tf.SyscallID()
	call, ok := LookupSyscall(id)
	if !ok {
		kern.metrics.unknown(id)
		kern.log.Warn("unsupported syscall",
			append(taskFields(t), zap.Uint64("id", id))...)
		kern.ktraceUnknown(t, tf)
		return ENOSYS.Ret()
	}
	if kern.tracked.Has(call) {
		kern.tasks.countSyscall(t, call)
	}
	kern.metrics.syscall(call)

	entry := sysent[call]
	sys := &syscall{
		call: call,
		pc:   tf.Sepc,
	}
	for i := 0; i < entry.nargs; i++ {
		sys.args[i] = tf.Arg(i)
	}
	kern.ktraceCall(t, sys)

	if entry.buf != nil {
		err := kern.validate(t, entry.buf, sys)
		if err != nil {
			if kern.params.Verbose {
				kern.log.Debug("invalid user pointer",
					append(taskFields(t), zap.Stringer("syscall", call),
						zap.Error(err))...)
			}
			sys.ret = mapError(err)
			kern.ktraceRet(t, sys)
			return sys.ret
		}
	}

	sys.ret = entry.impl(kern, t, sys)
	kern.ktraceRet(t, sys)

	return sys.ret
}

// validate translates the user pointer argument of the system call.
func (kern *Kernel) validate(t *Task, arg *bufArg, sys *syscall) error {
	size := arg.size
	if arg.lenArg >= 0 {
		size = sys.args[arg.lenArg]
		if size == 0 {
			return nil
		}
	}
	buf, err := t.mem.Translate(sys.args[arg.arg], size, arg.perm)
	if err != nil {
		return err
	}
	sys.buf = buf
	return nil
}
