//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"strings"
)

func (kern *Kernel) ktracePrefix(t *Task, pc uint64) {
	fmt.Fprintf(kern.trace, "%3d %5x %-10s ", t.id, pc, t.prog.Name)
}

func (kern *Kernel) ktraceCall(t *Task, sys *syscall) {
	if !kern.params.Trace {
		return
	}
	kern.ktracePrefix(t, sys.pc)
	fmt.Fprintf(kern.trace, "CALL %s", sys.call)
	switch sys.call {
	case SysExit:
		fmt.Fprintf(kern.trace, "(%d)", int32(sys.args[0]))

	case SysWrite:
		fmt.Fprintf(kern.trace, "(%d, 0x%x, %d)",
			sys.args[0], sys.args[1], sys.args[2])

	case SysGetTime:
		fmt.Fprintf(kern.trace, "(0x%x, %d)", sys.args[0], sys.args[1])

	case SysTaskInfo:
		fmt.Fprintf(kern.trace, "(0x%x)", sys.args[0])

	case SysYield:
		fmt.Fprintf(kern.trace, "()")
	}
	fmt.Fprintln(kern.trace)
}

func (kern *Kernel) ktraceRet(t *Task, sys *syscall) {
	if !kern.params.Trace {
		return
	}
	kern.ktracePrefix(t, sys.pc)
	fmt.Fprintf(kern.trace, "RET  %s ", sys.call)
	if sys.ret < 0 {
		fmt.Fprintf(kern.trace, "%d %s", sys.ret, Errno(-sys.ret))
	} else {
		fmt.Fprintf(kern.trace, "%d", sys.ret)
	}
	fmt.Fprintln(kern.trace)
}

func (kern *Kernel) ktraceUnknown(t *Task, tf *TrapFrame) {
	if !kern.params.Trace {
		return
	}
	kern.ktracePrefix(t, tf.Sepc)
	fmt.Fprintf(kern.trace, "CALL %s(0x%x, 0x%x, 0x%x)\n",
		Syscall(tf.SyscallID()), tf.Arg(0), tf.Arg(1), tf.Arg(2))

	kern.ktracePrefix(t, tf.Sepc)
	fmt.Fprintf(kern.trace, "RET  %d %s\n", ENOSYS.Ret(), ENOSYS)
}

func (kern *Kernel) ktraceExit(t *Task) {
	if !kern.params.Trace {
		return
	}
	stat, _ := kern.tasks.Stat(t.id)

	kern.ktracePrefix(t, 0)
	fmt.Fprintf(kern.trace, "EXIT %v\n", stat.ExitCode)

	kern.ktracePrefix(t, 0)
	fmt.Fprintf(kern.trace, "RUSG %v\n", stat.RUsage)

	var counts []string
	for _, call := range Syscalls {
		counts = append(counts,
			fmt.Sprintf("%s=%d", call, stat.Counters.Get(call)))
	}
	kern.ktracePrefix(t, 0)
	fmt.Fprintf(kern.trace, "CNT  %s\n", strings.Join(counts, " "))
}
