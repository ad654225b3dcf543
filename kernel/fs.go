//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

// sysWrite writes arg2 bytes from the user buffer at arg1 to the file
// descriptor arg0.
func sysWrite(kern *Kernel, t *Task, sys *syscall) int64 {
	fd, ok := kern.fds[sys.args[0]]
	if !ok {
		return EBADF.Ret()
	}
	if sys.args[2] == 0 {
		return 0
	}
	return fd.Write(sys.buf.Bytes())
}
