//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package apps

import (
	"errors"

	"github.com/markkurossi/os3/kernel"
	"github.com/markkurossi/os3/user"
)

var badSyscalls = []uint64{0, 7, 63, 411, kernel.MaxSyscallNum, 1 << 32}

func badcall(env *kernel.Env) int32 {
	before, err := user.TaskInfo(env)
	if err != nil {
		return failf(env, "task_info: %v", err)
	}
	for _, id := range badSyscalls {
		ret := env.Ecall(id, 0, 0, 0)
		if ret != kernel.ENOSYS.Ret() {
			return failf(env, "syscall %d returned %d, expected %d",
				id, ret, kernel.ENOSYS.Ret())
		}
	}
	after, err := user.TaskInfo(env)
	if err != nil {
		return failf(env, "task_info: %v", err)
	}
	for _, call := range kernel.Syscalls {
		expected := before.Count(call)
		if call == kernel.SysTaskInfo {
			expected++
		}
		if after.Count(call) != expected {
			return failf(env, "%v=%d, expected %d", call, after.Count(call),
				expected)
		}
	}
	user.Println(env, "Test badcall OK!")
	return 0
}

func badptr(env *kernel.Env) int32 {
	addrs := []uint64{
		0,
		kernel.UserRodataBase,
		kernel.UserStackTop,
		kernel.UserStackTop - 8,
	}
	for _, addr := range addrs {
		ret := env.Ecall(uint64(kernel.SysGetTime), addr, 0, 0)
		if ret != kernel.EFAULT.Ret() {
			return failf(env, "get_time(0x%x) returned %d", addr, ret)
		}
		ret = env.Ecall(uint64(kernel.SysTaskInfo), addr, 0, 0)
		if ret != kernel.EFAULT.Ret() {
			return failf(env, "task_info(0x%x) returned %d", addr, ret)
		}
	}
	ret := env.Ecall(uint64(kernel.SysWrite), user.Stdout, 0x10, 8)
	if ret != kernel.EFAULT.Ret() {
		return failf(env, "write(0x10) returned %d", ret)
	}

	info, err := user.TaskInfo(env)
	if err != nil {
		return failf(env, "task_info: %v", err)
	}
	n := uint32(len(addrs))
	if info.Count(kernel.SysGetTime) != n ||
		info.Count(kernel.SysTaskInfo) != n+1 ||
		info.Count(kernel.SysWrite) != 1 {
		return failf(env, "failed calls not counted: %v %v %v",
			info.Count(kernel.SysGetTime), info.Count(kernel.SysTaskInfo),
			info.Count(kernel.SysWrite))
	}
	if _, err := user.Write(env, 5, []byte("x")); !errors.Is(err, kernel.EBADF) {
		return failf(env, "write(5): %v", err)
	}
	user.Println(env, "Test badptr OK!")
	return 0
}
