//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package apps

import (
	"time"

	"github.com/markkurossi/os3/kernel"
	"github.com/markkurossi/os3/user"
)

func taskinfo(env *kernel.Env) int32 {
	t1, _ := user.GetTimeMs(env)
	user.GetTimeMs(env)
	if err := user.Sleep(env, 500*time.Millisecond); err != nil {
		return failf(env, "sleep: %v", err)
	}
	t2, _ := user.GetTimeMs(env)
	info, err := user.TaskInfo(env)
	if err != nil {
		return failf(env, "task_info: %v", err)
	}
	t3, _ := user.GetTimeMs(env)

	if c := info.Count(kernel.SysGetTime); c < 3 {
		return failf(env, "get_time=%d, expected >= 3", c)
	}
	if c := info.Count(kernel.SysTaskInfo); c != 1 {
		return failf(env, "task_info=%d, expected 1", c)
	}
	if c := info.Count(kernel.SysWrite); c != 0 {
		return failf(env, "write=%d, expected 0", c)
	}
	if c := info.Count(kernel.SysYield); c == 0 {
		return failf(env, "yield=0, expected > 0")
	}
	if c := info.Count(kernel.SysExit); c != 0 {
		return failf(env, "exit=%d, expected 0", c)
	}
	if t2-t1 > info.Time+1 {
		return failf(env, "time %d ms, slept %d ms", info.Time, t2-t1)
	}
	if info.Time >= t3-t1+100 {
		return failf(env, "time %d ms, elapsed %d ms", info.Time, t3-t1)
	}
	if info.Status != kernel.Running {
		return failf(env, "status %v, expected %v", info.Status,
			kernel.Running)
	}

	user.Println(env, "string from task info test")

	t4, _ := user.GetTimeMs(env)
	info, err = user.TaskInfo(env)
	if err != nil {
		return failf(env, "task_info: %v", err)
	}
	t5, _ := user.GetTimeMs(env)

	if c := info.Count(kernel.SysGetTime); c < 5 {
		return failf(env, "get_time=%d, expected >= 5", c)
	}
	if c := info.Count(kernel.SysTaskInfo); c != 2 {
		return failf(env, "task_info=%d, expected 2", c)
	}
	if c := info.Count(kernel.SysWrite); c != 1 {
		return failf(env, "write=%d, expected 1", c)
	}
	if c := info.Count(kernel.SysExit); c != 0 {
		return failf(env, "exit=%d, expected 0", c)
	}
	if t4-t1 > info.Time+1 {
		return failf(env, "time %d ms, elapsed %d ms", info.Time, t4-t1)
	}
	if info.Time >= t5-t1+100 {
		return failf(env, "time %d ms, elapsed %d ms", info.Time, t5-t1)
	}

	user.Println(env, "Test task info OK!")
	return 0
}
