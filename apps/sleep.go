//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package apps

import (
	"github.com/markkurossi/os3/kernel"
	"github.com/markkurossi/os3/user"
)

// SleepMillis is the time the sleep application waits.
const SleepMillis = 3000

func sleep(env *kernel.Env) int32 {
	start, err := user.GetTimeMs(env)
	if err != nil {
		return failf(env, "get_time: %v", err)
	}
	wakeup := start + SleepMillis
	for {
		now, err := user.GetTimeMs(env)
		if err != nil {
			return failf(env, "get_time: %v", err)
		}
		if now >= wakeup {
			break
		}
		user.Yield(env)
	}
	user.Println(env, "Test sleep OK!")
	return 0
}
