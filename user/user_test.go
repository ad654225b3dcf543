//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package user

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/markkurossi/os3/kernel"
)

func runApp(t *testing.T, params *kernel.Params,
	main func(env *kernel.Env) int32) *kernel.Kernel {

	t.Helper()

	if params.Logger == nil {
		params.Logger = zaptest.NewLogger(t)
	}
	if params.Clock == nil {
		params.Clock = kernel.NewManualClock(0, 100)
	}
	kern, err := kernel.New(params)
	require.NoError(t, err)

	_, err = kern.Load(&kernel.Program{
		Name: t.Name(),
		Main: main,
	})
	require.NoError(t, err)

	_, err = kern.Run()
	require.NoError(t, err)

	return kern
}

func TestPrintf(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var n int
	var err error

	runApp(t, &kernel.Params{
		Stdout: &stdout,
		Stderr: &stderr,
	}, func(env *kernel.Env) int32 {
		n, err = Printf(env, "Hello, %s!\n", "world")
		Println(env, "power", 3)
		NewConsole(env, Stderr).Write([]byte("error\n"))
		return 0
	})

	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Equal(t, "Hello, world!\npower 3\n", stdout.String())
	assert.Equal(t, "error\n", stderr.String())
}

func TestWriteErrors(t *testing.T) {
	var errs [2]error
	var n int

	runApp(t, &kernel.Params{}, func(env *kernel.Env) int32 {
		_, errs[0] = Write(env, 42, []byte("data"))
		_, errs[1] = NewConsole(env, 7).Write([]byte("x"))
		n, _ = Write(env, Stdout, nil)
		return 0
	})

	for _, err := range errs {
		assert.True(t, errors.Is(err, kernel.EBADF), "err=%v", err)
	}
	assert.Equal(t, 0, n)
}

func TestTaskInfo(t *testing.T) {
	var ti *kernel.TaskInfo
	var tv kernel.TimeVal
	var err error

	runApp(t, &kernel.Params{
		Clock: kernel.NewManualClock(5_000_000, 0),
	}, func(env *kernel.Env) int32 {
		tv, err = GetTime(env)
		if err != nil {
			return 1
		}
		Yield(env)
		ti, err = TaskInfo(env)
		return 0
	})

	require.NoError(t, err)
	assert.Equal(t, kernel.TimeVal{Sec: 5}, tv)
	assert.Equal(t, kernel.Running, ti.Status)
	assert.Equal(t, uint32(1), ti.Count(kernel.SysGetTime))
	assert.Equal(t, uint32(1), ti.Count(kernel.SysYield))
	assert.Equal(t, uint32(1), ti.Count(kernel.SysTaskInfo))
	assert.Equal(t, uint64(0), ti.Time)
}

func TestSleep(t *testing.T) {
	var start, end uint64
	var err error

	runApp(t, &kernel.Params{}, func(env *kernel.Env) int32 {
		start, _ = GetTimeMs(env)
		err = Sleep(env, 30*time.Millisecond)
		end, _ = GetTimeMs(env)
		return 0
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, end-start, uint64(30))
}

func TestExit(t *testing.T) {
	var reached bool

	kern := runApp(t, &kernel.Params{}, func(env *kernel.Env) int32 {
		Exit(env, 3)
		reached = true
		return 0
	})

	assert.False(t, reached)
	stat, ok := kern.Task(0)
	require.True(t, ok)
	assert.Equal(t, kernel.Exited, stat.Status)
	assert.Equal(t, int32(3), stat.ExitCode)
}

func TestStackRestored(t *testing.T) {
	var before, after uint64

	runApp(t, &kernel.Params{}, func(env *kernel.Env) int32 {
		before = env.Memory().SP()
		GetTime(env)
		TaskInfo(env)
		Printf(env, "%d\n", 42)
		after = env.Memory().SP()
		return 0
	})

	assert.Equal(t, before, after)
	assert.Equal(t, uint64(kernel.UserStackTop), before)
}
