//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kernel implements the task-accounting system call kernel.
type Kernel struct {
	params  Params
	boot    uuid.UUID
	log     *zap.Logger
	trace   io.Writer
	clock   TimeSource
	tracked SyscallSet
	tasks   *TaskManager
	fds     map[uint64]FD
	metrics *metrics

	running  atomic.Bool
	done     chan struct{}
	haltOnce sync.Once
	haltInfo *Halt
}

// New creates a new kernel.
func New(params *Params) (*Kernel, error) {
	kern := &Kernel{
		boot: uuid.New(),
		done: make(chan struct{}),
	}
	if params != nil {
		kern.params = *params
	}

	logger := kern.params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	kern.log = logger.With(zap.String("boot", kern.boot.String()))

	kern.trace = kern.params.TraceOut
	if kern.trace == nil {
		kern.trace = os.Stdout
	}
	kern.clock = kern.params.Clock
	if kern.clock == nil {
		kern.clock = NewHostClock(DefaultClockFreq)
	}
	kern.tracked = kern.params.Tracked
	if kern.tracked == 0 {
		kern.tracked = AllSyscalls
	}
	kern.tasks = NewTaskManager(kern.params.MaxTasks)
	kern.fds = map[uint64]FD{
		FDStdout: NewWriterFD(kern.params.Stdout),
		FDStderr: NewWriterFD(kern.params.Stderr),
	}

	var err error
	kern.metrics, err = newMetrics(kern.params.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("kernel metrics: %w", err)
	}

	return kern, nil
}

// BootID returns the unique ID of this kernel instance.
func (kern *Kernel) BootID() uuid.UUID {
	return kern.boot
}

// Clock returns the kernel time source.
func (kern *Kernel) Clock() TimeSource {
	return kern.clock
}

// Tracked returns the set of counted system calls.
func (kern *Kernel) Tracked() SyscallSet {
	return kern.tracked
}

// Load creates a Ready task for the program.
func (kern *Kernel) Load(prog *Program) (TaskID, error) {
	if kern.running.Load() {
		return 0, errors.New("kernel already running")
	}
	t, err := kern.tasks.Add(prog, NewAddressSpace(kern.params.StackSize))
	if err != nil {
		return 0, err
	}
	kern.log.Debug("loaded application", taskFields(t)...)
	return t.id, nil
}

// Tasks returns the records of all tasks.
func (kern *Kernel) Tasks() []TaskStat {
	return kern.tasks.Snapshot()
}

// Task returns the record of the task id.
func (kern *Kernel) Task(id TaskID) (TaskStat, bool) {
	return kern.tasks.Stat(id)
}

// Run runs the loaded tasks until the machine halts. It returns the
// halt state. If the machine halted because of a kernel panic, the
// returned error wraps ErrKernelPanic.
func (kern *Kernel) Run() (*Halt, error) {
	if !kern.running.CompareAndSwap(false, true) {
		return nil, errors.New("kernel already running")
	}
	now := kern.clock.NowMicros()

	kern.tasks.m.Lock()
	first := kern.tasks.findNext()
	if first != nil {
		kern.tasks.switchTo(first, now)
	}
	n := len(kern.tasks.tasks)
	kern.tasks.m.Unlock()

	if first == nil {
		return nil, errors.New("no applications loaded")
	}
	kern.log.Info("starting", zap.Int("tasks", n),
		zap.Stringer("tracked", kern.tracked))

	kern.run(first, true)
	<-kern.done

	h := kern.haltInfo
	if h.Failure() {
		return h, fmt.Errorf("%w: %v", ErrKernelPanic, h)
	}
	return h, nil
}

// Done returns a channel that is closed when the machine halts.
func (kern *Kernel) Done() <-chan struct{} {
	return kern.done
}

func (kern *Kernel) halted() bool {
	select {
	case <-kern.done:
		return true
	default:
		return false
	}
}

func (kern *Kernel) halt(h *Halt) {
	kern.haltOnce.Do(func() {
		kern.haltInfo = h
		close(kern.done)
	})
}

func (kern *Kernel) kernelPanic(t *Task, p *KernelPanic) {
	info := newPanicInfo(t.id, p)
	kern.log.Error("kernel panic",
		append(taskFields(t), zap.String("panic", p.Message),
			zap.ByteString("stack", info.Stack))...)
	kern.halt(&Halt{
		Reason: HaltPanic,
		Time:   kern.clock.NowMicros(),
		Panic:  info,
	})
}
