//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"sync/atomic"
	"time"
)

const (
	// MicrosPerSec is the number of microseconds in a second.
	MicrosPerSec = 1_000_000

	// DefaultClockFreq is the default cycle counter frequency. It
	// matches the timebase of the QEMU virt machine.
	DefaultClockFreq = 12_500_000
)

// TimeSource provides the kernel time in microseconds. The time is
// monotonically non-decreasing.
type TimeSource interface {
	NowMicros() uint64
}

// CycleCounter is a free-running hardware cycle counter.
type CycleCounter interface {
	Cycles() uint64
}

// CycleClock converts cycle counter values into microseconds.
type CycleClock struct {
	counter CycleCounter
	perUsec uint64
}

// NewCycleClock creates a clock for the counter running at freq
// cycles per second. The frequency must be at least 1MHz.
func NewCycleClock(counter CycleCounter, freq uint64) *CycleClock {
	if freq < MicrosPerSec {
		kpanic("clock frequency %v below 1MHz", freq)
	}
	return &CycleClock{
		counter: counter,
		perUsec: freq / MicrosPerSec,
	}
}

// NowMicros implements TimeSource.NowMicros.
func (c *CycleClock) NowMicros() uint64 {
	return c.counter.Cycles() / c.perUsec
}

// HostCounter implements a cycle counter on top of the host monotonic
// clock.
type HostCounter struct {
	boot time.Time
	freq uint64
}

// NewHostCounter creates a counter ticking at freq cycles per second.
func NewHostCounter(freq uint64) *HostCounter {
	return &HostCounter{
		boot: time.Now(),
		freq: freq,
	}
}

// Cycles implements CycleCounter.Cycles.
func (c *HostCounter) Cycles() uint64 {
	ns := uint64(time.Since(c.boot).Nanoseconds())
	const nsPerSec = uint64(time.Second)

	return ns/nsPerSec*c.freq + ns%nsPerSec*c.freq/nsPerSec
}

// NewHostClock creates a cycle clock over a host counter running at
// freq.
func NewHostClock(freq uint64) *CycleClock {
	return NewCycleClock(NewHostCounter(freq), freq)
}

// ManualClock is a time source controlled by its user. If step is
// non-zero, every reading advances the clock by step microseconds
// after returning the current value.
type ManualClock struct {
	now  atomic.Uint64
	step uint64
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start, step uint64) *ManualClock {
	c := &ManualClock{
		step: step,
	}
	c.now.Store(start)
	return c
}

// NowMicros implements TimeSource.NowMicros.
func (c *ManualClock) NowMicros() uint64 {
	if c.step == 0 {
		return c.now.Load()
	}
	return c.now.Add(c.step) - c.step
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now.Add(uint64(d.Microseconds()))
	}
}
