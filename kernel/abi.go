//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"encoding/binary"
	"fmt"
)

var bo = binary.LittleEndian

// Marshaler is implemented by values that are copied into user
// memory.
type Marshaler interface {
	// Size returns the encoded size of the value.
	Size() int
	// MarshalTo encodes the value into b which is at least Size()
	// bytes long.
	MarshalTo(b []byte)
}

// TimeValSize is the encoded size of TimeVal.
const TimeValSize = 16

// TimeVal defines the get_time output: {sec, usec}, both machine
// words.
type TimeVal struct {
	Sec  uint64
	Usec uint64
}

// NewTimeVal splits the microsecond time us into seconds and
// microseconds.
func NewTimeVal(us uint64) TimeVal {
	return TimeVal{
		Sec:  us / MicrosPerSec,
		Usec: us % MicrosPerSec,
	}
}

// Micros returns the time value in microseconds.
func (tv TimeVal) Micros() uint64 {
	return tv.Sec*MicrosPerSec + tv.Usec
}

// Millis returns the time value in milliseconds.
func (tv TimeVal) Millis() uint64 {
	return tv.Sec*1000 + tv.Usec/1000
}

// Size implements Marshaler.Size.
func (tv *TimeVal) Size() int {
	return TimeValSize
}

// MarshalTo implements Marshaler.MarshalTo.
func (tv *TimeVal) MarshalTo(b []byte) {
	bo.PutUint64(b[0:], tv.Sec)
	bo.PutUint64(b[8:], tv.Usec)
}

// UnmarshalFrom decodes the time value from b.
func (tv *TimeVal) UnmarshalFrom(b []byte) error {
	if len(b) < TimeValSize {
		return fmt.Errorf("short TimeVal: %d bytes", len(b))
	}
	tv.Sec = bo.Uint64(b[0:])
	tv.Usec = bo.Uint64(b[8:])
	return nil
}

func (tv TimeVal) String() string {
	return fmt.Sprintf("%d.%06d", tv.Sec, tv.Usec)
}

// TaskInfo layout: status u32, syscall_times [MaxSyscallNum]u32, 4
// bytes of padding, time u64.
const (
	taskInfoStatusOfs = 0
	taskInfoTimesOfs  = 4
	taskInfoTimeOfs   = (taskInfoTimesOfs + MaxSyscallNum*4 + 7) &^ 7

	// TaskInfoSize is the encoded size of TaskInfo.
	TaskInfoSize = taskInfoTimeOfs + 8
)

// TaskInfo defines the task_info output.
type TaskInfo struct {
	Status       TaskStatus
	SyscallTimes [MaxSyscallNum]uint32
	// Time is the wall time in milliseconds since the task first
	// became Running.
	Time uint64
}

// Size implements Marshaler.Size.
func (ti *TaskInfo) Size() int {
	return TaskInfoSize
}

// MarshalTo implements Marshaler.MarshalTo.
func (ti *TaskInfo) MarshalTo(b []byte) {
	bo.PutUint32(b[taskInfoStatusOfs:], uint32(ti.Status))
	for i, v := range ti.SyscallTimes {
		bo.PutUint32(b[taskInfoTimesOfs+i*4:], v)
	}
	clear(b[taskInfoTimesOfs+MaxSyscallNum*4 : taskInfoTimeOfs])
	bo.PutUint64(b[taskInfoTimeOfs:], ti.Time)
}

// UnmarshalFrom decodes the task info from b.
func (ti *TaskInfo) UnmarshalFrom(b []byte) error {
	if len(b) < TaskInfoSize {
		return fmt.Errorf("short TaskInfo: %d bytes", len(b))
	}
	ti.Status = TaskStatus(bo.Uint32(b[taskInfoStatusOfs:]))
	for i := range ti.SyscallTimes {
		ti.SyscallTimes[i] = bo.Uint32(b[taskInfoTimesOfs+i*4:])
	}
	ti.Time = bo.Uint64(b[taskInfoTimeOfs:])
	return nil
}

// Count returns the number of times call was invoked.
func (ti *TaskInfo) Count(call Syscall) uint32 {
	if int(call) >= len(ti.SyscallTimes) {
		return 0
	}
	return ti.SyscallTimes[call]
}
