//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"fmt"
	"strings"
)

// MaxSyscallNum is the width of the syscall times table reported by
// the task_info system call.
const MaxSyscallNum = 500

// Syscall defines system calls. The values are the trap ABI numbers
// passed in register a7.
type Syscall uint16

func (call Syscall) String() string {
	name, ok := syscallNames[call]
	if ok {
		return name
	}
	return fmt.Sprintf("{Syscall %d}", call)
}

// System calls.
const (
	SysWrite    Syscall = 64
	SysExit     Syscall = 93
	SysYield    Syscall = 124
	SysGetTime  Syscall = 169
	SysTaskInfo Syscall = 410
)

var syscallNames = map[Syscall]string{
	SysWrite:    "write",
	SysExit:     "exit",
	SysYield:    "yield",
	SysGetTime:  "get_time",
	SysTaskInfo: "task_info",
}

// Syscalls lists all recognized system calls in ABI number order.
var Syscalls = []Syscall{
	SysWrite,
	SysExit,
	SysYield,
	SysGetTime,
	SysTaskInfo,
}

// LookupSyscall maps the trap number id to a recognized system call.
func LookupSyscall(id uint64) (Syscall, bool) {
	if id >= MaxSyscallNum {
		return 0, false
	}
	call := Syscall(id)
	_, ok := syscallNames[call]
	return call, ok
}

// ParseSyscall parses the system call name.
func ParseSyscall(name string) (Syscall, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for call, n := range syscallNames {
		if n == name {
			return call, nil
		}
	}
	return 0, fmt.Errorf("unknown syscall '%s'", name)
}

// Accounting slots of the recognized system calls.
const (
	slotWrite = iota
	slotExit
	slotYield
	slotGetTime
	slotTaskInfo
	numSlots
)

// slot returns the accounting slot of the system call. Every
// recognized system call has a slot; anything else means the caller
// bypassed LookupSyscall and the kernel state can't be trusted.
func (call Syscall) slot() int {
	switch call {
	case SysWrite:
		return slotWrite
	case SysExit:
		return slotExit
	case SysYield:
		return slotYield
	case SysGetTime:
		return slotGetTime
	case SysTaskInfo:
		return slotTaskInfo
	default:
		kpanic("syscall %v has no accounting slot", call)
		return -1
	}
}

// SyscallSet defines a set of system calls.
type SyscallSet uint8

// AllSyscalls contains all recognized system calls.
const AllSyscalls SyscallSet = 1<<numSlots - 1

// NewSyscallSet creates a set from the system calls.
func NewSyscallSet(calls ...Syscall) SyscallSet {
	var set SyscallSet
	for _, call := range calls {
		set = set.Add(call)
	}
	return set
}

// ParseSyscallSet parses a list of system call names. The name "all"
// selects every recognized system call.
func ParseSyscallSet(names []string) (SyscallSet, error) {
	var set SyscallSet
	for _, name := range names {
		if strings.TrimSpace(name) == "all" {
			set |= AllSyscalls
			continue
		}
		call, err := ParseSyscall(name)
		if err != nil {
			return 0, err
		}
		set = set.Add(call)
	}
	return set, nil
}

// Add returns a set that also contains call.
func (set SyscallSet) Add(call Syscall) SyscallSet {
	return set | 1<<call.slot()
}

// Has tests if call is in the set.
func (set SyscallSet) Has(call Syscall) bool {
	return set&(1<<call.slot()) != 0
}

// Names returns the names of the system calls in the set.
func (set SyscallSet) Names() []string {
	var result []string
	for _, call := range Syscalls {
		if set.Has(call) {
			result = append(result, call.String())
		}
	}
	return result
}

func (set SyscallSet) String() string {
	return "{" + strings.Join(set.Names(), ",") + "}"
}
