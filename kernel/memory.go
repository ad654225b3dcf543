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

// Perm defines memory region permissions.
type Perm uint8

// Region permissions.
const (
	PermR Perm = 1 << iota
	PermW
)

func (p Perm) String() string {
	var sb strings.Builder
	if p&PermR != 0 {
		sb.WriteByte('r')
	} else {
		sb.WriteByte('-')
	}
	if p&PermW != 0 {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('-')
	}
	return sb.String()
}

// User address space layout.
const (
	UserRodataBase = 0x1000
	UserRodataSize = 0x1000
	UserStackTop   = 0x8000_0000

	// DefaultStackSize is the default size of the user stack region.
	DefaultStackSize = 64 * 1024
)

// Region is a contiguous range of user memory.
type Region struct {
	Name  string
	Start uint64
	Perm  Perm
	data  []byte
}

// End returns the first address after the region.
func (r *Region) End() uint64 {
	return r.Start + uint64(len(r.data))
}

func (r *Region) contains(addr, size uint64) bool {
	end := addr + size
	if end < addr {
		return false
	}
	return addr >= r.Start && end <= r.End()
}

func (r *Region) String() string {
	return fmt.Sprintf("%-7s %08x-%08x %v", r.Name, r.Start, r.End(), r.Perm)
}

// AddressSpace implements a task's user memory.
type AddressSpace struct {
	regions []*Region
	stack   *Region
	sp      uint64
}

// NewAddressSpace creates an address space with a read-only data
// region and a stackSize bytes stack below UserStackTop.
func NewAddressSpace(stackSize int) *AddressSpace {
	if stackSize <= 0 {
		stackSize = DefaultStackSize
	}
	rodata := &Region{
		Name:  "rodata",
		Start: UserRodataBase,
		Perm:  PermR,
		data:  make([]byte, UserRodataSize),
	}
	stack := &Region{
		Name:  "stack",
		Start: UserStackTop - uint64(stackSize),
		Perm:  PermR | PermW,
		data:  make([]byte, stackSize),
	}
	return &AddressSpace{
		regions: []*Region{rodata, stack},
		stack:   stack,
		sp:      UserStackTop,
	}
}

// Regions returns the regions of the address space.
func (as *AddressSpace) Regions() []*Region {
	return as.regions
}

func (as *AddressSpace) find(addr, size uint64) *Region {
	for _, r := range as.regions {
		if r.contains(addr, size) {
			return r
		}
	}
	return nil
}

// Translate validates that [addr, addr+size) is mapped with the
// permissions perm and returns a handle to it.
func (as *AddressSpace) Translate(addr, size uint64, perm Perm) (
	UserBuffer, error) {

	if addr == 0 {
		return UserBuffer{}, fmt.Errorf("null pointer: %w", EFAULT)
	}
	r := as.find(addr, size)
	if r == nil {
		return UserBuffer{}, fmt.Errorf("unmapped range 0x%x+%d: %w",
			addr, size, EFAULT)
	}
	if r.Perm&perm != perm {
		return UserBuffer{}, fmt.Errorf("%s 0x%x+%d: %v not permitted: %w",
			r.Name, addr, size, perm, EFAULT)
	}
	ofs := addr - r.Start
	return UserBuffer{
		Addr: addr,
		b:    r.data[ofs : ofs+size : ofs+size],
	}, nil
}

// Load reads size bytes from the user address addr.
func (as *AddressSpace) Load(addr, size uint64) ([]byte, error) {
	ub, err := as.Translate(addr, size, PermR)
	if err != nil {
		return nil, err
	}
	result := make([]byte, size)
	copy(result, ub.b)
	return result, nil
}

// Store writes data to the user address addr.
func (as *AddressSpace) Store(addr uint64, data []byte) error {
	ub, err := as.Translate(addr, uint64(len(data)), PermW)
	if err != nil {
		return err
	}
	copy(ub.b, data)
	return nil
}

// SP returns the user stack pointer.
func (as *AddressSpace) SP() uint64 {
	return as.sp
}

// SetSP sets the user stack pointer.
func (as *AddressSpace) SetSP(sp uint64) {
	as.sp = sp
}

// Alloca allocates size bytes from the user stack, aligned to align
// bytes, and returns the address of the allocation.
func (as *AddressSpace) Alloca(size, align uint64) (uint64, error) {
	if align == 0 || align&(align-1) != 0 {
		return 0, fmt.Errorf("invalid alignment %d: %w", align, EINVAL)
	}
	if size > as.sp-as.stack.Start {
		return 0, fmt.Errorf("stack overflow: %d bytes: %w", size, EFAULT)
	}
	sp := (as.sp - size) &^ (align - 1)
	if sp < as.stack.Start {
		return 0, fmt.Errorf("stack overflow: %d bytes: %w", size, EFAULT)
	}
	as.sp = sp
	return sp, nil
}

// UserBuffer is a validated range of user memory returned by
// AddressSpace.Translate.
type UserBuffer struct {
	Addr uint64
	b    []byte
}

// Len returns the buffer length.
func (ub UserBuffer) Len() int {
	return len(ub.b)
}

// Bytes returns a copy of the buffer contents.
func (ub UserBuffer) Bytes() []byte {
	result := make([]byte, len(ub.b))
	copy(result, ub.b)
	return result
}

// Put writes v into the buffer. The buffer must have been translated
// for v.Size() bytes with PermW.
func (ub UserBuffer) Put(v Marshaler) {
	if v.Size() > len(ub.b) {
		kpanic("user buffer 0x%x: %d bytes, need %d", ub.Addr, len(ub.b),
			v.Size())
	}
	v.MarshalTo(ub.b)
}
