//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"testing"
)

var translateTests = []struct {
	addr uint64
	size uint64
	perm Perm
	ok   bool
}{
	{
		addr: 0,
		size: 16,
		perm: PermW,
	},
	{
		addr: UserRodataBase,
		size: 16,
		perm: PermR,
		ok:   true,
	},
	{
		addr: UserRodataBase,
		size: 16,
		perm: PermW,
	},
	{
		addr: UserStackTop - 16,
		size: 16,
		perm: PermR | PermW,
		ok:   true,
	},
	{
		addr: UserStackTop - 8,
		size: 16,
		perm: PermW,
	},
	{
		addr: UserStackTop - DefaultStackSize - 1,
		size: 2,
		perm: PermW,
	},
	{
		addr: 0xffff_ffff_ffff_fff0,
		size: 32,
		perm: PermR,
	},
}

func TestTranslate(t *testing.T) {
	as := NewAddressSpace(DefaultStackSize)

	for idx, test := range translateTests {
		ub, err := as.Translate(test.addr, test.size, test.perm)
		if test.ok {
			if err != nil {
				t.Errorf("test%d: unexpected error: %v", idx, err)
				continue
			}
			if ub.Len() != int(test.size) {
				t.Errorf("test%d: len %v, expected %v", idx, ub.Len(),
					test.size)
			}
			continue
		}
		if !errors.Is(err, EFAULT) {
			t.Errorf("test%d: got %v, expected EFAULT", idx, err)
		}
	}
}

func TestAlloca(t *testing.T) {
	as := NewAddressSpace(1024)

	addr, err := as.Alloca(TimeValSize, 8)
	if err != nil {
		t.Fatal(err)
	}
	if addr != UserStackTop-TimeValSize {
		t.Errorf("addr 0x%x, expected 0x%x", addr, UserStackTop-TimeValSize)
	}
	addr, err = as.Alloca(3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if addr%8 != 0 {
		t.Errorf("unaligned allocation 0x%x", addr)
	}
	sp := as.SP()
	_, err = as.Alloca(2048, 8)
	if !errors.Is(err, EFAULT) {
		t.Errorf("stack overflow not detected: %v", err)
	}
	if as.SP() != sp {
		t.Errorf("failed allocation moved sp")
	}
	_, err = as.Alloca(8, 3)
	if !errors.Is(err, EINVAL) {
		t.Errorf("invalid alignment not detected: %v", err)
	}
}

func TestLoadStore(t *testing.T) {
	as := NewAddressSpace(DefaultStackSize)

	addr, err := as.Alloca(5, 1)
	if err != nil {
		t.Fatal(err)
	}
	err = as.Store(addr, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	data, err := as.Load(addr, 5)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("Load: %q", data)
	}
	err = as.Store(UserRodataBase, []byte("x"))
	if !errors.Is(err, EFAULT) {
		t.Errorf("store to rodata: %v", err)
	}
}

func TestTimeValLayout(t *testing.T) {
	tv := NewTimeVal(3_000_042)
	if tv.Sec != 3 || tv.Usec != 42 {
		t.Fatalf("NewTimeVal: %v", tv)
	}
	var buf [TimeValSize]byte
	tv.MarshalTo(buf[:])
	if buf[0] != 3 || buf[8] != 42 {
		t.Errorf("unexpected encoding: %x", buf)
	}
	var tv2 TimeVal
	if err := tv2.UnmarshalFrom(buf[:]); err != nil {
		t.Fatal(err)
	}
	if tv2.Micros() != 3_000_042 || tv2.Millis() != 3000 {
		t.Errorf("decoded %v", tv2)
	}
}

func TestTaskInfoLayout(t *testing.T) {
	if TaskInfoSize != 2016 {
		t.Fatalf("TaskInfoSize=%v, expected 2016", TaskInfoSize)
	}
	ti := &TaskInfo{
		Status: Running,
		Time:   0x0102030405060708,
	}
	ti.SyscallTimes[SysGetTime] = 7

	buf := make([]byte, TaskInfoSize)
	for i := range buf {
		buf[i] = 0xff
	}
	ti.MarshalTo(buf)

	if bo.Uint32(buf[0:]) != uint32(Running) {
		t.Errorf("status %x", buf[0:4])
	}
	if bo.Uint32(buf[4+4*int(SysGetTime):]) != 7 {
		t.Errorf("get_time count not at its ABI index")
	}
	if bo.Uint32(buf[2004:]) != 0 {
		t.Errorf("padding not cleared: %x", buf[2004:2008])
	}
	if bo.Uint64(buf[2008:]) != ti.Time {
		t.Errorf("time %x", buf[2008:])
	}
}

func TestUserBufferPut(t *testing.T) {
	as := NewAddressSpace(DefaultStackSize)

	ub, err := as.Translate(UserStackTop-8, 8, PermW)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if _, ok := recover().(*KernelPanic); !ok {
			t.Errorf("short buffer not detected")
		}
	}()
	ub.Put(&TimeVal{})
}
