//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"errors"
	"strings"
)

// Program defines a user program. Main runs in user mode and returns
// the program's exit code; returning from Main exits the task through
// the exit system call.
type Program struct {
	Name string
	Main func(env *Env) int32
}

// Validate checks that the program can be loaded.
func (prog *Program) Validate() error {
	if prog == nil {
		return errors.New("nil program")
	}
	if len(strings.TrimSpace(prog.Name)) == 0 {
		return errors.New("program name not set")
	}
	if prog.Main == nil {
		return errors.New("program '" + prog.Name + "' has no entry point")
	}
	return nil
}
