//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"io"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Params define kernel parameters.
type Params struct {
	Trace   bool
	Verbose bool

	// TraceOut receives the kernel trace. Defaults to os.Stdout.
	TraceOut io.Writer
	Stdout   io.Writer
	Stderr   io.Writer

	Logger        *zap.Logger
	MeterProvider metric.MeterProvider

	// Clock is the kernel time source. Defaults to a host clock at
	// DefaultClockFreq.
	Clock TimeSource

	// Tracked selects the system calls counted in the task records.
	// The zero value counts all system calls.
	Tracked SyscallSet

	MaxTasks  int
	StackSize int
}
