//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package kernel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the kernel metrics.
const MeterName = "github.com/markkurossi/os3/kernel"

// Metric names.
const (
	MetricSyscalls        = "os3.syscalls"
	MetricUnknownSyscalls = "os3.syscalls.unknown"
	MetricTaskSwitches    = "os3.task.switches"
)

type metrics struct {
	syscalls metric.Int64Counter
	unknowns metric.Int64Counter
	switches metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(MeterName)

	syscalls, err := meter.Int64Counter(MetricSyscalls,
		metric.WithDescription("Dispatched system calls."),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}
	unknowns, err := meter.Int64Counter(MetricUnknownSyscalls,
		metric.WithDescription("Traps with an unrecognized system call number."),
		metric.WithUnit("{call}"))
	if err != nil {
		return nil, err
	}
	switches, err := meter.Int64Counter(MetricTaskSwitches,
		metric.WithDescription("Dispatches of tasks into Running."),
		metric.WithUnit("{switch}"))
	if err != nil {
		return nil, err
	}
	return &metrics{
		syscalls: syscalls,
		unknowns: unknowns,
		switches: switches,
	}, nil
}

func (m *metrics) syscall(call Syscall) {
	m.syscalls.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("syscall", call.String())))
}

func (m *metrics) unknown(id uint64) {
	m.unknowns.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Int64("id", int64(id))))
}

func (m *metrics) switched(t *Task) {
	m.switches.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("app", t.prog.Name)))
}
