//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/markkurossi/tabulate"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/markkurossi/os3/kernel"
)

func printStats(w io.Writer, tasks []kernel.TaskStat) {
	tab := tabulate.New(tabulate.Unicode)
	tab.Header("ID").SetAlign(tabulate.MR)
	tab.Header("App").SetAlign(tabulate.ML)
	tab.Header("Status").SetAlign(tabulate.ML)
	tab.Header("Exit").SetAlign(tabulate.MR)
	tab.Header("Rtime").SetAlign(tabulate.MR)
	tab.Header("Dispatches").SetAlign(tabulate.MR)
	for _, call := range kernel.Syscalls {
		tab.Header(call.String()).SetAlign(tabulate.MR)
	}

	var total kernel.RUsage
	for _, task := range tasks {
		row := tab.Row()
		row.Column(fmt.Sprintf("%d", task.ID))
		row.Column(task.Name)
		row.Column(task.Status.String())
		row.Column(fmt.Sprintf("%d", task.ExitCode))
		row.Column(task.RUsage.Rtime.String())
		row.Column(fmt.Sprintf("%d", task.RUsage.Dispatches))
		for _, call := range kernel.Syscalls {
			row.Column(fmt.Sprintf("%d", task.Counters.Get(call)))
		}
		total.Add(task.RUsage)
	}
	row := tab.Row()
	row.Column("")
	row.Column("Total")
	row.Column("")
	row.Column("")
	row.Column(total.Rtime.String())
	row.Column(fmt.Sprintf("%d", total.Dispatches))
	for range kernel.Syscalls {
		row.Column("")
	}

	tab.Print(w)
}

type metricRow struct {
	name  string
	attrs string
	value int64
}

func printMetrics(w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	if err != nil {
		return err
	}

	var rows []metricRow
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != kernel.MeterName {
			continue
		}
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				var attrs []string
				for _, kv := range dp.Attributes.ToSlice() {
					attrs = append(attrs,
						fmt.Sprintf("%s=%s", kv.Key, kv.Value.Emit()))
				}
				rows = append(rows, metricRow{
					name:  m.Name,
					attrs: strings.Join(attrs, ","),
					value: dp.Value,
				})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].name != rows[j].name {
			return rows[i].name < rows[j].name
		}
		return rows[i].attrs < rows[j].attrs
	})

	tab := tabulate.New(tabulate.Unicode)
	tab.Header("Metric").SetAlign(tabulate.ML)
	tab.Header("Attributes").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.MR)
	for _, r := range rows {
		row := tab.Row()
		row.Column(r.name)
		row.Column(r.attrs)
		row.Column(fmt.Sprintf("%d", r.value))
	}
	tab.Print(w)

	return nil
}
