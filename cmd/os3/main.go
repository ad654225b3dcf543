//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/markkurossi/os3/apps"
	"github.com/markkurossi/os3/config"
	"github.com/markkurossi/os3/kernel"
)

func main() {
	err := newRootCmd(config.New()).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "os3: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "os3",
		Short:         "Task accounting kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "",
		"configuration file")
	root.PersistentFlags().String("log-level", "",
		"log level (debug, info, warn, error)")
	v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	load := func() (*config.Config, error) {
		return config.Load(v, cfgFile)
	}
	root.AddCommand(newRunCmd(v, load))
	root.AddCommand(newAppsCmd())
	root.AddCommand(newConfigCmd(load))

	return root
}

type loader func() (*config.Config, error)

func newRunCmd(v *viper.Viper, load loader) *cobra.Command {
	var stats, metrics bool

	cmd := &cobra.Command{
		Use:   "run [app...]",
		Short: "Run applications until the machine halts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return run(cmd, cfg, args, stats, metrics)
		},
	}
	flags := cmd.Flags()
	flags.Bool("ktrace", false, "kernel trace")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringSlice("tracked", nil, "tracked system calls")
	flags.BoolVar(&stats, "stats", false, "print task statistics")
	flags.BoolVar(&metrics, "metrics", false, "print system call metrics")

	v.BindPFlag(config.KeyTrace, flags.Lookup("ktrace"))
	v.BindPFlag(config.KeyVerbose, flags.Lookup("verbose"))
	v.BindPFlag(config.KeyTracked, flags.Lookup("tracked"))

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, names []string,
	stats, metrics bool) error {

	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	params.Logger = log
	params.TraceOut = cmd.OutOrStdout()
	params.Stdout = cmd.OutOrStdout()
	params.Stderr = cmd.ErrOrStderr()

	var reader *sdkmetric.ManualReader
	if metrics {
		reader = sdkmetric.NewManualReader()
		mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		defer mp.Shutdown(context.Background())
		params.MeterProvider = mp
	}

	kern, err := kernel.New(params)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = cfg.Apps
	}
	list, err := apps.Resolve(names)
	if err != nil {
		return err
	}
	for _, app := range list {
		_, err = kern.Load(app.Program())
		if err != nil {
			return err
		}
	}
	log.Debug("boot", zap.Stringer("id", kern.BootID()),
		zap.Int("apps", len(list)))

	h, runErr := kern.Run()

	if stats {
		printStats(cmd.OutOrStdout(), kern.Tasks())
	}
	if reader != nil {
		err = printMetrics(cmd.OutOrStdout(), reader)
		if err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	log.Info("halted", zap.Stringer("reason", h.Reason),
		zap.Uint64("time", h.Time))
	return nil
}

func newAppsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab := tabulate.New(tabulate.Unicode)
			tab.Header("Name").SetAlign(tabulate.ML)
			tab.Header("Description").SetAlign(tabulate.ML)
			for _, app := range apps.All() {
				row := tab.Row()
				row.Column(app.Name)
				row.Column(app.Description)
			}
			tab.Print(cmd.OutOrStdout())
			return nil
		},
	}
}

func newConfigCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
