//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package config loads the os3 configuration from defaults, an
// optional YAML file, and OS3_ environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/markkurossi/os3/kernel"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "OS3"

// Configuration keys.
const (
	KeyClockFreq = "kernel.clock_freq"
	KeyMaxTasks  = "kernel.max_tasks"
	KeyStackSize = "kernel.stack_size"
	KeyTracked   = "kernel.tracked"
	KeyTrace     = "kernel.trace"
	KeyVerbose   = "kernel.verbose"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
	KeyApps      = "apps"
)

// Config defines the os3 configuration.
type Config struct {
	Kernel Kernel   `mapstructure:"kernel" yaml:"kernel"`
	Log    Log      `mapstructure:"log" yaml:"log"`
	Apps   []string `mapstructure:"apps" yaml:"apps"`
}

// Kernel defines the kernel configuration.
type Kernel struct {
	ClockFreq uint64   `mapstructure:"clock_freq" yaml:"clock_freq"`
	MaxTasks  int      `mapstructure:"max_tasks" yaml:"max_tasks"`
	StackSize int      `mapstructure:"stack_size" yaml:"stack_size"`
	Tracked   []string `mapstructure:"tracked" yaml:"tracked"`
	Trace     bool     `mapstructure:"trace" yaml:"trace"`
	Verbose   bool     `mapstructure:"verbose" yaml:"verbose"`
}

// Log defines the logging configuration.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// New creates a viper instance with the os3 defaults and environment
// bindings.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyClockFreq, kernel.DefaultClockFreq)
	v.SetDefault(KeyMaxTasks, kernel.DefaultMaxTasks)
	v.SetDefault(KeyStackSize, kernel.DefaultStackSize)
	v.SetDefault(KeyTracked, []string{"all"})
	v.SetDefault(KeyTrace, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyApps, []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration file, if set, and decodes the
// configuration from v.
func Load(v *viper.Viper, file string) (*Config, error) {
	if len(file) > 0 {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", file, err)
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration. It returns all problems found.
func (cfg *Config) Validate() error {
	var err error

	if cfg.Kernel.ClockFreq < kernel.MicrosPerSec {
		err = multierr.Append(err,
			fmt.Errorf("%s: %d Hz is below 1 MHz", KeyClockFreq,
				cfg.Kernel.ClockFreq))
	}
	if cfg.Kernel.MaxTasks <= 0 {
		err = multierr.Append(err,
			fmt.Errorf("%s: must be positive: %d", KeyMaxTasks,
				cfg.Kernel.MaxTasks))
	}
	if cfg.Kernel.StackSize < kernel.TaskInfoSize {
		err = multierr.Append(err,
			fmt.Errorf("%s: %d bytes can't hold a task info record",
				KeyStackSize, cfg.Kernel.StackSize))
	}
	if _, e := kernel.ParseSyscallSet(cfg.Kernel.Tracked); e != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", KeyTracked, e))
	}
	if _, e := zapcore.ParseLevel(cfg.Log.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", KeyLogLevel, e))
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		err = multierr.Append(err,
			fmt.Errorf("%s: unknown format '%s'", KeyLogFormat,
				cfg.Log.Format))
	}
	return err
}

// TrackedSet returns the set of tracked system calls. An empty list
// tracks all system calls.
func (cfg *Config) TrackedSet() (kernel.SyscallSet, error) {
	set, err := kernel.ParseSyscallSet(cfg.Kernel.Tracked)
	if err != nil {
		return 0, err
	}
	if set == 0 {
		set = kernel.AllSyscalls
	}
	return set, nil
}

// Params creates kernel parameters from the configuration.
func (cfg *Config) Params() (*kernel.Params, error) {
	tracked, err := cfg.TrackedSet()
	if err != nil {
		return nil, err
	}
	return &kernel.Params{
		Trace:     cfg.Kernel.Trace,
		Verbose:   cfg.Kernel.Verbose,
		Clock:     kernel.NewHostClock(cfg.Kernel.ClockFreq),
		Tracked:   tracked,
		MaxTasks:  cfg.Kernel.MaxTasks,
		StackSize: cfg.Kernel.StackSize,
	}, nil
}

// Logger creates a logger from the logging configuration.
func (cfg *Config) Logger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	var zcfg zap.Config
	if cfg.Log.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = level
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}

// YAML returns the configuration as a YAML document.
func (cfg *Config) YAML() ([]byte, error) {
	return yaml.Marshal(cfg)
}
