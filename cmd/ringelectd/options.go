package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/viluon/ringelect/internal/config"
)

// daemonOptions mirrors cmd/dockerd's newDaemonOptions/installFlags split:
// flags are bound to a plain struct so they can be parsed once in a test
// without constructing a cobra.Command.
type daemonOptions struct {
	ListenHost   string
	BasePort     uint16
	StartupDelay time.Duration
	LogLevel     string
	Rounds       int
}

func newDaemonOptions(defaults config.Config) *daemonOptions {
	return &daemonOptions{
		ListenHost:   defaults.ListenHost,
		BasePort:     uint16(defaults.BasePort),
		StartupDelay: defaults.StartupDelay,
		LogLevel:     defaults.LogLevel.String(),
		Rounds:       defaults.Rounds,
	}
}

func (o *daemonOptions) installFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.ListenHost, "listen-host", o.ListenHost, "loopback host every node's server binds to")
	flags.Uint16Var(&o.BasePort, "base-port", o.BasePort, "port offset added to a node id to derive its listen port")
	flags.DurationVar(&o.StartupDelay, "startup-delay", o.StartupDelay, "grace period before drivers dial their neighbours")
	flags.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level (debug, info, warn, error)")
	flags.IntVar(&o.Rounds, "rounds", o.Rounds, "number of election rounds to run (0 = unbounded, read until EOF)")
}

func (o *daemonOptions) toConfig() (config.Config, error) {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	cfg := config.Config{
		ListenHost:   o.ListenHost,
		BasePort:     uint64(o.BasePort),
		StartupDelay: o.StartupDelay,
		LogLevel:     level,
		Rounds:       o.Rounds,
	}
	return cfg, cfg.Validate()
}
