// Package config holds the coordinator's bootstrap configuration, parsed
// and validated once before any node is constructed — the daemon/config
// idiom of a plain struct plus a Validate method, rather than scattering
// flag defaults across the call sites that use them.
package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Config is the coordinator's bootstrap configuration.
type Config struct {
	// ListenHost is the loopback host every node's server binds to.
	ListenHost string
	// BasePort is added to a node id to derive its listen port.
	BasePort uint64
	// StartupDelay is the grace period a node's driver waits before
	// dialing its neighbours, giving every peer's server time to bind.
	StartupDelay time.Duration
	// LogLevel controls the verbosity of every component's logger.
	LogLevel logrus.Level
	// Rounds caps the number of election rounds read from stdin; zero
	// means unbounded (run until EOF).
	Rounds int
}

// Default returns the configuration newDaemonOptions-equivalent CLI flags
// default to.
func Default() Config {
	return Config{
		ListenHost:   "127.0.0.1",
		BasePort:     50000,
		StartupDelay: 200 * time.Millisecond,
		LogLevel:     logrus.InfoLevel,
		Rounds:       0,
	}
}

// Validate checks the configuration is usable, the way daemon/config
// validates a loaded Config before the daemon starts.
func (c Config) Validate() error {
	if c.ListenHost == "" {
		return fmt.Errorf("config: listen host must not be empty")
	}
	if c.BasePort == 0 || c.BasePort > 65535 {
		return fmt.Errorf("config: base port %d out of range", c.BasePort)
	}
	if c.StartupDelay < 0 {
		return fmt.Errorf("config: startup delay must not be negative")
	}
	if c.Rounds < 0 {
		return fmt.Errorf("config: rounds must not be negative")
	}
	return nil
}
