// Command ringelectd bootstraps ring leader election rounds: it reads
// whitespace-separated node-id lines from standard input and runs each to
// completion before reading the next.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/viluon/ringelect/internal/config"
	"github.com/viluon/ringelect/internal/coordinator"
)

func newRootCommand() *cobra.Command {
	opts := newDaemonOptions(config.Default())

	cmd := &cobra.Command{
		Use:   "ringelectd",
		Short: "Run ring leader election rounds read from standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.toConfig()
			if err != nil {
				return err
			}

			logger := logrus.New()
			logger.SetLevel(cfg.LogLevel)
			log := logrus.NewEntry(logger)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			coord := coordinator.New(cfg, log)
			return coord.RunRounds(ctx, cmd.InOrStdin())
		},
	}
	opts.installFlags(cmd.Flags())
	return cmd
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
