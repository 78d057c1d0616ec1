package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starsurge/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host the game over SSH",
	Long: `Accept SSH connections and give each one a title menu of its own.
Runs are recorded under the SSH user name; all visitors share one
high-score table.

Without --host-key an ed25519 key is generated once under ~/.starsurge.

  starsurge serve
  starsurge serve --ssh :2222 --idle-timeout 10
  ssh -p 23234 localhost`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", tui.DefaultSSHServerConfig().Address, "listen address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "host key file, generated when empty")
	f.IntVar(&flagIdleTimeout, "idle-timeout", 30, "minutes of inactivity before a session is dropped")
}

func runServe(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "starsurge-ssh",
	})

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("serving", "addr", flagSSHAddr, "db", flagDBPath)
	return server.ListenAndServe()
}
