// Package cli wires the pvpc commands: single-day export, range export,
// Telegram notification and run history.
package cli

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pvpc-tools/pvpc-exporter/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pvpc",
	Short: "PVPC exporter - Spanish electricity price artifacts and notifications",
	Long: `pvpc fetches the daily PVPC hourly electricity prices for both pricing
schemes (PCB and CM), exports them as pretty-printed JSON artifacts and PNG
charts at date-templated paths, and can push a localized summary of an
exported day to a Telegram chat.

Every setting accepts a PVPC_* environment variable fallback; flags take
precedence.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates a structured logger tagged with a per-invocation run id.
func newLogger(level, format string) *slog.Logger {
	slevel := slog.LevelInfo
	switch level {
	case "debug":
		slevel = slog.LevelDebug
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slevel})
	}

	return slog.New(handler).With("run_id", uuid.NewString())
}

// openLedger opens the optional run ledger. An empty path disables it.
func openLedger(path string) (storage.Ledger, error) {
	if path == "" {
		return nil, nil
	}
	return storage.NewSQLite(path)
}
