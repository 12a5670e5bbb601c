package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pvpc-tools/pvpc-exporter/internal/config"
	"github.com/pvpc-tools/pvpc-exporter/internal/ghenv"
	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/export"
	"github.com/pvpc-tools/pvpc-exporter/pkg/feed"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one day of PVPC prices as JSON and chart artifacts",
	Long: `Fetch the hourly PVPC prices for one day and write the JSON artifact for
each scheme, plus an optional PNG chart, to their date-templated paths.
The date accepts "today", "tomorrow" or an ISO date (YYYY-MM-DD).`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("date", "d", "", `target date: today, tomorrow or YYYY-MM-DD (default from PVPC_DATE, or today)`)
}

func runExport(cmd *cobra.Command, _ []string) error {
	dateSpec, _ := cmd.Flags().GetString("date")

	cfg, err := config.ResolveExport(config.ExportOptions{Date: dateSpec})
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Publish(ghenv.FromEnv()); err != nil {
		logger.Warn("github env publish failed", "error", err)
	}

	ledger, err := openLedger(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	if ledger != nil {
		defer ledger.Close()
	}

	exporter := export.New(logger, ledger)
	client := feed.NewClient(cfg.FeedURL)

	return exportDay(cmd.Context(), logger, client, exporter, cfg, cfg.Date)
}

// exportDay runs the full single-day pipeline: fetch both schemes, then
// write every configured artifact. A fetch failure aborts the day; a write
// failure aborts only its artifact, the siblings still run.
func exportDay(ctx context.Context, logger *slog.Logger, client *feed.Client, exporter *export.Exporter, cfg *config.ExportConfig, day dates.Date) error {
	logger.Info("fetching pvpc prices", "day", day.ISO())
	prices, err := client.FetchDay(ctx, day)
	if err != nil {
		return err
	}

	var errs []error
	if _, err := exporter.ExportJSON(ctx, model.SchemePCB, day, prices.PCB, cfg.Templates.PCB); err != nil {
		errs = append(errs, err)
	}
	if cfg.GraphPCB {
		if _, err := exporter.ExportChart(ctx, model.SchemePCB, day, prices.PCB, cfg.Templates.PCBGraph); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := exporter.ExportJSON(ctx, model.SchemeCM, day, prices.CM, cfg.Templates.CM); err != nil {
		errs = append(errs, err)
	}
	if cfg.GraphCM {
		if _, err := exporter.ExportChart(ctx, model.SchemeCM, day, prices.CM, cfg.Templates.CMGraph); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
