package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvpc-tools/pvpc-exporter/internal/config"
	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/export"
	"github.com/pvpc-tools/pvpc-exporter/pkg/feed"
)

var exportRangeCmd = &cobra.Command{
	Use:   "export-range",
	Short: "Export every day in an inclusive date interval",
	Long: `Run the single-day export for each day between --from and --to inclusive,
in ascending order. The run halts on the first day that fails.`,
	RunE: runExportRange,
}

func init() {
	rootCmd.AddCommand(exportRangeCmd)
	exportRangeCmd.Flags().String("from", "", "first date of the interval (default from PVPC_DATE_FROM)")
	exportRangeCmd.Flags().String("to", "", "last date of the interval (default from PVPC_DATE_TO)")
}

func runExportRange(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	cfg, err := config.ResolveRange(config.ExportOptions{DateFrom: from, DateTo: to})
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Export.LogLevel, cfg.Export.LogFormat)

	ledger, err := openLedger(cfg.Export.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	if ledger != nil {
		defer ledger.Close()
	}

	exporter := export.New(logger, ledger)
	client := feed.NewClient(cfg.Export.FeedURL)

	seq, err := dates.Range(cfg.From, cfg.To)
	if err != nil {
		return err
	}

	logger.Info("exporting range", "from", cfg.From.ISO(), "to", cfg.To.ISO())
	var rangeErr error
	seq(func(day dates.Date) bool {
		if err := exportDay(cmd.Context(), logger, client, exporter, &cfg.Export, day); err != nil {
			rangeErr = fmt.Errorf("export %s: %w", day, err)
			return false
		}
		return true
	})
	return rangeErr
}
