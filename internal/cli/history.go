package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pvpc-tools/pvpc-exporter/internal/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent export runs from the local ledger",
	Long:  `List the most recent artifacts recorded in the run ledger. Requires PVPC_HISTORY_PATH.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of records to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	path := os.Getenv("PVPC_HISTORY_PATH")
	if path == "" {
		return fmt.Errorf("%w: history_path", config.ErrMissingConfig)
	}

	ledger, err := openLedger(path)
	if err != nil {
		return fmt.Errorf("open history ledger: %w", err)
	}
	defer ledger.Close()

	records, err := ledger.ListArtifacts(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No export runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "RECORDED\tDAY\tSCHEME\tKIND\tBYTES\tPATH\n")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Day, r.Scheme, r.Kind, r.Bytes, r.Path,
		)
	}
	return w.Flush()
}
