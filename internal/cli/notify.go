package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pvpc-tools/pvpc-exporter/internal/config"
	"github.com/pvpc-tools/pvpc-exporter/pkg/export"
	"github.com/pvpc-tools/pvpc-exporter/pkg/telegram"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send an exported day to a Telegram chat",
	Long: `Read a previously exported JSON artifact and send its prices to a
Telegram chat as a localized, emoji-tiered summary. Requires
PVPC_TELEGRAM_BOT_TOKEN and PVPC_TELEGRAM_CHATID.`,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.Flags().String("data", "", "path to the exported JSON artifact (default from PVPC_DATA_PATH)")
	notifyCmd.Flags().String("tiers", "", "optional YAML file overriding price tiers (default from PVPC_TIERS_PATH)")
}

func runNotify(cmd *cobra.Command, _ []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	tiersPath, _ := cmd.Flags().GetString("tiers")

	cfg, err := config.ResolveNotify(config.NotifyOptions{DataPath: dataPath, TiersPath: tiersPath})
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	tiers := telegram.DefaultTiers()
	if cfg.TiersPath != "" {
		tiers, err = telegram.LoadTiers(cfg.TiersPath)
		if err != nil {
			return err
		}
	}

	artifact, err := export.ReadArtifact(cfg.DataPath)
	if err != nil {
		return err
	}

	message := telegram.FormatMessage(artifact, tiers)
	client := telegram.NewClient(cfg.BotToken, "")

	logger.Info("sending notification", "day", artifact.Day.ISO(), "hours", len(artifact.Data))
	if err := client.SendMessage(cmd.Context(), cfg.ChatID, message); err != nil {
		return err
	}

	fmt.Printf("Sent %s to chat %s\n", artifact.Day.ISO(), cfg.ChatID)
	return nil
}
