package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/config"
)

var rootCmd = &cobra.Command{
	Use:   "ryze",
	Short: "Ryze - lifestyle telco, marketplace and AI tutor API",
	Long: `Ryze serves the session API behind the Ryze lifestyle app: data packs,
subscriptions, a document marketplace paid in coins and an AI study tutor.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quoteCmd)
}

func mixerRates(cfg config.MixerConfig) domain.MixerRates {
	return domain.MixerRates{
		PerGB:              cfg.PerGB,
		PerMinute:          cfg.PerMinute,
		PerDay:             cfg.PerDay,
		Base:               cfg.Base,
		CoinsPerTaka:       cfg.CoinsPerTaka,
		HoichoiThresholdGB: cfg.HoichoiThresholdGB,
	}
}
