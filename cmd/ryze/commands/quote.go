package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/infrastructure/config"
)

var (
	quoteData  int64
	quoteVoice int64
	quoteDays  int64
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a custom pack with the configured mixer rates",
	Example: `  ryze quote --data 10 --voice 100 --days 7
  MIXER_PER_GB=4 ryze quote --data 25 --days 30`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().Int64Var(&quoteData, "data", 0, "data in GB (0-100)")
	quoteCmd.Flags().Int64Var(&quoteVoice, "voice", 0, "voice minutes (0-1000, steps of 10)")
	quoteCmd.Flags().Int64Var(&quoteDays, "days", domain.MixMinValidityDays, "validity in days (3-30)")
}

func runQuote(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	sel := domain.MixSelection{DataGB: quoteData, VoiceMinutes: quoteVoice, ValidityDays: quoteDays}
	if err := sel.Validate(); err != nil {
		return err
	}
	q := mixerRates(cfg.Mixer).Quote(sel)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Selection: %d GB, %d min, %d days\n", sel.DataGB, sel.VoiceMinutes, sel.ValidityDays)
	fmt.Fprintf(out, "Price:     %d BDT\n", q.PriceCash)
	fmt.Fprintf(out, "Coins:     %d\n", q.CoinsEarned)
	if len(q.OTTs) > 0 {
		fmt.Fprintf(out, "Includes:  %s\n", strings.Join(q.OTTs, ", "))
	}
	return nil
}
