package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/domain"
)

func newHistoryCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished games, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.records.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list game records: %w", err)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			return writeHistory(cmd, records, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many games (0 for all)")

	return cmd
}

type historyOutput struct {
	ID         string        `json:"id"`
	Username   string        `json:"username"`
	FinalScore int           `json:"finalScore"`
	Turns      int           `json:"turns"`
	Efficacy   float64       `json:"efficacy"`
	Result     domain.Result `json:"result"`
	PlayedAt   time.Time     `json:"playedAt"`
}

func writeHistory(cmd *cobra.Command, records []domain.GameRecord, asJSON bool) error {
	if asJSON {
		out := make([]historyOutput, 0, len(records))
		for _, record := range records {
			out = append(out, historyOutput{
				ID:         record.ID,
				Username:   record.Username,
				FinalScore: record.FinalScore,
				Turns:      record.Turns,
				Efficacy:   record.Efficacy,
				Result:     record.Result,
				PlayedAt:   record.PlayedAt,
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No finished games yet.")
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PLAYED\tUSERNAME\tRESULT\tSCORE\tTURNS\tEFFICACY")
	for _, record := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2f\n",
			formatPlayedAt(record.PlayedAt),
			record.Username,
			record.Result,
			record.FinalScore,
			record.Turns,
			record.Efficacy,
		)
	}
	return w.Flush()
}

func formatPlayedAt(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}
