package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/adapters/render/chat"
	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/domain"
)

type statusOutput struct {
	State      domain.State      `json:"state"`
	Username   string            `json:"username"`
	Score      int               `json:"score"`
	GameOver   bool              `json:"gameOver"`
	Result     domain.Result     `json:"result"`
	Transcript domain.Transcript `json:"transcript"`
}

func (a *app) renderOptions() chat.RenderOptions {
	return chat.RenderOptions{
		Thresholds: domain.Thresholds{Win: a.cfg.Game.WinThreshold, Lose: a.cfg.Game.LoseThreshold},
	}
}

func writeSnapshot(cmd *cobra.Command, app *app, snapshot application.Snapshot, asJSON bool) error {
	if asJSON {
		session := snapshot.Session
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statusOutput{
			State:      snapshot.State,
			Username:   session.Username,
			Score:      session.Score,
			GameOver:   session.GameOver,
			Result:     session.Result,
			Transcript: session.Transcript,
		})
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), chat.Render(snapshot, app.renderOptions()))
	return err
}

// writeNewMessages prints the messages appended after the first `since` entries.
func writeNewMessages(cmd *cobra.Command, app *app, snapshot application.Snapshot, since int) error {
	transcript := snapshot.Session.Transcript
	if since > len(transcript) {
		since = 0
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), chat.RenderMessages(transcript[since:], app.renderOptions()))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "score: %d\n", snapshot.Session.Score)
	return err
}
