package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/domain"
)

func newActCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "act <action...>",
		Short: "Submit one action to the narrator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withGame(cmd.Context(), false, func(game *application.Game) error {
				before := len(game.Snapshot().Session.Transcript)

				submitErr := game.Submit(cmd.Context(), strings.Join(args, " "))
				if submitErr != nil && !errors.Is(submitErr, domain.ErrNarratorUnavailable) {
					return submitErr
				}

				if err := writeNewMessages(cmd, app, game.Snapshot(), before); err != nil {
					return err
				}
				return submitErr
			})
		},
	}
}
