package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withGame(cmd.Context(), false, func(game *application.Game) error {
				return writeSnapshot(cmd, app, game.Snapshot(), asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
