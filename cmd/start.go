package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/domain"
)

func newStartCmd(app *app) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Pick a username and fetch the opening story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withGame(cmd.Context(), false, func(game *application.Game) error {
				snapshot := game.Snapshot()
				if snapshot.State == domain.StateAwaitingUsername {
					if username == "" {
						return domain.ErrUsernameRequired
					}
					if err := game.SetUsername(cmd.Context(), username); err != nil {
						return err
					}
				} else if username != "" && username != snapshot.Session.Username {
					return domain.ErrUsernameLocked
				}

				if err := game.Start(cmd.Context()); err != nil {
					return err
				}

				return writeSnapshot(cmd, app, game.Snapshot(), false)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to play as (locked until reset)")

	return cmd
}
