package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/adapters/render/chat"
	"github.com/bnema/world-saver-cli/internal/application"
)

func newPlayCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withGame(cmd.Context(), true, func(game *application.Game) error {
				return chat.Run(cmd.Context(), game, app.renderOptions(),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
			})
		},
	}
}
