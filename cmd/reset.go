package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/world-saver-cli/internal/application"
	"github.com/bnema/world-saver-cli/internal/ports"
)

func newResetCmd(app *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the username, chat history and score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirmer := promptConfirmer(cmd)
			if yes {
				confirmer = ports.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
			}

			return app.withGame(cmd.Context(), false, func(game *application.Game) error {
				reset, err := game.Reset(cmd.Context(), confirmer)
				if err != nil {
					return err
				}
				if !reset {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Session reset.")
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func promptConfirmer(cmd *cobra.Command) ports.Confirmer {
	return ports.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt); err != nil {
			return false, err
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("read confirmation: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	})
}
