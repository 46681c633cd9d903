package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ws",
		Short:         "World Saver (ws): a text game about saving the world",
		Long:          "ws lets you pick a username and submit actions to a narrator that scores how much they help save the world. Reach the win threshold before the score sinks to the lose threshold.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(app),
		newStartCmd(app),
		newActCmd(app),
		newStatusCmd(app),
		newResetCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
