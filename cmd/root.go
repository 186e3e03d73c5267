package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "guide",
		Short:         "guide: a session companion for structured guided experiences",
		Long:          "guide walks one session through intake, come-up, peak, integration and follow-up. It keeps the module timeline, booster window and check-ins on disk between invocations.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		// Surface the wiring error for any subcommand the user asked for.
		rootCmd.Args = cobra.ArbitraryArgs
		rootCmd.DisableFlagParsing = true
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		rootCmd.AddCommand(newVersionCmd())
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return app.close(ctx)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newIntakeCmd(app),
		newChecklistCmd(app),
		newSessionCmd(app),
		newTimelineCmd(app),
		newCheckInCmd(app),
		newBoosterCmd(app),
		newCaptureCmd(app),
		newTickCmd(app),
		newFollowUpCmd(app),
		newLibraryCmd(app),
		newPrefetchCmd(app),
		newJournalCmd(app),
		newPrefsCmd(app),
	)

	return rootCmd
}
