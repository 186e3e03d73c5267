package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/guide-cli/internal/engine"
)

func newBoosterCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booster",
		Short: "Answer the booster prompt",
	}

	cmd.AddCommand(
		newEventCmd(app, "prompt", "Show the booster prompt now if it is due", engine.PromptBooster{}),
		newEventCmd(app, "take", "Record that the booster was taken", engine.TakeBooster{}),
		newEventCmd(app, "skip", "Decline the booster", engine.SkipBooster{}),
		newEventCmd(app, "snooze", "Ask again in ten minutes", engine.SnoozeBooster{}),
		newEventCmd(app, "dismiss", "Close a prompt after the window has passed", engine.DismissBooster{}),
	)

	return cmd
}
