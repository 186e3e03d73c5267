package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/guide-cli/internal/engine"
)

var errResetNotConfirmed = errors.New("session reset discards all session state; pass --yes to confirm")

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Drive the session lifecycle",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newEventCmd(app, "pause", "Pause the session and its module timers", engine.PauseSession{}),
		newEventCmd(app, "resume", "Resume a paused session", engine.ResumeSession{}),
		newEventCmd(app, "peak", "Move from come-up to peak", engine.TransitionToPeak{}),
		newEventCmd(app, "integration", "Move from peak to integration", engine.TransitionToIntegration{}),
		newEventCmd(app, "complete", "Close the session and schedule follow-ups", engine.CompleteSession{}),
		newSessionResetCmd(app),
	)

	return cmd
}

// newEventCmd builds a leaf command that dispatches a fixed event.
func newEventCmd(app *app, use, short string, event engine.Event) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, app, event)
		},
	}
}

func newSessionStartCmd(app *app) *cobra.Command {
	var ingestedAt string
	var ago time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Record ingestion and begin the come-up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, err := parseIngestedAt(ingestedAt, ago, app.now())
			if err != nil {
				return err
			}
			return dispatch(cmd, app, engine.StartSession{IngestedAt: at})
		},
	}

	cmd.Flags().StringVar(&ingestedAt, "at", "", "Ingestion time (RFC3339 or HH:MM today)")
	cmd.Flags().DurationVar(&ago, "ago", 0, "Ingestion happened this long ago")
	cmd.MarkFlagsMutuallyExclusive("at", "ago")

	return cmd
}

func parseIngestedAt(raw string, ago time.Duration, now time.Time) (time.Time, error) {
	if ago < 0 {
		return time.Time{}, fmt.Errorf("--ago must not be negative")
	}
	if ago > 0 {
		return now.Add(-ago), nil
	}
	if raw == "" {
		return time.Time{}, nil
	}

	if at, err := time.Parse(time.RFC3339, raw); err == nil {
		return at, nil
	}
	clock, err := time.ParseInLocation("15:04", raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --at %q: want RFC3339 or HH:MM", raw)
	}
	year, month, day := now.Date()
	return time.Date(year, month, day, clock.Hour(), clock.Minute(), 0, 0, now.Location()), nil
}

func newSessionResetCmd(app *app) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the session and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errResetNotConfirmed
			}
			result, err := app.service.Reset(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")

	return cmd
}

func newTickCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tick",
		Short: "Apply due time-based promotions (booster prompt, check-in, follow-up unlocks)",
		Long:  "tick evaluates every time predicate once. Run it from a timer or cron job; it is idempotent for a given instant.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.service.Tick(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
}

func newCheckInCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "checkin <not-yet|starting|fully-arrived>",
		Short:     "Answer the come-up check-in",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"not-yet", "starting", "fully-arrived"},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.CheckIn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
}

func newCaptureCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "capture <come-up-to-peak|peak-to-integration|integration-to-close> <text...>",
		Short: "Record a one-time note for a phase transition",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.Capture(cmd.Context(), args[0], joinArgs(args[1:]))
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
}
