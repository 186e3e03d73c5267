package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/bnema/guide-cli/internal/domain"
)

func newPrefetchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch [library-id...]",
		Short: "Cache module content for offline use (default: every upcoming module)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := runPrefetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Caching module content...", func(ctx context.Context) ([]string, error) {
				return app.service.Prefetch(ctx, args)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ids) == 0 {
				_, err := fmt.Fprintln(out, "nothing to cache")
				return err
			}
			for _, id := range ids {
				_, _ = fmt.Fprintf(out, "cached %s\n", id)
			}
			return nil
		},
	}
}

func newJournalCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Read the session journal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List journal entries, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.service.JournalEntries(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, "journal is empty")
				return err
			}
			for _, entry := range entries {
				_, _ = fmt.Fprintln(out, journalHeading(entry))
				_, _ = fmt.Fprintf(out, "  %s\n", strings.ReplaceAll(entry.Content, "\n", "\n  "))
			}
			return nil
		},
	})

	return cmd
}

func journalHeading(entry domain.JournalEntry) string {
	heading := headerStyle.Sprint(formatTime(entry.CreatedAt))
	if entry.SourceTag != "" {
		heading += " [" + entry.SourceTag + "]"
	}
	if entry.ModuleTitle != "" {
		heading += " after " + entry.ModuleTitle
	}
	return heading
}

func newPrefsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change notification and prefetch preferences",
	}

	cmd.AddCommand(newPrefsShowCmd(app), newPrefsSetCmd(app))

	return cmd
}

func newPrefsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefs, err := app.service.Preferences(cmd.Context())
			if err != nil {
				return err
			}
			return writePreferences(cmd, prefs)
		},
	}
}

func newPrefsSetCmd(app *app) *cobra.Command {
	var notifications bool
	var prefetch bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("notifications") && !flags.Changed("prefetch") {
				return fmt.Errorf("nothing to change: pass --notifications or --prefetch")
			}

			prefs, err := app.service.UpdatePreferences(cmd.Context(), func(p *domain.Preferences) {
				if flags.Changed("notifications") {
					p.NotificationsEnabled = notifications
				}
				if flags.Changed("prefetch") {
					p.PrefetchEnabled = prefetch
				}
			})
			if err != nil {
				return err
			}
			return writePreferences(cmd, prefs)
		},
	}

	cmd.Flags().BoolVar(&notifications, "notifications", true, "Send notifications for prompts and unlocks")
	cmd.Flags().BoolVar(&prefetch, "prefetch", true, "Cache module content when the timeline changes")

	return cmd
}

func writePreferences(cmd *cobra.Command, prefs domain.Preferences) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("notifications", onOff(prefs.NotificationsEnabled))
	tbl.AddRow("prefetch", onOff(prefs.PrefetchEnabled))
	tbl.AddRow("updated", formatTime(prefs.UpdatedAt))

	_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl)
	return err
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
