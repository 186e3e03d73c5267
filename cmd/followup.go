package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/guide-cli/internal/adapters/render/status"
	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

func newFollowUpCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "followup",
		Short: "Post-session follow-up modules",
	}

	cmd.AddCommand(newFollowUpListCmd(app), newFollowUpCompleteCmd(app))

	return cmd
}

func newFollowUpListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List follow-up modules and when they unlock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.service.Dispatch(cmd.Context(), engine.CheckFollowUpAvailability{}); err != nil {
				return err
			}
			status, err := app.service.Status(cmd.Context())
			if err != nil {
				return err
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(headerStyle.Sprint("MODULE"), headerStyle.Sprint("STATUS"), headerStyle.Sprint("UNLOCKS"), headerStyle.Sprint("COMPLETED"))
			for _, item := range status.FollowUps {
				tbl.AddRow(
					string(item.Module),
					string(item.Status),
					formatTime(item.UnlocksAt),
					formatTime(item.CompletedAt),
				)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
}

func newFollowUpCompleteCmd(app *app) *cobra.Command {
	names := make([]string, 0, len(domain.FollowUpModules))
	for _, module := range domain.FollowUpModules {
		names = append(names, string(module))
	}

	return &cobra.Command{
		Use:       "complete <" + strings.Join(names, "|") + ">",
		Short:     "Mark an available follow-up module completed",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.service.CompleteFollowUp(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResult(cmd, result)
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func newLibraryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the module catalog",
	}

	var phase string
	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter domain.Phase
			if phase != "" {
				parsed, err := domain.ParsePhase(phase)
				if err != nil {
					return err
				}
				filter = parsed
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.Wrap = true
			tbl.AddRow(headerStyle.Sprint("ID"), headerStyle.Sprint("TITLE"), headerStyle.Sprint("DURATION"), headerStyle.Sprint("INTENSITY"), headerStyle.Sprint("PHASES"))
			for _, module := range app.service.Library() {
				if filter != "" && !module.AllowedIn(filter) {
					continue
				}
				tbl.AddRow(
					module.ID,
					module.Title,
					statusadapter.FormatDuration(module.DefaultDuration),
					string(module.Intensity),
					phaseList(module),
				)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
	list.Flags().StringVar(&phase, "phase", "", "Only modules allowed in this phase")

	cmd.AddCommand(list)

	return cmd
}

func phaseList(module domain.LibraryModule) string {
	phases := make([]string, 0, len(domain.TimelinePhases))
	for _, phase := range domain.TimelinePhases {
		if module.AllowedIn(phase) {
			phases = append(phases, string(phase))
		}
	}
	return strings.Join(phases, ",")
}
