package cmd

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/guide-cli/internal/adapters/render/status"
	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

const shortIDLength = 8

var headerStyle = color.New(color.Bold)

func newTimelineCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Inspect and edit the module timeline",
	}

	cmd.AddCommand(
		newTimelineListCmd(app),
		newTimelineAddCmd(app),
		newInstanceCmd(app, "remove", "Remove an upcoming module", func(id domain.InstanceID) engine.Event {
			return engine.RemoveModule{ID: id}
		}),
		newTimelineMoveCmd(app),
		newTimelineSwapCmd(app),
		newInstanceCmd(app, "start", "Start a module in the current phase", func(id domain.InstanceID) engine.Event {
			return engine.StartModule{ID: id}
		}),
		newInstanceCmd(app, "complete", "Mark a module completed", func(id domain.InstanceID) engine.Event {
			return engine.CompleteModule{ID: id}
		}),
		newInstanceCmd(app, "skip", "Skip a module", func(id domain.InstanceID) engine.Event {
			return engine.SkipModule{ID: id}
		}),
		newEventCmd(app, "open-space", "Leave the queue and rest in open space", engine.EnterOpenSpace{}),
	)

	return cmd
}

func newTimelineListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List modules by phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.service.Timeline(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "timeline is empty")
				return err
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(
				headerStyle.Sprint("ID"),
				headerStyle.Sprint("PHASE"),
				headerStyle.Sprint("#"),
				headerStyle.Sprint("MODULE"),
				headerStyle.Sprint("DURATION"),
				headerStyle.Sprint("STATUS"),
			)
			for _, entry := range entries {
				module := entry.Instance
				title := entry.Title
				if module.IsBoosterModule {
					title += " (booster)"
				}
				tbl.AddRow(
					shortID(module.InstanceID),
					statusadapter.Label(string(module.Phase)),
					module.Order,
					title,
					statusadapter.FormatDuration(module.Duration),
					string(module.Status),
				)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
}

func newTimelineAddCmd(app *app) *cobra.Command {
	var phase string
	var position int

	cmd := &cobra.Command{
		Use:   "add <library-id>",
		Short: "Add a catalog module to a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParsePhase(phase)
			if err != nil {
				return err
			}

			var at *int
			if cmd.Flags().Changed("position") {
				at = &position
			}

			result, err := app.service.AddModule(cmd.Context(), args[0], parsed, at)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Allowed {
				_, err := fmt.Fprintf(out, "%s %v\n", rejectedLabel.Sprint("rejected:"), result.Err)
				return err
			}
			if result.Warning != "" {
				_, _ = fmt.Fprintf(out, "%s %s\n", warningLabel.Sprint("warning:"), result.Warning)
			}
			_, err = fmt.Fprintf(out, "added %s %s to %s at position %d\n",
				shortID(result.Instance.InstanceID), result.Instance.LibraryID, result.Instance.Phase, result.Instance.Order)
			return err
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Phase: come-up, peak or integration")
	cmd.Flags().IntVar(&position, "position", 0, "Zero-based position within the phase (default: append)")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newInstanceCmd(app *app, use, short string, event func(domain.InstanceID) engine.Event) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <module-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveInstanceID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			return dispatch(cmd, app, event(id))
		},
	}
}

func newTimelineMoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <module-id> <order>",
		Short: "Move an upcoming module to a new position in its phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveInstanceID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("order must be a number: %w", err)
			}
			return dispatch(cmd, app, engine.ReorderModule{ID: id, NewOrder: order})
		},
	}
}

func newTimelineSwapCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <module-id> <module-id>",
		Short: "Swap two adjacent modules",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := resolveInstanceID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			b, err := resolveInstanceID(cmd.Context(), app, args[1])
			if err != nil {
				return err
			}
			return dispatch(cmd, app, engine.SwapModuleOrder{A: a, B: b})
		},
	}
}

func shortID(id domain.InstanceID) string {
	if len(id) <= shortIDLength {
		return string(id)
	}
	return string(id[:shortIDLength])
}
