package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/guide-cli/internal/adapters/render/status"
	"github.com/bnema/guide-cli/internal/application"
	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

var (
	rejectedLabel = color.New(color.FgRed, color.Bold)
	warningLabel  = color.New(color.FgYellow, color.Bold)
	signalLabel   = color.New(color.FgCyan)
)

func dispatch(cmd *cobra.Command, app *app, event engine.Event) error {
	result, err := app.service.Dispatch(cmd.Context(), event)
	if err != nil {
		return err
	}
	return printResult(cmd, result)
}

// printResult reports what an event did. A rejection is printed, not
// returned: the stored session is unchanged and the command succeeded.
func printResult(cmd *cobra.Command, result application.Result) error {
	out := cmd.OutOrStdout()
	outcome := result.Outcome

	if outcome.Rejected != nil {
		_, err := fmt.Fprintf(out, "%s %v\n", rejectedLabel.Sprint("rejected:"), outcome.Rejected)
		return err
	}

	for _, signal := range outcome.Signals {
		_, _ = fmt.Fprintf(out, "%s %s\n", signalLabel.Sprint("signal:"), signal)
	}
	if outcome.Warning != "" {
		_, _ = fmt.Fprintf(out, "%s %s\n", warningLabel.Sprint("warning:"), outcome.Warning)
	}
	if module := outcome.Module; module != nil {
		_, _ = fmt.Fprintf(out, "module: %s %s (%s, order %d)\n", module.InstanceID, module.LibraryID, module.Phase, module.Order)
	}
	for _, unlocked := range outcome.Unlocked {
		_, _ = fmt.Fprintf(out, "unlocked: %s\n", unlocked)
	}

	_, err := fmt.Fprintln(out, sessionLine(result.Session))
	return err
}

func sessionLine(session domain.Session) string {
	parts := []string{"status: " + statusadapter.Label(string(session.Status))}
	if session.CurrentPhase != "" {
		parts = append(parts, "phase: "+statusadapter.Label(string(session.CurrentPhase)))
	}
	return strings.Join(parts, "  ")
}
