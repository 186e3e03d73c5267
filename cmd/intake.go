package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

func newIntakeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Answer the pre-session intake",
	}

	cmd.AddCommand(newIntakeStartCmd(app), newIntakeCompleteCmd(app))

	return cmd
}

func newIntakeStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Begin the intake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, app, engine.StartIntake{})
		},
	}
}

func newIntakeCompleteCmd(app *app) *cobra.Command {
	var answersPath string
	var responses domain.IntakeResponses
	var length string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Submit intake answers and generate the timeline",
		Long: `Submit intake answers from flags, a YAML answers file, or both. Flags that
are set explicitly override the file.

Example answers file:

  experience_level: some
  focus: healing
  session_length: standard
  consider_booster: true
  has_sitter: true
  medications: []`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := domain.IntakeResponses{}
			if answersPath != "" {
				loaded, err := readIntakeAnswers(answersPath)
				if err != nil {
					return err
				}
				answers = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("experience") {
				answers.ExperienceLevel = responses.ExperienceLevel
			}
			if flags.Changed("focus") {
				answers.Focus = responses.Focus
			}
			if flags.Changed("length") {
				answers.SessionLength = domain.SessionLength(strings.ToLower(strings.TrimSpace(length)))
			}
			if flags.Changed("booster") {
				answers.ConsiderBooster = responses.ConsiderBooster
			}
			if flags.Changed("heart-condition") {
				answers.HeartCondition = responses.HeartCondition
			}
			if flags.Changed("psychiatric-history") {
				answers.PsychiatricHistory = responses.PsychiatricHistory
			}
			if flags.Changed("medication") {
				answers.Medications = responses.Medications
			}
			if flags.Changed("sitter") {
				answers.HasSitter = responses.HasSitter
			}

			result, err := app.service.CompleteIntake(cmd.Context(), answers)
			if err != nil {
				return err
			}
			if err := printResult(cmd, result); err != nil {
				return err
			}
			if result.Rejected() {
				return nil
			}
			for _, warning := range result.Session.SafetyWarnings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", warningLabel.Sprint("safety:"), strings.ReplaceAll(string(warning), "-", " "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file with intake answers")
	cmd.Flags().StringVar(&responses.ExperienceLevel, "experience", "", "Experience level")
	cmd.Flags().StringVar(&responses.Focus, "focus", "", "Session focus, selects the timeline template")
	cmd.Flags().StringVar(&length, "length", "", "Session length: short, standard or long")
	cmd.Flags().BoolVar(&responses.ConsiderBooster, "booster", false, "Consider a booster during the peak")
	cmd.Flags().BoolVar(&responses.HeartCondition, "heart-condition", false, "Report a heart condition")
	cmd.Flags().BoolVar(&responses.PsychiatricHistory, "psychiatric-history", false, "Report a psychiatric history")
	cmd.Flags().StringSliceVar(&responses.Medications, "medication", nil, "Current medication (repeatable)")
	cmd.Flags().BoolVar(&responses.HasSitter, "sitter", false, "A sitter is present")

	return cmd
}

func readIntakeAnswers(path string) (domain.IntakeResponses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IntakeResponses{}, fmt.Errorf("read intake answers: %w", err)
	}

	var answers domain.IntakeResponses
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return domain.IntakeResponses{}, fmt.Errorf("decode intake answers %s: %w", path, err)
	}
	return answers, nil
}

func newChecklistCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Run the substance checklist before starting",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Open the substance checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatch(cmd, app, engine.StartSubstanceChecklist{})
		},
	})

	return cmd
}
