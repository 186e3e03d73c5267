package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bnema/guide-cli/internal/application"
	"github.com/bnema/guide-cli/internal/domain"
)

type RenderOptions struct {
	// Now defaults to the instant the status was evaluated at.
	Now      time.Time
	BarWidth int
}

func renderView(status application.Status, opts RenderOptions, s styles) string {
	session := status.Session
	lines := []string{s.title.Render("Guide session")}

	if session.Status == domain.StatusNotStarted || session.Status == "" {
		lines = append(lines, s.empty.Render("No session in progress."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.header.Render(headerLine(status)))
	if len(session.SafetyWarnings) > 0 {
		lines = append(lines, s.warning.Render("safety: "+warningList(session.SafetyWarnings)))
	}

	if session.Started() && session.Status != domain.StatusCompleted {
		lines = append(lines, s.section.Render(renderModules(status, opts, s)))
		if booster := boosterLine(status, s); booster != "" {
			lines = append(lines, booster)
		}
		if checkIn := checkInLine(status, s); checkIn != "" {
			lines = append(lines, checkIn)
		}
	}

	if session.Status == domain.StatusCompleted {
		lines = append(lines, s.section.Render(renderFollowUps(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(status application.Status) string {
	session := status.Session
	parts := []string{"status: " + Label(string(session.Status))}
	if session.CurrentPhase != "" {
		parts = append(parts, "phase: "+Label(string(session.CurrentPhase)))
	}
	if session.Status == domain.StatusCompleted && session.FinalDurationSeconds > 0 {
		parts = append(parts, "duration: "+FormatDuration(time.Duration(session.FinalDurationSeconds)*time.Second))
	} else if session.Started() {
		parts = append(parts, "elapsed: "+FormatDuration(status.Elapsed))
	}
	if session.TargetDuration > 0 {
		parts = append(parts, "target: "+FormatDuration(session.TargetDuration))
	}
	return strings.Join(parts, "  ")
}

func renderModules(status application.Status, opts RenderOptions, s styles) string {
	parts := make([]string, 0, 3)

	switch {
	case status.Current != nil:
		parts = append(parts, moduleLine(status.Current, opts, s))
	case status.Session.Timeline.OpenSpace:
		parts = append(parts, s.detail.Render("open space: nothing queued, take your time"))
	case status.Session.Status == domain.StatusPaused:
		parts = append(parts, s.detail.Render("paused"))
	default:
		parts = append(parts, s.empty.Render("no module running"))
	}

	if status.Next != nil {
		next := fmt.Sprintf("next: %s (%s)", status.Next.Title, FormatDuration(status.Next.Instance.Duration))
		parts = append(parts, s.moduleMeta.Render(next))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func moduleLine(progress *application.ModuleProgress, opts RenderOptions, s styles) string {
	width := opts.BarWidth
	if width <= 0 {
		width = 24
	}

	percent := 0.0
	if progress.Instance.Duration > 0 {
		percent = float64(progress.Elapsed) / float64(progress.Instance.Duration) * 100
	}

	remainingStyle := lipgloss.NewStyle().Foreground(interpolateColor(clampPercent(percent), 0, 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.module.Render(progress.Title),
		" ",
		renderProgressBar(percent, width, s),
		" ",
		s.moduleMeta.Render(fmt.Sprintf("%s / %s", FormatDuration(progress.Elapsed), FormatDuration(progress.Instance.Duration))),
		" ",
		remainingStyle.Render(fmt.Sprintf("(%s left)", FormatDuration(progress.Remaining))),
	)
}

func boosterLine(status application.Status, s styles) string {
	session := status.Session
	if !session.ConsiderBooster {
		return ""
	}

	triggers := status.Triggers
	switch {
	case triggers.ShowBooster && triggers.BoosterWindowClosed:
		return s.warning.Render("booster: window closed, dismiss the prompt")
	case triggers.ShowBooster:
		return s.warning.Render("booster: time to decide (take, skip or snooze)")
	case triggers.BoosterSilentlyExpired:
		return s.empty.Render("booster: window passed")
	}

	booster := session.Booster
	switch booster.Status {
	case domain.BoosterPending:
		return s.detail.Render("booster: considered at " + triggers.BoosterTriggerAt.Local().Format("15:04"))
	case domain.BoosterSnoozed:
		return s.detail.Render("booster: snoozed until " + booster.NextPromptAt.Local().Format("15:04"))
	case domain.BoosterTaken:
		return s.detail.Render("booster: taken at " + booster.TakenAt.Local().Format("15:04"))
	default:
		return s.detail.Render("booster: " + string(booster.Status))
	}
}

func checkInLine(status application.Status, s styles) string {
	session := status.Session
	if session.CheckIn.HasIndicatedFullyArrived {
		minutes := int(session.CheckIn.FullyArrivedAt.Sub(session.IngestedAt) / time.Minute)
		return s.detail.Render(fmt.Sprintf("check-in: fully arrived after %dm", minutes))
	}
	if status.Triggers.CheckInDue || session.CheckIn.PromptVisible {
		return s.warning.Render("check-in: how are you feeling? (not-yet, starting, fully-arrived)")
	}
	return ""
}

func renderFollowUps(status application.Status, opts RenderOptions, s styles) string {
	now := opts.Now
	if now.IsZero() {
		now = status.Triggers.Now
	}

	parts := []string{s.moduleMeta.Render("follow-up")}
	for _, item := range status.FollowUps {
		parts = append(parts, s.detail.Render(fmt.Sprintf("  %-12s %s", Label(string(item.Module)), followUpState(item, now))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func followUpState(item application.FollowUpItem, now time.Time) string {
	switch item.Status {
	case domain.FollowUpCompleted:
		return "completed"
	case domain.FollowUpAvailable:
		return "available"
	default:
		return formatUnlockRelative(item.UnlocksAt, now)
	}
}

// Label turns a kebab-case enum value into a title-cased label.
func Label(raw string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(raw, "-", " "))
}

func warningList(warnings []domain.SafetyWarning) string {
	labels := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		labels = append(labels, strings.ReplaceAll(string(warning), "-", " "))
	}
	return strings.Join(labels, ", ")
}

// FormatDuration prints whole minutes, with hours once past the hour.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0m"
	}
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	done := clampPercent(percent) / 100.0
	filled := int(math.Round(float64(width) * done))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatUnlockAt(unlocksAt, now time.Time) string {
	if now.IsZero() {
		return unlocksAt.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := unlocksAt.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return unlocksAt.Format("15:04")
	}
	return unlocksAt.Format("15:04 on 02 Jan")
}

func formatUnlockRelative(unlocksAt, now time.Time) string {
	if unlocksAt.IsZero() {
		return "locked"
	}
	if now.IsZero() {
		return "unlocks " + formatUnlockAt(unlocksAt, now)
	}
	if !unlocksAt.After(now) {
		return "unlocks now"
	}

	remaining := unlocksAt.Sub(now)
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("unlocks in %d %s (%s)", hours, suffix, formatUnlockAt(unlocksAt, now))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}
	return fmt.Sprintf("unlocks in %d %s (%s)", days, suffix, formatUnlockAt(unlocksAt, now))
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240.0+15.0*normalized)))
}
