package engine

import (
	"strings"
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

const captureSourcePrefix = "transition:"

func (e *Engine) recordCapture(s *domain.Session, kind domain.TransitionKind, text string, now time.Time) Outcome {
	if _, err := domain.ParseTransitionKind(string(kind)); err != nil {
		return Outcome{Rejected: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return reject(domain.ErrEmptyCapture, "%s", kind)
	}
	if s.Captures.Recorded(kind) {
		return reject(domain.ErrCaptureRecorded, "%s", kind)
	}

	s.Captures[kind] = domain.Capture{Text: text, CapturedAt: now}

	var out Outcome
	out.Effects.Journal = append(out.Effects.Journal, domain.JournalEntry{
		Content:     text,
		SourceTag:   captureSourcePrefix + string(kind),
		ModuleTitle: e.captureTitle(s),
		CreatedAt:   now,
	})
	return out
}

// captureTitle names the last module that ran, if any.
func (e *Engine) captureTitle(s *domain.Session) string {
	history := s.Timeline.History
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Status == domain.ModuleCompleted {
			return e.title(history[i].LibraryID)
		}
	}
	return ""
}
