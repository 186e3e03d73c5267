package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

// Result pairs the session after a dispatch with the engine's outcome.
type Result struct {
	Session domain.Session
	Outcome engine.Outcome
}

func (r Result) Rejected() bool {
	return r.Outcome.Rejected != nil
}

// AddModule adds a catalog module to a phase and reports whether the
// intensity policy allowed it.
func (s *SessionService) AddModule(ctx context.Context, libraryID string, phase domain.Phase, position *int) (engine.AddModuleResult, error) {
	result, err := s.Dispatch(ctx, engine.AddModule{
		LibraryID: strings.TrimSpace(libraryID),
		Phase:     phase,
		Position:  position,
	})
	if err != nil {
		return engine.AddModuleResult{}, err
	}
	return result.Outcome.AddModuleResult(), nil
}

func (s *SessionService) CompleteIntake(ctx context.Context, responses domain.IntakeResponses) (Result, error) {
	return s.Dispatch(ctx, engine.CompleteIntake{Responses: responses})
}

// StartSession records ingestion at ingestedAt, or now when it is zero.
func (s *SessionService) StartSession(ctx context.Context, ingestedAt time.Time) (Result, error) {
	return s.Dispatch(ctx, engine.StartSession{IngestedAt: ingestedAt})
}

func (s *SessionService) CheckIn(ctx context.Context, raw string) (Result, error) {
	response, err := domain.ParseCheckInResponse(raw)
	if err != nil {
		return Result{}, err
	}
	return s.Dispatch(ctx, engine.RecordCheckIn{Response: response})
}

func (s *SessionService) Capture(ctx context.Context, kind, text string) (Result, error) {
	transition, err := domain.ParseTransitionKind(kind)
	if err != nil {
		return Result{}, err
	}
	return s.Dispatch(ctx, engine.RecordCapture{Kind: transition, Text: text})
}

func (s *SessionService) CompleteFollowUp(ctx context.Context, raw string) (Result, error) {
	module, err := domain.ParseFollowUpModule(raw)
	if err != nil {
		return Result{}, err
	}
	return s.Dispatch(ctx, engine.CompleteFollowUp{Module: module})
}

func (s *SessionService) Tick(ctx context.Context) (Result, error) {
	return s.Dispatch(ctx, engine.Tick{})
}

func (s *SessionService) Reset(ctx context.Context) (Result, error) {
	return s.Dispatch(ctx, engine.ResetSession{})
}

// Prefetch caches content synchronously. With no ids it warms every module
// still upcoming on the timeline.
func (s *SessionService) Prefetch(ctx context.Context, libraryIDs []string) ([]string, error) {
	if s.fetcher == nil {
		return nil, nil
	}

	ids := libraryIDs
	if len(ids) == 0 {
		session, err := s.Session(ctx)
		if err != nil {
			return nil, err
		}
		ids = upcomingLibraryIDs(session)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if err := s.fetcher.Precache(ctx, ids); err != nil {
		return ids, fmt.Errorf("prefetch modules: %w", err)
	}
	return ids, nil
}

func upcomingLibraryIDs(session domain.Session) []string {
	seen := make(map[string]struct{}, len(session.Timeline.Modules))
	ids := make([]string, 0, len(session.Timeline.Modules))
	for _, module := range session.Timeline.Modules {
		if module.Status.Finished() {
			continue
		}
		if _, ok := seen[module.LibraryID]; ok {
			continue
		}
		seen[module.LibraryID] = struct{}{}
		ids = append(ids, module.LibraryID)
	}
	return ids
}

// UpdatePreferences applies update to the stored preferences and saves them.
func (s *SessionService) UpdatePreferences(ctx context.Context, update func(*domain.Preferences)) (domain.Preferences, error) {
	if s.prefs == nil {
		return domain.Preferences{}, ErrNoPreferencesStore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Preferences{}, err
	}

	next := s.preferences
	update(&next)
	next.UpdatedAt = s.clock.Now().UTC()

	if err := s.prefs.Save(ctx, next); err != nil {
		return domain.Preferences{}, fmt.Errorf("save preferences: %w", err)
	}
	s.preferences = next
	return next, nil
}
