package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
	"github.com/bnema/guide-cli/internal/ports"
)

type ModuleProgress struct {
	Instance  domain.ModuleInstance
	Title     string
	Elapsed   time.Duration
	Remaining time.Duration
}

type FollowUpItem struct {
	Module      domain.FollowUpModule
	Status      domain.FollowUpStatus
	UnlocksAt   time.Time
	CompletedAt time.Time
}

type TimelineEntry struct {
	Instance domain.ModuleInstance
	Title    string
}

// Status is a read-only snapshot for rendering. It never changes the
// session; hosts that want due promotions applied call Tick first.
type Status struct {
	Session   domain.Session
	Triggers  engine.Triggers
	Elapsed   time.Duration
	Current   *ModuleProgress
	Next      *ModuleProgress
	FollowUps []FollowUpItem
	Report    ports.LoadReport
}

func (s *SessionService) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return Status{}, err
	}

	now := s.clock.Now()
	session := s.session.Clone()
	status := Status{
		Session:   session,
		Triggers:  engine.Evaluate(now, session),
		Elapsed:   session.SinceIngestion(now),
		FollowUps: followUpItems(session.FollowUp),
		Report:    s.report,
	}
	if module, ok := session.CurrentModule(); ok {
		status.Current = s.progress(module, now, session.Suspension)
	}
	if module, ok := session.NextModule(); ok {
		status.Next = s.progress(module, now, session.Suspension)
	}
	return status, nil
}

func (s *SessionService) progress(module domain.ModuleInstance, now time.Time, suspension domain.Suspension) *ModuleProgress {
	return &ModuleProgress{
		Instance:  module,
		Title:     s.title(module.LibraryID),
		Elapsed:   module.Elapsed(now, suspension),
		Remaining: module.Remaining(now, suspension),
	}
}

// Timeline lists modules grouped by phase in display order.
func (s *SessionService) Timeline(ctx context.Context) ([]TimelineEntry, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, session.Timeline.Len())
	for _, phase := range domain.TimelinePhases {
		for _, module := range session.Timeline.InPhase(phase) {
			entries = append(entries, TimelineEntry{Instance: module, Title: s.title(module.LibraryID)})
		}
	}
	return entries, nil
}

func (s *SessionService) Library() []domain.LibraryModule {
	library := s.engine.Library()
	if library == nil {
		return nil
	}
	return library.List()
}

func (s *SessionService) JournalEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	if s.journal == nil {
		return nil, nil
	}
	entries, err := s.journal.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return entries, nil
}

func (s *SessionService) Preferences(ctx context.Context) (domain.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Preferences{}, err
	}
	return s.preferences, nil
}

func (s *SessionService) title(libraryID string) string {
	library := s.engine.Library()
	if library == nil {
		return libraryID
	}
	module, err := library.GetModuleByID(libraryID)
	if err != nil || module.Title == "" {
		return libraryID
	}
	return module.Title
}

func followUpItems(followUp domain.FollowUp) []FollowUpItem {
	items := make([]FollowUpItem, 0, len(domain.FollowUpModules))
	for _, module := range domain.FollowUpModules {
		items = append(items, FollowUpItem{
			Module:      module,
			Status:      followUp.StatusOf(module),
			UnlocksAt:   followUp.UnlockTimes.For(module),
			CompletedAt: followUp.CompletedAt[module],
		})
	}
	return items
}
