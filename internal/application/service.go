package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
	"github.com/bnema/guide-cli/internal/ports"
)

const tracerName = "github.com/bnema/guide-cli/internal/application"

var ErrNoPreferencesStore = errors.New("preferences store is not configured")

// SessionService owns the loaded session. Every command goes through
// Dispatch: reduce, save, then run the outcome's side effects.
type SessionService struct {
	engine  *engine.Engine
	repo    ports.SessionRepository
	prefs   ports.PreferencesRepository
	journal ports.Journal
	fetcher ports.Prefetcher
	notify  ports.Notifier
	clock   ports.Clock
	logger  *log.Logger
	tracer  trace.Tracer

	mu          sync.Mutex
	loaded      bool
	session     domain.Session
	preferences domain.Preferences
	report      ports.LoadReport

	background sync.WaitGroup
}

type Option func(*SessionService)

func WithPreferences(repo ports.PreferencesRepository) Option {
	return func(s *SessionService) { s.prefs = repo }
}

func WithJournal(journal ports.Journal) Option {
	return func(s *SessionService) { s.journal = journal }
}

func WithPrefetcher(fetcher ports.Prefetcher) Option {
	return func(s *SessionService) { s.fetcher = fetcher }
}

func WithNotifier(notifier ports.Notifier) Option {
	return func(s *SessionService) { s.notify = notifier }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *SessionService) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func NewSessionService(eng *engine.Engine, repo ports.SessionRepository, clock ports.Clock, opts ...Option) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &SessionService{
		engine:      eng,
		repo:        repo,
		clock:       clock,
		logger:      log.New(io.Discard, "", 0),
		tracer:      otel.Tracer(tracerName),
		preferences: domain.DefaultPreferences(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the session and preferences from their stores. It is called
// lazily by every other method, so hosts only need it for the report.
func (s *SessionService) Load(ctx context.Context) (domain.Session, ports.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return domain.Session{}, ports.LoadReport{}, err
	}
	return s.session.Clone(), s.report, nil
}

func (s *SessionService) load(ctx context.Context) error {
	session, report, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if report.Reset {
		s.logger.Printf("session blob v%d could not be read, started a fresh session", report.StoredVersion)
	} else if report.Migrated {
		s.logger.Printf("session blob migrated from v%d to v%d", report.StoredVersion, report.Version)
	}

	prefs := domain.DefaultPreferences()
	if s.prefs != nil {
		loaded, prefsReport, err := s.prefs.Load(ctx)
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		if prefsReport.Reset {
			s.logger.Printf("preferences blob v%d could not be read, using defaults", prefsReport.StoredVersion)
		}
		prefs = loaded
	}

	s.session = session
	s.preferences = prefs
	s.report = report
	s.loaded = true
	return nil
}

func (s *SessionService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	return s.load(ctx)
}

// Session returns a copy of the in-memory session, loading it first if
// needed.
func (s *SessionService) Session(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Session{}, err
	}
	return s.session.Clone(), nil
}

// Dispatch applies one event. A rejected event is not an error: the
// returned Result carries the rejection and the unchanged session. Errors
// are reserved for storage failures, in which case the in-memory session is
// left as it was.
func (s *SessionService) Dispatch(ctx context.Context, event engine.Event) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "session."+event.Name())
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return Result{}, err
	}

	now := s.clock.Now()
	current := s.session
	next, outcome := s.engine.Apply(current, event, now)

	if outcome.Rejected != nil {
		s.logger.Printf("%s rejected: %v", event.Name(), outcome.Rejected)
		span.SetAttributes(attribute.String("guide.rejected", outcome.Rejected.Error()))
		return Result{Session: current.Clone(), Outcome: outcome}, nil
	}

	if err := s.persist(ctx, event, next, now); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return Result{Session: current.Clone()}, err
	}
	s.session = next

	span.SetAttributes(
		attribute.String("guide.status", string(next.Status)),
		attribute.String("guide.phase", string(next.CurrentPhase)),
		attribute.StringSlice("guide.signals", signalNames(outcome.Signals)),
	)
	if outcome.Warning != "" {
		s.logger.Printf("%s: %s", event.Name(), outcome.Warning)
	}

	s.runEffects(ctx, outcome.Effects)
	return Result{Session: next.Clone(), Outcome: outcome}, nil
}

func (s *SessionService) persist(ctx context.Context, event engine.Event, next domain.Session, now time.Time) error {
	if _, ok := event.(engine.ResetSession); ok {
		if err := s.repo.Reset(ctx); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
		return nil
	}

	stored := next.Clone()
	stored.StripTransient(now)
	if err := s.repo.Save(ctx, stored); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// runEffects is best effort. Journal appends and notifications run inline
// and failures are logged; prefetch runs in the background until Wait.
func (s *SessionService) runEffects(ctx context.Context, effects engine.Effects) {
	if effects.Empty() {
		return
	}

	if s.journal != nil {
		for _, entry := range effects.Journal {
			if _, err := s.journal.Append(ctx, entry); err != nil {
				s.logger.Printf("journal append failed: %v", err)
			}
		}
	}

	if s.notify != nil && s.preferences.NotificationsEnabled {
		for _, notification := range effects.Notify {
			if err := s.notify.Notify(ctx, notification); err != nil {
				s.logger.Printf("notify %q failed: %v", notification.Title, err)
			}
		}
	}

	if s.fetcher != nil && s.preferences.PrefetchEnabled && len(effects.Prefetch) > 0 {
		ids := append([]string(nil), effects.Prefetch...)
		bg := context.WithoutCancel(ctx)
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			if err := s.fetcher.Precache(bg, ids); err != nil {
				s.logger.Printf("prefetch %v failed: %v", ids, err)
			}
		}()
	}
}

// Wait blocks until background prefetches finish.
func (s *SessionService) Wait() {
	s.background.Wait()
}

func signalNames(signals []engine.Signal) []string {
	names := make([]string, 0, len(signals))
	for _, signal := range signals {
		names = append(names, string(signal))
	}
	return names
}
