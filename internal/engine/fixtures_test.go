package engine

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/domain"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return t0.Add(time.Duration(minutes) * time.Minute)
}

type memoryLibrary struct {
	modules   map[string]domain.LibraryModule
	templates map[string]domain.TimelineTemplate
}

func (l memoryLibrary) GetModuleByID(id string) (domain.LibraryModule, error) {
	module, ok := l.modules[id]
	if !ok {
		return domain.LibraryModule{}, fmt.Errorf("%w: %s", domain.ErrModuleNotFound, id)
	}
	return module, nil
}

func (l memoryLibrary) List() []domain.LibraryModule {
	modules := make([]domain.LibraryModule, 0, len(l.modules))
	for _, module := range l.modules {
		modules = append(modules, module)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })
	return modules
}

func (l memoryLibrary) Template(focus string) (domain.TimelineTemplate, bool) {
	template, ok := l.templates[focus]
	return template, ok
}

func testLibrary() memoryLibrary {
	return memoryLibrary{
		modules: map[string]domain.LibraryModule{
			"grounding":  {ID: "grounding", Title: "Grounding", DefaultDuration: 10 * time.Minute, Intensity: domain.IntensityLow},
			"breathwork": {ID: "breathwork", Title: "Breathwork", DefaultDuration: 15 * time.Minute, Intensity: domain.IntensityModerate},
			"dance":      {ID: "dance", Title: "Free movement", DefaultDuration: 20 * time.Minute, Intensity: domain.IntensityHigh},
			"reflection": {
				ID:              "reflection",
				Title:           "Reflection",
				DefaultDuration: 30 * time.Minute,
				Intensity:       domain.IntensityLow,
				AllowedPhases:   []domain.Phase{domain.PhaseIntegration},
			},
			domain.BoosterLibraryID: {
				ID:              domain.BoosterLibraryID,
				Title:           "Booster consideration",
				DefaultDuration: 5 * time.Minute,
				Intensity:       domain.IntensityLow,
				IsBooster:       true,
			},
		},
		templates: map[string]domain.TimelineTemplate{
			"": {Phases: map[domain.Phase][]string{
				domain.PhaseComeUp:      {"grounding"},
				domain.PhasePeak:        {"dance", "breathwork"},
				domain.PhaseIntegration: {"reflection"},
			}},
			"rest": {Focus: "rest", Phases: map[domain.Phase][]string{
				domain.PhaseComeUp: {"grounding", "grounding"},
			}},
		},
	}
}

func sequentialIDs() func() domain.InstanceID {
	n := 0
	return func() domain.InstanceID {
		n++
		return domain.InstanceID(fmt.Sprintf("m%d", n))
	}
}

func newTestEngine() *Engine {
	return New(testLibrary(), domain.DefaultIntensityPolicy(), WithIDGenerator(sequentialIDs()))
}

func mustApply(t *testing.T, e *Engine, s domain.Session, ev Event, now time.Time) (domain.Session, Outcome) {
	t.Helper()

	next, out := e.Apply(s, ev, now)
	require.NoError(t, out.Rejected, ev.Name())
	return next, out
}

// startedSession runs intake and starts the session with ingestion at t0.
func startedSession(t *testing.T, e *Engine, intake domain.IntakeResponses) domain.Session {
	t.Helper()

	s := domain.NewSession()
	s, _ = mustApply(t, e, s, StartIntake{}, at(-30))
	s, _ = mustApply(t, e, s, CompleteIntake{Responses: intake}, at(-20))
	s, _ = mustApply(t, e, s, StartSubstanceChecklist{}, at(-10))
	s, _ = mustApply(t, e, s, StartSession{IngestedAt: t0}, t0)
	return s
}

// runningSession builds a session already in phase with the given modules.
func runningSession(phase domain.Phase, modules ...domain.ModuleInstance) domain.Session {
	s := domain.NewSession()
	s.Status = domain.StatusActive
	s.CurrentPhase = phase
	s.IngestedAt = t0
	s.TimelineGenerated = true
	s.PhaseWindows[phase] = domain.PhaseWindow{StartedAt: t0}
	s.Timeline.Modules = modules
	return s
}

func module(id string, phase domain.Phase, order int, status domain.ModuleStatus) domain.ModuleInstance {
	m := domain.ModuleInstance{
		InstanceID: domain.InstanceID(id),
		LibraryID:  "grounding",
		Phase:      phase,
		Order:      order,
		Duration:   10 * time.Minute,
		Status:     status,
	}
	if status == domain.ModuleActive {
		m.StartedAt = t0
	}
	return m
}

func find(t *testing.T, s domain.Session, id string) domain.ModuleInstance {
	t.Helper()

	m, ok := s.Timeline.Find(domain.InstanceID(id))
	require.True(t, ok, id)
	return m
}
