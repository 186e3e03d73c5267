package blob

import (
	"sort"
	"time"

	"github.com/bnema/guide-cli/internal/domain"
)

type sessionSchema struct {
	Status                string                       `json:"status"`
	CurrentPhase          string                       `json:"currentPhase"`
	Intake                intakeSchema                 `json:"intake"`
	IntakeCompleted       bool                         `json:"intakeCompleted"`
	TimelineGenerated     bool                         `json:"timelineGenerated"`
	SafetyWarnings        []string                     `json:"safetyWarnings"`
	TargetDurationMinutes int64                        `json:"targetDurationMinutes"`
	ConsiderBooster       bool                         `json:"considerBooster"`
	IngestedAt            *int64                       `json:"ingestedAt"`
	ClosedAt              *int64                       `json:"closedAt"`
	FinalDurationSeconds  int64                        `json:"finalDurationSeconds"`
	PhaseWindows          map[string]phaseWindowSchema `json:"phaseWindows"`
	OpenSpace             bool                         `json:"openSpace"`
	Modules               []moduleSchema               `json:"modules"`
	History               []historySchema              `json:"history"`
	Booster               boosterSchema                `json:"booster"`
	ComeUpCheckIn         checkInSchema                `json:"comeUpCheckIn"`
	FollowUp              followUpSchema               `json:"followUp"`
	TransitionCaptures    map[string]captureSchema     `json:"transitionCaptures"`
	Suspension            suspensionSchema             `json:"suspension"`
}

type intakeSchema struct {
	ExperienceLevel    string            `json:"experienceLevel,omitempty"`
	Focus              string            `json:"focus,omitempty"`
	SessionLength      string            `json:"sessionLength,omitempty"`
	ConsiderBooster    bool              `json:"considerBooster"`
	HeartCondition     bool              `json:"heartCondition"`
	PsychiatricHistory bool              `json:"psychiatricHistory"`
	Medications        []string          `json:"medications,omitempty"`
	HasSitter          bool              `json:"hasSitter"`
	Notes              map[string]string `json:"notes,omitempty"`
}

type phaseWindowSchema struct {
	StartedAt *int64 `json:"startedAt"`
	EndedAt   *int64 `json:"endedAt"`
}

type moduleSchema struct {
	InstanceID      string `json:"instanceId"`
	LibraryID       string `json:"libraryId"`
	Phase           string `json:"phase"`
	Order           int    `json:"order"`
	DurationSeconds int64  `json:"durationSeconds"`
	Status          string `json:"status"`
	StartedAt       *int64 `json:"startedAt"`
	CompletedAt     *int64 `json:"completedAt"`
	IsBoosterModule bool   `json:"isBoosterModule"`
	SuspendedMs     int64  `json:"suspendedMs"`
}

type historySchema struct {
	InstanceID      string `json:"instanceId"`
	LibraryID       string `json:"libraryId"`
	Phase           string `json:"phase"`
	Order           int    `json:"order"`
	DurationSeconds int64  `json:"durationSeconds"`
	Status          string `json:"status"`
	StartedAt       *int64 `json:"startedAt"`
	CompletedAt     *int64 `json:"completedAt"`
	RecordedAt      *int64 `json:"recordedAt"`
}

type boosterSchema struct {
	Status       string `json:"status"`
	PromptedAt   *int64 `json:"promptedAt"`
	NextPromptAt *int64 `json:"nextPromptAt"`
	TakenAt      *int64 `json:"takenAt"`
	SnoozeCount  int    `json:"snoozeCount"`
}

type checkInSchema struct {
	Entries                  []checkInEntrySchema `json:"entries"`
	HasIndicatedFullyArrived bool                 `json:"hasIndicatedFullyArrived"`
	FullyArrivedAt           *int64               `json:"fullyArrivedAt"`
	PromptCount              int                  `json:"promptCount"`
	LastPromptedAt           *int64               `json:"lastPromptedAt"`
}

type checkInEntrySchema struct {
	Response              string `json:"response"`
	Timestamp             *int64 `json:"timestamp"`
	MinutesSinceIngestion int    `json:"minutesSinceIngestion"`
}

type followUpSchema struct {
	UnlockTimes unlockTimesSchema `json:"unlockTimes"`
	Status      map[string]string `json:"status"`
	CompletedAt map[string]*int64 `json:"completedAt"`
}

type unlockTimesSchema struct {
	CheckIn     *int64 `json:"checkIn"`
	Revisit     *int64 `json:"revisit"`
	Integration *int64 `json:"integration"`
}

type captureSchema struct {
	Text       string `json:"text"`
	CapturedAt *int64 `json:"capturedAt"`
}

type suspensionSchema struct {
	Reasons []string `json:"reasons"`
	Since   *int64   `json:"since"`
}

type preferencesSchema struct {
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	PrefetchEnabled      bool   `json:"prefetchEnabled"`
	UpdatedAt            *int64 `json:"updatedAt"`
}

func (s *sessionSchema) applyDefaults() {
	if s.Status == "" {
		s.Status = string(domain.StatusNotStarted)
	}
	if s.Booster.Status == "" {
		s.Booster.Status = string(domain.BoosterPending)
	}
}

func toSessionSchema(session domain.Session) sessionSchema {
	out := sessionSchema{
		Status:                string(session.Status),
		CurrentPhase:          string(session.CurrentPhase),
		Intake:                toIntakeSchema(session.Intake),
		IntakeCompleted:       session.IntakeCompleted,
		TimelineGenerated:     session.TimelineGenerated,
		SafetyWarnings:        make([]string, 0, len(session.SafetyWarnings)),
		TargetDurationMinutes: int64(session.TargetDuration / time.Minute),
		ConsiderBooster:       session.ConsiderBooster,
		IngestedAt:            millis(session.IngestedAt),
		ClosedAt:              millis(session.ClosedAt),
		FinalDurationSeconds:  session.FinalDurationSeconds,
		PhaseWindows:          make(map[string]phaseWindowSchema, len(session.PhaseWindows)),
		OpenSpace:             session.Timeline.OpenSpace,
		Modules:               make([]moduleSchema, 0, len(session.Timeline.Modules)),
		History:               make([]historySchema, 0, len(session.Timeline.History)),
		Booster: boosterSchema{
			Status:       string(session.Booster.Status),
			PromptedAt:   millis(session.Booster.PromptedAt),
			NextPromptAt: millis(session.Booster.NextPromptAt),
			TakenAt:      millis(session.Booster.TakenAt),
			SnoozeCount:  session.Booster.SnoozeCount,
		},
		ComeUpCheckIn: checkInSchema{
			Entries:                  make([]checkInEntrySchema, 0, len(session.CheckIn.Entries)),
			HasIndicatedFullyArrived: session.CheckIn.HasIndicatedFullyArrived,
			FullyArrivedAt:           millis(session.CheckIn.FullyArrivedAt),
			PromptCount:              session.CheckIn.PromptCount,
			LastPromptedAt:           millis(session.CheckIn.LastPromptedAt),
		},
		FollowUp: followUpSchema{
			UnlockTimes: unlockTimesSchema{
				CheckIn:     millis(session.FollowUp.UnlockTimes.CheckIn),
				Revisit:     millis(session.FollowUp.UnlockTimes.Revisit),
				Integration: millis(session.FollowUp.UnlockTimes.Integration),
			},
			Status:      make(map[string]string, len(domain.FollowUpModules)),
			CompletedAt: make(map[string]*int64, len(session.FollowUp.CompletedAt)),
		},
		TransitionCaptures: make(map[string]captureSchema, len(session.Captures)),
		Suspension: suspensionSchema{
			Reasons: make([]string, 0, len(session.Suspension.Reasons)),
			Since:   millis(session.Suspension.Since),
		},
	}

	for _, warning := range session.SafetyWarnings {
		out.SafetyWarnings = append(out.SafetyWarnings, string(warning))
	}
	for phase, window := range session.PhaseWindows {
		out.PhaseWindows[string(phase)] = phaseWindowSchema{
			StartedAt: millis(window.StartedAt),
			EndedAt:   millis(window.EndedAt),
		}
	}
	for _, module := range session.Timeline.Modules {
		out.Modules = append(out.Modules, moduleSchema{
			InstanceID:      string(module.InstanceID),
			LibraryID:       module.LibraryID,
			Phase:           string(module.Phase),
			Order:           module.Order,
			DurationSeconds: int64(module.Duration / time.Second),
			Status:          string(module.Status),
			StartedAt:       millis(module.StartedAt),
			CompletedAt:     millis(module.CompletedAt),
			IsBoosterModule: module.IsBoosterModule,
			SuspendedMs:     module.SuspendedFor.Milliseconds(),
		})
	}
	for _, record := range session.Timeline.History {
		out.History = append(out.History, historySchema{
			InstanceID:      string(record.InstanceID),
			LibraryID:       record.LibraryID,
			Phase:           string(record.Phase),
			Order:           record.Order,
			DurationSeconds: int64(record.Duration / time.Second),
			Status:          string(record.Status),
			StartedAt:       millis(record.StartedAt),
			CompletedAt:     millis(record.CompletedAt),
			RecordedAt:      millis(record.RecordedAt),
		})
	}
	for _, entry := range session.CheckIn.Entries {
		out.ComeUpCheckIn.Entries = append(out.ComeUpCheckIn.Entries, checkInEntrySchema{
			Response:              string(entry.Response),
			Timestamp:             millis(entry.Timestamp),
			MinutesSinceIngestion: entry.MinutesSinceIngestion,
		})
	}
	for _, module := range domain.FollowUpModules {
		out.FollowUp.Status[string(module)] = string(session.FollowUp.StatusOf(module))
	}
	for module, at := range session.FollowUp.CompletedAt {
		out.FollowUp.CompletedAt[string(module)] = millis(at)
	}
	for kind, capture := range session.Captures {
		out.TransitionCaptures[string(kind)] = captureSchema{
			Text:       capture.Text,
			CapturedAt: millis(capture.CapturedAt),
		}
	}
	for _, reason := range session.Suspension.Reasons {
		out.Suspension.Reasons = append(out.Suspension.Reasons, string(reason))
	}

	return out
}

func fromSessionSchema(s sessionSchema) domain.Session {
	s.applyDefaults()

	session := domain.NewSession()
	session.Status = domain.LifecycleStatus(s.Status)
	session.CurrentPhase = domain.Phase(s.CurrentPhase)
	session.Intake = fromIntakeSchema(s.Intake)
	session.IntakeCompleted = s.IntakeCompleted
	session.TimelineGenerated = s.TimelineGenerated
	session.TargetDuration = time.Duration(s.TargetDurationMinutes) * time.Minute
	session.ConsiderBooster = s.ConsiderBooster
	session.IngestedAt = fromMillis(s.IngestedAt)
	session.ClosedAt = fromMillis(s.ClosedAt)
	session.FinalDurationSeconds = s.FinalDurationSeconds
	session.Timeline.OpenSpace = s.OpenSpace

	if len(s.SafetyWarnings) > 0 {
		session.SafetyWarnings = make([]domain.SafetyWarning, 0, len(s.SafetyWarnings))
		for _, warning := range s.SafetyWarnings {
			session.SafetyWarnings = append(session.SafetyWarnings, domain.SafetyWarning(warning))
		}
	}
	for phase, window := range s.PhaseWindows {
		session.PhaseWindows[domain.Phase(phase)] = domain.PhaseWindow{
			StartedAt: fromMillis(window.StartedAt),
			EndedAt:   fromMillis(window.EndedAt),
		}
	}
	for _, module := range s.Modules {
		session.Timeline.Modules = append(session.Timeline.Modules, domain.ModuleInstance{
			InstanceID:      domain.InstanceID(module.InstanceID),
			LibraryID:       module.LibraryID,
			Phase:           domain.Phase(module.Phase),
			Order:           module.Order,
			Duration:        time.Duration(module.DurationSeconds) * time.Second,
			Status:          moduleStatus(module.Status),
			StartedAt:       fromMillis(module.StartedAt),
			CompletedAt:     fromMillis(module.CompletedAt),
			IsBoosterModule: module.IsBoosterModule || module.LibraryID == domain.BoosterLibraryID,
			SuspendedFor:    time.Duration(module.SuspendedMs) * time.Millisecond,
		})
	}
	for _, record := range s.History {
		session.Timeline.History = append(session.Timeline.History, domain.HistoryRecord{
			InstanceID:  domain.InstanceID(record.InstanceID),
			LibraryID:   record.LibraryID,
			Phase:       domain.Phase(record.Phase),
			Order:       record.Order,
			Duration:    time.Duration(record.DurationSeconds) * time.Second,
			Status:      moduleStatus(record.Status),
			StartedAt:   fromMillis(record.StartedAt),
			CompletedAt: fromMillis(record.CompletedAt),
			RecordedAt:  fromMillis(record.RecordedAt),
		})
	}

	session.Booster = domain.Booster{
		Status:       domain.BoosterStatus(s.Booster.Status),
		PromptedAt:   fromMillis(s.Booster.PromptedAt),
		NextPromptAt: fromMillis(s.Booster.NextPromptAt),
		TakenAt:      fromMillis(s.Booster.TakenAt),
		SnoozeCount:  s.Booster.SnoozeCount,
	}

	session.CheckIn = domain.ComeUpCheckIn{
		HasIndicatedFullyArrived: s.ComeUpCheckIn.HasIndicatedFullyArrived,
		FullyArrivedAt:           fromMillis(s.ComeUpCheckIn.FullyArrivedAt),
		PromptCount:              s.ComeUpCheckIn.PromptCount,
		LastPromptedAt:           fromMillis(s.ComeUpCheckIn.LastPromptedAt),
	}
	for _, entry := range s.ComeUpCheckIn.Entries {
		session.CheckIn.Entries = append(session.CheckIn.Entries, domain.CheckInEntry{
			Response:              domain.CheckInResponse(entry.Response),
			Timestamp:             fromMillis(entry.Timestamp),
			MinutesSinceIngestion: entry.MinutesSinceIngestion,
		})
	}

	session.FollowUp.UnlockTimes = domain.UnlockTimes{
		CheckIn:     fromMillis(s.FollowUp.UnlockTimes.CheckIn),
		Revisit:     fromMillis(s.FollowUp.UnlockTimes.Revisit),
		Integration: fromMillis(s.FollowUp.UnlockTimes.Integration),
	}
	for module, status := range s.FollowUp.Status {
		session.FollowUp.Statuses[domain.FollowUpModule(module)] = domain.FollowUpStatus(status)
	}
	for module, at := range s.FollowUp.CompletedAt {
		if completed := fromMillis(at); !completed.IsZero() {
			session.FollowUp.CompletedAt[domain.FollowUpModule(module)] = completed
		}
	}

	for kind, capture := range s.TransitionCaptures {
		session.Captures[domain.TransitionKind(kind)] = domain.Capture{
			Text:       capture.Text,
			CapturedAt: fromMillis(capture.CapturedAt),
		}
	}

	reasons := make([]domain.SuspendReason, 0, len(s.Suspension.Reasons))
	for _, reason := range s.Suspension.Reasons {
		reasons = append(reasons, domain.SuspendReason(reason))
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	if len(reasons) > 0 {
		session.Suspension = domain.Suspension{Reasons: reasons, Since: fromMillis(s.Suspension.Since)}
	}

	return session
}

func toIntakeSchema(intake domain.IntakeResponses) intakeSchema {
	return intakeSchema{
		ExperienceLevel:    intake.ExperienceLevel,
		Focus:              intake.Focus,
		SessionLength:      string(intake.SessionLength),
		ConsiderBooster:    intake.ConsiderBooster,
		HeartCondition:     intake.HeartCondition,
		PsychiatricHistory: intake.PsychiatricHistory,
		Medications:        intake.Medications,
		HasSitter:          intake.HasSitter,
		Notes:              intake.Notes,
	}
}

func fromIntakeSchema(intake intakeSchema) domain.IntakeResponses {
	return domain.IntakeResponses{
		ExperienceLevel:    intake.ExperienceLevel,
		Focus:              intake.Focus,
		SessionLength:      domain.SessionLength(intake.SessionLength),
		ConsiderBooster:    intake.ConsiderBooster,
		HeartCondition:     intake.HeartCondition,
		PsychiatricHistory: intake.PsychiatricHistory,
		Medications:        intake.Medications,
		HasSitter:          intake.HasSitter,
		Notes:              intake.Notes,
	}
}

func toPreferencesSchema(prefs domain.Preferences) preferencesSchema {
	return preferencesSchema{
		NotificationsEnabled: prefs.NotificationsEnabled,
		PrefetchEnabled:      prefs.PrefetchEnabled,
		UpdatedAt:            millis(prefs.UpdatedAt),
	}
}

func fromPreferencesSchema(s preferencesSchema) domain.Preferences {
	return domain.Preferences{
		NotificationsEnabled: s.NotificationsEnabled,
		PrefetchEnabled:      s.PrefetchEnabled,
		UpdatedAt:            fromMillis(s.UpdatedAt),
	}
}

// moduleStatus maps stored statuses onto the current set; anything unknown
// is treated as still upcoming.
func moduleStatus(raw string) domain.ModuleStatus {
	switch status := domain.ModuleStatus(raw); status {
	case domain.ModuleUpcoming, domain.ModuleActive, domain.ModuleCompleted, domain.ModuleSkipped:
		return status
	default:
		return domain.ModuleUpcoming
	}
}

func millis(value time.Time) *int64 {
	if value.IsZero() {
		return nil
	}
	ms := value.UnixMilli()
	return &ms
}

func fromMillis(value *int64) time.Time {
	if value == nil || *value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(*value).UTC()
}
