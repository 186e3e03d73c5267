package domain

import "time"

type InstanceID string

type ModuleStatus string

const (
	ModuleUpcoming  ModuleStatus = "upcoming"
	ModuleActive    ModuleStatus = "active"
	ModuleCompleted ModuleStatus = "completed"
	ModuleSkipped   ModuleStatus = "skipped"
)

// Finished reports whether the status is terminal. Finished modules never
// revert.
func (s ModuleStatus) Finished() bool {
	return s == ModuleCompleted || s == ModuleSkipped
}

// ModuleInstance is one scheduled occurrence of a library module.
type ModuleInstance struct {
	InstanceID      InstanceID
	LibraryID       string
	Phase           Phase
	Order           int
	Duration        time.Duration
	Status          ModuleStatus
	StartedAt       time.Time
	CompletedAt     time.Time
	IsBoosterModule bool

	// SuspendedFor accumulates closed suspension intervals while active.
	SuspendedFor time.Duration
}

// Elapsed returns the run time of the module excluding suspension. The open
// suspension interval, if any, is subtracted for active modules.
func (m ModuleInstance) Elapsed(now time.Time, suspension Suspension) time.Duration {
	if m.StartedAt.IsZero() {
		return 0
	}

	end := now
	if !m.CompletedAt.IsZero() {
		end = m.CompletedAt
	}

	elapsed := end.Sub(m.StartedAt) - m.SuspendedFor
	if m.Status == ModuleActive {
		elapsed -= suspension.Overlap(m.StartedAt, now)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the planned duration left, never negative.
func (m ModuleInstance) Remaining(now time.Time, suspension Suspension) time.Duration {
	left := m.Duration - m.Elapsed(now, suspension)
	if left < 0 {
		return 0
	}
	return left
}

// HistoryRecord is the immutable snapshot appended when a module finishes.
type HistoryRecord struct {
	InstanceID  InstanceID
	LibraryID   string
	Phase       Phase
	Order       int
	Duration    time.Duration
	Status      ModuleStatus
	StartedAt   time.Time
	CompletedAt time.Time
	RecordedAt  time.Time
}

func NewHistoryRecord(m ModuleInstance, at time.Time) HistoryRecord {
	return HistoryRecord{
		InstanceID:  m.InstanceID,
		LibraryID:   m.LibraryID,
		Phase:       m.Phase,
		Order:       m.Order,
		Duration:    m.Duration,
		Status:      m.Status,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		RecordedAt:  at,
	}
}
