package domain

import "time"

type BoosterStatus string

const (
	BoosterPending  BoosterStatus = "pending"
	BoosterPrompted BoosterStatus = "prompted"
	BoosterTaken    BoosterStatus = "taken"
	BoosterSkipped  BoosterStatus = "skipped"
	BoosterSnoozed  BoosterStatus = "snoozed"
	BoosterExpired  BoosterStatus = "expired"
)

// BoosterLibraryID is the catalog id of the booster placeholder module.
const BoosterLibraryID = "booster-consideration"

var boosterTransitions = map[BoosterStatus][]BoosterStatus{
	BoosterPending:  {BoosterPrompted},
	BoosterPrompted: {BoosterTaken, BoosterSkipped, BoosterSnoozed, BoosterExpired},
	BoosterSnoozed:  {BoosterPrompted},
}

// CanTransition reports whether the booster DAG has an edge from s to next.
func (s BoosterStatus) CanTransition(next BoosterStatus) bool {
	for _, allowed := range boosterTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Resolved reports whether the booster decision is final.
func (s BoosterStatus) Resolved() bool {
	return s == BoosterTaken || s == BoosterSkipped || s == BoosterExpired
}

type Booster struct {
	Status       BoosterStatus
	PromptedAt   time.Time
	NextPromptAt time.Time
	TakenAt      time.Time
	SnoozeCount  int

	// ModalVisible and WindowClosed describe the open prompt and are not
	// persisted.
	ModalVisible bool
	WindowClosed bool
}

func NewBooster() Booster {
	return Booster{Status: BoosterPending}
}
