package migrate

import "github.com/bnema/guide-cli/internal/domain"

const (
	dayMillis = int64(24 * 60 * 60 * 1000)

	// SessionVersion is the layout written by the current build.
	SessionVersion = 8
)

// Session upgrades the session blob. Version 2 is the oldest layout still
// read; anything earlier resets.
var Session = mustChain("session",
	Step{From: 2, Name: "booster", Upgrade: addBooster},
	Step{From: 3, Name: "come-up check-in", Upgrade: addComeUpCheckIn},
	Step{From: 4, Name: "epoch dates", Upgrade: normalizeSessionDates},
	Step{From: 5, Name: "follow-up", Upgrade: addFollowUp},
	Step{From: 6, Name: "captures and booster flag", Upgrade: addCapturesAndBoosterFlag},
	Step{From: 7, Name: "suspension", Upgrade: addSuspension},
)

func addBooster(state map[string]any) map[string]any {
	booster := child(state, "booster")
	setDefault(booster, "status", string(domain.BoosterPending))
	setDefault(booster, "promptedAt", nil)
	setDefault(booster, "nextPromptAt", nil)
	setDefault(booster, "takenAt", nil)
	setDefault(booster, "snoozeCount", 0)
	return state
}

func addComeUpCheckIn(state map[string]any) map[string]any {
	checkIn := child(state, "comeUpCheckIn")
	setDefault(checkIn, "entries", []any{})
	setDefault(checkIn, "hasIndicatedFullyArrived", false)
	setDefault(checkIn, "fullyArrivedAt", nil)
	setDefault(checkIn, "promptCount", 0)
	setDefault(checkIn, "lastPromptedAt", nil)
	return state
}

func normalizeSessionDates(state map[string]any) map[string]any {
	return normalizeDates(state).(map[string]any)
}

func addFollowUp(state map[string]any) map[string]any {
	followUp := child(state, "followUp")

	unlock := child(followUp, "unlockTimes")
	closedAt, closed := state["closedAt"].(int64)
	if f, ok := state["closedAt"].(float64); ok {
		closedAt, closed = int64(f), f > 0
	}
	if closed {
		setDefault(unlock, "checkIn", closedAt+dayMillis)
		setDefault(unlock, "revisit", closedAt+dayMillis)
		setDefault(unlock, "integration", closedAt+2*dayMillis)
	} else {
		setDefault(unlock, "checkIn", nil)
		setDefault(unlock, "revisit", nil)
		setDefault(unlock, "integration", nil)
	}

	statuses := child(followUp, "status")
	for _, module := range domain.FollowUpModules {
		setDefault(statuses, string(module), string(domain.FollowUpLocked))
	}
	child(followUp, "completedAt")
	return state
}

func addCapturesAndBoosterFlag(state map[string]any) map[string]any {
	child(state, "transitionCaptures")
	setDefault(state, "openSpace", false)
	eachObject(state, "modules", func(module map[string]any) {
		libraryID, _ := module["libraryId"].(string)
		setDefault(module, "isBoosterModule", libraryID == domain.BoosterLibraryID)
	})
	return state
}

func addSuspension(state map[string]any) map[string]any {
	suspension := child(state, "suspension")
	setDefault(suspension, "reasons", []any{})
	setDefault(suspension, "since", nil)
	eachObject(state, "modules", func(module map[string]any) {
		setDefault(module, "suspendedMs", 0)
	})
	return state
}
