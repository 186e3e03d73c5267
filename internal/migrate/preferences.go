package migrate

// PreferencesVersion is the layout written by the current build.
const PreferencesVersion = 2

var Preferences = mustChain("preferences",
	Step{From: 1, Name: "notification and prefetch toggles", Upgrade: addToggles},
)

func addToggles(state map[string]any) map[string]any {
	setDefault(state, "notificationsEnabled", true)
	setDefault(state, "prefetchEnabled", true)
	return normalizeDates(state).(map[string]any)
}
