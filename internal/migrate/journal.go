package migrate

// JournalVersion is the entry layout written by the current build. Entries
// saved before versioning carry no version field and load as version 1.
const JournalVersion = 2

var Journal = mustChain("journal",
	Step{From: 1, Name: "millisecond creation time", Upgrade: journalDates},
)

func journalDates(state map[string]any) map[string]any {
	setDefault(state, "sourceTag", "")
	return normalizeDates(state).(map[string]any)
}
