package domain

import "time"

// JournalEntry is appended to the user's journal as a side effect.
type JournalEntry struct {
	ID          string
	Content     string
	SourceTag   string
	ModuleTitle string
	CreatedAt   time.Time
}

type Notification struct {
	Title string
	Body  string
}

// Preferences are user toggles stored outside the session blob.
type Preferences struct {
	NotificationsEnabled bool
	PrefetchEnabled      bool
	UpdatedAt            time.Time
}

func DefaultPreferences() Preferences {
	return Preferences{NotificationsEnabled: true, PrefetchEnabled: true}
}
