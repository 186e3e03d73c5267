package ports

import (
	"context"

	"github.com/bnema/guide-cli/internal/domain"
)

// Journal receives one-way appends. The engine never reads it back.
type Journal interface {
	Append(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)
	List(ctx context.Context) ([]domain.JournalEntry, error)
}

// Prefetcher warms module content. Failures are ignored by callers.
type Prefetcher interface {
	Precache(ctx context.Context, libraryIDs []string) error
}

type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) error
}
