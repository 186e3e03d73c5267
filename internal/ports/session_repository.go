package ports

import (
	"context"

	"github.com/bnema/guide-cli/internal/domain"
)

// LoadReport describes what happened to the stored blob on load.
type LoadReport struct {
	StoredVersion int
	Version       int
	Migrated      bool
	Reset         bool
}

type SessionRepository interface {
	Load(ctx context.Context) (domain.Session, LoadReport, error)
	Save(ctx context.Context, session domain.Session) error
	Reset(ctx context.Context) error
}
