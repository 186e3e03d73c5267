package ports

import (
	"context"

	"github.com/bnema/guide-cli/internal/domain"
)

type PreferencesRepository interface {
	Load(ctx context.Context) (domain.Preferences, LoadReport, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
