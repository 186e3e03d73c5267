package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/migrate"
	"github.com/bnema/guide-cli/internal/ports"
)

type PreferencesRepository struct {
	store  Store
	logger *log.Logger
}

var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)

func NewPreferencesRepository(store Store, logger *log.Logger) *PreferencesRepository {
	return &PreferencesRepository{store: store, logger: orDiscard(logger)}
}

func (r *PreferencesRepository) Load(ctx context.Context) (domain.Preferences, ports.LoadReport, error) {
	report := ports.LoadReport{Version: migrate.Preferences.Current()}

	data, err := r.store.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.DefaultPreferences(), report, nil
		}
		return domain.Preferences{}, report, err
	}

	version, state, err := decodeEnvelope(data)
	if err != nil {
		r.logger.Printf("preferences blob unreadable, using defaults: %v", err)
		report.Reset = true
		return domain.DefaultPreferences(), report, nil
	}
	report.StoredVersion = version

	result, err := migrate.Preferences.Migrate(version, state)
	if err != nil {
		return domain.Preferences{}, report, err
	}
	if result.Reset {
		report.Reset = true
		return domain.DefaultPreferences(), report, nil
	}
	report.Migrated = result.Migrated

	var schema preferencesSchema
	if err := decodeState(result.State, &schema); err != nil {
		r.logger.Printf("preferences blob does not decode, using defaults: %v", err)
		report.Migrated = false
		report.Reset = true
		return domain.DefaultPreferences(), report, nil
	}
	return fromPreferencesSchema(schema), report, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs domain.Preferences) error {
	data, err := encodeEnvelope(migrate.Preferences.Current(), toPreferencesSchema(prefs))
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return r.store.Write(ctx, data)
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard, "", 0)
}
