package blob

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/migrate"
	"github.com/bnema/guide-cli/internal/ports"
)

type SessionRepository struct {
	store  Store
	logger *log.Logger
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(store Store, logger *log.Logger) *SessionRepository {
	return &SessionRepository{store: store, logger: orDiscard(logger)}
}

// Load returns the stored session upgraded to the current layout. Missing,
// malformed, and too-old blobs all load as a fresh session; the report says
// which.
func (r *SessionRepository) Load(ctx context.Context) (domain.Session, ports.LoadReport, error) {
	report := ports.LoadReport{Version: migrate.Session.Current()}

	data, err := r.store.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.NewSession(), report, nil
		}
		return domain.Session{}, report, err
	}

	version, state, err := decodeEnvelope(data)
	if err != nil {
		r.logger.Printf("session blob unreadable, starting fresh: %v", err)
		report.Reset = true
		return domain.NewSession(), report, nil
	}
	report.StoredVersion = version

	result, err := migrate.Session.Migrate(version, state)
	if err != nil {
		return domain.Session{}, report, err
	}
	if result.Reset {
		r.logger.Printf("session blob version %d predates %d, starting fresh", version, migrate.Session.Oldest())
		report.Reset = true
		return domain.NewSession(), report, nil
	}
	report.Migrated = result.Migrated

	var schema sessionSchema
	if err := decodeState(result.State, &schema); err != nil {
		r.logger.Printf("session blob does not decode, starting fresh: %v", err)
		report.Migrated = false
		report.Reset = true
		return domain.NewSession(), report, nil
	}

	return fromSessionSchema(schema), report, nil
}

func (r *SessionRepository) Save(ctx context.Context, session domain.Session) error {
	data, err := encodeEnvelope(migrate.Session.Current(), toSessionSchema(session))
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	return r.store.Write(ctx, data)
}

func (r *SessionRepository) Reset(ctx context.Context) error {
	return r.store.Delete(ctx)
}
