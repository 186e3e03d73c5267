// Package diskv stores journal entries as one JSON file per entry, grouped in
// a directory per day.
package diskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/migrate"
	"github.com/bnema/guide-cli/internal/ports"
)

const (
	dayLayout    = "20060102"
	keySeparator = "_"
)

type entrySchema struct {
	Version     int    `json:"version"`
	ID          string `json:"id"`
	Content     string `json:"content"`
	SourceTag   string `json:"sourceTag"`
	ModuleTitle string `json:"moduleTitle,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type Journal struct {
	d     *diskv.Diskv
	newID func() string
	now   func() time.Time
}

var _ ports.Journal = (*Journal)(nil)

func New(basePath string) *Journal {
	return &Journal{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      256 * 1024,
			PathPerm:          0o700,
			FilePerm:          0o600,
		}),
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Append stores entry and returns it with its id and creation time filled in.
func (j *Journal) Append(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.JournalEntry{}, err
	}
	if strings.TrimSpace(entry.Content) == "" {
		return domain.JournalEntry{}, errors.New("journal entry is empty")
	}

	if entry.ID == "" {
		entry.ID = j.newID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = j.now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC().Truncate(time.Millisecond)

	if err := j.write(toKey(entry), toEntrySchema(entry)); err != nil {
		return domain.JournalEntry{}, err
	}
	return entry, nil
}

// List returns every entry, oldest first.
func (j *Journal) List(ctx context.Context) ([]domain.JournalEntry, error) {
	entries := make([]domain.JournalEntry, 0)
	for key := range j.d.Keys(ctx.Done()) {
		data, err := j.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("read journal entry %s: %w", key, err)
		}
		stored, migrated, err := decodeEntry(key, data)
		if err != nil {
			return nil, err
		}
		if migrated {
			if err := j.write(key, stored); err != nil {
				return nil, err
			}
		}
		entries = append(entries, stored.toDomain())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].CreatedAt.Equal(entries[b].CreatedAt) {
			return entries[a].ID < entries[b].ID
		}
		return entries[a].CreatedAt.Before(entries[b].CreatedAt)
	})
	return entries, nil
}

func (j *Journal) write(key string, stored entrySchema) error {
	stored.Version = migrate.JournalVersion
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	if err := j.d.Write(key, data); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// decodeEntry upgrades a stored entry to the current layout. migrated
// reports whether the stored bytes are out of date.
func decodeEntry(key string, data []byte) (entrySchema, bool, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return entrySchema{}, false, fmt.Errorf("decode journal entry %s: %w", key, err)
	}

	version := 1
	if v, ok := raw["version"].(float64); ok {
		version = int(v)
	}
	delete(raw, "version")

	result, err := migrate.Journal.Migrate(version, raw)
	if err != nil {
		return entrySchema{}, false, fmt.Errorf("migrate journal entry %s: %w", key, err)
	}
	if result.Reset {
		return entrySchema{}, false, fmt.Errorf("journal entry %s: %w %d", key, domain.ErrUnsupportedVersion, version)
	}

	upgraded, err := json.Marshal(result.State)
	if err != nil {
		return entrySchema{}, false, fmt.Errorf("encode journal entry %s: %w", key, err)
	}
	var stored entrySchema
	if err := json.Unmarshal(upgraded, &stored); err != nil {
		return entrySchema{}, false, fmt.Errorf("decode journal entry %s: %w", key, err)
	}

	day, id, _ := strings.Cut(key, keySeparator)
	if stored.ID == "" {
		stored.ID = id
	}
	if stored.CreatedAt <= 0 {
		// An unreadable time falls back to the start of the entry's day.
		at, err := time.Parse(dayLayout, day)
		if err != nil {
			return entrySchema{}, false, fmt.Errorf("journal entry %s has no creation time", key)
		}
		stored.CreatedAt = at.UnixMilli()
	}
	return stored, result.Migrated, nil
}

func toEntrySchema(entry domain.JournalEntry) entrySchema {
	return entrySchema{
		ID:          entry.ID,
		Content:     entry.Content,
		SourceTag:   entry.SourceTag,
		ModuleTitle: entry.ModuleTitle,
		CreatedAt:   entry.CreatedAt.UnixMilli(),
	}
}

func (s entrySchema) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		ID:          s.ID,
		Content:     s.Content,
		SourceTag:   s.SourceTag,
		ModuleTitle: s.ModuleTitle,
		CreatedAt:   time.UnixMilli(s.CreatedAt).UTC(),
	}
}

func toKey(entry domain.JournalEntry) string {
	return entry.CreatedAt.Format(dayLayout) + keySeparator + entry.ID
}

// keyToPathTransform makes `day_id` into `day/id`.
func keyToPathTransform(key string) *diskv.PathKey {
	day, id, ok := strings.Cut(key, keySeparator)
	if !ok {
		return &diskv.PathKey{FileName: key}
	}
	return &diskv.PathKey{Path: []string{day}, FileName: id}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, keySeparator) + keySeparator + pathKey.FileName
}
