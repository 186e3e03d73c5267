package diskv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/migrate"
)

func TestJournalAppendAndList(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "journal")
	journal := New(base)
	ids := []string{"id-b", "id-a", "id-c"}
	journal.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	t0 := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	second, err := journal.Append(context.Background(), domain.JournalEntry{
		Content:     "peak felt spacious",
		SourceTag:   "transition:peak-to-integration",
		ModuleTitle: "Music journey",
		CreatedAt:   t0.Add(2 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-b", second.ID)

	first, err := journal.Append(context.Background(), domain.JournalEntry{
		Content:   "arriving",
		SourceTag: "transition:come-up-to-peak",
		CreatedAt: t0,
	})
	require.NoError(t, err)

	entries, err := journal.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.JournalEntry{first, second}, entries)

	_, err = os.Stat(filepath.Join(base, "20260315", "id-b"))
	require.NoError(t, err, "entries are grouped by day")
}

func TestJournalStampsCreationTime(t *testing.T) {
	t.Parallel()

	journal := New(t.TempDir())
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	journal.now = func() time.Time { return now }

	entry, err := journal.Append(context.Background(), domain.JournalEntry{Content: "morning after"})
	require.NoError(t, err)
	assert.Equal(t, now, entry.CreatedAt)
	assert.NotEmpty(t, entry.ID)
}

func TestJournalRejectsEmptyContent(t *testing.T) {
	t.Parallel()

	journal := New(t.TempDir())

	_, err := journal.Append(context.Background(), domain.JournalEntry{Content: "  "})
	require.Error(t, err)

	entries, err := journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalListMissingDirectory(t *testing.T) {
	t.Parallel()

	journal := New(filepath.Join(t.TempDir(), "never-created"))

	entries, err := journal.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalUpgradesUnversionedEntries(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	journal := New(base)
	require.NoError(t, journal.d.Write("20260314_old-1",
		[]byte(`{"id":"old-1","content":"before versions","createdAt":"2026-03-14T19:30:00Z"}`)))
	require.NoError(t, journal.d.Write("20260314_old-2",
		[]byte(`{"content":"no time at all","sourceTag":"transition:peak-to-integration"}`)))

	entries, err := journal.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.JournalEntry{
		ID:        "old-2",
		Content:   "no time at all",
		SourceTag: "transition:peak-to-integration",
		CreatedAt: day,
	}, entries[0])
	assert.Equal(t, domain.JournalEntry{
		ID:        "old-1",
		Content:   "before versions",
		CreatedAt: day.Add(19*time.Hour + 30*time.Minute),
	}, entries[1])

	data, err := os.ReadFile(filepath.Join(base, "20260314", "old-1"))
	require.NoError(t, err)
	var stored map[string]any
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.EqualValues(t, migrate.JournalVersion, stored["version"])
	assert.EqualValues(t, day.Add(19*time.Hour+30*time.Minute).UnixMilli(), stored["createdAt"])
}

func TestJournalRejectsNewerEntries(t *testing.T) {
	t.Parallel()

	journal := New(t.TempDir())
	require.NoError(t, journal.d.Write("20260314_future",
		[]byte(`{"version":99,"id":"future","content":"x","createdAt":1773516600000}`)))

	_, err := journal.List(context.Background())
	require.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestJournalWritesCurrentVersion(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	journal := New(base)
	journal.newID = func() string { return "fresh" }

	_, err := journal.Append(context.Background(), domain.JournalEntry{
		Content:   "settled",
		CreatedAt: time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "20260314", "fresh"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":2`)
}

func TestKeyTransformRoundTrip(t *testing.T) {
	t.Parallel()

	key := "20260314_8f0c2d1e-6a4b-4b8e-9a51-3f1e2d7c9b00"
	assert.Equal(t, key, pathToKeyTransform(keyToPathTransform(key)))
}
