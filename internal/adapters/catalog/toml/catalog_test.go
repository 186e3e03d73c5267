package toml

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/guide-cli/internal/domain"
	"github.com/bnema/guide-cli/internal/engine"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	require.NoError(t, err)

	modules := catalog.List()
	require.NotEmpty(t, modules)
	assert.Equal(t, "settling-in", modules[0].ID)

	booster, err := catalog.GetModuleByID(domain.BoosterLibraryID)
	require.NoError(t, err)
	assert.True(t, booster.IsBooster)
	assert.Equal(t, []domain.Phase{domain.PhasePeak}, booster.AllowedPhases)

	grounding, err := catalog.GetModuleByID("grounding")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, grounding.DefaultDuration)
	assert.True(t, grounding.AllowedIn(domain.PhaseIntegration))

	_, err = catalog.GetModuleByID("missing")
	require.ErrorIs(t, err, domain.ErrModuleNotFound)

	assert.Equal(t, domain.TierBlocked, catalog.TierFor(domain.PhaseComeUp, domain.IntensityHigh))
	assert.Equal(t, domain.TierWarning, catalog.TierFor(domain.PhaseComeUp, domain.IntensityModerate))
	assert.Equal(t, domain.TierAllowed, catalog.TierFor(domain.PhasePeak, domain.IntensityHigh))

	assert.Equal(t, []string{"default", "exploration", "healing", "rest"}, catalog.Focuses())
}

func TestTemplateLookup(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	require.NoError(t, err)

	def, ok := catalog.Template("")
	require.True(t, ok)
	assert.Equal(t, DefaultTemplate, def.Focus)

	healing, ok := catalog.Template("  Healing ")
	require.True(t, ok)
	assert.Equal(t, []string{"settling-in", "grounding"}, healing.Phases[domain.PhaseComeUp])

	healing.Phases[domain.PhaseComeUp][0] = "mutated"
	again, _ := catalog.Template("healing")
	assert.Equal(t, "settling-in", again.Phases[domain.PhaseComeUp][0])

	_, ok = catalog.Template("unknown")
	assert.False(t, ok)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		catalog string
		wantErr string
	}{
		{
			name:    "newer version",
			catalog: "version = 9",
			wantErr: "unsupported catalog schema version 9",
		},
		{
			name: "bad duration",
			catalog: `[[modules]]
id = "a"
duration = "soon"
intensity = "low"`,
			wantErr: `module "a": invalid duration "soon"`,
		},
		{
			name: "follow-up phase",
			catalog: `[[modules]]
id = "a"
duration = "5m"
intensity = "low"
phases = ["follow-up"]`,
			wantErr: `phase "follow-up" cannot hold modules`,
		},
		{
			name: "second booster",
			catalog: `[[modules]]
id = "extra-dose"
duration = "5m"
intensity = "low"
booster = true`,
			wantErr: "may be the booster",
		},
		{
			name: "duplicate id",
			catalog: `[[modules]]
id = "a"
duration = "5m"
intensity = "low"

[[modules]]
id = "a"
duration = "5m"
intensity = "low"`,
			wantErr: `module "a" declared twice`,
		},
		{
			name: "unknown template module",
			catalog: `[templates.default]
peak = ["ghost"]`,
			wantErr: "ghost",
		},
		{
			name: "unknown tier",
			catalog: `[policy.peak]
high = "maybe"`,
			wantErr: `unknown tier "maybe"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.catalog))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFileFallsBackToDefaultPolicy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[[modules]]
id = "walk"
title = "Walk"
duration = "12m"
intensity = "high"
`), 0o600))

	catalog, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultIntensityPolicy(), catalog.Policy())

	walk, err := catalog.GetModuleByID("walk")
	require.NoError(t, err)
	assert.Equal(t, "Walk", walk.Title)
	assert.Nil(t, walk.AllowedPhases)
}

func TestDefaultCatalogGeneratesTimeline(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	require.NoError(t, err)
	eng := engine.New(catalog, catalog)

	now := time.Date(2026, 3, 14, 17, 0, 0, 0, time.UTC)
	session, out := eng.Apply(domain.NewSession(), engine.StartIntake{}, now)
	require.NoError(t, out.Rejected)
	session, out = eng.Apply(session, engine.CompleteIntake{Responses: domain.IntakeResponses{Focus: "healing", ConsiderBooster: true}}, now)
	require.NoError(t, out.Rejected)

	require.NoError(t, session.Timeline.Validate())
	peak := session.Timeline.InPhase(domain.PhasePeak)
	require.Len(t, peak, 4)
	assert.Equal(t, "self-compassion", peak[0].LibraryID)
	assert.Equal(t, domain.BoosterLibraryID, peak[1].LibraryID)
}
