package domain

import (
	"fmt"
	"strings"
	"time"
)

type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

func ParseIntensity(raw string) (Intensity, error) {
	intensity := Intensity(strings.ToLower(strings.TrimSpace(raw)))
	switch intensity {
	case IntensityLow, IntensityModerate, IntensityHigh:
		return intensity, nil
	default:
		return "", fmt.Errorf("unknown intensity %q", raw)
	}
}

// LibraryModule is a read-only catalog entry.
type LibraryModule struct {
	ID              string
	Title           string
	Description     string
	Content         string
	DefaultDuration time.Duration
	Intensity       Intensity
	AllowedPhases   []Phase
	IsBooster       bool
}

// AllowedIn reports whether the module may be scheduled in phase. An empty
// list allows every timeline phase.
func (m LibraryModule) AllowedIn(phase Phase) bool {
	if len(m.AllowedPhases) == 0 {
		return phase.Scheduled()
	}
	for _, allowed := range m.AllowedPhases {
		if allowed == phase {
			return true
		}
	}
	return false
}

type IntensityTier string

const (
	TierAllowed IntensityTier = "allowed"
	TierWarning IntensityTier = "warning"
	TierBlocked IntensityTier = "blocked"
)

// PhaseIntensityPolicy maps a phase and intensity to a tier. Missing entries
// are allowed.
type PhaseIntensityPolicy map[Phase]map[Intensity]IntensityTier

func (p PhaseIntensityPolicy) TierFor(phase Phase, intensity Intensity) IntensityTier {
	tiers, ok := p[phase]
	if !ok {
		return TierAllowed
	}
	tier, ok := tiers[intensity]
	if !ok || tier == "" {
		return TierAllowed
	}
	return tier
}

// DefaultIntensityPolicy is used when the catalog does not declare one.
func DefaultIntensityPolicy() PhaseIntensityPolicy {
	return PhaseIntensityPolicy{
		PhaseComeUp: {
			IntensityLow:      TierAllowed,
			IntensityModerate: TierWarning,
			IntensityHigh:     TierBlocked,
		},
		PhasePeak: {
			IntensityLow:      TierAllowed,
			IntensityModerate: TierAllowed,
			IntensityHigh:     TierAllowed,
		},
		PhaseIntegration: {
			IntensityLow:      TierAllowed,
			IntensityModerate: TierAllowed,
			IntensityHigh:     TierWarning,
		},
	}
}

// TimelineTemplate lists library ids per phase for a given intake focus.
type TimelineTemplate struct {
	Focus  string
	Phases map[Phase][]string
}
