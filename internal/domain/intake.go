package domain

import (
	"strings"
	"time"
)

type SessionLength string

const (
	LengthShort    SessionLength = "short"
	LengthStandard SessionLength = "standard"
	LengthLong     SessionLength = "long"
)

const (
	ShortSessionDuration    = 4 * time.Hour
	StandardSessionDuration = 6 * time.Hour
	LongSessionDuration     = 8 * time.Hour
)

type SafetyWarning string

const (
	WarningHeartCondition     SafetyWarning = "heart-condition"
	WarningPsychiatricHistory SafetyWarning = "psychiatric-history"
	WarningMAOI               SafetyWarning = "maoi-interaction"
	WarningSSRI               SafetyWarning = "ssri-interaction"
	WarningLithium            SafetyWarning = "lithium-interaction"
	WarningNoSitter           SafetyWarning = "no-sitter"
)

// IntakeResponses are the pre-session answers. They are accepted as given and
// become immutable once intake completes.
type IntakeResponses struct {
	ExperienceLevel    string            `yaml:"experience_level"`
	Focus              string            `yaml:"focus"`
	SessionLength      SessionLength     `yaml:"session_length"`
	ConsiderBooster    bool              `yaml:"consider_booster"`
	HeartCondition     bool              `yaml:"heart_condition"`
	PsychiatricHistory bool              `yaml:"psychiatric_history"`
	Medications        []string          `yaml:"medications"`
	HasSitter          bool              `yaml:"has_sitter"`
	Notes              map[string]string `yaml:"notes"`
}

func (r IntakeResponses) Clone() IntakeResponses {
	out := r
	if r.Medications != nil {
		out.Medications = append([]string(nil), r.Medications...)
	}
	if r.Notes != nil {
		out.Notes = make(map[string]string, len(r.Notes))
		for k, v := range r.Notes {
			out.Notes[k] = v
		}
	}
	return out
}

var medicationWarnings = []struct {
	warning  SafetyWarning
	keywords []string
}{
	{WarningMAOI, []string{"maoi", "phenelzine", "tranylcypromine", "selegiline", "moclobemide", "isocarboxazid"}},
	{WarningSSRI, []string{"ssri", "sertraline", "fluoxetine", "paroxetine", "citalopram", "escitalopram", "fluvoxamine"}},
	{WarningLithium, []string{"lithium"}},
}

// SafetyWarnings derives the warnings shown before the session starts.
func (r IntakeResponses) SafetyWarnings() []SafetyWarning {
	warnings := make([]SafetyWarning, 0)
	if r.HeartCondition {
		warnings = append(warnings, WarningHeartCondition)
	}
	if r.PsychiatricHistory {
		warnings = append(warnings, WarningPsychiatricHistory)
	}
	for _, candidate := range medicationWarnings {
		if mentionsAny(r.Medications, candidate.keywords) {
			warnings = append(warnings, candidate.warning)
		}
	}
	if !r.HasSitter {
		warnings = append(warnings, WarningNoSitter)
	}
	return warnings
}

// TargetDuration maps the preferred length to a planned session duration.
func (r IntakeResponses) TargetDuration() time.Duration {
	switch SessionLength(strings.ToLower(strings.TrimSpace(string(r.SessionLength)))) {
	case LengthShort:
		return ShortSessionDuration
	case LengthLong:
		return LongSessionDuration
	default:
		return StandardSessionDuration
	}
}

func mentionsAny(medications []string, keywords []string) bool {
	for _, medication := range medications {
		normalized := strings.ToLower(medication)
		for _, keyword := range keywords {
			if strings.Contains(normalized, keyword) {
				return true
			}
		}
	}
	return false
}
