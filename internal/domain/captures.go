package domain

import (
	"fmt"
	"strings"
	"time"
)

type TransitionKind string

const (
	TransitionComeUpToPeak       TransitionKind = "come-up-to-peak"
	TransitionPeakToIntegration  TransitionKind = "peak-to-integration"
	TransitionIntegrationToClose TransitionKind = "integration-to-close"
)

var TransitionKinds = []TransitionKind{TransitionComeUpToPeak, TransitionPeakToIntegration, TransitionIntegrationToClose}

func ParseTransitionKind(raw string) (TransitionKind, error) {
	kind := TransitionKind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range TransitionKinds {
		if kind == known {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownTransition, raw)
}

type Capture struct {
	Text       string
	CapturedAt time.Time
}

// TransitionCaptures holds one write-once reflection per transition.
type TransitionCaptures map[TransitionKind]Capture

func (c TransitionCaptures) Clone() TransitionCaptures {
	out := make(TransitionCaptures, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c TransitionCaptures) Recorded(kind TransitionKind) bool {
	_, ok := c[kind]
	return ok
}
