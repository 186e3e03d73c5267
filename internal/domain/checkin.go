package domain

import (
	"fmt"
	"strings"
	"time"
)

type CheckInResponse string

const (
	CheckInNotYet       CheckInResponse = "not-yet"
	CheckInStarting     CheckInResponse = "starting"
	CheckInFullyArrived CheckInResponse = "fully-arrived"
)

func ParseCheckInResponse(raw string) (CheckInResponse, error) {
	response := CheckInResponse(strings.ToLower(strings.TrimSpace(raw)))
	switch response {
	case CheckInNotYet, CheckInStarting, CheckInFullyArrived:
		return response, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCheckInAnswer, raw)
	}
}

type CheckInEntry struct {
	Response              CheckInResponse
	Timestamp             time.Time
	MinutesSinceIngestion int
}

// ComeUpCheckIn is the append-only come-up log. HasIndicatedFullyArrived is
// sticky once set.
type ComeUpCheckIn struct {
	Entries                  []CheckInEntry
	HasIndicatedFullyArrived bool
	FullyArrivedAt           time.Time
	PromptCount              int
	LastPromptedAt           time.Time

	PromptVisible    bool
	EndChoiceVisible bool
}

func (c ComeUpCheckIn) Clone() ComeUpCheckIn {
	out := c
	if c.Entries != nil {
		out.Entries = append([]CheckInEntry(nil), c.Entries...)
	}
	return out
}

// LastActivity returns the latest entry or prompt time, zero when none.
func (c ComeUpCheckIn) LastActivity() time.Time {
	last := c.LastPromptedAt
	if n := len(c.Entries); n > 0 && c.Entries[n-1].Timestamp.After(last) {
		last = c.Entries[n-1].Timestamp
	}
	return last
}
