package domain

import "errors"

var (
	ErrModuleNotFound       = errors.New("module not found in library")
	ErrInstanceNotFound     = errors.New("module instance not found")
	ErrDuplicateBooster     = errors.New("timeline already has a booster module")
	ErrIntensityBlocked     = errors.New("module intensity is blocked in this phase")
	ErrPhaseNotAllowed      = errors.New("module is not offered in this phase")
	ErrInvalidPhase         = errors.New("invalid phase")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrEmptyQueue           = errors.New("module queue is empty")
	ErrModuleFinished       = errors.New("module already finished")
	ErrPhaseBusy            = errors.New("another module is active in this phase")
	ErrNotAdjacent          = errors.New("modules are not adjacent")
	ErrBoosterNotDue        = errors.New("booster prompt is not due")
	ErrBoosterWindowClosed  = errors.New("booster window is closed")
	ErrFollowUpLocked       = errors.New("follow-up module is locked")
	ErrCaptureRecorded      = errors.New("transition capture already recorded")
	ErrEmptyCapture         = errors.New("transition capture is empty")
	ErrUnsupportedVersion   = errors.New("unsupported schema version")
	ErrUnknownFollowUp      = errors.New("unknown follow-up module")
	ErrUnknownTransition    = errors.New("unknown transition kind")
	ErrUnknownCheckInAnswer = errors.New("unknown check-in response")
)

// RejectionError is a structured refusal from the scheduling engine. It
// unwraps to one of the sentinel errors above.
type RejectionError struct {
	Code   error
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return e.Code.Error()
	}
	return e.Code.Error() + ": " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Code
}

func Reject(code error, reason string) *RejectionError {
	return &RejectionError{Code: code, Reason: reason}
}
