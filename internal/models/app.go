package models

import (
	"strings"

	"github.com/Rorical/MedAssist/internal/validate"
)

// Phase is where the form is in a submission.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
)

// String is the label shown in the status bar.
func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "Validating..."
	case PhaseSubmitting:
		return "Getting Response..."
	default:
		return "Ready"
	}
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Question     string          // Current text area contents
	Response     string          // Last successful answer, "" when hidden
	Loading      bool            // A submission is in flight
	FieldErrors  validate.Result // Errors from the last submit attempt
	Notification Notification    // Transient status line
	Phase        Phase           // Submission state machine
	RequestID    uint64          // ID of the latest submission
	Width        int             // Terminal width
	Height       int             // Terminal height
	ProfileName  string          // Active config profile, shown in the status bar
	Configured   bool            // Whether the profile has a key and endpoint

	lastNotificationID uint64
}

// NextNotificationID hands out IDs for notification timers.
func (m *AppModel) NextNotificationID() uint64 {
	m.lastNotificationID++
	return m.lastNotificationID
}

// CanSubmit mirrors the submit control: disabled while loading or when the
// question is blank.
func (m *AppModel) CanSubmit() bool {
	return !m.Loading && strings.TrimSpace(m.Question) != ""
}

// CanClear mirrors the clear control.
func (m *AppModel) CanClear() bool {
	return !m.Loading
}

func (m *AppModel) QuestionError() string {
	return m.FieldErrors.Error(validate.FieldQuestion)
}
