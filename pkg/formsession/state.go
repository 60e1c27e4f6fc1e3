package formsession

import (
	"errors"
	"time"

	"go-agency-backend/pkg/validation"
)

// Status is the submission status of a form session
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Field names the session understands. Fields without a rule are stored as-is.
const (
	FieldName               = validation.FieldName
	FieldEmail              = validation.FieldEmail
	FieldPhone              = validation.FieldPhone
	FieldProjectDescription = validation.FieldProjectDescription
	FieldCompany            = "company"
	FieldProjectType        = "projectType"
	FieldSource             = "source"
)

// fieldOrder is the on-screen order used to pick the field to focus
var fieldOrder = []string{FieldName, FieldEmail, FieldPhone, FieldProjectDescription}

const (
	// RateLimitWindow is the minimum time between two successful submissions
	RateLimitWindow = 60 * time.Second
	// ValidatingDelay keeps the validating state visible before the request goes out
	ValidatingDelay = 300 * time.Millisecond
	// ResetDelay is how long the success state stays up before the form clears
	ResetDelay = 3 * time.Second
)

// Form-level messages
const (
	MsgRateLimited = "Please wait a moment before submitting again."
	MsgInvalidForm = "Please fix the errors in the form."
	MsgSuccess     = "Thank you! We'll get back to you within 24 hours."
	MsgGeneric     = "Something went wrong. Please try again."
)

// AnalyticsEvent is the single event tracked by the form
const AnalyticsEvent = "contact_form_submission"

var (
	ErrRateLimited        = errors.New("formsession: submitted too recently")
	ErrInvalidForm        = errors.New("formsession: form has invalid fields")
	ErrSubmissionInFlight = errors.New("formsession: submission already in progress")
	ErrClosed             = errors.New("formsession: session closed")
)

// State is an immutable snapshot of a session
type State struct {
	Fields  map[string]string
	Errors  map[string]string
	Status  Status
	Message string
}

// Field returns the value of a field, "" when unset
func (s State) Field(name string) string {
	return s.Fields[name]
}

// Error returns the error shown next to a field, "" when none
func (s State) Error(name string) string {
	return s.Errors[name]
}

// Busy reports whether the submit control must be disabled
func (s State) Busy() bool {
	return s.Status == StatusValidating || s.Status == StatusSubmitting
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
