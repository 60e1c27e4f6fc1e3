package domain

import (
	"context"
	"strings"
)

// Payload field names as they appear in the JSON body
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldMessage     = "message"
	FieldCompany     = "company"
	FieldPhone       = "phone"
	FieldProjectType = "projectType"
	FieldSource      = "source"
)

// SubmissionPayload is what the website forms post to the intake endpoints.
// Only presence of the variant's required fields is checked server-side.
type SubmissionPayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Message     string `json:"message,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
	Source      string `json:"source,omitempty"`
	// Honeypot is a hidden form input; humans leave it empty
	Honeypot string `json:"_honeypot,omitempty"`
}

// Value returns the payload field with the given JSON name
func (p *SubmissionPayload) Value(field string) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldEmail:
		return p.Email
	case FieldMessage:
		return p.Message
	case FieldCompany:
		return p.Company
	case FieldPhone:
		return p.Phone
	case FieldProjectType:
		return p.ProjectType
	case FieldSource:
		return p.Source
	}
	return ""
}

// MissingFields lists the required fields that are absent or blank
func (p *SubmissionPayload) MissingFields(required []string) []string {
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(p.Value(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// IntakeVariant configures one intake endpoint: which fields it insists on and
// how the operator notification is worded.
type IntakeVariant struct {
	Name           string
	RequiredFields []string
	Subject        func(p *SubmissionPayload) string
	HTML           func(p *SubmissionPayload) (string, error)
}

// SubmissionResult is the outcome of an accepted submission
type SubmissionResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// IntakeUsecase relays form submissions to the operator mailbox
type IntakeUsecase interface {
	// Submit checks required fields and forwards the submission.
	// Errors are *apperror.AppError values carrying the HTTP status.
	Submit(ctx context.Context, variant string, p *SubmissionPayload) (*SubmissionResult, error)
	// Variant reports whether the named variant is registered
	Variant(name string) (IntakeVariant, bool)
}
