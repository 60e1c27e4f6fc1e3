package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":               "Name",
	"Email":              "Email",
	"Phone":              "Phone",
	"Company":            "Company",
	"Message":            "Message",
	"ProjectDescription": "Project Description",
	"ProjectType":        "Project Type",
	"FrontendURL":        "Frontend URL",
	"ResendAPIURL":       "Resend API URL",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s: %s", label, MsgEmailInvalid)
	case "contact_email":
		return fmt.Sprintf("%s: %s", label, ValidateEmail(fmt.Sprint(e.Value())))
	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)
	case "numeric":
		return fmt.Sprintf("%s: must be numeric", label)
	case "contact_name":
		return fmt.Sprintf("%s: %s", label, ValidateName(fmt.Sprint(e.Value())))
	case "contact_phone":
		return fmt.Sprintf("%s: %s", label, MsgPhoneInvalid)
	case "project_description":
		return fmt.Sprintf("%s: %s", label, ValidateProjectDescription(fmt.Sprint(e.Value())))
	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
