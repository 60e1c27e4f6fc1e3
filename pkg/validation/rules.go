package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names understood by ValidateField
const (
	FieldName               = "name"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldProjectDescription = "projectDescription"
)

// Length bounds for the contact form fields
const (
	NameMinLength        = 2
	NameMaxLength        = 100
	DescriptionMinLength = 10
	DescriptionMaxLength = 2000
	phoneMinDigits       = 7
)

// Messages returned by the field rules
const (
	MsgNameRequired        = "Name is required"
	MsgNameTooShort        = "Name must be at least 2 characters"
	MsgNameTooLong         = "Name must be less than 100 characters"
	MsgNameInvalid         = "Name can only contain letters, spaces, hyphens, and apostrophes"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Please enter a valid email address"
	MsgPhoneInvalid        = "Please enter a valid phone number"
	MsgDescriptionRequired = "Project description is required"
	MsgDescriptionTooShort = "Please provide at least 10 characters"
	MsgDescriptionTooLong  = "Description must be less than 2000 characters"
)

var (
	contactNameRegex = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

	// local@domain.tld with no whitespace and at least one dot after the @
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Optional +, digits with space/dot/hyphen separators and parenthesized groups
	contactPhoneRegex = regexp.MustCompile(`^\+?[0-9\s().-]+$`)
)

// RequiredFields lists the fields ValidateAll style callers must always check,
// in the order they appear on the form.
var RequiredFields = []string{FieldName, FieldEmail, FieldProjectDescription}

// ValidateName checks the submitter name. Returns "" when valid.
func ValidateName(value string) string {
	trimmed := strings.TrimSpace(value)
	length := utf8.RuneCountInString(trimmed)
	switch {
	case trimmed == "":
		return MsgNameRequired
	case length < NameMinLength:
		return MsgNameTooShort
	case length > NameMaxLength:
		return MsgNameTooLong
	case !contactNameRegex.MatchString(value):
		return MsgNameInvalid
	}
	return ""
}

// ValidateEmail checks the submitter email shape. Returns "" when valid.
func ValidateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgEmailRequired
	}
	if !contactEmailRegex.MatchString(value) {
		return MsgEmailInvalid
	}
	return ""
}

// ValidatePhone accepts an empty value; anything else must look like a phone number.
func ValidatePhone(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if !contactPhoneRegex.MatchString(value) || countDigits(value) < phoneMinDigits {
		return MsgPhoneInvalid
	}
	return ""
}

// ValidateProjectDescription checks the free text description. Returns "" when valid.
func ValidateProjectDescription(value string) string {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		return MsgDescriptionRequired
	case utf8.RuneCountInString(trimmed) < DescriptionMinLength:
		return MsgDescriptionTooShort
	case utf8.RuneCountInString(value) > DescriptionMaxLength:
		return MsgDescriptionTooLong
	}
	return ""
}

// ValidateField dispatches to the rule for the named field.
// Unknown fields have no rule and are always valid.
func ValidateField(field, value string) string {
	switch field {
	case FieldName:
		return ValidateName(value)
	case FieldEmail:
		return ValidateEmail(value)
	case FieldPhone:
		return ValidatePhone(value)
	case FieldProjectDescription:
		return ValidateProjectDescription(value)
	}
	return ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
