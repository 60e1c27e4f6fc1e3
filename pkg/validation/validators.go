package validation

import (
	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers the contact form rules as struct tags so that
// request structs can reuse the exact client-side rules:
//
//	Name  string `validate:"contact_name"`
//	Phone string `validate:"contact_phone"`
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_name", ContactName)
	_ = v.RegisterValidation("contact_email", ContactEmail)
	_ = v.RegisterValidation("contact_phone", ContactPhone)
	_ = v.RegisterValidation("project_description", ProjectDescription)
}

// NewValidator returns a validator with the contact form tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// ContactName validates a submitter name
func ContactName(fl validator.FieldLevel) bool {
	return ValidateName(fl.Field().String()) == ""
}

// ContactEmail validates an email with the same loose shape the form uses
func ContactEmail(fl validator.FieldLevel) bool {
	return ValidateEmail(fl.Field().String()) == ""
}

// ContactPhone validates an optional phone number
func ContactPhone(fl validator.FieldLevel) bool {
	return ValidatePhone(fl.Field().String()) == ""
}

// ProjectDescription validates the project description / message body
func ProjectDescription(fl validator.FieldLevel) bool {
	return ValidateProjectDescription(fl.Field().String()) == ""
}
