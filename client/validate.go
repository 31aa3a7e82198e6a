package client

import (
	"github.com/Asadel-Surveillance/asadel-console/validation"
)

// The console checks these before sending anything; the server re-checks
// with the same rules.

func ValidateEmail(email string) error {
	return asValidation("email", validation.ValidateEmail(email))
}

func ValidatePassword(password string) error {
	return asValidation("password", validation.ValidatePassword(password))
}

func ValidatePasswordConfirmation(password, confirm string) error {
	return asValidation("confirm_password", validation.ValidatePasswordConfirmation(password, confirm))
}

// Required checks that value is not blank; label is used in the message
func Required(field, label, value string) error {
	return asValidation(field, validation.Required(label, value))
}

func asValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
