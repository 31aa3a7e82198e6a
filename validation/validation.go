// Package validation holds the form rules the console checks before
// submitting and the API re-checks on receipt.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

var (
	ErrEmailRequired  = errors.New("Email is required")
	ErrEmailInvalid   = errors.New("Invalid email format")
	ErrPasswordLength = errors.New("Password must be at least 8 characters long")
	ErrPasswordUpper  = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordLower  = errors.New("Password must contain at least one lowercase letter")
	ErrPasswordSymbol = errors.New("Password must contain at least one special character")
	ErrPasswordDigit  = errors.New("Password must contain at least one digit")
	ErrPasswordMatch  = errors.New("Passwords do not match")
)

var (
	emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		`[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
		`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidateEmail applies the address rules: the pattern, at most 254 characters,
// a local part of at most 64 without "..", and a dotted domain whose labels
// are at most 63 characters with a TLD of at least 2.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if utf8.RuneCountInString(email) > 254 {
		return ErrEmailInvalid
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return ErrEmailInvalid
	}
	if len(local) > 64 || strings.Contains(local, "..") {
		return ErrEmailInvalid
	}
	if domain == "" || !strings.Contains(domain, ".") {
		return ErrEmailInvalid
	}
	labels := strings.Split(domain, ".")
	for _, l := range labels {
		if len(l) > 63 {
			return ErrEmailInvalid
		}
	}
	if len(labels[len(labels)-1]) < 2 {
		return ErrEmailInvalid
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword returns the first policy rule the password breaks
func ValidatePassword(password string) error {
	switch {
	case len(password) < 8:
		return ErrPasswordLength
	case !upperPattern.MatchString(password):
		return ErrPasswordUpper
	case !lowerPattern.MatchString(password):
		return ErrPasswordLower
	case !symbolPattern.MatchString(password):
		return ErrPasswordSymbol
	case !digitPattern.MatchString(password):
		return ErrPasswordDigit
	}
	return nil
}

// ValidatePasswordConfirmation checks the policy and then the confirmation field
func ValidatePasswordConfirmation(password, confirm string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMatch
	}
	return nil
}

// Required returns "<label> is required" when value is blank
func Required(label, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(label + " is required")
	}
	return nil
}
