package proto

import (
	"errors"
	"strings"
)

// MinPasswordLength is the shortest password the forms accept.
const MinPasswordLength = 6

// Form validation errors. Their text is shown to the user as is.
var (
	ErrMissingFields     = errors.New("Please fill in all fields")
	ErrPasswordMismatch  = errors.New("Passwords do not match")
	ErrPasswordTooShort  = errors.New("Password must be at least 6 characters")
	ErrMissingResetToken = errors.New("Invalid or missing reset link")
)

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

func validatePasswords(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Validate checks the registration form before anything is sent.
func (r RegisterRequest) Validate() error {
	if blank(r.Username, r.FirstName, r.LastName, r.Password, r.ConfirmPassword) {
		return ErrMissingFields
	}
	return validatePasswords(r.Password, r.ConfirmPassword)
}

func (r LoginRequest) Validate() error {
	if blank(r.Username, r.Password) {
		return ErrMissingFields
	}
	return nil
}

func (r VerifyEmailRequest) Validate() error {
	if blank(r.Token, r.Email) {
		return ErrMissingFields
	}
	return nil
}

func (r ForgotPasswordRequest) Validate() error {
	if blank(r.Email) {
		return ErrMissingFields
	}
	return nil
}

func (r ResetPasswordRequest) Validate() error {
	if blank(r.Token, r.Email) {
		return ErrMissingResetToken
	}
	if blank(r.Password, r.ConfirmPassword) {
		return ErrMissingFields
	}
	return validatePasswords(r.Password, r.ConfirmPassword)
}
