package services

import (
	"errors"
	"fmt"
)

// Every failure kind a caller must handle is a distinct value, so handlers
// map them with errors.Is instead of string matching.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrRequestNotFound       = errors.New("verification request not found")
	ErrAlreadyVerified       = errors.New("user is already verified")
	ErrRequestAlreadyPending = errors.New("a verification request is already pending")
	ErrInvalidState          = errors.New("request is not pending")
	ErrMissingReason         = errors.New("reason is required")
	ErrNotVerified           = errors.New("user is not verified")

	// ErrInvalidCredentials is deliberately the same whether the account is
	// missing or the password is wrong, to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken    = errors.New("email already registered")
	ErrWrongPassword = errors.New("current password is incorrect")
	ErrInvalidInput  = errors.New("invalid input")
)

// AccountLockedError carries how long the caller has to wait before the next
// login attempt is accepted.
type AccountLockedError struct {
	RemainingMinutes int
}

func (e *AccountLockedError) Error() string {
	unit := "minutes"
	if e.RemainingMinutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf(
		"your account is locked due to repeated failed logins, please try again in %d %s",
		e.RemainingMinutes, unit,
	)
}
