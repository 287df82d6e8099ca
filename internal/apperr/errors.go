package apperr

import "errors"

// ValidationError reports missing or malformed user input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflict(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFound(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// AuthError reports bad credentials.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string {
	return e.Msg
}

func NewAuth(msg string) error {
	return &AuthError{Msg: msg}
}

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
