package service

import (
	"errors"
	"fmt"
)

var (
	ErrVideoNotFound  = errors.New("video not found")
	ErrGenreNotFound  = errors.New("genre not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrRatingNotFound = errors.New("rating not found")
	ErrGenreNameTaken = errors.New("genre name already exists")
	// ErrAccountGone is a valid token whose user has since been deleted.
	ErrAccountGone = errors.New("user account no longer exists")
)

// ValidationError is a rejected input value. Handlers answer 400 with Field
// and Message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrInvalidRating is returned for a missing or out of range rating value.
var ErrInvalidRating = &ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
