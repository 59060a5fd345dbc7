package application

import "errors"

var (
	// ErrValidation marks input with a missing required field.
	ErrValidation = errors.New("validation failed")
	// ErrParse marks a date string that is not a valid YYYY-MM-DD date.
	ErrParse = errors.New("invalid date")
)
