package domain

import "errors"

// Domain errors
var (
	ErrInvalidInput     = errors.New("game library is missing")
	ErrPrivateProfile   = errors.New("game library is private")
	ErrInsufficientData = errors.New("both game libraries are empty")
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrRateLimited      = errors.New("rate limit exceeded")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInternalError    = errors.New("internal server error")
)

// IsValidationError checks if an error came from analysis input validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrPrivateProfile) ||
		errors.Is(err, ErrInsufficientData)
}

// IsNotFoundError checks if an error is a not-found type error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAnalysisNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrGameNotFound)
}
