package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrGenerationInProgress  = errors.New("schedule generation already in progress")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
