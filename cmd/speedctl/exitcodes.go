package main

import (
	apperrors "speed_go_backend/internal/errors"
)

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // Runtime failure (database unreachable, unexpected error)
	ExitConfigError = 2 // Missing or invalid configuration
	ExitDataError   = 3 // Invalid arguments or validation failure
	ExitNotFound    = 4 // Referenced user or submission does not exist
	ExitConflict    = 5 // Record already exists or is in the wrong state
)

// exitCodeFor maps service errors onto process exit codes.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case apperrors.Is(err, apperrors.ErrorTypeBadRequest):
		return ExitDataError
	case apperrors.Is(err, apperrors.ErrorTypeNotFound):
		return ExitNotFound
	case apperrors.Is(err, apperrors.ErrorTypeConflict), apperrors.Is(err, apperrors.ErrorTypeStateConflict):
		return ExitConflict
	}
	return ExitError
}
