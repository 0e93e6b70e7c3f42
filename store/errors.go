package store

import "github.com/netupi/netupi/internal/apperr"

var (
	ErrAlreadyRunning = &apperr.Error{
		Message: "is netupi already running? Only one instance can be active at a time",
	}

	ErrRecordNotFound = &apperr.Error{
		Message: "no stored time record starts at %s",
	}

	errUnknownSchema = &apperr.Error{
		Message: "database schema version %d is newer than this program supports",
	}
)
