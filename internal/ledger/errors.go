package ledger

import "github.com/netupi/netupi/internal/apperr"

var (
	ErrDuplicateRecord = &apperr.Error{
		Message: "a time record starting at %s already exists",
	}

	ErrRecordNotFound = &apperr.Error{
		Message: "no time record starts at %s",
	}
)
