package importer

import "github.com/netupi/netupi/internal/apperr"

var (
	errInvalidFinish = &apperr.Error{
		Message: "finish time %q is not in YYYY-MM-DD-HH-MM form",
	}

	errInvalidMinutes = &apperr.Error{
		Message: "duration %q is not a positive whole number of minutes",
	}

	errEmptyName = &apperr.Error{
		Message: "task name is empty",
	}
)
