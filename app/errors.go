package app

import "github.com/netupi/netupi/internal/apperr"

var (
	errTaskNotFound = &apperr.Error{
		Message: "no task matches %q",
	}

	errAmbiguousTask = &apperr.Error{
		Message: "%q matches %d tasks, use the task id instead",
	}

	errMissingArg = &apperr.Error{
		Message: "missing %s argument",
	}

	errInvalidKey = &apperr.Error{
		Message: "invalid record key %q, expected a start time such as 2025-03-01T09:00:00.000000000Z",
	}

	errNoTasks = &apperr.Error{
		Message: "there are no tasks to track, create one with 'netupi task add NAME'",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver %q",
	}
)
