package models

import "github.com/netupi/netupi/internal/apperr"

var ErrDegenerateInterval = &apperr.Error{
	Message: "time record must end after it starts (from %s, to %s)",
}
