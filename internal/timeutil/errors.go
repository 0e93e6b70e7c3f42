package timeutil

import "github.com/netupi/netupi/internal/apperr"

var errParsingDate = &apperr.Error{
	Message: "unable to parse date %q",
}
