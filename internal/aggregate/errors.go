package aggregate

import "github.com/netupi/netupi/internal/apperr"

var ErrOutOfOrder = &apperr.Error{
	Message: "record starting at %s is not after the last prefix sum key",
}
