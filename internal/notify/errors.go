package notify

import "github.com/netupi/netupi/internal/apperr"

var errInvalidSoundFormat = &apperr.Error{
	Message: "sound file must be in ogg, mp3, flac or wav format (got %q)",
}
