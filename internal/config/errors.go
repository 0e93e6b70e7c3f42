package config

import "github.com/netupi/netupi/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errBreakTooLong = &apperr.Error{
		Message: "break duration (%v) must be less than work duration (%v)",
	}

	errUnknownSound = &apperr.Error{
		Message: "sound file not found: %s",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidDuration = &apperr.Error{
		Message: "%s duration must be between %v and %v",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration: %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown store driver %q (must be bolt or sqlite)",
	}

	errInvalidLogLevel = &apperr.Error{
		Message: "invalid log level %q (must be debug, info, warn or error)",
	}
)
