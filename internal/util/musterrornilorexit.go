package util

import (
	"os"

	"github.com/bokysan/base47/internal/util/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// ErrInvalidInput is the exit code when the input could not be decoded (EX_DATAERR)
	ErrInvalidInput = 65
	// ErrGeneric is the exit code for everything else
	ErrGeneric = 99
)

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with provided error code.
// Error code is unwrapped from `flags.Error` object. Input which cannot be decoded exits with code 65.
// If it's a different kind of error, a generic error code - 99 - is returned
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	var flagsError *flags.Error
	if errors.As(err, &flagsError) {
		if flagsError.Type == flags.ErrHelp {
			os.Exit(0)
			return
		}

		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
		log.Exit(int(flagsError.Type))
	} else if errors.Is(err, enc.ErrFormat) {
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Invalid input: %v", err)
		log.Exit(ErrInvalidInput)
	} else {
		log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
		log.Exit(ErrGeneric)
	}
}
