package logging

import (
	"os"
	"strings"

	"github.com/bokysan/base47/internal/args"
	"github.com/bokysan/base47/internal/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger from the general options. Logs always go to stderr or to the
// log file, never to stdout, which carries the encoded / decoded payload.
func SetupLogging() {
	SetVerbosity(args.General.Verbose)

	if args.General.LogReportCaller {
		log.AddHook(&ContextHook{})
	}

	if args.General.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "@level",
				log.FieldKeyMsg:   "message",
				log.FieldKeyFunc:  "@caller",
			},
		})
	} else {
		log.SetFormatter(&log.TextFormatter{
			ForceColors:   ForceColors(),
			DisableColors: DisableColors(),
			FullTimestamp: args.General.LogFullTimestamp,
		})
	}
	log.SetReportCaller(args.General.LogReportCaller)
	log.Debugf("Verbosity level: %v", VerbosityName())

	if args.General.LogFile != nil && len(*args.General.LogFile) > 0 && *args.General.LogFile != "-" {
		f, err := os.OpenFile(*args.General.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			util.MustErrorNilOrExit(errors.WithStack(err))
		}
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
	}
}

// ForceColors returns true if the user explicitly asked for colored output
func ForceColors() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "yes" || color == "true" || color == "1"
}

// DisableColors returns true if the user explicitly disabled colored output
func DisableColors() bool {
	color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
	return color == "no" || color == "false" || color == "0"
}
