package server

import (
	"net"
	"net/http"

	"github.com/bokysan/base47/internal/args"
	"github.com/bokysan/base47/internal/logging"
	"github.com/bokysan/base47/internal/util/addr"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

type NextHandlerFunc func(next http.Handler) http.Handler

// GetRequestLogger returns the access log middleware matching the configured log format. The listen address is
// only reported in JSON logs and only for TCP listeners.
func GetRequestLogger(listen addr.ProtoAddress) (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		var address *net.TCPAddr
		if listen.Network != "unix" {
			a, err := addr.ResolveHostAddress(listen.Address)
			if err != nil {
				log.WithError(err).Debugf("Access log will not contain the server port")
			} else {
				address = a
			}
		}
		logger = middleware.RequestLogger( // Write requests to log
			&logging.JSONLogFormatter{
				ServerAddress: address,
			},
		)
	} else {
		logger = middleware.RequestLogger( // Write requests to log
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: logging.DisableColors(),
			},
		)
	}

	return
}
