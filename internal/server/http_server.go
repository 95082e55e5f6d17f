package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bokysan/base47/internal/util/addr"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxInputSize caps request bodies and websocket messages. Conversion time grows with the square of the
// input length, so the demo server does not accept arbitrarily large payloads.
const DefaultMaxInputSize = 64 * 1024

// HttpServer exposes the registered encoders over HTTP and over a websocket live preview endpoint.
type HttpServer struct {
	Address           addr.ProtoAddress `json:"address"`
	EnableCompression bool              `json:"enableCompression"`
	MaxInputSize      int64             `json:"maxInputSize"`

	// TLSConfig switches the server to HTTPS when set
	TLSConfig *tls.Config `json:"-"`

	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader

	sessionsMu sync.Mutex
	sessions   map[*liveSession]struct{}
}

func NewHttpServer(address addr.ProtoAddress) *HttpServer {
	return &HttpServer{
		Address:      address,
		MaxInputSize: DefaultMaxInputSize,
		sessions:     make(map[*liveSession]struct{}),
	}
}

func (ws *HttpServer) String() string {
	if ws.listener != nil && ws.Address.Network != "unix" {
		if ws.TLSConfig != nil {
			return fmt.Sprintf("https://%s", ws.listener.Addr())
		}
		return fmt.Sprintf("http://%s", ws.listener.Addr())
	}
	return ws.Address.String()
}

// Router builds the request router. It is exposed separately from Startup so it can be mounted in tests.
func (ws *HttpServer) Router() http.Handler {
	ws.upgrader = websocket.Upgrader{
		EnableCompression: ws.EnableCompression,
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(ws.Address),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
	)

	router.Get("/encodings", ws.listEncodings)
	router.Post("/encode", ws.encode)
	router.Post("/encode/{encoding}", ws.encode)
	router.Post("/decode", ws.decode)
	router.Post("/decode/{encoding}", ws.decode)
	router.Get("/live", ws.live)

	return router
}

func (ws *HttpServer) Startup() error {
	ln, err := ws.Address.Listen()
	if err != nil {
		return err
	}
	ws.listener = ln

	ws.server = &http.Server{
		Handler:   ws.Router(),
		TLSConfig: ws.TLSConfig,
	}

	go func() {
		if ws.TLSConfig != nil {
			log.Infof("Starting HTTPS server at %v", ws)
			if err := ws.server.ServeTLS(ln, "", ""); err != http.ErrServerClosed {
				err = errors.WithStack(err)
				log.WithError(err).Errorf("Could not start the server %v", err)
			}
		} else {
			log.Infof("Starting HTTP server at %v", ws)
			if err := ws.server.Serve(ln); err != http.ErrServerClosed {
				err = errors.WithStack(err)
				log.WithError(err).Errorf("Could not start the server %v", err)
			}
		}
	}()

	return nil
}

// Shutdown stops accepting new requests, waits up to five seconds for running ones and then closes all open
// live sessions. Hijacked websocket connections are not tracked by http.Server, hence the explicit close.
func (ws *HttpServer) Shutdown() error {
	var errs error

	if ws.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ws.server.Shutdown(ctx); err != nil {
			errs = multierror.Append(errs, errors.WithStack(err))
		}
	}

	ws.sessionsMu.Lock()
	defer ws.sessionsMu.Unlock()
	for s := range ws.sessions {
		if err := s.close(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "could not close live session %v", s))
		}
		delete(ws.sessions, s)
	}

	return errs
}

func (ws *HttpServer) addSession(s *liveSession) {
	ws.sessionsMu.Lock()
	defer ws.sessionsMu.Unlock()
	ws.sessions[s] = struct{}{}
}

func (ws *HttpServer) removeSession(s *liveSession) {
	ws.sessionsMu.Lock()
	defer ws.sessionsMu.Unlock()
	delete(ws.sessions, s)
}
