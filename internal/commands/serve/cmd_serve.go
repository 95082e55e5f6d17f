package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bokysan/base47/internal/logging"
	"github.com/bokysan/base47/internal/server"
	"github.com/bokysan/base47/internal/util/addr"
	"github.com/bokysan/base47/internal/util/cert"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command runs the demo HTTP / websocket server until it is interrupted.
type Command struct {
	cert.ServerConfig

	Listen            addr.ProtoAddress `json:"listen"            short:"L" long:"listen"             env:"LISTEN"            default:"tcp://127.0.0.1:8047" description:"Address to listen on, e.g. 'tcp://0.0.0.0:8047' or 'unix:///run/base47.sock'"`
	EnableCompression bool              `json:"enableCompression"           long:"enable-compression" env:"ENABLE_COMPRESSION"                                description:"Negotiate per-message compression on live websocket connections"`
	MaxInputSize      int64             `json:"maxInputSize"                long:"max-input-size"     env:"MAX_INPUT_SIZE"    default:"65536"                description:"Largest accepted request body or websocket message, in bytes"`

	server *server.HttpServer
}

func NewCommand() *Command {
	return &Command{
		Listen:       addr.MustParseAddress("tcp://127.0.0.1:8047"),
		MaxInputSize: server.DefaultMaxInputSize,
	}
}

func (s *Command) Startup() error {
	if s.MaxInputSize <= 0 {
		return errors.Errorf("max input size must be positive, got %d", s.MaxInputSize)
	}

	redacted := *s
	redacted.PrivateKey, redacted.PrivateKeyPassword = "", nil
	log.Tracef("Server configuration: %v", spew.Sdump(redacted))
	s.server = server.NewHttpServer(s.Listen)
	s.server.EnableCompression = s.EnableCompression
	s.server.MaxInputSize = s.MaxInputSize

	tlsConfig, err := s.ServerConfig.GetTlsConfig()
	if err != nil {
		return errors.Wrapf(err, "Could not configure TLS")
	}
	s.server.TLSConfig = tlsConfig

	return s.server.Startup()
}

func (s *Command) Shutdown() error {
	if s.server == nil {
		return nil
	}
	log.Infof("Graceful server shutdown...")
	log.Debugf("[Server] Shutting down %v", s.server)
	if err := s.server.Shutdown(); err != nil {
		return errors.Wrapf(err, "Could not shutdown %v", s.server)
	}
	return nil
}

func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	if err := s.Startup(); err != nil {
		return err
	}

	<-interrupted
	return s.Shutdown()
}
