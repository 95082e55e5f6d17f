package codec

import (
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bokysan/base47/internal/util/enc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Streams holds the standard input and output of a command, so tests can replace them
type Streams struct {
	stdin  io.Reader
	stdout io.Writer
}

func defaultStreams() Streams {
	return Streams{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// readInput returns the command line arguments joined by sep if there are any, otherwise the content of
// the file (or stdin, if file is empty or "-").
func (s *Streams) readInput(args []string, sep string, file string) ([]byte, error) {
	if len(args) > 0 {
		if file != "" && file != "-" {
			log.Warnf("Both arguments and an input file given, ignoring %v", file)
		}
		return []byte(strings.Join(args, sep)), nil
	}

	if file != "" && file != "-" {
		data, err := ioutil.ReadFile(file)
		return data, errors.Wrapf(err, "Could not read %v", file)
	}

	data, err := ioutil.ReadAll(s.stdin)
	return data, errors.Wrapf(err, "Could not read standard input")
}

func findEncoder(name string) (enc.Encoder, error) {
	e, err := enc.FindEncoder(name)
	if err != nil {
		return nil, err
	}
	log.Debugf("Using encoder %v", e.Name())
	return e, nil
}
