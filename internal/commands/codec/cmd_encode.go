package codec

import (
	"fmt"

	"github.com/bokysan/base47/internal/logging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// EncodeCommand encodes bytes into text
type EncodeCommand struct {
	Streams

	Encoding  string `short:"e" long:"encoding"   env:"ENCODING" default:"base47" description:"Name or one-letter code of the encoding to use. See the 'encodings' command."`
	Input     string `short:"i" long:"input"                                      description:"Read the data from this file instead of the arguments. Use '-' for standard input."`
	NoNewline bool   `short:"n" long:"no-newline"                                 description:"Do not print a newline after the encoded text"`
	Wrap      int    `short:"w" long:"wrap"                                       description:"Break the output into lines of this many symbols. 0 disables wrapping."`
}

func NewEncodeCommand() *EncodeCommand {
	return &EncodeCommand{
		Streams:  defaultStreams(),
		Encoding: "base47",
	}
}

func (c *EncodeCommand) Execute(args []string) error {
	logging.SetupLogging()
	return c.run(args)
}

func (c *EncodeCommand) run(args []string) error {
	encoder, err := findEncoder(c.Encoding)
	if err != nil {
		return err
	}

	data, err := c.readInput(args, " ", c.Input)
	if err != nil {
		return err
	}

	encoded := encoder.Encode(data)
	log.Debugf("Encoded %d bytes into %d characters", len(data), len([]rune(encoded)))
	encoded = wrap(encoder, encoded, c.Wrap)

	if c.NoNewline {
		_, err = fmt.Fprint(c.stdout, encoded)
	} else {
		_, err = fmt.Fprintln(c.stdout, encoded)
	}
	return errors.WithStack(err)
}
