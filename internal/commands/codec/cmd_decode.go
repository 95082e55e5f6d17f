package codec

import (
	"io/ioutil"

	"github.com/bokysan/base47/internal/logging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DecodeCommand decodes text back into bytes
type DecodeCommand struct {
	Streams

	Encoding string `short:"e" long:"encoding" env:"ENCODING" default:"base47" description:"Name or one-letter code of the encoding to use. See the 'encodings' command."`
	Input    string `short:"i" long:"input"                                    description:"Read the encoded text from this file instead of the arguments. Use '-' for standard input."`
	Output   string `short:"o" long:"output"                                   description:"Write the decoded bytes into this file instead of the standard output."`
}

func NewDecodeCommand() *DecodeCommand {
	return &DecodeCommand{
		Streams:  defaultStreams(),
		Encoding: "base47",
	}
}

func (c *DecodeCommand) Execute(args []string) error {
	logging.SetupLogging()
	return c.run(args)
}

func (c *DecodeCommand) run(args []string) error {
	encoder, err := findEncoder(c.Encoding)
	if err != nil {
		return err
	}

	text, err := c.readInput(args, "", c.Input)
	if err != nil {
		return err
	}

	decoded, err := encoder.Decode(unwrap(encoder, string(text)))
	if err != nil {
		return errors.Wrapf(err, "Could not decode input using %v", encoder.Name())
	}
	log.Debugf("Decoded %d bytes", len(decoded))

	if c.Output != "" && c.Output != "-" {
		return errors.Wrapf(ioutil.WriteFile(c.Output, decoded, 0644), "Could not write %v", c.Output)
	}
	_, err = c.stdout.Write(decoded)
	return errors.WithStack(err)
}
