package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/base47/internal/args"
	"github.com/bokysan/base47/internal/commands/codec"
	"github.com/bokysan/base47/internal/commands/serve"
	"github.com/bokysan/base47/internal/commands/version"
	b47Flags "github.com/bokysan/base47/internal/flags"
	"github.com/bokysan/base47/internal/util"
	"github.com/bokysan/base47/internal/util/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// Base47 is the main executable
type Base47 struct {
	parser *flags.Parser
}

// NewBase47 will create a new instance of Base47 and initialize the parser
func NewBase47() *Base47 {
	executableFilename := os.Args[0]
	executablePath := path.Base(executableFilename)

	b := &Base47{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	b.setupGeneral()
	b.setupVersion()
	b.setupEncode()
	b.setupDecode()
	b.setupEncodings()
	b.setupServe()

	return b
}

// setupGeneral will configure general options
func (b *Base47) setupGeneral() {
	if _, err := b.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// setupVersion adds the `version` command
func (b *Base47) setupVersion() {
	cmd := &version.Command{}
	_, err := b.parser.AddCommand(
		"version",
		"Print the version",
		"Print the application version and exit",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupEncode adds the `encode` command
func (b *Base47) setupEncode() {
	cmd := codec.NewEncodeCommand()
	_, err := b.parser.AddCommand(
		"encode",
		"Encode bytes",
		"Encode the arguments (joined with spaces), a file or the standard input and print the result",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupDecode adds the `decode` command
func (b *Base47) setupDecode() {
	cmd := codec.NewDecodeCommand()
	_, err := b.parser.AddCommand(
		"decode",
		"Decode text",
		"Decode the arguments, a file or the standard input and write the original bytes",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupEncodings adds the `encodings` command
func (b *Base47) setupEncodings() {
	cmd := codec.NewEncodingsCommand()
	_, err := b.parser.AddCommand(
		"encodings",
		"List encodings",
		"List all available encodings, including the ones loaded from alphabet files",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupServe adds the `serve` command
func (b *Base47) setupServe() {
	cmd := serve.NewCommand()
	_, err := b.parser.AddCommand(
		"serve",
		"Run the demo server",
		"Run an HTTP server with encode / decode endpoints and a websocket live preview",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// main starts base47 and reads the configuration file
func main() {

	base47 := NewBase47()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := b47Flags.NewYamlParser(base47.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}
	args.General.AlphabetFiles = enc.RegisterAlphabetFile

	_, err := base47.parser.Parse()
	util.MustErrorNilOrExit(err)

}
