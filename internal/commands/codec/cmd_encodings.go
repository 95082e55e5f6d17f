package codec

import (
	"fmt"
	"text/tabwriter"

	"github.com/bokysan/base47/internal/util/enc"
	"github.com/pkg/errors"
)

// EncodingsCommand lists the registered encodings
type EncodingsCommand struct {
	Streams
}

func NewEncodingsCommand() *EncodingsCommand {
	return &EncodingsCommand{
		Streams: defaultStreams(),
	}
}

func (c *EncodingsCommand) Execute(args []string) error {
	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCODE\tSYMBOLS\tLEADING ZEROS")
	for _, e := range enc.Encoders() {
		symbols, zeros := "-", "yes"
		if ae, ok := e.(*enc.AlphabetEncoder); ok {
			symbols = fmt.Sprintf("%d", ae.Alphabet().Base())
			if !ae.Sentinel() {
				zeros = "no"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name(), string(e.Code()), symbols, zeros)
	}
	return errors.WithStack(w.Flush())
}
