package enc

import (
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AlphabetDefinition is one YAML document of an alphabet file:
//
//	name: hex
//	code: H
//	sentinel: true
//	symbols: ["0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c", "d", "e", "f"]
//
// Sentinel defaults to true.
type AlphabetDefinition struct {
	Name     string   `yaml:"name"`
	Code     string   `yaml:"code"`
	Sentinel *bool    `yaml:"sentinel"`
	Symbols  []string `yaml:"symbols"`
}

// Encoder validates the definition and builds an AlphabetEncoder from it.
func (d *AlphabetDefinition) Encoder() (*AlphabetEncoder, error) {
	if d.Name == "" {
		return nil, errors.New("alphabet has no name")
	}
	if len(d.Code) != 1 {
		return nil, errors.Errorf("alphabet %q: code must be exactly one character, got %q", d.Name, d.Code)
	}
	alphabet, err := NewAlphabet(d.Symbols...)
	if err != nil {
		return nil, errors.Wrapf(err, "alphabet %q", d.Name)
	}
	sentinel := true
	if d.Sentinel != nil {
		sentinel = *d.Sentinel
	}
	return NewAlphabetEncoder(d.Name, d.Code[0], alphabet, sentinel), nil
}

// LoadAlphabetFile reads alphabet definitions from a YAML file.
func LoadAlphabetFile(filename string) ([]*AlphabetEncoder, error) {
	body, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		if err := body.Close(); err != nil {
			log.Errorf("Could not close %s: %v", filename, err)
		}
	}()

	res, err := LoadAlphabets(body)
	return res, errors.Wrapf(err, "Could not load alphabets from %v", filename)
}

// LoadAlphabets reads one alphabet definition per YAML document (documents are separated by `---`). All documents
// are checked; the errors of every invalid one are returned together.
func LoadAlphabets(r io.Reader) ([]*AlphabetEncoder, error) {
	decoder := yaml.NewDecoder(r)

	var errs error
	res := make([]*AlphabetEncoder, 0)
	for i := 1; ; i++ {
		def := AlphabetDefinition{}
		err := decoder.Decode(&def)
		if err == io.EOF {
			break
		} else if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "Could not decode document at position %v", i))
			break
		}

		e, err := def.Encoder()
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "Invalid document at position %v", i))
			continue
		}
		res = append(res, e)
	}

	if errs != nil {
		return nil, errs
	}
	return res, nil
}

// RegisterAlphabetFile loads the alphabets of a file and adds them to the encoder registry. Either every alphabet of
// the file is registered or, on any clash, none of them.
func RegisterAlphabetFile(filename string) error {
	encoders, err := LoadAlphabetFile(filename)
	if err != nil {
		return err
	}
	list := make([]Encoder, len(encoders))
	for i, e := range encoders {
		list[i] = e
	}
	if err := RegisterEncoders(list...); err != nil {
		return errors.Wrapf(err, "Could not register alphabets from %v", filename)
	}
	for _, e := range encoders {
		log.Debugf("Registered encoder %v with %d symbols", e, e.Alphabet().Base())
	}
	return nil
}
