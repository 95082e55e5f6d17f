package enc

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type Encoder interface {
	// Name is the user-friendly name of this encoder
	Name() string
	// Code represents the short (one-letter) code for the encoder
	Code() byte

	// Encode will take an array of bytes and encode it using this encoder
	Encode([]byte) string

	// Decode is the reverse process of encoding
	Decode(string) ([]byte, error)

	// TestPatterns returns a list of encoded strings which must decode without an error
	TestPatterns() []string
}

var (
	encodersMu sync.RWMutex
	encoders   = []Encoder{
		Base47,
		Base47Legacy,
		&Base32Encoder{},
		&Base64Encoder{},
		&Base64uEncoder{},
		&Base85Encoder{},
		&Base91Encoder{},
		&Base128Encoder{},
		&RawEncoder{},
	}
)

// Encoders returns all registered encoders, in registration order.
func Encoders() []Encoder {
	encodersMu.RLock()
	defer encodersMu.RUnlock()
	res := make([]Encoder, len(encoders))
	copy(res, encoders)
	return res
}

// RegisterEncoder adds an encoder to the registry. Names (compared case-insensitively) and codes must be unique.
func RegisterEncoder(e Encoder) error {
	return RegisterEncoders(e)
}

// RegisterEncoders adds all given encoders or none of them: if any name or code clashes with the registry or with
// another encoder of the same call, the registry is left untouched.
func RegisterEncoders(es ...Encoder) error {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	for i, e := range es {
		if err := checkUnique(e, encoders); err != nil {
			return err
		}
		if err := checkUnique(e, es[:i]); err != nil {
			return err
		}
	}
	encoders = append(encoders, es...)
	return nil
}

func checkUnique(e Encoder, existing []Encoder) error {
	for _, other := range existing {
		if strings.EqualFold(other.Name(), e.Name()) {
			return errors.Errorf("encoder named %q already registered", e.Name())
		}
		if other.Code() == e.Code() {
			return errors.Errorf("encoder code %q already used by %v", string(e.Code()), other.Name())
		}
	}
	return nil
}

// FindEncoder looks up an encoder by name (case-insensitive) or by its one-letter code.
func FindEncoder(nameOrCode string) (Encoder, error) {
	encodersMu.RLock()
	defer encodersMu.RUnlock()
	for _, e := range encoders {
		if strings.EqualFold(e.Name(), nameOrCode) {
			return e, nil
		}
	}
	if len(nameOrCode) == 1 {
		for _, e := range encoders {
			if e.Code() == nameOrCode[0] {
				return e, nil
			}
		}
	}
	return nil, errors.WithStack(&UnknownEncoderError{Name: nameOrCode})
}

// UnknownEncoderError is returned by FindEncoder.
type UnknownEncoderError struct {
	Name string
}

func (e *UnknownEncoderError) Error() string {
	return fmt.Sprintf("unknown encoding: %q", e.Name)
}
