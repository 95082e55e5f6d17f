package enc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinels for errors.Is. Every *DomainError matches ErrDomain and every *FormatError matches ErrFormat.
var (
	ErrDomain = errors.New("value outside of the alphabet domain")
	ErrFormat = errors.New("malformed encoded input")
)

// DomainError is raised when a numeric value or a symbol does not belong to the alphabet of a given base.
type DomainError struct {
	Base   int
	Value  int    // offending value, when the error is about a value
	Symbol string // offending symbol, when the error is about a symbol
	Offset int    // byte offset of Symbol in the scanned string, -1 if unknown
	Reason string
}

func (e *DomainError) Error() string {
	if e.Symbol != "" {
		if e.Offset >= 0 {
			return fmt.Sprintf("base %d: %s: %q at offset %d", e.Base, e.Reason, e.Symbol, e.Offset)
		}
		return fmt.Sprintf("base %d: %s: %q", e.Base, e.Reason, e.Symbol)
	}
	if e.Reason != "" {
		return fmt.Sprintf("base %d: %s: %d", e.Base, e.Reason, e.Value)
	}
	return fmt.Sprintf("base %d: value %d out of range", e.Base, e.Value)
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// FormatError means that the input handed to a decoder could not have been produced by the matching encoder.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func valueOutOfRange(base, value int) error {
	return &DomainError{Base: base, Value: value, Offset: -1}
}

func unknownSymbol(base int, symbol string, offset int) error {
	return &DomainError{Base: base, Symbol: symbol, Offset: offset, Reason: "unknown symbol"}
}
