package enc

import (
	"fmt"
)

// sentinelBits is prepended to the bit-string of every non-empty input. Without it the converter, which only sees
// a number, would drop leading zero bytes.
const sentinelBits = "11111111"

// AlphabetEncoder turns bytes into a digit-string over an arbitrary alphabet by reading the bytes as one big
// unsigned number and converting it from base 2 to the alphabet's base.
type AlphabetEncoder struct {
	name     string
	code     byte
	alphabet *Alphabet
	sentinel bool
}

// Base47 is the emoji encoder. Leading zero bytes are preserved.
var Base47 = NewAlphabetEncoder("Base47", 'E', Emoji47, true)

// Base47Legacy produces the same emoji strings as the first (sentinel-less) releases of the format. It cannot
// represent leading zero bytes: they are lost on the way and decoding a zero value yields a single 0x00 byte.
var Base47Legacy = NewAlphabetEncoder("Base47-legacy", 'L', Emoji47, false)

// NewAlphabetEncoder creates an encoder for the given alphabet. With sentinel set, every non-empty input is
// prefixed with an 0xFF byte before the conversion (and the byte is checked and stripped on decode), which makes
// the encoding round-trip for inputs with leading zero bytes.
func NewAlphabetEncoder(name string, code byte, alphabet *Alphabet, sentinel bool) *AlphabetEncoder {
	return &AlphabetEncoder{
		name:     name,
		code:     code,
		alphabet: alphabet,
		sentinel: sentinel,
	}
}

func (b *AlphabetEncoder) Name() string {
	return b.name
}

func (b *AlphabetEncoder) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *AlphabetEncoder) Code() byte {
	return b.code
}

// Alphabet returns the target alphabet of this encoder.
func (b *AlphabetEncoder) Alphabet() *Alphabet {
	return b.alphabet
}

// Sentinel reports whether leading zero bytes are preserved.
func (b *AlphabetEncoder) Sentinel() bool {
	return b.sentinel
}

// Encode never fails: the bit-string is always valid base 2 and the conversion only emits values of the target base.
func (b *AlphabetEncoder) Encode(data []byte) string {
	bits := BytesToBits(data)
	if b.sentinel && len(data) > 0 {
		bits = sentinelBits + bits
	}

	res, err := Convert(bits, Binary, b.alphabet)
	if err != nil {
		panic(fmt.Sprintf("%v: conversion of a framed bit-string failed: %v", b, err))
	}
	return res
}

func (b *AlphabetEncoder) Decode(data string) ([]byte, error) {
	bits, err := Convert(data, b.alphabet, Binary)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("not a %v string", b.Name()), Err: err}
	}

	// Encode never emits a leading zero symbol except for the zero value itself, so each payload has exactly
	// one valid spelling.
	if v, w, err := b.alphabet.Next(data); err == nil && v == 0 && w < len(data) {
		return nil, &FormatError{Reason: fmt.Sprintf("not a canonical %v string: leading zero symbol", b.Name())}
	}

	if b.sentinel && bits == Binary.Zero() {
		return []byte{}, nil
	}

	res, err := BitsToBytes(padBits(bits))
	if err != nil {
		panic(fmt.Sprintf("%v: padded bit-string is not byte aligned: %v", b, err))
	}

	if !b.sentinel {
		return res, nil
	}
	if res[0] != 0xFF {
		return nil, &FormatError{Reason: fmt.Sprintf("not a %v string: missing leading marker", b.Name())}
	}
	if len(res) == 1 {
		// The empty payload is spelled as the zero symbol, never as a bare marker.
		return nil, &FormatError{Reason: fmt.Sprintf("not a canonical %v string: marker without payload", b.Name())}
	}
	return res[1:], nil
}

func (b *AlphabetEncoder) TestPatterns() []string {
	return []string{
		b.alphabet.Zero(),
		b.Encode([]byte{0x00}),
		b.Encode([]byte{0xFF, 0x00, 0x01}),
	}
}
