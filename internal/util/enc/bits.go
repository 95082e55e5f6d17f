package enc

import (
	"fmt"
	"strings"
)

// BytesToBits returns the base-2 digit-string of data: eight digits per byte, most significant bit first. The
// empty slice maps to the empty string.
func BytesToBits(data []byte) string {
	sb := &strings.Builder{}
	sb.Grow(len(data) * 8)
	for _, b := range data {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if b&mask != 0 {
				sb.WriteString(Binary.symbols[1])
			} else {
				sb.WriteString(Binary.symbols[0])
			}
		}
	}
	return sb.String()
}

// BitsToBytes is the inverse of BytesToBits. The length of bits must be a multiple of eight.
func BitsToBytes(bits string) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("bit-string length %d is not a multiple of 8", len(bits))}
	}

	res := make([]byte, len(bits)/8)
	index := 0
	for n := 0; n < len(bits); n += 8 {
		var b byte
		for i := 0; i < 8; i++ {
			v, err := Binary.ValueOf(bits[n+i : n+i+1])
			if err != nil {
				if de, ok := err.(*DomainError); ok {
					de.Offset = n + i
				}
				return nil, &FormatError{Reason: "invalid bit-string", Err: err}
			}
			b = b<<1 | byte(v)
		}
		res[index] = b
		index++
	}

	if index != len(res) {
		panic(fmt.Sprintf("byte array was not completely filled, length was %d, filled %d", len(res), index))
	}

	return res, nil
}

// padBits prefixes bits with zero digits until its length is a multiple of eight.
func padBits(bits string) string {
	pad := (8 - len(bits)%8) % 8
	if pad == 0 {
		return bits
	}
	return strings.Repeat(Binary.Zero(), pad) + bits
}
