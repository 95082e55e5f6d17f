package enc

// NOTE: The character map comes from base128.c of the IODINE project.
/*
 * Copyright (c) 2006-2014 Erik Ekman <yarrick@kryo.se>,
 * 2006-2009 Bjorn Andersson <flex@kryo.se>
 * Mostly rewritten 2009 J.A.Bezemer@opensourcepartners.nl
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.chromium.org/luci/common/data/base128"
)

var cb128 = func() []rune {
	/*
	 * Don't use '-' (restricted to middle of labels), prefer iso_8859-1
	 * accent chars since they might readily be entered in normal use,
	 * don't use 254-255 because of possible function overloading in DNS systems.
	 */
	const latin1 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"\274\275\276\277" +
		"\300\301\302\303\304\305\306\307\310\311\312\313\314\315\316\317" +
		"\320\321\322\323\324\325\326\327\330\331\332\333\334\335\336\337" +
		"\340\341\342\343\344\345\346\347\350\351\352\353\354\355\356\357" +
		"\360\361\362\363\364\365\366\367\370\371\372\373\374\375"
	res := make([]rune, len(latin1))
	for i := 0; i < len(latin1); i++ {
		res[i] = rune(latin1[i])
	}
	return res
}()

var cb128Invert = func() map[rune]byte {
	res := make(map[rune]byte, len(cb128))
	for i, r := range cb128 {
		res[r] = byte(i)
	}
	return res
}()

// -------------------------------------------------------

// Base128Encoder encodes 7 bytes to 8 characters. The bytes are packed into 7-bit values (unpacked again by luci's
// base128) which are mapped onto the IODINE character map, rendered as UTF-8 (so the upper half takes two bytes
// per character).
type Base128Encoder struct {
}

func (b *Base128Encoder) Name() string {
	return "Base128"
}

func (b *Base128Encoder) String() string {
	return fmt.Sprintf("%v(%v)", b.Name(), string(b.Code()))
}

func (b *Base128Encoder) Code() byte {
	return 'V'
}

func (b *Base128Encoder) Encode(src []byte) string {
	dst := make([]byte, 0, base128.EncodedLen(len(src)))

	whichByte := uint(1)
	bufByte := byte(0)

	for _, val := range src {
		// Take the current buffer, add current value, shifted.
		// E.g. first round is first 7 bits of value
		dst = append(dst, bufByte|(val>>whichByte))

		// Keep the low bits that did not fit and move them to the top of the next 7-bit group
		bufByte = (val & ((1 << whichByte) - 1)) << (7 - whichByte)

		if whichByte == 7 {
			dst = append(dst, bufByte)
			bufByte = 0
			whichByte = 0
		}

		whichByte++
	}

	// Only flush if there are pending bits; a multiple of 7 input ends on a group boundary.
	if whichByte != 1 {
		dst = append(dst, bufByte)
	}
	return escape128(dst)
}

func (b *Base128Encoder) Decode(data string) ([]byte, error) {
	src, err := unescape128(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	res, err := base128.DecodeString(string(src))
	if err != nil {
		return nil, errors.WithStack(&FormatError{Reason: "not a Base128 string", Err: err})
	}
	return res, nil
}

func (b *Base128Encoder) TestPatterns() []string {
	return []string{
		b.Encode([]byte("aA-Aaahhh-Drink-mal-ein-J\344germeister-")),
		b.Encode([]byte("aA-La-fl\373te-na\357ve-fran\347aise-est-retir\351-\340-Cr\350te")),
	}
}

// escape128 maps 7-bit values onto the character map. A value with the high bit set is a packing defect and
// panics.
func escape128(src []byte) string {
	res := make([]rune, len(src))
	for i, v := range src {
		if int(v) >= len(cb128) {
			panic(fmt.Sprintf("base128: value %#x at offset %d does not fit into 7 bits", v, i))
		}
		res[i] = cb128[v]
	}
	return string(res)
}

func unescape128(src string) ([]byte, error) {
	res := make([]byte, 0, len(src))
	for i, r := range src {
		v, ok := cb128Invert[r]
		if !ok {
			size := utf8.RuneLen(r)
			if size < 0 {
				size = 1
			}
			return nil, &FormatError{
				Reason: "not a Base128 string",
				Err:    unknownSymbol(len(cb128), src[i:i+size], i),
			}
		}
		res = append(res, v)
	}
	return res, nil
}
