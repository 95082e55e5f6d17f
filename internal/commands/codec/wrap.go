package codec

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bokysan/base47/internal/util/enc"
)

var lineBreaks = regexp.MustCompile("[\r\n]+")

// symbolWidth returns the length in bytes of the first digit of s. Alphabet encoders may use multi-rune symbols;
// for all other encoders a digit is a single rune.
func symbolWidth(encoder enc.Encoder, s string) int {
	if a, ok := encoder.(*enc.AlphabetEncoder); ok {
		if _, w, err := a.Alphabet().Next(s); err == nil {
			return w
		}
	}
	_, w := utf8.DecodeRuneInString(s)
	return w
}

// wrap breaks text into lines of at most width symbols. A width of zero or less disables wrapping.
func wrap(encoder enc.Encoder, text string, width int) string {
	if width <= 0 {
		return text
	}

	sb := &strings.Builder{}
	sb.Grow(len(text) + len(text)/width)
	for count := 0; text != ""; count++ {
		if count > 0 && count%width == 0 {
			sb.WriteByte('\n')
		}
		w := symbolWidth(encoder, text)
		sb.WriteString(text[:w])
		text = text[w:]
	}
	return sb.String()
}

// unwrap removes line breaks added by wrap, as well as the surrounding whitespace added by terminals and
// editors. Raw text is only trimmed.
func unwrap(encoder enc.Encoder, text string) string {
	text = strings.TrimSpace(text)
	if _, ok := encoder.(*enc.RawEncoder); ok {
		return text
	}
	return lineBreaks.ReplaceAllString(text, "")
}
