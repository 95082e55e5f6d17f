package enc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Alphabet is an immutable table of digit symbols for one positional base. The symbol at position i denotes the
// value i. Symbols are arbitrary non-empty UTF-8 strings: a single ASCII character, an emoji, or a multi-rune
// glyph such as an emoji followed by a variation selector.
//
// No symbol may be a prefix of another one. This keeps any concatenation of symbols uniquely decodable, which is
// what lets the scanner walk a digit-string one symbol at a time without lookahead.
type Alphabet struct {
	symbols  []string
	values   map[string]int
	maxRunes int
	minBytes int
}

// Binary is the base-2 alphabet used for bit-strings.
var Binary = MustAlphabet("0", "1")

// Emoji47 is the 47 symbol animal alphabet. The order is part of the wire format and must never change.
var Emoji47 = MustAlphabet(
	"\U0001F436", "\U0001F431", "\U0001F42D", "\U0001F439", "\U0001F430", "\U0001F43B", // 🐶 🐱 🐭 🐹 🐰 🐻
	"\U0001F43C", "\U0001F428", "\U0001F42F", "\U0001F981", "\U0001F42E", "\U0001F437", // 🐼 🐨 🐯 🦁 🐮 🐷
	"\U0001F438", "\U0001F419", "\U0001F435", "\U0001F648", "\U0001F649", "\U0001F64A", // 🐸 🐙 🐵 🙈 🙉 🙊
	"\U0001F412", "\U0001F414", "\U0001F427", "\U0001F426", "\U0001F424", "\U0001F423", // 🐒 🐔 🐧 🐦 🐤 🐣
	"\U0001F425", "\U0001F43A", "\U0001F417", "\U0001F434", "\U0001F984", "\U0001F41D", // 🐥 🐺 🐗 🐴 🦄 🐝
	"\U0001F41B", "\U0001F40C", "\U0001F41E", "\U0001F980", "\U0001F40D", "\U0001F422", // 🐛 🐌 🐞 🦀 🐍 🐢
	"\U0001F420", "\U0001F41F", "\U0001F421", "\U0001F42C", "\U0001F433", "\U0001F418", // 🐠 🐟 🐡 🐬 🐳 🐘
	"\U0001F416", "\U0001F54A", "\U0001F43F", "\U0001F98D", "\U0001F98C", // 🐖 🕊 🐿 🦍 🦌
)

// NewAlphabet creates a new alphabet from the given symbols. It fails with a *DomainError if there are fewer than
// two symbols, if a symbol is empty or not valid UTF-8, or if the symbols are not prefix-free (which includes
// duplicates).
func NewAlphabet(symbols ...string) (*Alphabet, error) {
	base := len(symbols)
	if base < 2 {
		return nil, &DomainError{Base: base, Value: base, Offset: -1, Reason: "alphabet needs at least 2 symbols, got"}
	}

	a := &Alphabet{
		symbols: make([]string, base),
		values:  make(map[string]int, base),
	}
	copy(a.symbols, symbols)

	for i, s := range a.symbols {
		if s == "" {
			return nil, &DomainError{Base: base, Value: i, Offset: -1, Reason: "empty symbol at position"}
		}
		if !utf8.ValidString(s) {
			return nil, &DomainError{Base: base, Symbol: s, Offset: -1, Reason: "symbol is not valid UTF-8"}
		}
		if prev, ok := a.values[s]; ok {
			return nil, &DomainError{Base: base, Symbol: s, Offset: -1,
				Reason: fmt.Sprintf("symbol repeated at positions %d and %d", prev, i)}
		}
		a.values[s] = i
		if n := utf8.RuneCountInString(s); n > a.maxRunes {
			a.maxRunes = n
		}
		if a.minBytes == 0 || len(s) < a.minBytes {
			a.minBytes = len(s)
		}
	}

	for i, s := range a.symbols {
		for j, p := range a.symbols {
			if i != j && strings.HasPrefix(s, p) {
				return nil, &DomainError{Base: base, Symbol: s, Offset: -1,
					Reason: fmt.Sprintf("symbol %d starts with symbol %d (%q)", i, j, p)}
			}
		}
	}

	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error. Use it for package level tables.
func MustAlphabet(symbols ...string) *Alphabet {
	a, err := NewAlphabet(symbols...)
	if err != nil {
		panic(err)
	}
	return a
}

// Base returns the number of symbols in the alphabet.
func (a *Alphabet) Base() int {
	return len(a.symbols)
}

// Symbols returns a copy of the symbol table.
func (a *Alphabet) Symbols() []string {
	res := make([]string, len(a.symbols))
	copy(res, a.symbols)
	return res
}

// Zero returns the symbol with value 0.
func (a *Alphabet) Zero() string {
	return a.symbols[0]
}

func (a *Alphabet) String() string {
	return fmt.Sprintf("Alphabet(%d)", a.Base())
}

// SymbolOf returns the symbol representing value.
func (a *Alphabet) SymbolOf(value int) (string, error) {
	if value < 0 || value >= len(a.symbols) {
		return "", valueOutOfRange(len(a.symbols), value)
	}
	return a.symbols[value], nil
}

// ValueOf returns the value of the given symbol.
func (a *Alphabet) ValueOf(symbol string) (int, error) {
	v, ok := a.values[symbol]
	if !ok {
		return 0, unknownSymbol(len(a.symbols), symbol, -1)
	}
	return v, nil
}

// Next reads the symbol at the start of s and returns its value together with its width in bytes. Symbols are
// matched rune by rune, so a multi-rune glyph is consumed as a single digit.
func (a *Alphabet) Next(s string) (value, width int, err error) {
	if s == "" {
		return 0, 0, &DomainError{Base: len(a.symbols), Offset: 0, Reason: "no symbol in empty input"}
	}

	for runes := 0; runes < a.maxRunes && width < len(s); runes++ {
		_, size := utf8.DecodeRuneInString(s[width:])
		width += size
		if v, ok := a.values[s[:width]]; ok {
			return v, width, nil
		}
	}

	_, size := utf8.DecodeRuneInString(s)
	return 0, 0, unknownSymbol(len(a.symbols), s[:size], 0)
}

// Digits scans the whole digit-string and returns the value of each symbol, most significant first.
func (a *Alphabet) Digits(s string) ([]int, error) {
	digits := make([]int, 0, len(s)/a.minBytes)
	for offset := 0; offset < len(s); {
		v, w, err := a.Next(s[offset:])
		if err != nil {
			if de, ok := err.(*DomainError); ok {
				de.Offset = offset
			}
			return nil, err
		}
		digits = append(digits, v)
		offset += w
	}
	return digits, nil
}

// Render is the inverse of Digits.
func (a *Alphabet) Render(digits []int) (string, error) {
	sb := &strings.Builder{}
	for _, d := range digits {
		s, err := a.SymbolOf(d)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// Contains reports whether s is a (possibly empty) sequence of symbols from this alphabet.
func (a *Alphabet) Contains(s string) bool {
	_, err := a.Digits(s)
	return err == nil
}
