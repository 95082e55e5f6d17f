package enc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Emoji47IsDistinct(t *testing.T) {
	require.Equal(t, 47, Emoji47.Base())

	seen := make(map[string]bool)
	for v := 0; v < Emoji47.Base(); v++ {
		s, err := Emoji47.SymbolOf(v)
		require.NoError(t, err)
		require.False(t, seen[s], "symbol %q repeated", s)
		seen[s] = true

		back, err := Emoji47.ValueOf(s)
		require.NoError(t, err)
		require.Equal(t, v, back)
	}
	require.Len(t, seen, 47)
}

func Test_AlphabetOutOfRange(t *testing.T) {
	for _, v := range []int{-1, 47, 1000} {
		_, err := Emoji47.SymbolOf(v)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrDomain))
	}

	_, err := Binary.ValueOf("2")
	require.Error(t, err)
	var de *DomainError
	require.True(t, errors.As(err, &de))
	require.Equal(t, 2, de.Base)
	require.Equal(t, "2", de.Symbol)
}

func Test_NewAlphabetValidation(t *testing.T) {
	invalid := [][]string{
		nil,
		{"a"},
		{"a", "a"},
		{"a", ""},
		{"a", "\xff"},
		{"a", "ab"},
	}
	for _, symbols := range invalid {
		_, err := NewAlphabet(symbols...)
		require.Errorf(t, err, "alphabet %q should not be accepted", symbols)
		require.True(t, errors.Is(err, ErrDomain))
	}

	require.Panics(t, func() {
		MustAlphabet("x", "x")
	})
}

func Test_AlphabetDoesNotAliasInput(t *testing.T) {
	symbols := []string{"a", "b", "c"}
	a, err := NewAlphabet(symbols...)
	require.NoError(t, err)
	symbols[0] = "z"
	require.Equal(t, "a", a.Zero())
	require.Equal(t, []string{"a", "b", "c"}, a.Symbols())
}

func Test_AlphabetScansMultiRuneSymbols(t *testing.T) {
	// dove with and without variation selector, flag made of two regional indicators, family ZWJ sequence
	a, err := NewAlphabet(
		"\U0001F54A\uFE0F",
		"\U0001F1F8\U0001F1EE",
		"\U0001F468\u200D\U0001F469\u200D\U0001F467",
		"x",
	)
	require.NoError(t, err)

	input := "x\U0001F468\u200D\U0001F469\u200D\U0001F467\U0001F54A\uFE0F\U0001F1F8\U0001F1EEx"
	digits, err := a.Digits(input)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 0, 1, 3}, digits)

	rendered, err := a.Render(digits)
	require.NoError(t, err)
	require.Equal(t, input, rendered)

	v, w, err := a.Next("\U0001F1F8\U0001F1EEx")
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 8, w)
}

func Test_AlphabetReportsOffset(t *testing.T) {
	_, err := Emoji47.Digits("\U0001F436\U0001F431?\U0001F436")
	require.Error(t, err)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	require.Equal(t, 8, de.Offset)
	require.Equal(t, "?", de.Symbol)
	require.Equal(t, 47, de.Base)
}

func Test_AlphabetContains(t *testing.T) {
	require.True(t, Emoji47.Contains(""))
	require.True(t, Emoji47.Contains("\U0001F436\U0001F98C"))
	require.False(t, Emoji47.Contains("\U0001F436 \U0001F98C"))
	// a lone surrogate half / broken UTF-8 is not a symbol
	require.False(t, Emoji47.Contains("\xf0\x9f\x90"))
}
