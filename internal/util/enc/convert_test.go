package enc

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var decimal = MustAlphabet("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
var hex = MustAlphabet("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "a", "b", "c", "d", "e", "f")

func Test_Convert(t *testing.T) {
	tests := []struct {
		number   string
		from, to *Alphabet
		expected string
	}{
		{"0", decimal, hex, "0"},
		{"", decimal, hex, "0"},
		{"000", decimal, hex, "0"},
		{"255", decimal, hex, "ff"},
		{"00255", decimal, hex, "ff"},
		{"ff", hex, decimal, "255"},
		{"65535", decimal, Binary, strings.Repeat("1", 16)},
		{"1", Binary, Emoji47, "\U0001F431"},
		{"101111", Binary, Emoji47, "\U0001F431\U0001F436"},
		{"1111111100000000", Binary, Emoji47, "\U0001F41D\U0001F43A\U0001F43F"},
		{"\U0001F41D\U0001F43A\U0001F43F", Emoji47, decimal, "65280"},
	}

	for _, tt := range tests {
		res, err := Convert(tt.number, tt.from, tt.to)
		require.NoErrorf(t, err, "converting %q", tt.number)
		require.Equalf(t, tt.expected, res, "converting %q from %v to %v", tt.number, tt.from, tt.to)
	}
}

func Test_ConvertSameAlphabetIsIdentity(t *testing.T) {
	res, err := Convert("000123", decimal, decimal)
	require.NoError(t, err)
	require.Equal(t, "000123", res)

	_, err = Convert("12a", decimal, decimal)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDomain))
}

func Test_ConvertSameBaseDifferentAlphabet(t *testing.T) {
	letters := MustAlphabet("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	res, err := Convert("0042", decimal, letters)
	require.NoError(t, err)
	require.Equal(t, "ec", res)
}

func Test_ConvertRejectsUnknownSymbols(t *testing.T) {
	_, err := Convert("12x4", decimal, hex)
	require.Error(t, err)

	var de *DomainError
	require.True(t, errors.As(err, &de))
	require.Equal(t, "x", de.Symbol)
	require.Equal(t, 2, de.Offset)
}

func Test_ConvertDigitsValidation(t *testing.T) {
	_, err := ConvertDigits([]int{1}, 1, 10)
	require.True(t, errors.Is(err, ErrDomain))
	_, err = ConvertDigits([]int{1}, 10, 0)
	require.True(t, errors.Is(err, ErrDomain))
	_, err = ConvertDigits([]int{1, 10}, 10, 2)
	require.True(t, errors.Is(err, ErrDomain))
	_, err = ConvertDigits([]int{-1}, 10, 2)
	require.True(t, errors.Is(err, ErrDomain))
}

func Test_ConvertDigitsDoesNotModifyInput(t *testing.T) {
	digits := []int{0, 9, 8, 7}
	res, err := ConvertDigits(digits, 10, 16)
	require.NoError(t, err)
	require.Equal(t, []int{3, 13, 11}, res)
	require.Equal(t, []int{0, 9, 8, 7}, digits)
}

func Test_ConvertDigitsMatchesBigInt(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	pairs := [][2]int{{2, 47}, {47, 2}, {10, 16}, {256, 47}, {47, 256}, {3, 1000}, {1000, 7}}

	for _, pair := range pairs {
		oldBase, newBase := pair[0], pair[1]
		for i := 0; i < 50; i++ {
			digits := make([]int, rnd.Intn(40))
			for k := range digits {
				digits[k] = rnd.Intn(oldBase)
			}

			res, err := ConvertDigits(digits, oldBase, newBase)
			require.NoError(t, err)
			require.Equal(t, bigDigits(digits, oldBase, newBase), res, "%v from base %d to %d", digits, oldBase, newBase)
		}
	}
}

// bigDigits does the same conversion with math/big, as a reference.
func bigDigits(digits []int, oldBase, newBase int) []int {
	n := new(big.Int)
	ob := big.NewInt(int64(oldBase))
	for _, d := range digits {
		n.Mul(n, ob)
		n.Add(n, big.NewInt(int64(d)))
	}
	if n.Sign() == 0 {
		return []int{0}
	}

	var res []int
	nb := big.NewInt(int64(newBase))
	m := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, nb, m)
		res = append([]int{int(m.Int64())}, res...)
	}
	return res
}
