package enc

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.chromium.org/luci/common/data/base128"
)

var encoderTest = []byte("\000\000\000\000\377\377\377\377\125\125\125\125\252\252\252\252" +
	"\201\143\310\322\307\174\262\027\137\117\316\311\111\055\122\041" +
	"\141\251\161\040\045\263\006\163\346\330\104\060\171\120\127\277")

var encoderTests = [][]byte{
	{},
	{0x00},
	{0xFF},
	{0x00, 0x01},
	[]byte("Hello World \U0001F60E"),
	encoderTest,
}

func Test_EncodersRoundTrip(t *testing.T) {
	for _, encoder := range Encoders() {
		if ae, ok := encoder.(*AlphabetEncoder); ok && !ae.Sentinel() {
			// cannot represent leading zero bytes
			continue
		}
		for _, data := range encoderTests {
			encoded := encoder.Encode(data)
			decoded, err := encoder.Decode(encoded)
			require.NoErrorf(t, err, "%v could not decode %q", encoder.Name(), encoded)
			require.Equalf(t, len(data), len(decoded), "%v changed the length of %v", encoder.Name(), data)
			if len(data) > 0 {
				require.Equal(t, data, decoded, encoder.Name())
			}
		}
	}
}

func Test_EncodersTestPatterns(t *testing.T) {
	for _, encoder := range Encoders() {
		for _, pattern := range encoder.TestPatterns() {
			_, err := encoder.Decode(pattern)
			require.NoErrorf(t, err, "%v: test pattern %q does not decode", encoder.Name(), pattern)
		}
	}
}

func Test_TextEncodersAvoidDots(t *testing.T) {
	for _, encoder := range []Encoder{&Base32Encoder{}, &Base64Encoder{}, &Base64uEncoder{}, &Base85Encoder{}, &Base91Encoder{}, &Base128Encoder{}} {
		encoded := encoder.Encode(encoderTest)
		require.NotContains(t, encoded, ".", encoder.Name())
	}
}

func Test_TextEncodersWithoutPadding(t *testing.T) {
	// '=' is a regular symbol of Base85 and Base91, so only the padded-by-default codecs are checked
	for _, encoder := range []Encoder{&Base32Encoder{}, &Base64Encoder{}, &Base64uEncoder{}, &Base128Encoder{}} {
		for _, data := range encoderTests {
			require.NotContains(t, encoder.Encode(data), "=", encoder.Name())
		}
	}
}

func Test_EncodersRejectGarbage(t *testing.T) {
	garbage := map[Encoder]string{
		Base47:             "\U0001F436x",
		&Base32Encoder{}:   "ABC!",
		&Base64Encoder{}:   "a=b",
		&Base128Encoder{}:  "\U0001F436",
		Base47Legacy:       "\U0001F60E",
	}
	for encoder, input := range garbage {
		_, err := encoder.Decode(input)
		require.Errorf(t, err, "%v accepted %q", encoder.Name(), input)
		require.Truef(t, errors.Is(err, ErrFormat), "%v: %v is not a format error", encoder.Name(), err)
	}
}

func Test_Base128AllLengths(t *testing.T) {
	encoder := &Base128Encoder{}
	for n := 0; n <= 3*7+1; n++ {
		for _, fill := range []byte{0x00, 0x01, 0x80, 0xFF} {
			data := bytes.Repeat([]byte{fill}, n)
			encoded := encoder.Encode(data)
			require.Equalf(t, base128.EncodedLen(n), len([]rune(encoded)), "length %d, fill %#x", n, fill)

			// The packed form must be readable by luci directly, without the character map
			packed, err := unescape128(encoded)
			require.NoError(t, err)
			unpacked, err := base128.DecodeString(string(packed))
			require.NoErrorf(t, err, "length %d, fill %#x", n, fill)
			require.Equalf(t, data, unpacked, "length %d, fill %#x", n, fill)

			decoded, err := encoder.Decode(encoded)
			require.NoError(t, err)
			require.Equalf(t, data, decoded, "length %d, fill %#x", n, fill)
		}
	}
}

func Test_Base128KnownValues(t *testing.T) {
	encoder := &Base128Encoder{}
	// 0x00 packs into two zero groups, 0xFF into 0x7F and 0x40
	require.Equal(t, "aa", encoder.Encode([]byte{0x00}))
	require.Equal(t, string([]rune{cb128[0x7f], cb128[0x40]}), encoder.Encode([]byte{0xFF}))
	require.Equal(t, "", encoder.Encode(nil))

	decoded, err := encoder.Decode("aa")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, decoded)
}

func Test_Base128EscapeRejectsHighBit(t *testing.T) {
	require.Panics(t, func() {
		escape128([]byte{0x01, 0x80})
	})
}

func Test_Base128Transliterate(t *testing.T) {
	str := make([]byte, 128)
	for k := range str {
		str[k] = byte(k)
	}
	trans := escape128(str)
	require.Equal(t, len(str), len([]rune(trans)))

	back, err := unescape128(trans)
	require.NoError(t, err)
	require.Equal(t, str, back)
}

func Test_FindEncoder(t *testing.T) {
	e, err := FindEncoder("base47")
	require.NoError(t, err)
	require.Equal(t, Base47, e)

	e, err = FindEncoder("E")
	require.NoError(t, err)
	require.Equal(t, Base47, e)

	e, err = FindEncoder("BASE91")
	require.NoError(t, err)
	require.Equal(t, "Base91", e.Name())

	_, err = FindEncoder("base1000")
	require.Error(t, err)
	var unknown *UnknownEncoderError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "base1000", unknown.Name)
}

func Test_RegisterEncoderRejectsDuplicates(t *testing.T) {
	require.Error(t, RegisterEncoder(NewAlphabetEncoder("base47", 'q', Binary, true)))
	require.Error(t, RegisterEncoder(NewAlphabetEncoder("Another", 'E', Binary, true)))
}
