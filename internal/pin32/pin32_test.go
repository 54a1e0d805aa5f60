package pin32

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharsetShape(t *testing.T) {
	require.Len(t, Charset, 32)
	// The only lowercase letter in the alphabet is 'u'.
	for i := 0; i < len(Charset); i++ {
		c := Charset[i]
		if c >= 'a' && c <= 'z' {
			assert.Equal(t, byte('u'), c)
		}
	}
	assert.NotContains(t, Charset, "I")
	assert.NotContains(t, Charset, "L")
	assert.NotContains(t, Charset, "O")
	assert.NotContains(t, Charset, "U")
	assert.NotContains(t, Charset, "Z")
}

func TestEncodePadding(t *testing.T) {
	assert.Equal(t, "00", Encode(0))
	assert.Equal(t, "01", Encode(1))
	assert.Equal(t, "0A", Encode(10))
	assert.Equal(t, "0Y", Encode(31))
	assert.Equal(t, "10", Encode(32))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 10, 31, 32, 1023, 1024, 99999, 1 << 40, math.MaxUint64} {
		got, err := Decode(Encode(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestDecodeAliases(t *testing.T) {
	// Lowercase letters decode like their uppercase digits.
	upper, err := Decode("0A")
	require.NoError(t, err)
	lower, err := Decode("0a")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)

	// 'U' is an alias for 'u'.
	u, err := Decode("u")
	require.NoError(t, err)
	assert.Equal(t, uint64(28), u)
	uu, err := Decode("U")
	require.NoError(t, err)
	assert.Equal(t, u, uu)
}

func TestDecodeEmpty(t *testing.T) {
	n, err := Decode("")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), n)
}

func TestDecodeInvalid(t *testing.T) {
	for _, s := range []string{"I", "L", "O", "Z", "-1", "1.5", "A B"} {
		_, err := Decode(s)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", s)
	}
}

func TestDecodeOverflow(t *testing.T) {
	// One digit past the maximum uint64 value: the fixed-width path refuses,
	// the decimal-string path handles it.
	_, err := Decode("FYYYYYYYYYYYY0")
	assert.ErrorIs(t, err, ErrOverflow)

	dec, err := DecodeToDecimal("FYYYYYYYYYYYY0")
	require.NoError(t, err)
	assert.Equal(t, "590295810358705651680", dec) // (2^64 - 1) * 32
}

func TestEncodeDecimal(t *testing.T) {
	// uint64 fast path keeps the padding behavior.
	got, err := EncodeDecimal("0")
	require.NoError(t, err)
	assert.Equal(t, "00", got)

	got, err = EncodeDecimal("10")
	require.NoError(t, err)
	assert.Equal(t, "0A", got)

	// Values past uint64 go through the big-integer path.
	got, err = EncodeDecimal("99999999999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, "2JPY9DSJ0CTBHYYYYY", got)

	got, err = EncodeDecimal("18446744073709551616") // 2^64
	require.NoError(t, err)
	assert.Equal(t, "G000000000000", got)

	for _, s := range []string{"-5", "1.5", "abc"} {
		_, err := EncodeDecimal(s)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", s)
	}
}

func TestBigRoundTrip(t *testing.T) {
	for _, dec := range []string{
		"99999999999999999999999999",
		"18446744073709551616",
		"123456789012345678901234567890",
	} {
		encoded, err := EncodeDecimal(dec)
		require.NoError(t, err)
		got, err := DecodeToDecimal(encoded)
		require.NoError(t, err)
		assert.Equal(t, dec, got)
	}

	_, err := DecodeToDecimal("FYYYYYYYYYYYYIL") // invalid char past the overflow point
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABC", Normalize("abc"))
	assert.Equal(t, "u", Normalize("U"))
	assert.Equal(t, "u", Normalize("u"))
	assert.Equal(t, "0Au9", Normalize("0aU9"))
	assert.Equal(t, "123", Normalize("123"))
}
