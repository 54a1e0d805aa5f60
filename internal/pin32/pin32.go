// Package pin32 implements the custom base32 alphabet used by the converter
// service. The alphabet drops the easily-confused letters I, L, O and Z, and
// keeps U lowercase so it cannot be mistaken for V in printed codes.
package pin32

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Charset is the 32-character alphabet, ordered by digit value.
// Note the single lowercase letter: 'u' at value 28. Uppercase 'U' is never
// emitted, but it is accepted on input as an alias for 'u'.
const Charset = "0123456789ABCDEFGHJKMNPQRSTuVWXY"

const base = 32

// ErrInvalidInput is returned when an input string contains characters outside
// the alphabet, or when a decimal input cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// ErrOverflow is returned by Decode when the value does not fit in a uint64.
// DecodeToDecimal handles such values.
var ErrOverflow = errors.New("value overflows uint64")

// decodeMap accepts the canonical alphabet plus lowercase aliases for every
// uppercase letter, plus 'U' as an alias for 'u'.
var decodeMap = buildDecodeMap()

func buildDecodeMap() map[byte]uint64 {
	m := make(map[byte]uint64, len(Charset)*2)
	for i := 0; i < len(Charset); i++ {
		m[Charset[i]] = uint64(i)
	}
	for i := 0; i < len(Charset); i++ {
		c := Charset[i]
		if c >= 'A' && c <= 'Z' {
			m[c+('a'-'A')] = uint64(i)
		}
	}
	m['U'] = m['u']
	return m
}

// Encode converts a decimal value to its base32 representation. Results
// shorter than two digits are zero-padded, so 0 encodes as "00" and 10 as
// "0A".
func Encode(n uint64) string {
	if n == 0 {
		return "00"
	}
	var buf [14]byte // 13 digits cover the full uint64 range
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Charset[n%base]
		n /= base
	}
	if len(buf)-i < 2 {
		i--
		buf[i] = '0'
	}
	return string(buf[i:])
}

// Decode converts a base32 string back to its decimal value. Lowercase
// letters are accepted as aliases for their uppercase digits, and 'U' for
// 'u'. The empty string decodes to 0.
func Decode(s string) (uint64, error) {
	var total uint64
	for i := 0; i < len(s); i++ {
		v, ok := decodeMap[s[i]]
		if !ok {
			return 0, fmt.Errorf("%w: invalid character %q", ErrInvalidInput, s[i])
		}
		if total > (math.MaxUint64-v)/base {
			return 0, ErrOverflow
		}
		total = total*base + v
	}
	return total, nil
}

// EncodeDecimal converts a decimal string of any length to base32. Values
// that fit in a uint64 take the cheap path; anything larger goes through
// math/big, matching the unbounded precision of the original service.
func EncodeDecimal(dec string) (string, error) {
	if n, err := strconv.ParseUint(dec, 10, 64); err == nil {
		return Encode(n), nil
	}
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok || n.Sign() < 0 {
		return "", fmt.Errorf("%w: not a non-negative decimal", ErrInvalidInput)
	}
	return EncodeBig(n), nil
}

// EncodeBig converts an arbitrary-precision value to base32 with the same
// two-digit padding as Encode. Negative values are the caller's problem;
// EncodeDecimal rejects them before getting here.
func EncodeBig(n *big.Int) string {
	if n.Sign() == 0 {
		return "00"
	}
	q := new(big.Int).Set(n)
	r := new(big.Int)
	div := big.NewInt(base)

	var digits []byte
	for q.Sign() > 0 {
		q.DivMod(q, div, r)
		digits = append(digits, Charset[r.Int64()])
	}
	if len(digits) < 2 {
		digits = append(digits, '0')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// DecodeToDecimal converts a base32 string to its decimal representation,
// falling back to math/big when the value exceeds uint64.
func DecodeToDecimal(s string) (string, error) {
	n, err := Decode(s)
	if err == nil {
		return strconv.FormatUint(n, 10), nil
	}
	if !errors.Is(err, ErrOverflow) {
		return "", err
	}

	total := new(big.Int)
	mul := big.NewInt(base)
	v := new(big.Int)
	for i := 0; i < len(s); i++ {
		val, ok := decodeMap[s[i]]
		if !ok {
			return "", fmt.Errorf("%w: invalid character %q", ErrInvalidInput, s[i])
		}
		total.Mul(total, mul)
		total.Add(total, v.SetUint64(val))
	}
	return total.String(), nil
}

// Normalize prepares user input for decoding: 'U' and 'u' both become 'u',
// any other lowercase letter is uppercased, and everything else passes
// through unchanged.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 'U' || c == 'u':
			b.WriteByte('u')
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - ('a' - 'A'))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
