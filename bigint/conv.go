package bigint

import (
	"fmt"
	"math"
	"strconv"

	apperrors "github.com/darksharpness/int2048/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Text
// ─────────────────────────────────────────────────────────────────────────────

// Parse returns the Int represented by s: an optional sign followed by at
// least one decimal digit. Leading zeros are accepted; "-0" is 0.
func Parse(s string) (*Int, error) {
	z := new(Int)
	if err := z.parse(s); err != nil {
		return nil, err
	}
	return z, nil
}

// MustParse is like Parse but panics on malformed input. It is intended for
// constants in tests and examples.
func MustParse(s string) *Int {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

// SetString sets z to the value of s and returns z and a boolean indicating
// success. On failure z is left unchanged.
func (z *Int) SetString(s string) (*Int, bool) {
	if err := z.parse(s); err != nil {
		return nil, false
	}
	return z, true
}

func (z *Int) parse(s string) error {
	if s == "" {
		return apperrors.SyntaxError{Input: s, Message: "empty input"}
	}
	i, neg := 0, false
	switch s[0] {
	case '-':
		i, neg = 1, true
	case '+':
		i = 1
	}
	if i == len(s) {
		return apperrors.SyntaxError{Input: s, Offset: i, Message: "expected digits after sign"}
	}
	for j := i; j < len(s); j++ {
		if c := s[j]; c < '0' || c > '9' {
			return apperrors.SyntaxError{Input: s, Offset: j, Message: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	z.abs = z.abs.SetDecimal(s[i:])
	z.neg = neg && len(z.abs) > 0
	return nil
}

// Append appends the decimal representation of x to buf.
func (x *Int) Append(buf []byte) []byte {
	if x == nil {
		return append(buf, "<nil>"...)
	}
	if x.neg {
		buf = append(buf, '-')
	}
	return x.abs.AppendDecimal(buf)
}

// String returns the decimal representation of x.
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	return string(x.Append(make([]byte, 0, len(x.abs)*8+1)))
}

// Format implements fmt.Formatter. It accepts the verbs 'd', 's' and 'v',
// the '+' and ' ' sign flags, and width with '-' or '0' padding.
func (x *Int) Format(s fmt.State, ch rune) {
	switch ch {
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}
	if x == nil {
		fmt.Fprint(s, "<nil>")
		return
	}

	sign := ""
	switch {
	case x.neg:
		sign = "-"
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}
	digits := x.abs.AppendDecimal(nil)

	pad := 0
	if w, ok := s.Width(); ok && w > len(sign)+len(digits) {
		pad = w - len(sign) - len(digits)
	}
	switch {
	case pad == 0:
		writeAll(s, sign, digits)
	case s.Flag('-'):
		writeAll(s, sign, digits)
		writeRepeat(s, ' ', pad)
	case s.Flag('0'):
		writeAll(s, sign, nil)
		writeRepeat(s, '0', pad)
		writeAll(s, "", digits)
	default:
		writeRepeat(s, ' ', pad)
		writeAll(s, sign, digits)
	}
}

func writeAll(s fmt.State, sign string, digits []byte) {
	if sign != "" {
		_, _ = s.Write([]byte(sign))
	}
	if len(digits) > 0 {
		_, _ = s.Write(digits)
	}
}

func writeRepeat(s fmt.State, c byte, n int) {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = c
	}
	_, _ = s.Write(buf)
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.Append(nil), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	return z.parse(string(text))
}

// MarshalJSON implements json.Marshaler. The value is a bare JSON number.
func (x *Int) MarshalJSON() ([]byte, error) {
	if x == nil {
		return []byte("null"), nil
	}
	return x.Append(nil), nil
}

// UnmarshalJSON implements json.Unmarshaler. null leaves z unchanged.
func (z *Int) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	return z.parse(string(text))
}

// ─────────────────────────────────────────────────────────────────────────────
// Fixed-width conversions
// ─────────────────────────────────────────────────────────────────────────────

// Uint64 returns the low 64 bits of |x| taken from its three low limbs,
// wrapping when |x| does not fit.
func (x *Int) Uint64() uint64 { return x.abs.Low64() }

// Int64 returns x narrowed to int64: |x| is truncated to its three low
// limbs (|x| mod 10^24), wrapped modulo 2^64, then negated when x < 0.
// Values outside the int64 range therefore do not follow two's-complement
// truncation of x.
func (x *Int) Int64() int64 {
	v := int64(x.abs.Low64())
	if x.neg {
		v = -v
	}
	return v
}

// IsInt64 reports whether x can be represented as an int64.
func (x *Int) IsInt64() bool {
	v, ok := x.abs.Uint64()
	if !ok {
		return false
	}
	if x.neg {
		return v <= 1<<63
	}
	return v <= math.MaxInt64
}

// IsUint64 reports whether x can be represented as a uint64.
func (x *Int) IsUint64() bool {
	_, ok := x.abs.Uint64()
	return ok && !x.neg
}

// Float64 returns the float64 nearest to x, or ±Inf when |x| is beyond the
// float64 range.
func (x *Int) Float64() float64 {
	f, _ := strconv.ParseFloat(x.String(), 64)
	return f
}
