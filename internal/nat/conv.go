package nat

import (
	"strconv"
)

// AppendDecimal appends the decimal digits of x to buf: the top limb
// unpadded, every lower limb zero-padded to RadixDigits. Zero prints as "0".
func (x Nat) AppendDecimal(buf []byte) []byte {
	if len(x) == 0 {
		return append(buf, '0')
	}
	buf = strconv.AppendUint(buf, x[len(x)-1], 10)
	var tmp [RadixDigits]byte
	for i := len(x) - 2; i >= 0; i-- {
		v := x[i]
		for j := RadixDigits - 1; j >= 0; j-- {
			tmp[j] = byte('0' + v%10)
			v /= 10
		}
		buf = append(buf, tmp[:]...)
	}
	return buf
}

// String returns the decimal representation of x.
func (x Nat) String() string {
	return string(x.AppendDecimal(make([]byte, 0, len(x)*RadixDigits)))
}

// SetDecimal stores the value of s in z. s must consist of ASCII digits
// only; leading zeros are accepted.
func (z Nat) SetDecimal(s string) Nat {
	i := 0
	for i < len(s) && s[i] == '0' {
		i++
	}
	s = s[i:]
	if len(s) == 0 {
		return z[:0]
	}

	n := (len(s) + RadixDigits - 1) / RadixDigits
	z = z.make(n)
	end := len(s)
	for k := range z {
		start := max(end-RadixDigits, 0)
		var v Word
		for j := start; j < end; j++ {
			v = v*10 + Word(s[j]-'0')
		}
		z[k] = v
		end = start
	}
	return z
}
