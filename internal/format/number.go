package format

import "strings"

// FormatNumberString inserts a comma every three digits of a decimal string,
// keeping a leading '-'.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens a decimal string longer than limit characters to
// its first and last edge digits joined by "...". It reports whether the
// string was shortened. A leading '-' is kept and not counted.
func TruncateDigits(s string, limit, edge int) (string, bool) {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= limit || 2*edge >= len(s) {
		return sign + s, false
	}
	return sign + s[:edge] + "..." + s[len(s)-edge:], true
}
