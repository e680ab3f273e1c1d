package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "< 1µs"},
		{500 * time.Nanosecond, "< 1µs"},
		{1500 * time.Nanosecond, "1µs"},
		{999 * time.Microsecond, "999µs"},
		{time.Millisecond, "1ms"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 3*time.Second + 400*time.Microsecond, "2m3s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"-123", "-123"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.input); got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input     string
		limit     int
		edge      int
		expected  string
		truncated bool
	}{
		{"12345", 10, 2, "12345", false},
		{"123456789012", 10, 3, "123...012", true},
		{"-123456789012", 10, 3, "-123...012", true},
		{"-1234567890", 10, 3, "-1234567890", false},
		{"123456", 4, 3, "123456", false},
	}
	for _, tt := range tests {
		got, truncated := TruncateDigits(tt.input, tt.limit, tt.edge)
		if got != tt.expected || truncated != tt.truncated {
			t.Errorf("TruncateDigits(%q, %d, %d) = %q, %v; want %q, %v",
				tt.input, tt.limit, tt.edge, got, truncated, tt.expected, tt.truncated)
		}
	}
}
