package main

import (
	"math/big"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

// TestGoldenCase tests the oracle against hand-checked values.
func TestGoldenCase(t *testing.T) {
	tests := []struct {
		name string
		x, y int64
		want GoldenCase
	}{
		{"positive", 7, 2, GoldenCase{Sum: "9", Difference: "5", Product: "14", Quotient: "3", Remainder: "1"}},
		{"negative dividend", -7, 2, GoldenCase{Sum: "-5", Difference: "-9", Product: "-14", Quotient: "-3", Remainder: "-1"}},
		{"negative divisor", 7, -2, GoldenCase{Sum: "5", Difference: "9", Product: "-14", Quotient: "-3", Remainder: "1"}},
		{"both negative", -7, -2, GoldenCase{Sum: "-9", Difference: "-5", Product: "14", Quotient: "3", Remainder: "-1"}},
		{"zero divisor", 5, 0, GoldenCase{Sum: "5", Difference: "5", Product: "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := goldenCase(tt.name, big.NewInt(tt.x), big.NewInt(tt.y))
			want := tt.want
			want.Name = tt.name
			want.X = big.NewInt(tt.x).String()
			want.Y = big.NewInt(tt.y).String()
			if got != want {
				t.Errorf("goldenCase(%d, %d) = %+v, want %+v", tt.x, tt.y, got, want)
			}
		})
	}
}

// TestHelpers tests the operand constructors.
func TestHelpers(t *testing.T) {
	if got := nines(9).String(); got != "999999999" {
		t.Errorf("nines(9) = %s", got)
	}
	if got := pow10(8).String(); got != "100000000" {
		t.Errorf("pow10(8) = %s", got)
	}
	r := newTestRand()
	for _, n := range []int{1, 8, 9, 500} {
		s := randDigits(r, n).String()
		if len(s) != n || strings.HasPrefix(s, "0") {
			t.Errorf("randDigits(%d) = %q", n, s)
		}
	}
}

// TestBuildCases_Properties tests the generated set as a whole.
func TestBuildCases_Properties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping golden generation in short mode")
	}
	cases := buildCases(7, 3)

	t.Run("deterministic for a seed", func(t *testing.T) {
		if again := buildCases(7, 3); !reflect.DeepEqual(cases, again) {
			t.Error("buildCases is not deterministic")
		}
	})

	t.Run("names are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, c := range cases {
			if seen[c.Name] {
				t.Errorf("duplicate case %q", c.Name)
			}
			seen[c.Name] = true
		}
	})

	t.Run("x = q*y + r", func(t *testing.T) {
		for _, c := range cases {
			if c.Quotient == "" {
				continue
			}
			x, y := parse(c.X), parse(c.Y)
			back := new(big.Int).Mul(parse(c.Quotient), y)
			back.Add(back, parse(c.Remainder))
			if back.Cmp(x) != 0 {
				t.Errorf("%s: q*y + r != x", c.Name)
			}
		}
	})
}

func newTestRand() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }
