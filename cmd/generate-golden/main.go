// Command generate-golden writes bigint/testdata/golden.json: operand pairs
// with their sum, difference, product, quotient and remainder computed by
// math/big, which serves as the oracle. Sizes are chosen to land on every
// multiplication and division path of the kernel.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

// GoldenCase represents a single test case in the golden file.
type GoldenCase struct {
	Name       string `json:"name"`
	X          string `json:"x"`
	Y          string `json:"y"`
	Sum        string `json:"sum"`
	Difference string `json:"difference"`
	Product    string `json:"product"`
	Quotient   string `json:"quotient,omitempty"`
	Remainder  string `json:"remainder,omitempty"`
}

func main() {
	outputDir := flag.String("out", "bigint/testdata", "Output directory for the golden file")
	seed := flag.Uint64("seed", 2048, "Seed for the random operands")
	randomCases := flag.Int("random", 8, "Number of random operand pairs")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	fmt.Println("Generating golden data...")
	cases := buildCases(*seed, *randomCases)

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cases); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated %d cases at %s\n", len(cases), filename)
}

// buildCases returns the fixed boundary cases followed by n random pairs.
// The output depends only on seed and n.
func buildCases(seed uint64, n int) []GoldenCase {
	r := rand.New(rand.NewPCG(seed, seed))
	neg := func(x *big.Int) *big.Int { return new(big.Int).Neg(x) }

	cases := []GoldenCase{
		goldenCase("zero_zero", big.NewInt(0), big.NewInt(0)),
		goldenCase("one_minus_one", big.NewInt(1), big.NewInt(-1)),
		goldenCase("limb_carry", big.NewInt(99999999), big.NewInt(1)),
		goldenCase("spec_example", parse("-123456789012345678901234567890"), big.NewInt(2)),
		goldenCase("borrow_chain", pow10(40), big.NewInt(1)),
		goldenCase("nines_squared_small", nines(64), nines(64)),
		goldenCase("small_over_large", big.NewInt(12345), neg(pow10(30))),
		goldenCase("word_divisor", randDigits(r, 300), neg(randDigits(r, 8))),
		goldenCase("two_limb_divisor", neg(randDigits(r, 300)), randDigits(r, 16)),
		goldenCase("brute_threshold_edge", randDigits(r, 47*8), randDigits(r, 47*8)),
		goldenCase("fft_threshold_edge", neg(randDigits(r, 48*8)), randDigits(r, 48*8)),
		goldenCase("fft_nines", nines(2000), nines(1500)),
		goldenCase("fft_power", pow10(1600), neg(new(big.Int).Add(pow10(900), big.NewInt(1)))),
		goldenCase("fft_random", randDigits(r, 3000), randDigits(r, 2500)),
		goldenCase("newton_random", randDigits(r, 6000), randDigits(r, 1600)),
		goldenCase("newton_negative", neg(randDigits(r, 7000)), randDigits(r, 2000)),
		goldenCase("newton_nines", nines(6000), nines(1700)),
		goldenCase("newton_power_minus_one", nines(6400), new(big.Int).Add(pow10(1800), big.NewInt(7))),
		goldenCase("unbalanced", randDigits(r, 9000), neg(randDigits(r, 40))),
	}
	for i := range n {
		dx := 1 + r.IntN(2500)
		dy := 1 + r.IntN(dx)
		x, y := randDigits(r, dx), randDigits(r, dy)
		if r.IntN(2) == 1 {
			x.Neg(x)
		}
		if r.IntN(2) == 1 {
			y.Neg(y)
		}
		cases = append(cases, goldenCase(fmt.Sprintf("random_%d", i), x, y))
	}
	return cases
}

// goldenCase evaluates every operator on x and y with math/big. Division
// truncates toward zero, matching big.Int.QuoRem.
func goldenCase(name string, x, y *big.Int) GoldenCase {
	c := GoldenCase{
		Name:       name,
		X:          x.String(),
		Y:          y.String(),
		Sum:        new(big.Int).Add(x, y).String(),
		Difference: new(big.Int).Sub(x, y).String(),
		Product:    new(big.Int).Mul(x, y).String(),
	}
	if y.Sign() != 0 {
		q, m := new(big.Int).QuoRem(x, y, new(big.Int))
		c.Quotient, c.Remainder = q.String(), m.String()
	}
	return c
}

// randDigits returns a random positive integer of exactly n decimal digits.
func randDigits(r *rand.Rand, n int) *big.Int {
	var sb strings.Builder
	sb.WriteByte(byte('1' + r.IntN(9)))
	for range n - 1 {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return parse(sb.String())
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// nines returns 10^n - 1.
func nines(n int) *big.Int {
	return new(big.Int).Sub(pow10(n), big.NewInt(1))
}

func parse(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("generate-golden: bad literal " + s)
	}
	return x
}
