package bond

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the coupon payment frequency.
type Frequency string

var (
	Annual     Frequency = "annual"
	Semiannual Frequency = "semiannual"
)

// PeriodsPerYear returns the number of coupon payments per year.
// Matching is case-insensitive.
func (f Frequency) PeriodsPerYear() (int, error) {
	switch Frequency(strings.ToLower(string(f))) {
	case Annual:
		return 1, nil
	case Semiannual:
		return 2, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, string(f))
}

// DayCount selects how a calendar span converts into a fraction of a
// coupon period.
type DayCount string

var (
	// Thirty360 treats every month as 30 days.
	Thirty360 DayCount = "30/360"
	// Actual counts real calendar days.
	Actual DayCount = "actual"
)

func (d DayCount) normalize() (DayCount, error) {
	switch DayCount(strings.ToLower(string(d))) {
	case Thirty360:
		return Thirty360, nil
	case Actual:
		return Actual, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidConvention, string(d))
}

// PriceBasis selects whether a settlement price includes accrued interest.
type PriceBasis string

var (
	Clean PriceBasis = "clean"
	Dirty PriceBasis = "dirty"
)

func (b PriceBasis) normalize() (PriceBasis, error) {
	switch PriceBasis(strings.ToLower(string(b))) {
	case Clean:
		return Clean, nil
	case Dirty:
		return Dirty, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriceBasis, string(b))
}

// Row is one line of human-readable valuation detail.
type Row struct {
	Label string
	Value float64
}

// Reporter receives valuation detail for side-channel presentation.
// Implementations must not influence the numeric results they are handed;
// a nil Reporter disables reporting.
type Reporter interface {
	Render(rows []Row)
}

// NormalizeRate interprets rate arguments greater than 1 as percentages.
// 0.05 and 5 both mean five percent; 1.0 is the largest value read as an
// already-fractional rate.
func NormalizeRate(r float64) float64 {
	if r > 1 {
		return r / 100
	}
	return r
}

// round2 rounds a published price to two decimal places, half away
// from zero.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// broadcastLen resolves the output length when bond terms of length n are
// combined with yields of length m. Either side may be scalar.
func broadcastLen(n, m int) (int, error) {
	switch {
	case n == m:
		return n, nil
	case n == 1:
		return m, nil
	case m == 1:
		return n, nil
	}
	return 0, fmt.Errorf("%w: %d terms vs %d yields", ErrDimensionMismatch, n, m)
}

// idx maps a broadcast position back onto a possibly-scalar argument.
func idx(i, n int) int {
	if n == 1 {
		return 0
	}
	return i
}
