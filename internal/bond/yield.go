package bond

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	gridStep = 0.01
	gridSize = 9999

	solverWorkers = 8
)

// YTMInput describes a yield-to-maturity lookup: the solver inverts
// PriceAtParDate to recover the yield that reproduces ObservedPrice.
type YTMInput struct {
	Tenor      float64
	CouponRate float64
	ParValue   float64
	// ObservedPrice is the market price the yield must reproduce.
	ObservedPrice float64
	// CallValue replaces the par redemption when positive.
	CallValue float64

	Frequency Frequency
	Reporter  Reporter
}

// YTMResult is the yield recovered by SolveYTM.
type YTMResult struct {
	// Yield is the annual fractional rate the pricing engine used at the
	// matched grid point.
	Yield float64
	// GridYield is the raw candidate value, in percent form.
	GridYield float64
	// GridIndex is the position of the match on the search grid.
	GridIndex int
}

// SolveYTM searches a fixed grid of candidate yields (0.01 through 99.99
// in steps of 0.01) for the one whose par-date price matches the observed
// price after rounding to two decimals. The first exact match wins; with
// no exact match the candidate with the nearest price not below the target
// is taken instead. A price outside the grid's achievable range fails with
// ErrYieldOutOfRange.
func SolveYTM(in YTMInput) (YTMResult, error) {
	periods, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return YTMResult{}, err
	}

	grid := make([]float64, gridSize)
	for i := range grid {
		grid[i] = float64(i+1) * gridStep
	}

	// Grid points are independent; evaluate in chunks and write each
	// chunk's prices back in place so output order matches grid order.
	prices := make([]float64, gridSize)
	g := new(errgroup.Group)
	chunk := (gridSize + solverWorkers - 1) / solverWorkers
	for lo := 0; lo < gridSize; lo += chunk {
		hi := min(lo+chunk, gridSize)
		g.Go(func() error {
			priced, err := PriceAtParDate(ParPriceInput{
				Tenors:      []float64{in.Tenor},
				CouponRates: []float64{in.CouponRate},
				ParValues:   []float64{in.ParValue},
				Yields:      grid[lo:hi],
				CallValue:   in.CallValue,
				Frequency:   in.Frequency,
			})
			if err != nil {
				return err
			}
			copy(prices[lo:hi], priced.Total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return YTMResult{}, err
	}

	target := round2(in.ObservedPrice)

	match := -1
	for i, p := range prices {
		if p == target {
			match = i
			break
		}
	}

	if match < 0 {
		lowest, highest := prices[0], prices[0]
		for _, p := range prices[1:] {
			lowest = min(lowest, p)
			highest = max(highest, p)
		}
		if target < lowest || target > highest {
			return YTMResult{}, fmt.Errorf("%w: price %.2f not within [%.2f, %.2f]",
				ErrYieldOutOfRange, target, lowest, highest)
		}

		ordered := make([]float64, gridSize)
		copy(ordered, prices)
		sort.Float64s(ordered)
		nearest := ordered[sort.SearchFloat64s(ordered, target)]
		for i, p := range prices {
			if p == nearest {
				match = i
				break
			}
		}
	}

	res := YTMResult{
		Yield:     NormalizeRate(grid[match]/float64(periods)) * float64(periods),
		GridYield: grid[match],
		GridIndex: match,
	}

	if in.Reporter != nil {
		in.Reporter.Render([]Row{{Label: "Yield-to-Maturity (%)", Value: res.Yield * 100}})
	}

	return res, nil
}

// CurrentYieldInput describes a current-yield calculation: annualized
// coupon income over observed price, ignoring redemption.
type CurrentYieldInput struct {
	Tenors      []float64
	CouponRates []float64
	ParValues   []float64
	Prices      []float64

	Frequency Frequency
	Reporter  Reporter
}

// CurrentYield returns annual coupon income divided by observed price,
// element-wise. Prices broadcasts against the bond terms.
func CurrentYield(in CurrentYieldInput) ([]float64, error) {
	n := len(in.Tenors)
	if len(in.CouponRates) != n || len(in.ParValues) != n {
		return nil, fmt.Errorf("%w: %d tenors, %d coupon rates, %d par values",
			ErrDimensionMismatch, n, len(in.CouponRates), len(in.ParValues))
	}

	periods, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return nil, err
	}

	size, err := broadcastLen(n, len(in.Prices))
	if err != nil {
		return nil, err
	}

	out := make([]float64, size)
	for i := range size {
		bi, pi := idx(i, n), idx(i, len(in.Prices))
		annualRate := NormalizeRate(in.CouponRates[bi] * float64(periods))
		out[i] = in.ParValues[bi] * annualRate / in.Prices[pi]
	}

	if in.Reporter != nil {
		rows := make([]Row, len(out))
		for i, y := range out {
			rows[i] = Row{Label: "Current Yield (%)", Value: y * 100}
		}
		in.Reporter.Render(rows)
	}

	return out, nil
}
