package bond

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveYTM(t *testing.T) {
	t.Run("round trip through par-date pricing", func(t *testing.T) {
		price, err := PriceAtParDate(ParPriceInput{
			Tenors:      []float64{10},
			CouponRates: []float64{0.05},
			ParValues:   []float64{1000},
			Yields:      []float64{0.06},
			Frequency:   Annual,
		})
		require.NoError(t, err)

		res, err := SolveYTM(YTMInput{
			Tenor:         10,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: price.Total[0],
			Frequency:     Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.06, res.Yield, 0.0001)
	})

	t.Run("price at par recovers the coupon rate", func(t *testing.T) {
		res, err := SolveYTM(YTMInput{
			Tenor:         1,
			CouponRate:    5,
			ParValue:      1000,
			ObservedPrice: 1000,
			Frequency:     Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.05, res.Yield, 0.0001)
	})

	t.Run("nearest match when price is off grid", func(t *testing.T) {
		res, err := SolveYTM(YTMInput{
			Tenor:         10,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: 926.45,
			Frequency:     Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.06, res.Yield, 0.001)
	})

	t.Run("callable bond", func(t *testing.T) {
		price, err := PriceAtParDate(ParPriceInput{
			Tenors:      []float64{5},
			CouponRates: []float64{0.06},
			ParValues:   []float64{1000},
			Yields:      []float64{0.07},
			CallValue:   1050,
			Frequency:   Annual,
		})
		require.NoError(t, err)

		res, err := SolveYTM(YTMInput{
			Tenor:         5,
			CouponRate:    0.06,
			ParValue:      1000,
			ObservedPrice: price.Total[0],
			CallValue:     1050,
			Frequency:     Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.07, res.Yield, 0.0001)
	})

	t.Run("grid metadata points at the match", func(t *testing.T) {
		res, err := SolveYTM(YTMInput{
			Tenor:         10,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: 926.39,
			Frequency:     Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, res.GridYield, 0.01*float64(res.GridIndex+1), 1e-9)
	})

	t.Run("price above achievable range", func(t *testing.T) {
		_, err := SolveYTM(YTMInput{
			Tenor:         1,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: 2000,
			Frequency:     Annual,
		})
		require.ErrorIs(t, err, ErrYieldOutOfRange)
	})

	t.Run("price below achievable range", func(t *testing.T) {
		_, err := SolveYTM(YTMInput{
			Tenor:         1,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: 10,
			Frequency:     Annual,
		})
		require.ErrorIs(t, err, ErrYieldOutOfRange)
	})

	t.Run("invalid frequency", func(t *testing.T) {
		_, err := SolveYTM(YTMInput{
			Tenor:         1,
			CouponRate:    0.05,
			ParValue:      1000,
			ObservedPrice: 990,
			Frequency:     Frequency("quarterly"),
		})
		require.ErrorIs(t, err, ErrInvalidFrequency)
	})
}

func TestCurrentYield(t *testing.T) {
	t.Run("annual", func(t *testing.T) {
		yields, err := CurrentYield(CurrentYieldInput{
			Tenors:      []float64{10},
			CouponRates: []float64{5},
			ParValues:   []float64{1000},
			Prices:      []float64{900},
			Frequency:   Annual,
		})
		require.NoError(t, err)
		require.InDelta(t, 50.0/900.0, yields[0], 1e-12)
	})

	t.Run("semiannual annualizes the stated rate", func(t *testing.T) {
		yields, err := CurrentYield(CurrentYieldInput{
			Tenors:      []float64{10},
			CouponRates: []float64{0.025},
			ParValues:   []float64{1000},
			Prices:      []float64{1000},
			Frequency:   Semiannual,
		})
		require.NoError(t, err)
		require.InDelta(t, 0.05, yields[0], 1e-12)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CurrentYield(CurrentYieldInput{
			Tenors:      []float64{5, 10},
			CouponRates: []float64{5},
			ParValues:   []float64{1000, 1000},
			Prices:      []float64{900},
			Frequency:   Annual,
		})
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
