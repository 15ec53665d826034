package bond

import "errors"

var (
	// ErrDimensionMismatch is returned when batched arguments have
	// differing lengths.
	ErrDimensionMismatch = errors.New("argument dimensions do not match")

	// ErrInvalidFrequency is returned for a payment frequency other than
	// annual or semiannual.
	ErrInvalidFrequency = errors.New("unrecognized payment frequency")

	// ErrInvalidConvention is returned for a day-count convention other
	// than 30/360 or actual.
	ErrInvalidConvention = errors.New("unrecognized day-count convention")

	// ErrInvalidPriceBasis is returned for a price basis other than
	// clean or dirty.
	ErrInvalidPriceBasis = errors.New("unrecognized price basis")

	// ErrInvalidDateOrder is returned when the settlement date is not
	// strictly before the maturity date.
	ErrInvalidDateOrder = errors.New("settlement date must be before maturity date")

	// ErrDegenerateTimeRatio is returned when the fractional period to the
	// next coupon date evaluates to exactly zero.
	ErrDegenerateTimeRatio = errors.New("time ratio is zero")

	// ErrYieldOutOfRange is returned when an observed price cannot be
	// reproduced by any yield on the solver's grid.
	ErrYieldOutOfRange = errors.New("observed price outside solvable yield range")
)
