package bond

import (
	"fmt"
	"time"
)

// daysBetween returns the number of calendar days from start to end.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// monthsBetween returns the count of complete calendar months from start
// to end.
func monthsBetween(start, end time.Time) int {
	m := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		m--
	}
	return m
}

// NextCouponDate finds the coupon date nearest to, but not before,
// settlement on a periodic schedule anchored at maturity.
//
// daysRemaining is the count of days from settlement to the end of
// settlement's calendar month. periodOffset is the months-to-maturity
// remainder modulo monthsPerPeriod, incremented by one when settlement is
// not exactly on a month boundary. The returned date is the first day of
// the month periodOffset months after settlement's month.
func NextCouponDate(settlement, maturity time.Time, monthsPerPeriod int) (next time.Time, daysRemaining, periodOffset int) {
	monthStart := startOfMonth(settlement)
	endOfMonth := monthStart.AddDate(0, 1, -1)
	daysRemaining = daysBetween(settlement, endOfMonth)

	periodOffset = monthsBetween(settlement, maturity) % monthsPerPeriod
	if daysRemaining > 0 {
		periodOffset++
	}

	return monthStart.AddDate(0, periodOffset, 0), daysRemaining, periodOffset
}

// DayCount30360 computes the fractional period to the next coupon date
// treating every month as 30 days. It returns the time ratio and its
// complement, the accrued-interest ratio.
func DayCount30360(settlement time.Time, daysRemaining, periodOffset, monthsPerPeriod int) (timeRatio, accruedRatio float64) {
	daysPassed := settlement.Day()
	if daysRemaining+daysPassed > 30 {
		daysRemaining = 30 - daysPassed
	}

	numer := float64(30*(periodOffset-1) + daysRemaining + 1)
	denom := float64(30 * monthsPerPeriod)

	return numer / denom, 1 - numer/denom
}

// DayCountActual computes the fractional period to the next coupon date
// from real calendar days. The denominator is the day count of the
// one-period window ending at the next pay date.
func DayCountActual(nextPayDate, settlement time.Time, monthsPerPeriod int) (timeRatio, accruedRatio float64) {
	numer := float64(daysBetween(settlement, nextPayDate))

	windowStart := startOfMonth(nextPayDate).AddDate(0, -monthsPerPeriod, 0)
	denom := float64(daysBetween(windowStart, nextPayDate))

	return numer / denom, 1 - numer/denom
}

// TimeRatio resolves the fractional period between settlement and the next
// coupon date under the requested convention. The accrued ratio is the
// complementary fraction of the period already elapsed.
func TimeRatio(maturity, settlement time.Time, periodsPerYear int, convention DayCount) (timeRatio, accruedRatio float64, err error) {
	if !maturity.After(settlement) {
		return 0, 0, fmt.Errorf("%w: settlement %s, maturity %s",
			ErrInvalidDateOrder, settlement.Format("2006-01-02"), maturity.Format("2006-01-02"))
	}

	conv, err := convention.normalize()
	if err != nil {
		return 0, 0, err
	}

	monthsPerPeriod := 12 / periodsPerYear
	next, daysRemaining, periodOffset := NextCouponDate(settlement, maturity, monthsPerPeriod)

	switch conv {
	case Thirty360:
		timeRatio, accruedRatio = DayCount30360(settlement, daysRemaining, periodOffset, monthsPerPeriod)
	case Actual:
		timeRatio, accruedRatio = DayCountActual(next, settlement, monthsPerPeriod)
	}

	if timeRatio == 0 {
		return 0, 0, ErrDegenerateTimeRatio
	}

	return timeRatio, accruedRatio, nil
}
