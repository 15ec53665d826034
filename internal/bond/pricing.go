package bond

import (
	"fmt"
	"math"
	"time"
)

// ParPriceInput describes a par-date valuation: the bond is priced exactly
// on a coupon date, so no accrued interest is involved. Yields broadcasts
// against the bond terms; either side may be scalar.
type ParPriceInput struct {
	Tenors      []float64
	CouponRates []float64
	ParValues   []float64
	// Yields is the required yield, fractional or percent form.
	Yields []float64
	// CallValue replaces the par redemption when positive.
	CallValue float64

	Frequency Frequency
	Reporter  Reporter
}

// ParPrice carries the present-value components of a par-date valuation,
// each rounded to two decimal places.
type ParPrice struct {
	CouponPV     []float64
	RedemptionPV []float64
	Total        []float64
}

// PriceAtParDate discounts a bond's cash-flow schedule to present value on
// a coupon date. The coupon leg uses the annuity factor
// (1 - (1+y)^-n) / y, degenerating to coupon x n at zero yield.
func PriceAtParDate(in ParPriceInput) (ParPrice, error) {
	periods, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return ParPrice{}, err
	}

	sched, err := BuildSchedule(ScheduleInput{
		Tenors:      in.Tenors,
		CouponRates: in.CouponRates,
		ParValues:   in.ParValues,
		Frequency:   in.Frequency,
	})
	if err != nil {
		return ParPrice{}, err
	}

	n := len(sched.Coupons)
	m := len(in.Yields)
	size, err := broadcastLen(n, m)
	if err != nil {
		return ParPrice{}, err
	}

	out := ParPrice{
		CouponPV:     make([]float64, size),
		RedemptionPV: make([]float64, size),
		Total:        make([]float64, size),
	}

	for i := range size {
		bi, yi := idx(i, n), idx(i, m)

		coupon := sched.Coupons[bi]
		tenor := sched.Periods[bi]
		redemption := sched.Redemptions[bi]
		if in.CallValue > 0 {
			redemption = in.CallValue
		}

		y := NormalizeRate(in.Yields[yi] / float64(periods))

		var couponPV float64
		if y == 0 {
			couponPV = coupon * tenor
		} else {
			couponPV = coupon * (1 - math.Pow(1+y, -tenor)) / y
		}
		redemptionPV := redemption * math.Pow(1+y, -tenor)

		out.CouponPV[i] = round2(couponPV)
		out.RedemptionPV[i] = round2(redemptionPV)
		out.Total[i] = round2(out.CouponPV[i] + out.RedemptionPV[i])
	}

	if in.Reporter != nil {
		in.Reporter.Render(out.rows())
	}

	return out, nil
}

func (p ParPrice) rows() []Row {
	rows := make([]Row, 0, 3*len(p.Total))
	for i := range p.Total {
		suffix := ""
		if len(p.Total) > 1 {
			suffix = fmt.Sprintf(" [%d]", i)
		}
		rows = append(rows,
			Row{Label: "Present Value of Coupon Payments" + suffix, Value: p.CouponPV[i]},
			Row{Label: "Present Value of Par/Maturity Value" + suffix, Value: p.RedemptionPV[i]},
			Row{Label: "Present Value of Bond" + suffix, Value: p.Total[i]},
		)
	}
	return rows
}

// SettlementInput describes a valuation from an arbitrary settlement date
// between coupon dates.
type SettlementInput struct {
	Maturity   time.Time
	Settlement time.Time

	// CouponRate is the annual coupon, fractional or percent form.
	CouponRate float64
	ParValue   float64
	// Yield is the required yield, fractional or percent form.
	Yield float64

	Basis      PriceBasis
	Convention DayCount
	Frequency  Frequency
	Reporter   Reporter
}

// PriceAtSettlement discounts the remaining coupon schedule from a
// settlement date between coupon payments. Discount exponents start at the
// fractional period to the next coupon; a clean price has the accrued
// interest removed from the first discounted cash flow.
func PriceAtSettlement(in SettlementInput) (float64, error) {
	periods, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return 0, err
	}
	basis, err := in.Basis.normalize()
	if err != nil {
		return 0, err
	}
	if _, err := in.Convention.normalize(); err != nil {
		return 0, err
	}

	timeRatio, accruedRatio, err := TimeRatio(in.Maturity, in.Settlement, periods, in.Convention)
	if err != nil {
		return 0, err
	}

	monthsPerPeriod := 12 / periods
	periodCount := int(math.Ceil(float64(monthsBetween(in.Settlement, in.Maturity)) / float64(monthsPerPeriod)))

	// The per-period rate is resolved here; the schedule is built flat.
	sched, err := BuildSchedule(ScheduleInput{
		Tenors:      []float64{float64(periodCount)},
		CouponRates: []float64{in.CouponRate / float64(periods)},
		ParValues:   []float64{in.ParValue},
		Frequency:   Annual,
	})
	if err != nil {
		return 0, err
	}

	coupon := sched.Coupons[0]
	y := NormalizeRate(in.Yield / float64(periods))

	// A whole-period time ratio means settlement sits on a coupon
	// boundary; the stub payment extends the schedule by one entry.
	if timeRatio == math.Trunc(timeRatio) {
		periodCount++
	}
	if periodCount < 1 {
		return 0, ErrDegenerateTimeRatio
	}

	accrued := coupon * accruedRatio

	discounted := make([]float64, periodCount)
	total := 0.0
	for i := range periodCount {
		amount := coupon
		if i == periodCount-1 {
			amount += in.ParValue
		}
		discounted[i] = amount / math.Pow(1+y, timeRatio+float64(i))
		if i == 0 && basis == Clean {
			discounted[i] -= accrued
		}
		total += discounted[i]
	}

	if in.Reporter != nil {
		rows := make([]Row, 0, periodCount+2)
		rows = append(rows, Row{Label: "Accrued Interest", Value: accrued})
		for i, pv := range discounted {
			rows = append(rows, Row{Label: fmt.Sprintf("Period %.4f", timeRatio+float64(i)), Value: pv})
		}
		rows = append(rows, Row{Label: "Present Value of Bond", Value: total})
		in.Reporter.Render(rows)
	}

	return total, nil
}
