package bond

import "fmt"

// ScheduleInput describes the issue terms a cash-flow schedule is built
// from. Tenors, CouponRates and ParValues are parallel; all three must
// have the same length.
type ScheduleInput struct {
	// Tenors is the count of payment periods to maturity, stated per year.
	Tenors []float64
	// CouponRates is the annual coupon rate, fractional or percent form.
	CouponRates []float64
	// ParValues is the redemption amount at maturity.
	ParValues []float64

	Frequency Frequency
	Reporter  Reporter
}

// Schedule is the frequency-adjusted cash-flow profile of one or more
// bonds. Values are immutable once produced.
type Schedule struct {
	// Coupons is the payment amount per period.
	Coupons []float64
	// Redemptions is the amount returned with the final payment.
	Redemptions []float64
	// Periods is the payment count to maturity after frequency scaling.
	Periods []float64
}

// BuildSchedule derives per-period coupon amounts and the final redemption
// from issue terms. Semiannual frequency doubles the period count and
// halves the stated rate; rates greater than 1 are read as percentages.
func BuildSchedule(in ScheduleInput) (Schedule, error) {
	n := len(in.Tenors)
	if len(in.CouponRates) != n || len(in.ParValues) != n {
		return Schedule{}, fmt.Errorf("%w: %d tenors, %d coupon rates, %d par values",
			ErrDimensionMismatch, n, len(in.CouponRates), len(in.ParValues))
	}

	periods, err := in.Frequency.PeriodsPerYear()
	if err != nil {
		return Schedule{}, err
	}

	s := Schedule{
		Coupons:     make([]float64, n),
		Redemptions: make([]float64, n),
		Periods:     make([]float64, n),
	}

	for i := range n {
		rate := NormalizeRate(in.CouponRates[i] / float64(periods))
		s.Coupons[i] = in.ParValues[i] * rate
		s.Redemptions[i] = in.ParValues[i]
		s.Periods[i] = in.Tenors[i] * float64(periods)
	}

	if in.Reporter != nil {
		in.Reporter.Render(s.rows())
	}

	return s, nil
}

func (s Schedule) rows() []Row {
	rows := make([]Row, 0, 3*len(s.Coupons))
	for i := range s.Coupons {
		suffix := ""
		if len(s.Coupons) > 1 {
			suffix = fmt.Sprintf(" [%d]", i)
		}
		rows = append(rows,
			Row{Label: "Coupon Payment" + suffix, Value: s.Coupons[i]},
			Row{Label: "Maturity Value" + suffix, Value: s.Redemptions[i]},
			Row{Label: "Payment Periods" + suffix, Value: s.Periods[i]},
		)
	}
	return rows
}
