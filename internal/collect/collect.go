// Package collect pulls bond quotes from public market sources, values
// them with the pricing core, and stores the results as parquet batches.
package collect

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/axhi246/fixedincome/internal/bond"
)

var (
	ErrInvalidRow      = errors.New("invalid row")
	ErrDataUnavailable = errors.New("data unavailable")
	ErrStaleSource     = errors.New("source not updated for requested date")
	ErrInvalidCoupon   = errors.New("invalid coupon")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidMaturity = errors.New("invalid maturity date")
	ErrUnsupportedBond = errors.New("unsupported bond")
)

// Quote is one observed market quote for a fixed-coupon bond.
type Quote struct {
	Source string
	Ticker string
	Desc   string
	// Coupon is the annual coupon rate in percent.
	Coupon       float64
	MaturityDate time.Time
	// CleanPrice is the observed price per 100 face, excluding accrued
	// interest.
	CleanPrice float64
}

// FailedQuote pairs a quote with the reason it could not be used.
type FailedQuote struct {
	Quote Quote
	Err   error
}

// Batch is the outcome of one collection run.
type Batch struct {
	Source         string
	SettlementDate time.Time
	Quotes         []Quote
	Failures       []FailedQuote
}

func NewBatch(source string, date time.Time) *Batch {
	return &Batch{
		Source:         source,
		SettlementDate: date,
		Quotes:         []Quote{},
		Failures:       []FailedQuote{},
	}
}

// Add files the quote under Quotes or Failures depending on err.
func (b *Batch) Add(q Quote, err error) {
	if err != nil {
		b.Failures = append(b.Failures, FailedQuote{Quote: q, Err: err})
		return
	}
	b.Quotes = append(b.Quotes, q)
}

// Collector fetches quotes for a settlement date from one market source.
type Collector interface {
	Collect(ctx context.Context, date time.Time) (*Batch, error)
	Source() string
}

// Valuation is one fully valued quote, ready for storage.
type Valuation struct {
	Source         string    `parquet:"source"`
	Ticker         string    `parquet:"ticker"`
	Desc           string    `parquet:"desc"`
	Coupon         float64   `parquet:"coupon"`
	MaturityDate   time.Time `parquet:"maturity_date"`
	SettlementDate time.Time `parquet:"settlement_date"`
	CleanPrice     float64   `parquet:"clean_price"`
	DirtyPrice     float64   `parquet:"dirty_price"`
	// AccruedInterest is per 100 face at the settlement date.
	AccruedInterest float64 `parquet:"accrued_interest"`
	// YieldToMaturity is in percent.
	YieldToMaturity float64 `parquet:"yield_to_maturity"`
	// CurrentYield is in percent.
	CurrentYield float64 `parquet:"current_yield"`
}

const facePrice = 100.0

// Value runs the pricing core over every quote in the batch: yield to
// maturity from the observed clean price, model clean/dirty prices from
// the settlement date, and current yield. Quotes the core rejects are
// returned as failures alongside the valuations.
func Value(b *Batch) ([]Valuation, []FailedQuote) {
	settlement := dateOnly(b.SettlementDate)

	valuations := make([]Valuation, 0, len(b.Quotes))
	var failures []FailedQuote

	for _, q := range b.Quotes {
		v, err := valueQuote(q, settlement)
		if err != nil {
			failures = append(failures, FailedQuote{Quote: q, Err: err})
			continue
		}
		valuations = append(valuations, v)
	}

	return valuations, failures
}

func valueQuote(q Quote, settlement time.Time) (Valuation, error) {
	maturity := dateOnly(q.MaturityDate)
	tenorYears := math.Ceil(float64(wholeMonths(settlement, maturity)) / 12.0)

	ytm, err := bond.SolveYTM(bond.YTMInput{
		Tenor:         tenorYears,
		CouponRate:    q.Coupon,
		ParValue:      facePrice,
		ObservedPrice: q.CleanPrice,
		Frequency:     bond.Semiannual,
	})
	if err != nil {
		return Valuation{}, err
	}

	dirty, err := bond.PriceAtSettlement(bond.SettlementInput{
		Maturity:   maturity,
		Settlement: settlement,
		CouponRate: q.Coupon,
		ParValue:   facePrice,
		Yield:      ytm.Yield,
		Basis:      bond.Dirty,
		Convention: bond.Actual,
		Frequency:  bond.Semiannual,
	})
	if err != nil {
		return Valuation{}, err
	}

	clean, err := bond.PriceAtSettlement(bond.SettlementInput{
		Maturity:   maturity,
		Settlement: settlement,
		CouponRate: q.Coupon,
		ParValue:   facePrice,
		Yield:      ytm.Yield,
		Basis:      bond.Clean,
		Convention: bond.Actual,
		Frequency:  bond.Semiannual,
	})
	if err != nil {
		return Valuation{}, err
	}

	current, err := bond.CurrentYield(bond.CurrentYieldInput{
		Tenors:      []float64{tenorYears},
		CouponRates: []float64{q.Coupon / 2}, // stated per period
		ParValues:   []float64{facePrice},
		Prices:      []float64{q.CleanPrice},
		Frequency:   bond.Semiannual,
	})
	if err != nil {
		return Valuation{}, err
	}

	return Valuation{
		Source:          q.Source,
		Ticker:          q.Ticker,
		Desc:            q.Desc,
		Coupon:          q.Coupon,
		MaturityDate:    maturity,
		SettlementDate:  settlement,
		CleanPrice:      clean,
		DirtyPrice:      dirty,
		AccruedInterest: dirty - clean,
		YieldToMaturity: ytm.Yield * 100,
		CurrentYield:    current[0] * 100,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wholeMonths counts complete calendar months from start to end.
func wholeMonths(start, end time.Time) int {
	m := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		m--
	}
	return m
}
