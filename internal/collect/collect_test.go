package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseCouponPercent(t *testing.T) {
	tests := []struct {
		desc string
		want float64
	}{
		{"2% Treasury Gilt 2025", 2},
		{"3 1/2% Treasury Gilt 2025", 3.5},
		{"0 5/8% Treasury Gilt 2031", 0.625},
		{"3½% Treasury Gilt 2025", 3.5},
		{"4¼% Treasury Stock 2032", 4.25},
		{"1¾% Treasury Gilt 2037", 1.75},
		{"5/8% Treasury Gilt 2031", 0.625},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := parseCouponPercent(tc.desc)
			require.NoError(t, err)
			require.InDelta(t, tc.want, got, 1e-12)
		})
	}

	t.Run("no coupon in description", func(t *testing.T) {
		_, err := parseCouponPercent("Treasury Gilt 2025")
		require.ErrorIs(t, err, ErrInvalidCoupon)
	})
}

func TestParseTableRow(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		q, err := parseTableRow([]string{"TR25", "2% Treasury Gilt 2025", "2.00%", "07-Sep-2025", "0.5", "£99.60"})
		require.NoError(t, err)
		require.Equal(t, "TR25", q.Ticker)
		require.InDelta(t, 2.0, q.Coupon, 1e-12)
		require.Equal(t, date(2025, time.September, 7), q.MaturityDate)
		require.InDelta(t, 99.60, q.CleanPrice, 1e-12)
	})

	t.Run("bad price", func(t *testing.T) {
		_, err := parseTableRow([]string{"TR25", "2% Treasury Gilt 2025", "2.00%", "07-Sep-2025", "0.5", "n/a"})
		require.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("empty ticker", func(t *testing.T) {
		_, err := parseTableRow([]string{"", "2% Treasury Gilt 2025", "2.00%", "07-Sep-2025", "0.5", "£99.60"})
		require.ErrorIs(t, err, ErrInvalidRow)
	})
}

func TestParseReportRow(t *testing.T) {
	row := []string{"GB00B16NNR78", "4¼% Treasury Gilt 2032", "104.13", "105.01", "", "", "", "07-Jun-2032"}

	t.Run("valid row", func(t *testing.T) {
		q, err := parseReportRow(row)
		require.NoError(t, err)
		require.Equal(t, "GB00B16NNR78", q.Ticker)
		require.InDelta(t, 4.25, q.Coupon, 1e-12)
		require.InDelta(t, 104.13, q.CleanPrice, 1e-12)
		require.Equal(t, date(2032, time.June, 7), q.MaturityDate)
	})

	t.Run("non-gilt ISIN skipped", func(t *testing.T) {
		bad := append([]string{}, row...)
		bad[repColISIN] = "US912828U816"
		_, err := parseReportRow(bad)
		require.ErrorIs(t, err, ErrInvalidRow)
	})

	t.Run("index-linked unsupported", func(t *testing.T) {
		bad := append([]string{}, row...)
		bad[repColDesc] = "0 1/8% Index-linked Treasury Gilt 2031"
		_, err := parseReportRow(bad)
		require.ErrorIs(t, err, ErrUnsupportedBond)
	})
}

func TestValue(t *testing.T) {
	settlement := date(2025, time.March, 10)

	t.Run("bond at par yields its coupon", func(t *testing.T) {
		batch := NewBatch("test", settlement)
		batch.Add(Quote{
			Source:       "test",
			Ticker:       "TST1",
			Desc:         "5% Test Gilt 2030",
			Coupon:       5,
			MaturityDate: date(2030, time.March, 10),
			CleanPrice:   100,
		}, nil)

		valuations, failures := Value(batch)
		require.Empty(t, failures)
		require.Len(t, valuations, 1)

		v := valuations[0]
		require.InDelta(t, 5.0, v.YieldToMaturity, 0.02)
		require.InDelta(t, 5.0, v.CurrentYield, 1e-9)
		require.InDelta(t, v.DirtyPrice-v.CleanPrice, v.AccruedInterest, 1e-9)
		require.Equal(t, settlement, v.SettlementDate)
	})

	t.Run("unpriceable quote ends up in failures", func(t *testing.T) {
		batch := NewBatch("test", settlement)
		batch.Add(Quote{
			Ticker:       "TST2",
			Coupon:       5,
			MaturityDate: date(2030, time.March, 10),
			CleanPrice:   100000,
		}, nil)

		valuations, failures := Value(batch)
		require.Empty(t, valuations)
		require.Len(t, failures, 1)
	})
}

func TestBatchAdd(t *testing.T) {
	b := NewBatch("test", date(2025, time.March, 10))

	b.Add(Quote{Ticker: "OK"}, nil)
	b.Add(Quote{Ticker: "BAD"}, ErrInvalidCoupon)

	require.Len(t, b.Quotes, 1)
	require.Len(t, b.Failures, 1)
	require.ErrorIs(t, b.Failures[0].Err, ErrInvalidCoupon)
}
