package collect

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

var SourceMarketTable = "MarketTable"

const marketTableURL = "https://www.dividenddata.co.uk/uk-gilts-prices-yields.py"

// Table column order on the gilt prices page.
const (
	colTicker = iota
	colDesc
	colCoupon
	colMaturityDate
	colMaturityDuration
	colPrice
)

// MarketTableCollector scrapes an HTML table of gilt prices. The page is
// refreshed daily; a run for a date the page does not yet cover fails with
// ErrStaleSource.
type MarketTableCollector struct {
	// URL overrides the default source page, for tests.
	URL string
}

func NewMarketTableCollector() *MarketTableCollector {
	return &MarketTableCollector{URL: marketTableURL}
}

func (c *MarketTableCollector) Source() string {
	return SourceMarketTable
}

func (c *MarketTableCollector) Collect(ctx context.Context, date time.Time) (*Batch, error) {
	scraper := colly.NewCollector()

	const updatedPrefix = "Last updated: "
	var pageDate time.Time

	scraper.OnHTML("label", func(e *colly.HTMLElement) {
		if strings.HasPrefix(e.Text, updatedPrefix) {
			pageDate, _ = time.Parse("02 Jan 2006", strings.TrimPrefix(e.Text, updatedPrefix))
		}
	})

	batch := NewBatch(SourceMarketTable, date)

	scraper.OnHTML("#mainbody tr", func(e *colly.HTMLElement) {
		var cells []string
		e.ForEach("td", func(_ int, el *colly.HTMLElement) {
			cells = append(cells, strings.TrimSpace(el.Text))
		})
		if len(cells) <= colPrice {
			return
		}
		batch.Add(parseTableRow(cells))
	})

	if err := scraper.Visit(c.URL); err != nil {
		return nil, err
	}

	if pageDate.IsZero() {
		return nil, ErrDataUnavailable
	}
	if !pageDate.Equal(dateOnly(date)) {
		return nil, ErrStaleSource
	}

	return batch, nil
}

func parseTableRow(cells []string) (Quote, error) {
	q := Quote{
		Source: SourceMarketTable,
		Ticker: cells[colTicker],
		Desc:   cells[colDesc],
	}

	if q.Ticker == "" || q.Desc == "" {
		return q, ErrInvalidRow
	}

	coupon, err := strconv.ParseFloat(strings.TrimSuffix(cells[colCoupon], "%"), 64)
	if err != nil {
		return q, ErrInvalidCoupon
	}
	q.Coupon = coupon

	maturity, err := time.Parse("02-Jan-2006", cells[colMaturityDate])
	if err != nil {
		return q, ErrInvalidMaturity
	}
	q.MaturityDate = maturity

	price, err := strconv.ParseFloat(strings.TrimPrefix(cells[colPrice], "£"), 64)
	if err != nil {
		return q, ErrInvalidPrice
	}
	q.CleanPrice = price

	return q, nil
}
