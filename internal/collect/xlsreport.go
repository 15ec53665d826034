package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/grate"
)

var SourceIssuerReport = "IssuerReport"

const issuerReportURL = "https://www.dmo.gov.uk/umbraco/surface/DataExport/GetDataExport?reportCode=D10B&exportFormatValue=xls&parameters="

// Report column order in the close-of-business prices export.
const (
	repColISIN = iota
	repColDesc
	repColCleanPrice
	repColDirtyPrice

	repColMaturityDate = 7
)

// IssuerReportCollector downloads the issuer's close-of-business price
// report as an XLS export and parses conventional (fixed coupon) rows out
// of it. Index-linked rows are skipped.
type IssuerReportCollector struct {
	// URL overrides the default export endpoint, for tests.
	URL string
}

func NewIssuerReportCollector() *IssuerReportCollector {
	return &IssuerReportCollector{URL: issuerReportURL}
}

func (c *IssuerReportCollector) Source() string {
	return SourceIssuerReport
}

func (c *IssuerReportCollector) Collect(ctx context.Context, date time.Time) (*Batch, error) {
	params := fmt.Sprintf("&Trade Date=%02d-%02d-%04d", date.Day(), date.Month(), date.Year())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+url.QueryEscape(params), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch report: http %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "quotes-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	wb, err := grate.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	batch := NewBatch(SourceIssuerReport, date)
	parsed := 0

	sheets, err := wb.List()
	if err != nil {
		return nil, err
	}
	for _, name := range sheets {
		sheet, err := wb.Get(name)
		if err != nil {
			return nil, err
		}
		for sheet.Next() {
			q, err := parseReportRow(sheet.Strings())
			if err == ErrInvalidRow || err == ErrUnsupportedBond {
				continue
			}
			batch.Add(q, err)
			parsed++
		}
	}

	if parsed == 0 {
		return nil, ErrDataUnavailable
	}

	return batch, nil
}

func parseReportRow(row []string) (Quote, error) {
	if len(row) <= repColMaturityDate {
		return Quote{}, ErrInvalidRow
	}

	isin := strings.TrimSpace(row[repColISIN])
	if !strings.HasPrefix(isin, "GB") {
		return Quote{}, ErrInvalidRow
	}

	q := Quote{
		Source: SourceIssuerReport,
		Ticker: isin,
		Desc:   strings.TrimSpace(row[repColDesc]),
	}

	if strings.Contains(strings.ToLower(q.Desc), "index-linked") {
		return q, ErrUnsupportedBond
	}

	coupon, err := parseCouponPercent(q.Desc)
	if err != nil {
		return q, err
	}
	q.Coupon = coupon

	price, err := strconv.ParseFloat(strings.TrimSpace(row[repColCleanPrice]), 64)
	if err != nil {
		return q, ErrInvalidPrice
	}
	q.CleanPrice = price

	maturity, err := time.Parse("02-Jan-2006", strings.TrimSpace(row[repColMaturityDate]))
	if err != nil {
		return q, ErrInvalidMaturity
	}
	q.MaturityDate = maturity

	return q, nil
}

var (
	vulgarFractions = strings.NewReplacer("¼", " 1/4", "½", " 1/2", "¾", " 3/4")
	couponPattern   = regexp.MustCompile(`^(\d+(?:\s+\d+/\d+)?|\d+/\d+)%`)
)

// parseCouponPercent extracts the coupon rate from a bond description such
// as "3 1/2% Treasury Gilt 2025" or "0 5/8% Treasury Gilt 2031". Vulgar
// fraction characters are accepted.
func parseCouponPercent(desc string) (float64, error) {
	m := couponPattern.FindStringSubmatch(strings.TrimSpace(vulgarFractions.Replace(desc)))
	if m == nil {
		return 0, ErrInvalidCoupon
	}

	whole := m[1]
	frac := ""
	if before, after, found := strings.Cut(m[1], " "); found {
		whole, frac = before, after
	} else if strings.Contains(m[1], "/") {
		whole, frac = "", m[1]
	}

	var value float64
	if whole != "" {
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return 0, ErrInvalidCoupon
		}
		value = w
	}

	if frac != "" {
		num, den, _ := strings.Cut(frac, "/")
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, ErrInvalidCoupon
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, ErrInvalidCoupon
		}
		value += n / d
	}

	return value, nil
}
