package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/axhi246/fixedincome/internal/bond"
	"github.com/axhi246/fixedincome/internal/report"
)

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

func main() {
	maturityStr := flag.String("maturity", "", "Maturity date (YYYY-MM-DD)")
	settlementStr := flag.String("settlement", "", "Settlement date (YYYY-MM-DD, default today)")
	coupon := flag.Float64("coupon", 0, "Coupon rate (fraction or percent)")
	par := flag.Float64("par", 1000, "Par value of the bond")
	yield := flag.Float64("yield", 0, "Required yield (fraction or percent)")
	basis := flag.String("basis", "clean", "Price basis: clean or dirty")
	convention := flag.String("daycount", "30/360", "Day-count convention: 30/360 or actual")
	frequency := flag.String("frequency", "semiannual", "Payment frequency: annual or semiannual")
	verbose := flag.Bool("verbose", false, "Print valuation detail")

	flag.Parse()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["maturity"] || !flagsSet["coupon"] || !flagsSet["yield"] {
		fmt.Println("Error: -maturity, -coupon and -yield flags are required")
		os.Exit(1)
	}

	maturity, err := parseDate(*maturityStr)
	if err != nil {
		fmt.Printf("Error: invalid maturity date: %v\n", err)
		os.Exit(1)
	}

	settlement, err := parseDate(*settlementStr)
	if err != nil {
		fmt.Printf("Error: invalid settlement date: %v\n", err)
		os.Exit(1)
	}

	var reporter bond.Reporter
	if *verbose {
		reporter = report.New(os.Stdout, 2)
	}

	price, err := bond.PriceAtSettlement(bond.SettlementInput{
		Maturity:   maturity,
		Settlement: settlement,
		CouponRate: *coupon,
		ParValue:   *par,
		Yield:      *yield,
		Basis:      bond.PriceBasis(*basis),
		Convention: bond.DayCount(*convention),
		Frequency:  bond.Frequency(*frequency),
		Reporter:   reporter,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Present %s Value of Bond: %.2f\n", *basis, price)
}
