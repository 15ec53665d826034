package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/axhi246/fixedincome/internal/bond"
	"github.com/axhi246/fixedincome/internal/report"
)

func main() {
	tenor := flag.Float64("tenor", 0, "Payment periods to maturity, per year")
	coupon := flag.Float64("coupon", 0, "Coupon rate (fraction or percent)")
	par := flag.Float64("par", 1000, "Par value of the bond")
	yield := flag.Float64("yield", 0, "Required yield (fraction or percent)")
	call := flag.Float64("call", 0, "Call value (0 = not callable)")
	frequency := flag.String("frequency", "annual", "Payment frequency: annual or semiannual")
	verbose := flag.Bool("verbose", false, "Print valuation detail")

	flag.Parse()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["tenor"] || !flagsSet["coupon"] || !flagsSet["yield"] {
		fmt.Println("Error: -tenor, -coupon and -yield flags are required")
		os.Exit(1)
	}

	var reporter bond.Reporter
	if *verbose {
		reporter = report.New(os.Stdout, 2)
	}

	price, err := bond.PriceAtParDate(bond.ParPriceInput{
		Tenors:      []float64{*tenor},
		CouponRates: []float64{*coupon},
		ParValues:   []float64{*par},
		Yields:      []float64{*yield},
		CallValue:   *call,
		Frequency:   bond.Frequency(*frequency),
		Reporter:    reporter,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Present Value of Coupon Payments: %.2f\n", price.CouponPV[0])
	fmt.Printf("Present Value of Par/Maturity Value: %.2f\n", price.RedemptionPV[0])
	fmt.Printf("Present Value of Bond: %.2f\n", price.Total[0])
}
