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
	price := flag.Float64("price", 0, "Observed market price")
	call := flag.Float64("call", 0, "Call value (0 = not callable)")
	frequency := flag.String("frequency", "annual", "Payment frequency: annual or semiannual")
	current := flag.Bool("current", false, "Report current yield instead of yield to maturity")
	verbose := flag.Bool("verbose", false, "Print valuation detail")

	flag.Parse()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["tenor"] || !flagsSet["coupon"] || !flagsSet["price"] {
		fmt.Println("Error: -tenor, -coupon and -price flags are required")
		os.Exit(1)
	}

	var reporter bond.Reporter
	if *verbose {
		reporter = report.New(os.Stdout, 4)
	}

	if *current {
		yields, err := bond.CurrentYield(bond.CurrentYieldInput{
			Tenors:      []float64{*tenor},
			CouponRates: []float64{*coupon},
			ParValues:   []float64{*par},
			Prices:      []float64{*price},
			Frequency:   bond.Frequency(*frequency),
			Reporter:    reporter,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Current Yield: %.4f%%\n", yields[0]*100)
		return
	}

	res, err := bond.SolveYTM(bond.YTMInput{
		Tenor:         *tenor,
		CouponRate:    *coupon,
		ParValue:      *par,
		ObservedPrice: *price,
		CallValue:     *call,
		Frequency:     bond.Frequency(*frequency),
		Reporter:      reporter,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Yield-to-Maturity: %.4f%%\n", res.Yield*100)
}
