package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/pbnjay/grate/xls"

	"github.com/axhi246/fixedincome/internal/collect"
)

func getAwsConfig(ctx context.Context, profile string) (aws.Config, error) {
	if profile == "default" {
		return config.LoadDefaultConfig(ctx)
	}
	return config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
}

func newCollector(source string) (collect.Collector, error) {
	switch source {
	case "table":
		return collect.NewMarketTableCollector(), nil
	case "report":
		return collect.NewIssuerReportCollector(), nil
	}
	return nil, fmt.Errorf("unknown source %q (use table or report)", source)
}

func main() {
	ctx := context.Background()

	profile := flag.String("profile", "default", "the AWS profile to use")
	source := flag.String("source", "report", "quote source: table or report")
	helpFlag := flag.Bool("help", false, "print this help message")
	flag.Parse()
	args := flag.Args()

	if len(args) != 1 || *helpFlag {
		fmt.Printf("Usage: %s <flags> <destination>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	dst := args[0]

	collector, err := newCollector(*source)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	batch, err := collector.Collect(ctx, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, collect.ErrDataUnavailable):
			fmt.Println("Data unavailable")
		case errors.Is(err, collect.ErrStaleSource):
			fmt.Println("Source not updated yet")
		default:
			fmt.Printf("Failed to collect quotes: %v\n", err)
		}
		os.Exit(1)
	}

	valuations, failures := collect.Value(batch)

	for _, f := range failures {
		fmt.Printf("Skipped %s: %v\n", f.Quote.Ticker, f.Err)
	}

	var outPath string
	if s3Path, _ := collect.ParseS3(dst); s3Path != nil {
		cfg, err := getAwsConfig(ctx, *profile)
		if err != nil {
			fmt.Printf("Failed to load AWS config: %v\n", err)
			os.Exit(1)
		}
		outPath, err = collect.StoreToS3(ctx, batch.Source, batch.SettlementDate, valuations, s3.NewFromConfig(cfg), s3Path)
		if err != nil {
			fmt.Printf("Failed to store valuations: %v\n", err)
			os.Exit(1)
		}
	} else {
		outPath, err = collect.StoreToPath(batch.Source, batch.SettlementDate, valuations, dst)
		if err != nil {
			fmt.Printf("Failed to store valuations: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Stored %d valuations to %s\n", len(valuations), outPath)
}
