package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/pbnjay/grate/xls"

	"github.com/axhi246/fixedincome/internal/collect"
)

var (
	envBucketName   = "VALUATIONS_BUCKET_NAME"
	envBucketPrefix = "VALUATIONS_BUCKET_PREFIX"
)

func collectQuotes(ctx context.Context) error {
	bucketName := os.Getenv(envBucketName)
	if bucketName == "" {
		return fmt.Errorf("%s is not set", envBucketName)
	}

	dst := &collect.S3Path{
		Bucket: bucketName,
		Prefix: os.Getenv(envBucketPrefix),
	}

	collector := collect.NewIssuerReportCollector()

	batch, err := collector.Collect(ctx, time.Now())
	if err != nil {
		return err
	}

	valuations, failures := collect.Value(batch)
	for _, f := range failures {
		fmt.Printf("Skipped %s: %v\n", f.Quote.Ticker, f.Err)
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	outPath, err := collect.StoreToS3(ctx, batch.Source, batch.SettlementDate, valuations, s3.NewFromConfig(cfg), dst)
	if err != nil {
		return err
	}

	fmt.Printf("Stored %d valuations to %s\n", len(valuations), outPath)

	return nil
}

func responseWithFailure(rec events.SQSMessage) events.SQSEventResponse {
	return events.SQSEventResponse{
		BatchItemFailures: []events.SQSBatchItemFailure{
			{
				ItemIdentifier: rec.MessageId,
			},
		},
	}
}

func handler(ctx context.Context, request events.SQSEvent) (events.SQSEventResponse, error) {
	err := collectQuotes(ctx)

	if err != nil && len(request.Records) > 0 {
		// should just have a single record, ignore the rest
		rec := request.Records[0]
		return responseWithFailure(rec), fmt.Errorf("failed to collect quotes: %w", err)
	}

	return events.SQSEventResponse{}, nil
}

func main() {
	lambda.Start(handler)
}
