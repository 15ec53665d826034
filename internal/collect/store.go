package collect

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
)

func writeValuations(vals []Valuation, out io.Writer) error {
	w := parquet.NewGenericWriter[Valuation](out)
	defer w.Close()

	if _, err := w.Write(vals); err != nil {
		return fmt.Errorf("write valuations: %w", err)
	}

	return nil
}

// partitionKey is the date-partitioned relative location of one stored
// batch, e.g. 2026/08/30/MarketTable.parquet.
func partitionKey(source string, date time.Time) string {
	d := date.UTC()
	return fmt.Sprintf("%04d/%02d/%02d/%s.parquet", d.Year(), d.Month(), d.Day(), source)
}

// StoreToPath writes a valuation batch under basepath, partitioned by
// settlement date, and returns the written file's path.
func StoreToPath(source string, date time.Time, vals []Valuation, basepath string) (string, error) {
	outPath := filepath.Join(basepath, filepath.FromSlash(partitionKey(source, date)))

	if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
		return "", err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := writeValuations(vals, file); err != nil {
		return "", err
	}

	return outPath, nil
}

// S3Path is a bucket and optional key prefix parsed from an s3:// URL.
type S3Path struct {
	Bucket string
	Prefix string
}

func ParseS3(path string) (*S3Path, error) {
	rest, ok := strings.CutPrefix(path, "s3://")
	if !ok {
		return nil, fmt.Errorf("path must start with s3://")
	}

	bucket, prefix, _ := strings.Cut(rest, "/")

	return &S3Path{
		Bucket: bucket,
		Prefix: strings.TrimSuffix(prefix, "/"),
	}, nil
}

// StoreToS3 uploads a valuation batch to the bucket and prefix in dst,
// partitioned by settlement date, and returns the object's s3:// URL.
func StoreToS3(ctx context.Context, source string, date time.Time, vals []Valuation, s3Client *s3.Client, dst *S3Path) (string, error) {
	tmp, err := os.CreateTemp("", "valuations-*.parquet")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()
	defer os.Remove(tmp.Name())

	if err := writeValuations(vals, tmp); err != nil {
		return "", err
	}

	if _, err := tmp.Seek(0, 0); err != nil {
		return "", fmt.Errorf("rewind temp file: %w", err)
	}

	key := partitionKey(source, date)
	if dst.Prefix != "" {
		key = dst.Prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload to s3://%s/%s: %w", dst.Bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", dst.Bucket, key), nil
}
