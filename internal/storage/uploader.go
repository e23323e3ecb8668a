package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const keyTimestampLayout = "2006-01-02_15-04-05"

// BuildKey returns the object key for one observation:
// <prefix><city>/weather_<UTC timestamp>.json, with the city lowercased and
// spaces replaced by underscores. Resolution is one second, so writes for
// the same city within a second land on the same key and the last one wins.
func BuildKey(prefix, city string, ts time.Time) string {
	safeCity := strings.ToLower(strings.ReplaceAll(city, " ", "_"))
	return fmt.Sprintf("%s%s/weather_%s.json", prefix, safeCity, ts.UTC().Format(keyTimestampLayout))
}

type Uploader interface {
	Upload(ctx context.Context, bucket, key string, body []byte) error
}

// PutObjectAPI is the slice of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client PutObjectAPI
}

func NewS3Uploader(client PutObjectAPI) *S3Uploader {
	return &S3Uploader{client: client}
}

// Upload writes the full body in a single put. Existing objects are
// overwritten; there is no storage-side retry.
func (u *S3Uploader) Upload(ctx context.Context, bucket, key string, body []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object s3://%s/%s: %w", bucket, key, err)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("Uploaded to S3")
	return nil
}
