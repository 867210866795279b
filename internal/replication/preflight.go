package replication

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// HeadBucketAPI is the subset of the S3 client used by Preflight
type HeadBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var _ HeadBucketAPI = (*s3.Client)(nil)

// Preflight confirms both buckets exist and are owned by the configured
// account before a job is submitted
type Preflight struct {
	client HeadBucketAPI
}

// NewPreflight creates a new Preflight
func NewPreflight(client HeadBucketAPI) *Preflight {
	return &Preflight{client: client}
}

// Check issues HeadBucket against the source and report buckets
func (p *Preflight) Check(ctx context.Context, cfg Config) error {
	logger := zerolog.Ctx(ctx)

	for _, bucket := range []string{cfg.SourceBucket, cfg.ReportAndManifestsBucket} {
		name := BucketName(bucket)
		_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket:              aws.String(name),
			ExpectedBucketOwner: aws.String(cfg.AccountID),
		})
		if err != nil {
			return fmt.Errorf("preflight failed for bucket %s: %w", name, err)
		}
		logger.Debug().Str("bucket", name).Msg("Bucket reachable")
	}

	return nil
}
