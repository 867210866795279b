package replication

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/s3control/types"
	"github.com/savaki/replication-ops/internal/constants"
)

// ReplicationStatuses selects the objects the generated manifest includes
var ReplicationStatuses = []types.ReplicationStatus{
	types.ReplicationStatusFailed,
	types.ReplicationStatusNone,
}

// NewCreateJobInput builds the CreateJob request for cfg. The shape is fixed:
// replicate every object eligible for replication whose status is FAILED or
// NONE, with a CSV completion report and an inventory CSV manifest written to
// the report bucket.
func NewCreateJobInput(cfg Config, env, token string) *s3control.CreateJobInput {
	reportBucket := BucketARN(cfg.ReportAndManifestsBucket)

	return &s3control.CreateJobInput{
		AccountId:            aws.String(cfg.AccountID),
		ClientRequestToken:   aws.String(token),
		ConfirmationRequired: aws.Bool(false),
		Description:          aws.String(fmt.Sprintf("s3 batch replication (%s)", env)),
		Priority:             aws.Int32(constants.JobPriority),
		RoleArn:              aws.String(cfg.RoleARN),
		Operation: &types.JobOperation{
			S3ReplicateObject: &types.S3ReplicateObjectOperation{},
		},
		Report: &types.JobReport{
			Enabled:     true,
			Bucket:      aws.String(reportBucket),
			Format:      types.JobReportFormatReportCsv20180820,
			Prefix:      aws.String(constants.ReportPrefix),
			ReportScope: types.JobReportScopeAllTasks,
		},
		ManifestGenerator: &types.JobManifestGeneratorMemberS3JobManifestGenerator{
			Value: types.S3JobManifestGenerator{
				SourceBucket:         aws.String(BucketARN(cfg.SourceBucket)),
				ExpectedBucketOwner:  aws.String(cfg.AccountID),
				EnableManifestOutput: true,
				ManifestOutputLocation: &types.S3ManifestOutputLocation{
					Bucket:                      aws.String(reportBucket),
					ExpectedManifestBucketOwner: aws.String(cfg.AccountID),
					ManifestFormat:              types.GeneratedManifestFormatS3InventoryReportCsv20211130,
					ManifestPrefix:              aws.String(constants.ManifestPrefix),
				},
				Filter: &types.JobManifestGeneratorFilter{
					EligibleForReplication:    aws.Bool(true),
					ObjectReplicationStatuses: append([]types.ReplicationStatus(nil), ReplicationStatuses...),
				},
			},
		},
	}
}
