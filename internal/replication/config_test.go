package replication

import (
	"testing"

	apperrors "github.com/savaki/replication-ops/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	raw := `{
		"aws_account_id": "123456789012",
		"report_and_manifests_bucket": "reports",
		"source_bucket": "source",
		"role_arn": "arn:aws:iam::123456789012:role/batch-replication",
		"unused": true
	}`

	cfg, err := ParseConfig([]byte(raw))
	assert.NoError(t, err)
	assert.Equal(t, Config{
		AccountID:                "123456789012",
		ReportAndManifestsBucket: "reports",
		SourceBucket:             "source",
		RoleARN:                  "arn:aws:iam::123456789012:role/batch-replication",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte(`{"aws_account_id":`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		missing []string
	}{
		{
			name:    "empty",
			cfg:     Config{},
			missing: []string{"aws_account_id", "report_and_manifests_bucket", "source_bucket", "role_arn"},
		},
		{
			name:    "missing role",
			cfg:     Config{AccountID: "1", ReportAndManifestsBucket: "r", SourceBucket: "s"},
			missing: []string{"role_arn"},
		},
		{
			name:    "missing buckets",
			cfg:     Config{AccountID: "1", RoleARN: "arn"},
			missing: []string{"report_and_manifests_bucket", "source_bucket"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
			for _, field := range tt.missing {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

func TestBucketARN(t *testing.T) {
	assert.Equal(t, "arn:aws:s3:::reports", BucketARN("reports"))
	assert.Equal(t, "arn:aws:s3:::reports", BucketARN("arn:aws:s3:::reports"))
	assert.Equal(t, "arn:aws-us-gov:s3:::reports", BucketARN("arn:aws-us-gov:s3:::reports"))
}

func TestBucketName(t *testing.T) {
	assert.Equal(t, "reports", BucketName("reports"))
	assert.Equal(t, "reports", BucketName("arn:aws:s3:::reports"))
}

func TestParameterName(t *testing.T) {
	assert.Equal(t, "/dev/s3-batch-replication/config", ParameterName("dev"))
	assert.Equal(t, "/prod/s3-batch-replication/config", ParameterName("prod"))
}
