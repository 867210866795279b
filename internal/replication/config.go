// Package replication builds and submits S3 Batch Operations jobs that
// re-replicate objects whose replication previously failed or never ran.
package replication

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/savaki/replication-ops/internal/constants"
	apperrors "github.com/savaki/replication-ops/internal/errors"
)

// Config is the JSON document stored in Parameter Store for each environment
type Config struct {
	AccountID                string `json:"aws_account_id"              yaml:"aws_account_id"`
	ReportAndManifestsBucket string `json:"report_and_manifests_bucket" yaml:"report_and_manifests_bucket"`
	SourceBucket             string `json:"source_bucket"               yaml:"source_bucket"`
	RoleARN                  string `json:"role_arn"                    yaml:"role_arn"`
}

// ParseConfig decodes the parameter value; unknown fields are ignored
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate reports all missing fields at once
func (c Config) Validate() error {
	var missing []string
	if c.AccountID == "" {
		missing = append(missing, "aws_account_id")
	}
	if c.ReportAndManifestsBucket == "" {
		missing = append(missing, "report_and_manifests_bucket")
	}
	if c.SourceBucket == "" {
		missing = append(missing, "source_bucket")
	}
	if c.RoleARN == "" {
		missing = append(missing, "role_arn")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// ParameterName returns the Parameter Store key holding the config for env
func ParameterName(env string) string {
	return fmt.Sprintf(constants.ParameterPathFormat, env)
}

// BucketARN accepts either a bucket name or a bucket ARN and returns the ARN
func BucketARN(bucket string) string {
	if strings.HasPrefix(bucket, "arn:") {
		return bucket
	}
	return "arn:aws:s3:::" + bucket
}

// BucketName is the inverse of BucketARN
func BucketName(bucket string) string {
	if !strings.HasPrefix(bucket, "arn:") {
		return bucket
	}
	if i := strings.LastIndex(bucket, ":"); i >= 0 {
		return bucket[i+1:]
	}
	return bucket
}
