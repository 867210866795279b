package constants

// Parameter Store layout
const (
	// ParameterPathFormat is formatted with the environment name to produce the
	// SSM parameter holding the replication job configuration
	ParameterPathFormat = "/%s/s3-batch-replication/config"
)

// S3 Batch Operations job layout
const (
	// ReportPrefix is the key prefix for completion reports in the report bucket
	ReportPrefix = "batch-replication-report"

	// ManifestPrefix is the key prefix for generated manifests in the report bucket
	ManifestPrefix = "batch-replication-manifests"

	// JobPriority is the priority assigned to every submitted job
	JobPriority = 1
)

// Egress checks
const (
	// DefaultEgressURL is the well-known external endpoint probed by the egress checker
	DefaultEgressURL = "https://www.google.com"
)
