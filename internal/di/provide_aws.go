package di

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/egress"
	"github.com/savaki/replication-ops/internal/replication"
	"github.com/savaki/replication-ops/internal/services"
	"github.com/savaki/replication-ops/internal/settings"
)

// ProvideContext returns a background context carrying the container's logger
func ProvideContext(logger zerolog.Logger) context.Context {
	return logger.WithContext(context.Background())
}

func ProvideAWSConfig(ctx context.Context) (aws.Config, error) {
	return config.LoadDefaultConfig(ctx)
}

func ProvideS3ControlClient(config aws.Config) *s3control.Client {
	return s3control.NewFromConfig(config)
}

func ProvideS3Client(config aws.Config) *s3.Client {
	return s3.NewFromConfig(config)
}

func ProvideSTSClient(config aws.Config) *sts.Client {
	return sts.NewFromConfig(config)
}

// ProvideHTTPClient provides the client used for outbound egress checks
func ProvideHTTPClient(s settings.Settings) *http.Client {
	return &http.Client{Timeout: s.EgressTimeout}
}

// ProvideSubmitter wires the replication job submitter; bucket preflight
// checks are only attached when PREFLIGHT is enabled
func ProvideSubmitter(store services.ParameterStore, s3controlClient *s3control.Client, s3Client *s3.Client, s settings.Settings) *replication.Submitter {
	var preflight *replication.Preflight
	if s.Preflight {
		preflight = replication.NewPreflight(s3Client)
	}

	return replication.NewSubmitter(replication.SubmitterInput{
		Store:     store,
		Client:    s3controlClient,
		Preflight: preflight,
		Parameter: s.ParameterName,
	})
}

func ProvideChecker(client *http.Client, s settings.Settings) *egress.Checker {
	return egress.NewChecker(client, s.EgressURL)
}
