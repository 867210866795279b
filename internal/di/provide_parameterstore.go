package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/services"
	"github.com/savaki/replication-ops/internal/settings"
)

// ProvideSSMClient provides an SSM client for Parameter Store access
// Returns nil if SSM is disabled (for local development)
func ProvideSSMClient(awsConfig aws.Config, s settings.Settings) *ssm.Client {
	if s.DisableSSM {
		return nil
	}

	return ssm.NewFromConfig(awsConfig)
}

// ProvideParameterStore provides a ParameterStore implementation
// Uses SSM Parameter Store in AWS, falls back to environment variables when disabled.
// Caching is off unless PARAMETER_CACHE_TTL is set, so a warm function picks up
// config changes on its next invocation.
func ProvideParameterStore(ctx context.Context, ssmClient *ssm.Client, s settings.Settings) services.ParameterStore {
	logger := zerolog.Ctx(ctx)

	if ssmClient == nil {
		logger.Info().Msg("Using environment variables for configuration (SSM disabled)")
		return services.NewEnvParameterStore()
	}

	logger.Info().Dur("cache_ttl", s.ParameterTTL).Msg("Using AWS Systems Manager Parameter Store for configuration")
	return services.NewSSMParameterStore(ssmClient, services.WithCacheTTL(s.ParameterTTL))
}
