package replication

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/services"
	"github.com/segmentio/ksuid"
)

// CreateJobAPI is the subset of the S3 Control client used by Submitter
type CreateJobAPI interface {
	CreateJob(ctx context.Context, params *s3control.CreateJobInput, optFns ...func(*s3control.Options)) (*s3control.CreateJobOutput, error)
}

var _ CreateJobAPI = (*s3control.Client)(nil)

// JobSubmission describes a job accepted by S3 Batch Operations
type JobSubmission struct {
	JobID              string `json:"job_id"               yaml:"job_id"`
	ClientRequestToken string `json:"client_request_token" yaml:"client_request_token"`
	AccountID          string `json:"aws_account_id"       yaml:"aws_account_id"`
	Env                string `json:"env"                  yaml:"env"`
}

// SubmitterInput contains the collaborators for a Submitter
type SubmitterInput struct {
	Store     services.ParameterStore
	Client    CreateJobAPI
	Preflight *Preflight    // optional
	NewToken  func() string // defaults to a fresh KSUID
	Parameter string        // overrides the default parameter name when set
}

// Submitter reads the environment's config and submits one replication job
type Submitter struct {
	store     services.ParameterStore
	client    CreateJobAPI
	preflight *Preflight
	newToken  func() string
	parameter string
}

// NewSubmitter creates a new Submitter
func NewSubmitter(input SubmitterInput) *Submitter {
	newToken := input.NewToken
	if newToken == nil {
		newToken = NewClientRequestToken
	}

	return &Submitter{
		store:     input.Store,
		client:    input.Client,
		preflight: input.Preflight,
		newToken:  newToken,
		parameter: input.Parameter,
	}
}

// NewClientRequestToken returns a unique idempotency token for CreateJob
func NewClientRequestToken() string {
	return ksuid.New().String()
}

// ParameterName returns the parameter the submitter reads for env
func (s *Submitter) ParameterName(env string) string {
	if s.parameter != "" {
		return s.parameter
	}
	return ParameterName(env)
}

// LoadConfig reads, decodes and validates the config for env
func (s *Submitter) LoadConfig(ctx context.Context, env string) (Config, error) {
	name := s.ParameterName(env)

	raw, err := s.store.GetParameter(ctx, name)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load replication config: %w", err)
	}

	cfg, err := ParseConfig([]byte(raw))
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse parameter %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parameter %s: %w", name, err)
	}

	return cfg, nil
}

// Plan loads the config for env and returns the request Submit would send
func (s *Submitter) Plan(ctx context.Context, env string) (*s3control.CreateJobInput, error) {
	cfg, err := s.LoadConfig(ctx, env)
	if err != nil {
		return nil, err
	}
	return NewCreateJobInput(cfg, env, s.newToken()), nil
}

// Submit loads the config for env and issues a single CreateJob call
func (s *Submitter) Submit(ctx context.Context, env string) (JobSubmission, error) {
	logger := zerolog.Ctx(ctx)

	cfg, err := s.LoadConfig(ctx, env)
	if err != nil {
		return JobSubmission{}, err
	}

	if s.preflight != nil {
		if err := s.preflight.Check(ctx, cfg); err != nil {
			return JobSubmission{}, err
		}
	}

	token := s.newToken()
	input := NewCreateJobInput(cfg, env, token)

	logger.Info().
		Str("env", env).
		Str("account_id", cfg.AccountID).
		Str("source_bucket", cfg.SourceBucket).
		Str("report_bucket", cfg.ReportAndManifestsBucket).
		Str("client_request_token", token).
		Msg("Submitting S3 Batch Operations replication job")

	output, err := s.client.CreateJob(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			logger.Error().
				Err(err).
				Str("error_code", apiErr.ErrorCode()).
				Str("client_request_token", token).
				Msg("CreateJob rejected")
		}
		return JobSubmission{}, fmt.Errorf("failed to create replication job: %w", err)
	}

	submission := JobSubmission{
		JobID:              aws.ToString(output.JobId),
		ClientRequestToken: token,
		AccountID:          cfg.AccountID,
		Env:                env,
	}

	logger.Info().
		Str("job_id", submission.JobID).
		Str("client_request_token", token).
		Msg("Created replication job")

	return submission, nil
}
