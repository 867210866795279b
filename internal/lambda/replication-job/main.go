package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/di"
	"github.com/savaki/replication-ops/internal/replication"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/urfave/cli/v2"
)

type Handler struct {
	env       string
	submitter *replication.Submitter
}

func NewHandler(env string, s settings.Settings) (*Handler, error) {
	container, err := di.New(env, di.WithSettings(s))
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	submitter, err := di.Get[*replication.Submitter](container)
	if err != nil {
		return nil, fmt.Errorf("failed to create submitter: %w", err)
	}

	return &Handler{
		env:       env,
		submitter: submitter,
	}, nil
}

// HandleInvocation submits one replication job; the trigger payload (schedule
// or manual invoke) carries nothing the job needs
func (h *Handler) HandleInvocation(ctx context.Context, _ json.RawMessage) (replication.JobSubmission, error) {
	logger := zerolog.Ctx(ctx)

	logger.Info().
		Str("env", h.env).
		Str("parameter", h.submitter.ParameterName(h.env)).
		Msg("Starting replication job submission")

	return h.submitter.Submit(ctx, h.env)
}

func main() {
	logger := di.ProvideLogger().With().Str("lambda", "replication-job").Logger()

	s, err := settings.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load settings")
		os.Exit(1)
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		env, err := s.ResolveEnv()
		if err != nil {
			logger.Error().Err(err).Msg("Missing environment")
			os.Exit(1)
		}

		handler, err := NewHandler(env, s)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create handler")
			os.Exit(1)
		}

		// Wrap handler to inject logger into context
		wrappedHandler := func(ctx context.Context, event json.RawMessage) (replication.JobSubmission, error) {
			ctx = logger.WithContext(ctx)
			return handler.HandleInvocation(ctx, event)
		}
		lambda.Start(wrappedHandler)
		return
	}

	// CLI mode
	app := &cli.App{
		Name:  "replication-job",
		Usage: "Submit an S3 Batch Operations job replicating FAILED and NONE objects",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "env",
				Usage:    "Environment name used to locate the configuration parameter",
				Required: s.Env == "" && s.Environment == "",
				EnvVars:  []string{"ENV", "ENVIRONMENT"},
			},
			&cli.BoolFlag{
				Name:    "disable-ssm",
				Usage:   "Disable AWS Systems Manager Parameter Store (use environment variables)",
				EnvVars: []string{"DISABLE_SSM"},
			},
			&cli.BoolFlag{
				Name:    "preflight",
				Usage:   "Verify both buckets with HeadBucket before submitting",
				EnvVars: []string{"PREFLIGHT"},
			},
		},
		Action: func(c *cli.Context) error {
			s.DisableSSM = c.Bool("disable-ssm")
			s.Preflight = c.Bool("preflight")

			handler, err := NewHandler(c.String("env"), s)
			if err != nil {
				return fmt.Errorf("failed to create handler: %w", err)
			}

			ctx := logger.WithContext(c.Context)
			submission, err := handler.HandleInvocation(ctx, nil)
			if err != nil {
				return err
			}

			logger.Info().
				Str("job_id", submission.JobID).
				Str("client_request_token", submission.ClientRequestToken).
				Msg("CLI mode - job submitted")
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
