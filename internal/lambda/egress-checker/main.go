package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/di"
	"github.com/savaki/replication-ops/internal/egress"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/urfave/cli/v2"
)

// The checker needs no environment name; the container still wants one
const containerEnv = "egress"

func NewChecker(s settings.Settings) (*egress.Checker, error) {
	container, err := di.New(containerEnv, di.WithSettings(s))
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	checker, err := di.Get[*egress.Checker](container)
	if err != nil {
		return nil, fmt.Errorf("failed to create checker: %w", err)
	}

	return checker, nil
}

// NewLambdaHandler selects the handler for the configured trigger: a plain
// invocation handler, or an HTTP proxy in front of egress.Handler for API
// Gateway (payload 1.0) and Function URLs (payload 2.0)
func NewLambdaHandler(checker *egress.Checker, logger zerolog.Logger, trigger string) any {
	switch trigger {
	case settings.TriggerAPI:
		adapter := httpadapter.New(egress.NewHandler(checker, logger))
		return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(logger.WithContext(ctx), req)
		}
	case settings.TriggerURL:
		adapter := httpadapter.NewV2(egress.NewHandler(checker, logger))
		return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
			return adapter.ProxyWithContext(logger.WithContext(ctx), req)
		}
	}

	// Wrap handler to inject logger into context
	return func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
		ctx = logger.WithContext(ctx)
		return checker.Handle(ctx, event)
	}
}

func main() {
	logger := di.ProvideLogger().With().Str("lambda", "egress-checker").Logger()

	s, err := settings.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load settings")
		os.Exit(1)
	}

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		checker, err := NewChecker(s)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create checker")
			os.Exit(1)
		}

		lambda.Start(NewLambdaHandler(checker, logger, s.EgressTrigger))
		return
	}

	// CLI mode
	app := &cli.App{
		Name:  "egress-checker",
		Usage: "GET a well-known external URL and print the relayed status and body",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "URL to fetch",
				Value:   s.EgressURL,
				EnvVars: []string{"EGRESS_CHECK_URL"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "HTTP client timeout",
				Value:   s.EgressTimeout,
				EnvVars: []string{"EGRESS_TIMEOUT"},
			},
		},
		Action: func(c *cli.Context) error {
			s.EgressURL = c.String("url")
			s.EgressTimeout = c.Duration("timeout")

			checker, err := NewChecker(s)
			if err != nil {
				return err
			}

			result, err := checker.Check(logger.WithContext(c.Context))
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(c.App.Writer)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
