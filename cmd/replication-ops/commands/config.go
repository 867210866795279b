package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/di"
	"github.com/savaki/replication-ops/internal/replication"
	"github.com/savaki/replication-ops/internal/services"
	"github.com/urfave/cli/v2"
)

// CallerIdentityAPI is the subset of the STS client used to discover the account id
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var _ CallerIdentityAPI = (*sts.Client)(nil)

// ConfigCommand returns the config command for managing the job configuration parameter
func ConfigCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or write the replication job configuration parameter",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the validated configuration for an environment",
				Flags: []cli.Flag{envFlag, parameterFlag, disableSSMFlag, outputFlag},
				Action: func(c *cli.Context) error {
					ctx := logger.WithContext(c.Context)

					container, err := newContainer(c)
					if err != nil {
						return err
					}

					submitter, err := di.Get[*replication.Submitter](container)
					if err != nil {
						return err
					}

					cfg, err := submitter.LoadConfig(ctx, c.String(envFlag.Name))
					if err != nil {
						return err
					}
					return render(c.App.Writer, c.String(outputFlag.Name), cfg)
				},
			},
			{
				Name:  "put",
				Usage: "Write the configuration for an environment",
				Flags: []cli.Flag{
					envFlag,
					parameterFlag,
					disableSSMFlag,
					&cli.StringFlag{
						Name:  "account-id",
						Usage: "Account owning the job (defaults to the caller's account)",
					},
					&cli.StringFlag{
						Name:     "report-bucket",
						Usage:    "Bucket (name or ARN) receiving reports and generated manifests",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "source-bucket",
						Usage:    "Bucket (name or ARN) whose objects are replicated",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "role-arn",
						Usage:    "IAM role assumed by S3 Batch Operations",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					ctx := logger.WithContext(c.Context)

					container, err := newContainer(c)
					if err != nil {
						return err
					}

					var (
						store     = di.MustGet[services.ParameterStore](container)
						submitter = di.MustGet[*replication.Submitter](container)
						env       = c.String(envFlag.Name)
					)

					accountID := c.String("account-id")
					if accountID == "" {
						stsClient, err := di.Get[*sts.Client](container)
						if err != nil {
							return err
						}
						if accountID, err = callerAccountID(ctx, stsClient); err != nil {
							return err
						}
					}

					cfg := replication.Config{
						AccountID:                accountID,
						ReportAndManifestsBucket: c.String("report-bucket"),
						SourceBucket:             c.String("source-bucket"),
						RoleARN:                  c.String("role-arn"),
					}

					name, err := putConfig(ctx, store, submitter.ParameterName(env), cfg)
					if err != nil {
						return err
					}

					logger.Info().
						Str("parameter", name).
						Str("account_id", cfg.AccountID).
						Msg("Wrote replication config")
					return nil
				},
			},
		},
	}
}

func callerAccountID(ctx context.Context, client CallerIdentityAPI) (string, error) {
	output, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(output.Account), nil
}

func putConfig(ctx context.Context, store services.ParameterStore, name string, cfg replication.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := store.PutParameter(ctx, name, string(data)); err != nil {
		return "", err
	}
	return name, nil
}
