package commands

import (
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/di"
	"github.com/savaki/replication-ops/internal/replication"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/urfave/cli/v2"
)

// JobCommand returns the job command for submitting replication jobs
func JobCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "job",
		Usage: "Submit S3 Batch Operations replication jobs",
		Subcommands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Create a job replicating objects whose replication status is FAILED or NONE",
				Flags: []cli.Flag{
					envFlag,
					parameterFlag,
					disableSSMFlag,
					&cli.BoolFlag{
						Name:    "preflight",
						Usage:   "Verify both buckets with HeadBucket before submitting",
						EnvVars: []string{"PREFLIGHT"},
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print the CreateJob request without sending it",
					},
					outputFlag,
				},
				Action: func(c *cli.Context) error {
					ctx := logger.WithContext(c.Context)

					container, err := newContainer(c, func(s *settings.Settings) {
						s.Preflight = c.Bool("preflight")
					})
					if err != nil {
						return err
					}

					submitter, err := di.Get[*replication.Submitter](container)
					if err != nil {
						return err
					}

					env := c.String(envFlag.Name)
					if c.Bool("dry-run") {
						input, err := submitter.Plan(ctx, env)
						if err != nil {
							return err
						}
						logger.Info().Str("env", env).Msg("Dry run - CreateJob not called")
						return render(c.App.Writer, c.String(outputFlag.Name), input)
					}

					submission, err := submitter.Submit(ctx, env)
					if err != nil {
						return err
					}
					return render(c.App.Writer, c.String(outputFlag.Name), submission)
				},
			},
		},
	}
}
