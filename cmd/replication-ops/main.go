package main

import (
	"context"
	"os"

	"github.com/savaki/replication-ops/cmd/replication-ops/commands"
	"github.com/savaki/replication-ops/internal/di"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "replication-ops",
		Usage: "S3 batch replication and egress tooling",
		Description: `Operator CLI for the replication-job and egress-checker functions.

This tool provides commands for:
  - Submitting (or dry-running) the S3 Batch Operations replication job
  - Inspecting and writing the per-environment job configuration parameter
  - Checking outbound network egress`,
		Commands: []*cli.Command{
			commands.JobCommand(&logger),
			commands.ConfigCommand(&logger),
			commands.EgressCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}
