package commands

import (
	"fmt"

	"github.com/savaki/replication-ops/internal/di"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/urfave/cli/v2"
)

var envFlag = &cli.StringFlag{
	Name:     "env",
	Usage:    "Environment name used to locate the configuration parameter",
	Required: true,
	EnvVars:  []string{"ENV", "ENVIRONMENT"},
}

var parameterFlag = &cli.StringFlag{
	Name:    "parameter",
	Usage:   "Override the Parameter Store name (default /{env}/s3-batch-replication/config)",
	EnvVars: []string{"PARAMETER_NAME"},
}

var disableSSMFlag = &cli.BoolFlag{
	Name:    "disable-ssm",
	Usage:   "Disable AWS Systems Manager Parameter Store (use environment variables)",
	EnvVars: []string{"DISABLE_SSM"},
}

// newContainer builds a container from the environment settings overlaid
// with the flags common to the job and config commands
func newContainer(c *cli.Context, mutate ...func(*settings.Settings)) (di.Container, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}

	s.DisableSSM = c.Bool(disableSSMFlag.Name)
	s.ParameterName = c.String(parameterFlag.Name)
	for _, fn := range mutate {
		fn(&s)
	}

	container, err := di.New(c.String(envFlag.Name), di.WithSettings(s))
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}
	return container, nil
}
