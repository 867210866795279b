package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestJobCommand_DryRun(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("AWS_ACCESS_KEY_ID", "blah")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "blah")
	t.Setenv("DEV_S3_BATCH_REPLICATION_CONFIG", `{
		"aws_account_id": "123456789012",
		"report_and_manifests_bucket": "reports",
		"source_bucket": "source",
		"role_arn": "arn:aws:iam::123456789012:role/batch"
	}`)

	logger := zerolog.Nop()
	var out bytes.Buffer
	app := &cli.App{
		Name:     "replication-ops",
		Writer:   &out,
		Commands: []*cli.Command{JobCommand(&logger)},
	}

	err := app.RunContext(context.Background(), []string{"replication-ops", "job", "submit", "--env", "dev", "--disable-ssm", "--dry-run"})
	require.NoError(t, err)

	var input map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &input))
	assert.Equal(t, "123456789012", input["AccountId"])
	assert.Equal(t, "arn:aws:iam::123456789012:role/batch", input["RoleArn"])
	assert.NotEmpty(t, input["ClientRequestToken"])
	assert.Contains(t, out.String(), "S3InventoryReport_CSV_20211130")
	assert.Contains(t, out.String(), "Report_CSV_20180820")
}
