package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3control"
	"github.com/rs/zerolog"
	"github.com/savaki/replication-ops/internal/replication"
	"github.com/savaki/replication-ops/internal/services"
	"github.com/savaki/replication-ops/internal/settings"
	"github.com/stretchr/testify/assert"
)

type recordingClient struct {
	calls int
	input *s3control.CreateJobInput
}

func (r *recordingClient) CreateJob(_ context.Context, params *s3control.CreateJobInput, _ ...func(*s3control.Options)) (*s3control.CreateJobOutput, error) {
	r.calls++
	r.input = params
	return &s3control.CreateJobOutput{JobId: aws.String("job-abc")}, nil
}

func TestHandleInvocation(t *testing.T) {
	t.Setenv("DEV_S3_BATCH_REPLICATION_CONFIG", `{
		"aws_account_id": "123456789012",
		"report_and_manifests_bucket": "reports",
		"source_bucket": "source",
		"role_arn": "arn:aws:iam::123456789012:role/batch"
	}`)

	client := &recordingClient{}
	handler := &Handler{
		env: "dev",
		submitter: replication.NewSubmitter(replication.SubmitterInput{
			Store:  services.NewEnvParameterStore(),
			Client: client,
		}),
	}

	ctx := zerolog.Nop().WithContext(context.Background())
	event := json.RawMessage(`{"source":"aws.events","detail-type":"Scheduled Event"}`)

	got, err := handler.HandleInvocation(ctx, event)
	assert.NoError(t, err)
	assert.Equal(t, "job-abc", got.JobID)
	assert.Equal(t, "dev", got.Env)
	assert.NotEmpty(t, got.ClientRequestToken)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "123456789012", aws.ToString(client.input.AccountId))
	assert.Equal(t, got.ClientRequestToken, aws.ToString(client.input.ClientRequestToken))
}

func TestNewHandler_LocalMode(t *testing.T) {
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("AWS_ACCESS_KEY_ID", "blah")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "blah")

	handler, err := NewHandler("dev", settings.Settings{DisableSSM: true, EgressTrigger: settings.TriggerDirect})
	assert.NoError(t, err)
	assert.Equal(t, "/dev/s3-batch-replication/config", handler.submitter.ParameterName("dev"))
}
