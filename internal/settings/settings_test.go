package settings

import (
	"os"
	"testing"
	"time"

	"github.com/savaki/replication-ops/internal/constants"
	apperrors "github.com/savaki/replication-ops/internal/errors"
	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "ENVIRONMENT", "DISABLE_SSM", "PARAMETER_NAME", "PARAMETER_CACHE_TTL", "PREFLIGHT", "EGRESS_CHECK_URL", "EGRESS_TIMEOUT", "EGRESS_TRIGGER"} {
		// Setenv restores the original value on cleanup; envconfig treats
		// an empty variable as set, so unset it outright
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	s, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, constants.DefaultEgressURL, s.EgressURL)
	assert.Equal(t, 10*time.Second, s.EgressTimeout)
	assert.Equal(t, TriggerDirect, s.EgressTrigger)
	assert.False(t, s.DisableSSM)
	assert.False(t, s.Preflight)
	assert.Zero(t, s.ParameterTTL)

	_, err = s.ResolveEnv()
	assert.ErrorIs(t, err, apperrors.ErrEnvironmentRequired)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("DISABLE_SSM", "true")
	t.Setenv("PARAMETER_NAME", "/custom/param")
	t.Setenv("PARAMETER_CACHE_TTL", "30s")
	t.Setenv("PREFLIGHT", "true")
	t.Setenv("EGRESS_CHECK_URL", "https://example.com/health")
	t.Setenv("EGRESS_TIMEOUT", "3s")
	t.Setenv("EGRESS_TRIGGER", "api")

	s, err := Load()
	assert.NoError(t, err)
	assert.True(t, s.DisableSSM)
	assert.True(t, s.Preflight)
	assert.Equal(t, 30*time.Second, s.ParameterTTL)
	assert.Equal(t, "/custom/param", s.ParameterName)
	assert.Equal(t, "https://example.com/health", s.EgressURL)
	assert.Equal(t, 3*time.Second, s.EgressTimeout)
	assert.Equal(t, TriggerAPI, s.EgressTrigger)

	env, err := s.ResolveEnv()
	assert.NoError(t, err)
	assert.Equal(t, "staging", env)
}

func TestLoad_EnvWinsOverEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "dev")
	t.Setenv("ENVIRONMENT", "prod")

	s, err := Load()
	assert.NoError(t, err)

	env, err := s.ResolveEnv()
	assert.NoError(t, err)
	assert.Equal(t, "dev", env)
}

func TestLoad_FunctionURLTrigger(t *testing.T) {
	clearEnv(t)
	t.Setenv("EGRESS_TRIGGER", "url")

	s, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, TriggerURL, s.EgressTrigger)
}

func TestLoad_InvalidTrigger(t *testing.T) {
	clearEnv(t)
	t.Setenv("EGRESS_TRIGGER", "sqs")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("EGRESS_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
