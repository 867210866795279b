// Package settings loads runtime settings for the Lambda functions from the
// process environment.
package settings

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	apperrors "github.com/savaki/replication-ops/internal/errors"
)

// Trigger modes for the egress checker
const (
	TriggerDirect = "direct" // invoked by a schedule or manually, any payload
	TriggerAPI    = "api"    // fronted by an API Gateway REST API (payload format 1.0)
	TriggerURL    = "url"    // fronted by a Function URL or HTTP API (payload format 2.0)
)

// Settings holds values read from the environment
type Settings struct {
	Env           string        `envconfig:"ENV"`
	Environment   string        `envconfig:"ENVIRONMENT"`
	DisableSSM    bool          `envconfig:"DISABLE_SSM"`
	ParameterName string        `envconfig:"PARAMETER_NAME"`
	ParameterTTL  time.Duration `envconfig:"PARAMETER_CACHE_TTL" default:"0s"`
	Preflight     bool          `envconfig:"PREFLIGHT"`
	EgressURL     string        `envconfig:"EGRESS_CHECK_URL" default:"https://www.google.com"`
	EgressTimeout time.Duration `envconfig:"EGRESS_TIMEOUT" default:"10s"`
	EgressTrigger string        `envconfig:"EGRESS_TRIGGER" default:"direct"`
}

// Load reads Settings from the environment
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	switch s.EgressTrigger {
	case TriggerDirect, TriggerAPI, TriggerURL:
	default:
		return Settings{}, fmt.Errorf("unsupported EGRESS_TRIGGER %q, expected %q, %q or %q", s.EgressTrigger, TriggerDirect, TriggerAPI, TriggerURL)
	}

	return s, nil
}

// ResolveEnv returns ENV, falling back to ENVIRONMENT
func (s Settings) ResolveEnv() (string, error) {
	if s.Env != "" {
		return s.Env, nil
	}
	if s.Environment != "" {
		return s.Environment, nil
	}
	return "", apperrors.ErrEnvironmentRequired
}
