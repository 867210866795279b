package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	apperrors "github.com/savaki/replication-ops/internal/errors"
)

// SSMAPI is the subset of the SSM client used by SSMParameterStore
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

var _ SSMAPI = (*ssm.Client)(nil)

// ParameterStore defines the interface for accessing configuration parameters
type ParameterStore interface {
	// GetParameter retrieves a single parameter by name
	GetParameter(ctx context.Context, name string) (string, error)

	// PutParameter creates or overwrites a single parameter
	PutParameter(ctx context.Context, name, value string) error
}

// SSMParameterStore implements ParameterStore using AWS Systems Manager Parameter Store.
// Values are cached for the configured TTL; a zero TTL reads through on every call.
type SSMParameterStore struct {
	client SSMAPI
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
	cache  map[string]cachedParameter
}

type cachedParameter struct {
	value   string
	expires time.Time
}

// SSMOption configures an SSMParameterStore
type SSMOption func(*SSMParameterStore)

// WithCacheTTL keeps values for ttl after they are read or written
func WithCacheTTL(ttl time.Duration) SSMOption {
	return func(s *SSMParameterStore) {
		s.ttl = ttl
	}
}

// WithClock overrides time.Now for cache expiry
func WithClock(now func() time.Time) SSMOption {
	return func(s *SSMParameterStore) {
		s.now = now
	}
}

// NewSSMParameterStore creates a new SSM-backed parameter store
func NewSSMParameterStore(client SSMAPI, opts ...SSMOption) *SSMParameterStore {
	s := &SSMParameterStore{
		client: client,
		now:    time.Now,
		cache:  make(map[string]cachedParameter),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetParameter retrieves a single parameter from SSM Parameter Store
func (s *SSMParameterStore) GetParameter(ctx context.Context, name string) (string, error) {
	if value, ok := s.cached(name); ok {
		return value, nil
	}

	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrParameterNotFound, name)
		}
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("%w: %s", apperrors.ErrParameterNotFound, name)
	}

	value := *result.Parameter.Value
	s.store(name, value)

	return value, nil
}

// PutParameter writes a String parameter, overwriting any existing value
func (s *SSMParameterStore) PutParameter(ctx context.Context, name, value string) error {
	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      ssmtypes.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to put parameter %s: %w", name, err)
	}

	s.store(name, value)

	return nil
}

func (s *SSMParameterStore) cached(name string) (string, bool) {
	if s.ttl <= 0 {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.cache[name]
	if !ok || !s.now().Before(entry.expires) {
		return "", false
	}
	return entry.value, true
}

func (s *SSMParameterStore) store(name, value string) {
	if s.ttl <= 0 {
		return
	}

	s.mu.Lock()
	s.cache[name] = cachedParameter{value: value, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

// EnvParameterStore implements ParameterStore using environment variables.
// This is a NoOp implementation for local development without AWS connection.
//
// Parameter names are mapped to variable names by upper-casing them and
// replacing every non-alphanumeric rune with an underscore, so
// /dev/s3-batch-replication/config is read from DEV_S3_BATCH_REPLICATION_CONFIG.
type EnvParameterStore struct{}

// NewEnvParameterStore creates a new environment variable-backed parameter store
func NewEnvParameterStore() *EnvParameterStore {
	return &EnvParameterStore{}
}

// GetParameter retrieves a parameter from environment variables
func (e *EnvParameterStore) GetParameter(_ context.Context, name string) (string, error) {
	value, ok := os.LookupEnv(EnvName(name))
	if !ok {
		return "", fmt.Errorf("%w: %s (env %s)", apperrors.ErrParameterNotFound, name, EnvName(name))
	}
	return value, nil
}

// PutParameter sets the environment variable backing name for the current process
func (e *EnvParameterStore) PutParameter(_ context.Context, name, value string) error {
	if err := os.Setenv(EnvName(name), value); err != nil {
		return fmt.Errorf("failed to set %s: %w", EnvName(name), err)
	}
	return nil
}

// EnvName returns the environment variable that backs the named parameter
func EnvName(name string) string {
	name = strings.Trim(name, "/")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
