package errors

import "errors"

var (
	ErrEnvironmentRequired = errors.New("ENV or ENVIRONMENT variable is required")
	ErrParameterNotFound   = errors.New("parameter not found")
	ErrInvalidConfig       = errors.New("invalid replication config")
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
