package di

import "github.com/savaki/replication-ops/internal/settings"

// Option is a function that configures the dependency injection container.
type Option func(*options)

// WithSettings supplies the runtime settings injected into providers
func WithSettings(s settings.Settings) Option {
	return func(opts *options) {
		opts.settings = s
	}
}

// WithProviders adds constructor functions to the dependency injection container.
// Each provider should be a constructor function that returns one or more values.
// Providers can declare dependencies as function parameters, which will be
// automatically resolved by the container.
func WithProviders(providers ...any) Option {
	return func(opts *options) {
		opts.providers = append(opts.providers, providers...)
	}
}

type options struct {
	settings  settings.Settings
	providers []any
}
