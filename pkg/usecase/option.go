package usecase

import "github.com/m-mizutani/herald/pkg/domain/model"

type options struct {
	mode    model.EmissionMode
	baseURL string
}

// Option is a functional option for the notification pipeline
type Option func(*options)

// WithEmissionMode sets how many change records are reported per update
func WithEmissionMode(mode model.EmissionMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithBaseURL sets the fallback base URL for issue links
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func newOptions(opts ...Option) *options {
	cfg := &options{
		mode: model.EmitAccumulateAll,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.mode.IsValid() {
		cfg.mode = model.EmitAccumulateAll
	}
	return cfg
}
