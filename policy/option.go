package policy

import "github.com/viant/commander/logger"

// Option customises a Policy
type Option func(p *Policy)

// WithLogger sets the logger used for persistence failures
func WithLogger(l logger.Logger) Option {
	return func(p *Policy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSeed sets commands blocked on first start, before any document was persisted
func WithSeed(commands ...string) Option {
	return func(p *Policy) {
		p.seed = append(p.seed, commands...)
	}
}
