package terminal

import (
	"github.com/viant/commander/logger"
	"github.com/viant/commander/model/session"
	"github.com/viant/commander/progress"
	"github.com/viant/commander/service/event"
)

// Option customises a Manager
type Option func(m *Manager)

// WithConfig sets the manager configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPublisher sets the lifecycle event publisher
func WithPublisher(publisher *event.Publisher[session.Event]) Option {
	return func(m *Manager) {
		m.publisher = publisher
	}
}

// WithProgress sets the counter tracker
func WithProgress(p *progress.Progress) Option {
	return func(m *Manager) {
		if p != nil {
			m.progress = p
		}
	}
}
