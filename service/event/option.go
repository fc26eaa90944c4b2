package event

import "github.com/viant/commander/service/messaging/memory"

type Option func(s *Service)

// WithMemoryQueueConfig sets the memory queue configuration per event type
func WithMemoryQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newConfig
	}
}
