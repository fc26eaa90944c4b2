package commander

import (
	"github.com/viant/commander/logger"
	"github.com/viant/commander/model/session"
	"github.com/viant/commander/model/types"
	"github.com/viant/commander/service/dao/blocklist"
	"github.com/viant/commander/service/event"
	"github.com/viant/commander/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the Service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger overrides the logger built from Config.Log
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithBlocklistStore overrides the store built from Config.Policy.StoreURL
func WithBlocklistStore(store blocklist.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithSessionListener replaces the default debug-logging listener of session lifecycle events
func WithSessionListener(listener func(e *event.Event[session.Event])) Option {
	return func(s *Service) {
		s.listener = listener
	}
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithExtensionServices sets the extension services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty spans go to stdout. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
