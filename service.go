package commander

import (
	"context"
	"fmt"

	"github.com/viant/commander/extension"
	"github.com/viant/commander/logger"
	"github.com/viant/commander/model/session"
	"github.com/viant/commander/model/types"
	"github.com/viant/commander/policy"
	"github.com/viant/commander/progress"
	acommand "github.com/viant/commander/service/action/system/command"
	aprocess "github.com/viant/commander/service/action/system/process"
	aterminal "github.com/viant/commander/service/action/system/terminal"
	"github.com/viant/commander/service/dao/blocklist"
	bfs "github.com/viant/commander/service/dao/blocklist/fs"
	bmemory "github.com/viant/commander/service/dao/blocklist/memory"
	"github.com/viant/commander/service/event"
	"github.com/viant/commander/service/messaging"
	"github.com/viant/commander/service/terminal"
	"github.com/viant/commander/tracing"
	"github.com/viant/x"
)

const (
	serviceName = "commander"
	Version     = "0.1.0"
)

// Service represents commander service
type Service struct {
	config            *Config
	logger            logger.Logger
	store             blocklist.Store
	policy            *policy.Policy
	eventService      *event.Service
	listener          func(e *event.Event[session.Event])
	progress          *progress.Progress
	terminal          *terminal.Manager
	process           *aprocess.Service
	actions           *extension.Actions
	extensionTypes    []*x.Type
	extensionServices []types.Service
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.policy = policy.New(s.store, policy.WithLogger(s.logger), policy.WithSeed(s.config.Policy.Blocked...))
	s.policy.Load(ctx)

	publisher, err := event.PublisherOf[session.Event](s.eventService)
	if err != nil {
		return fmt.Errorf("failed to create session event publisher: %w", err)
	}
	if err = event.SetListenerOf[session.Event](s.eventService, s.listener); err != nil {
		return fmt.Errorf("failed to set session event listener: %w", err)
	}
	s.progress = progress.New()
	s.terminal = terminal.New(
		terminal.WithConfig(s.config.Terminal),
		terminal.WithLogger(s.logger),
		terminal.WithPublisher(publisher),
		terminal.WithProgress(s.progress),
	)
	s.process = aprocess.New()
	s.actions = extension.NewActions(s.extensionTypes...)
	s.actions.Register(aterminal.New(s.terminal, s.policy))
	s.actions.Register(acommand.New(s.policy))
	s.actions.Register(s.process)
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.logger == nil {
		s.logger = logger.New(s.config.Log.Level, s.config.Log.Format)
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(serviceName, Version, s.config.Tracing.OutputFile); err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	if s.store == nil {
		if URL := s.config.Policy.StoreURL; URL != "" {
			store, err := bfs.New(URL)
			if err != nil {
				return err
			}
			s.store = store
		} else {
			s.store = bmemory.New()
		}
	}
	if s.eventService == nil {
		eventService, err := event.New(messaging.VendorMemory)
		if err != nil {
			return err
		}
		s.eventService = eventService
	}
	if s.listener == nil {
		s.listener = s.logEvent
	}
	return nil
}

func (s *Service) logEvent(e *event.Event[session.Event]) {
	if e == nil {
		return
	}
	keyValues := []any{"type", string(e.Data.Type), "pid", e.Data.Pid, "command", e.Data.Command}
	if e.Data.ExitCode != nil {
		keyValues = append(keyValues, "exitCode", *e.Data.ExitCode)
	}
	s.logger.Debug("session event", keyValues...)
}

func (s *Service) Config() *Config {
	return s.config
}

func (s *Service) Logger() logger.Logger {
	return s.logger
}

func (s *Service) Policy() *policy.Policy {
	return s.policy
}

func (s *Service) Terminal() *terminal.Manager {
	return s.terminal
}

func (s *Service) Actions() *extension.Actions {
	return s.actions
}

func (s *Service) Progress() progress.Counters {
	return s.progress.Snapshot()
}

func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Close terminates all sessions, stops event listeners and releases shell sessions
func (s *Service) Close(ctx context.Context) error {
	err := s.terminal.Close(ctx)
	s.eventService.Close()
	if closeErr := s.process.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// New creates a commander service and loads the persisted blocklist
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
