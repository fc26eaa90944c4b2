package extension

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/commander/model/types"
	"github.com/viant/toolbox"
	"github.com/viant/x"
)

// DataTypeIniter is implemented by services registering extra types
type DataTypeIniter interface {
	InitTypes(types *Types)
}

// Actions provides action service
type Actions struct {
	types     *Types
	services  map[string]types.Service
	converter *toolbox.Converter
	mux       sync.RWMutex
}

func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Names returns registered service names in sorted order
func (s *Actions) Names() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.services))
	for name := range s.services {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Register registers a service together with its method input/output types
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, signature := range service.Methods() {
		s.types.RegisterType(signature.Input)
		s.types.RegisterType(signature.Output)
	}
	if typer, ok := service.(DataTypeIniter); ok {
		typer.InitTypes(s.types)
	}
	s.services[service.Name()] = service
}

// Dispatch builds the typed input of service.method from args, invokes the
// method and returns its typed output.
func (s *Actions) Dispatch(ctx context.Context, serviceName, methodName string, args map[string]interface{}) (interface{}, error) {
	service := s.Lookup(serviceName)
	if service == nil {
		return nil, fmt.Errorf("service %v not found", serviceName)
	}
	signature := service.Methods().Lookup(methodName)
	if signature == nil {
		return nil, types.NewMethodNotFoundError(methodName)
	}
	method, err := service.Method(signature.Name)
	if err != nil {
		return nil, err
	}
	input := signature.NewInput()
	if len(args) > 0 && input != nil {
		if err = s.converter.AssignConverted(input, args); err != nil {
			return nil, fmt.Errorf("failed to convert %v.%v input: %w", serviceName, methodName, err)
		}
	}
	output := signature.NewOutput()
	if err = method(ctx, input, output); err != nil {
		return output, err
	}
	return output, nil
}

// NewActions creates a new action service
func NewActions(goTypes ...*x.Type) *Actions {
	ret := &Actions{
		types:     NewTypes(),
		services:  make(map[string]types.Service),
		converter: toolbox.NewConverter("", "json"),
	}
	for _, t := range goTypes {
		if t != nil {
			ret.types.Register(t)
		}
	}
	return ret
}
