package extension

import (
	"reflect"

	"github.com/viant/x"
)

// Types is a registry of action input and output types
type Types struct {
	x.Registry
}

// Register adds a data type to the registry
func (t *Types) Register(dataType *x.Type) {
	if dataType == nil {
		return
	}
	t.Registry.Register(dataType)
}

// RegisterType adds a reflect type; pointer types are registered by their element
func (t *Types) RegisterType(rType reflect.Type) {
	if rType == nil {
		return
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	t.Register(x.NewType(rType))
}

// Lookup returns a data type by its package qualified name
func (t *Types) Lookup(dataType string) *x.Type {
	return t.Registry.Lookup(dataType)
}

// NewTypes creates a new types
func NewTypes(options ...x.RegistryOption) *Types {
	result := &Types{
		Registry: *x.NewRegistry(options...),
	}
	return result
}
