package event

import (
	"time"

	"github.com/viant/commander/internal/clock"
	"github.com/viant/commander/internal/idgen"
)

// Event wraps a typed payload with identity and metadata
type Event[T any] struct {
	ID        string                 `json:"id"`
	Source    string                 `json:"source"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](source string, data T) *Event[T] {
	return &Event[T]{
		ID:        idgen.New(),
		Source:    source,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
