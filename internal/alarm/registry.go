package alarm

import "fmt"

// Registry maps each event type to its single processor. It is built once at
// startup and read-only thereafter, so lookups need no synchronization.
type Registry struct {
	processors map[EventType]Processor
}

// NewRegistry builds a registry from the supplied processors. Registering two
// processors for the same event type is a configuration error.
func NewRegistry(processors ...Processor) (*Registry, error) {
	byType := make(map[EventType]Processor, len(processors))
	for _, processor := range processors {
		eventType := processor.EventType()
		if _, exists := byType[eventType]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProcessor, eventType)
		}
		byType[eventType] = processor
	}
	return &Registry{processors: byType}, nil
}

// Get returns the processor for the event type, or ErrNoProcessor. A failing
// lookup is a configuration defect, not a request-time condition; Validate at
// startup keeps it from ever firing at dispatch time.
func (r *Registry) Get(eventType EventType) (Processor, error) {
	processor, ok := r.processors[eventType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProcessor, eventType)
	}
	return processor, nil
}

// Validate checks that every supplied event type has a processor registered.
// Called from bootstrap with AllEventTypes so misconfiguration fails startup.
func (r *Registry) Validate(eventTypes ...EventType) error {
	for _, eventType := range eventTypes {
		if _, err := r.Get(eventType); err != nil {
			return err
		}
	}
	return nil
}
