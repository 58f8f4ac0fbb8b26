package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Handler is the interface for event handlers.
type Handler interface {
	// Handles returns the list of event types this handler can process.
	Handles() []string

	// Handle processes the given event.
	Handle(event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc struct {
	eventTypes []string
	fn         func(Event) error
}

// NewHandlerFunc creates a new HandlerFunc.
func NewHandlerFunc(eventTypes []string, fn func(Event) error) *HandlerFunc {
	return &HandlerFunc{
		eventTypes: eventTypes,
		fn:         fn,
	}
}

// Handles returns the list of event types this handler can process.
func (h *HandlerFunc) Handles() []string {
	return h.eventTypes
}

// Handle processes the given event.
func (h *HandlerFunc) Handle(event Event) error {
	return h.fn(event)
}

// NewAuditHandler writes one structured audit line per event.
func NewAuditHandler(eventTypes []string, logger *zap.Logger) *HandlerFunc {
	return NewHandlerFunc(eventTypes, func(event Event) error {
		fields := []zap.Field{
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		}
		if a, ok := event.(Audited); ok {
			fields = append(fields, zap.String("actor_id", a.Actor()))
			for k, v := range a.Attributes() {
				fields = append(fields, zap.String(k, v))
			}
		}
		logger.Info("audit", fields...)
		return nil
	})
}

// NewCounterHandler increments counter labelled with the event type.
func NewCounterHandler(eventTypes []string, counter *prometheus.CounterVec) *HandlerFunc {
	return NewHandlerFunc(eventTypes, func(event Event) error {
		counter.WithLabelValues(event.EventType()).Inc()
		return nil
	})
}
