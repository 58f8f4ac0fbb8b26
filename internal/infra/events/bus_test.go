package events

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	id    uuid.UUID
	kind  string
	actor string
	attrs map[string]string
}

func newTestEvent(kind string) testEvent {
	return testEvent{id: uuid.New(), kind: kind, actor: "u-1", attrs: map[string]string{"role": "admin"}}
}

func (e testEvent) EventID() uuid.UUID            { return e.id }
func (e testEvent) EventType() string             { return e.kind }
func (e testEvent) OccurredAt() time.Time         { return time.Unix(0, 0) }
func (e testEvent) AggregateID() uuid.UUID        { return e.id }
func (e testEvent) AggregateType() string         { return "team" }
func (e testEvent) Actor() string                 { return e.actor }
func (e testEvent) Attributes() map[string]string { return e.attrs }

func TestBus_Publish(t *testing.T) {
	t.Run("dispatches in registration order", func(t *testing.T) {
		bus := NewBus(zap.NewNop())
		var order []string
		bus.Register(NewHandlerFunc([]string{"a"}, func(Event) error { order = append(order, "first"); return nil }))
		bus.Register(NewHandlerFunc([]string{"a", "b"}, func(Event) error { order = append(order, "second"); return nil }))

		bus.Publish(newTestEvent("a"))
		bus.Publish(newTestEvent("b"))

		assert.Equal(t, []string{"first", "second", "second"}, order)
	})

	t.Run("isolates failing handlers", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus := NewBus(zap.New(core))
		called := 0
		bus.Register(NewHandlerFunc([]string{"a"}, func(Event) error { return errors.New("boom") }))
		bus.Register(NewHandlerFunc([]string{"a"}, func(Event) error { panic("worse") }))
		bus.Register(NewHandlerFunc([]string{"a"}, func(Event) error { called++; return nil }))

		bus.Publish(newTestEvent("a"))

		assert.Equal(t, 1, called)
		assert.Equal(t, 2, logs.FilterMessage("event handler failed").Len())
	})

	t.Run("ignores unhandled types", func(t *testing.T) {
		bus := NewBus(nil)
		assert.NotPanics(t, func() { bus.PublishAll([]Event{newTestEvent("x")}) })
	})
}

func TestAuditHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := NewBus(zap.NewNop())
	bus.Register(NewAuditHandler([]string{"member.removed"}, zap.New(core)))

	bus.Publish(newTestEvent("member.removed"))

	entries := logs.FilterMessage("audit").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "member.removed", fields["event_type"])
	assert.Equal(t, "u-1", fields["actor_id"])
	assert.Equal(t, "admin", fields["role"])
}

func TestCounterHandler(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "events_total"}, []string{"event"})
	bus := NewBus(zap.NewNop())
	bus.Register(NewCounterHandler([]string{"team.created", "team.deleted"}, counter))

	bus.Publish(newTestEvent("team.created"))
	bus.Publish(newTestEvent("team.created"))
	bus.Publish(newTestEvent("team.deleted"))

	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues("team.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(counter.WithLabelValues("team.deleted")))
}
