package eventmock

import (
	"context"
	"sync"

	"peerlend-backend/internal/domain/event"
)

var _ event.Publisher = (*Publisher)(nil)

// Publisher records published events; set PublishFn to override.
type Publisher struct {
	mu        sync.Mutex
	PublishFn func(ctx context.Context, ev event.Event) error
	Published []event.Event
}

func (m *Publisher) Publish(ctx context.Context, ev event.Event) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, ev)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, ev)
	return nil
}

// Events returns a copy of everything published so far.
func (m *Publisher) Events() []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, len(m.Published))
	copy(out, m.Published)
	return out
}
