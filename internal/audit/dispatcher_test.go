package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/agenda-marketplace/internal/logging"
)

type memWriter struct {
	mu     sync.Mutex
	events []Event
	block  chan struct{}
	err    error
}

func (w *memWriter) Log(_ context.Context, ev Event) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, ev)
	return w.err
}

func TestDispatcher_DeliversInOrder(t *testing.T) {
	w := &memWriter{}
	d := NewDispatcher(w, logging.Discard(), 10)

	d.Dispatch(Event{BusinessID: 1, Action: "appointment_created"})
	d.Dispatch(Event{BusinessID: 1, Action: "appointment_confirmed"})
	d.Close()

	assert.Len(t, w.events, 2)
	assert.Equal(t, "appointment_created", w.events[0].Action)
	assert.Equal(t, "appointment_confirmed", w.events[1].Action)
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	w := &memWriter{block: make(chan struct{})}
	d := NewDispatcher(w, logging.Discard(), 1)

	// Worker holds at most one event while blocked; the buffer holds one more.
	for i := 0; i < 5; i++ {
		d.Dispatch(Event{Action: "x"})
	}
	close(w.block)
	d.Close()

	assert.LessOrEqual(t, len(w.events), 2)
	assert.GreaterOrEqual(t, len(w.events), 1)
}

func TestDispatcher_WriterErrorDoesNotStopWorker(t *testing.T) {
	w := &memWriter{err: errors.New("db down")}
	d := NewDispatcher(w, logging.Discard(), 10)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()

	assert.Len(t, w.events, 2)
}

func TestDispatcher_DispatchAfterCloseIsDropped(t *testing.T) {
	w := &memWriter{}
	d := NewDispatcher(w, logging.Discard(), 10)
	d.Close()

	assert.NotPanics(t, func() { d.Dispatch(Event{Action: "late"}) })
	assert.NotPanics(t, d.Close)
	assert.Empty(t, w.events)
}

func TestFilterNormalize(t *testing.T) {
	f := Filter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = Filter{Page: 3, Limit: 500}.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.Limit)

	f = Filter{Limit: 200}.Normalize()
	assert.Equal(t, 200, f.Limit)
}
