package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted in tick N are delivered
// in tick N+1, when DispatchSystem swaps the buffers and dispatches.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]any
	order    []reflect.Type
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]any),
	}
}

func keyOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	t := keyOf[T]()
	if _, seen := b.back[t]; !seen {
		if _, known := b.front[t]; !known {
			b.order = append(b.order, t)
		}
	}
	b.back[t] = append(b.back[t], event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := keyOf[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers front-buffer events to their handlers, grouped by
// event type in first-emit order. It returns the number of events delivered.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, t := range b.order {
		events := b.front[t]
		handlers := b.handlers[t]
		for _, ev := range events {
			for _, h := range handlers {
				h.(func(any))(ev)
			}
		}
		n += len(events)
	}
	return n
}
