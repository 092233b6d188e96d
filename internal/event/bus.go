// Package event is the named-event subscription the page behaviors hang off.
package event

import (
	"io"
	"log"
	"sync"
)

// Name identifies an event kind.
type Name string

const (
	Ready        Name = "ready"
	Resize       Name = "resize"
	Teardown     Name = "teardown"
	Scroll       Name = "scroll"
	Click        Name = "click"
	PointerMove  Name = "pointer-move"
	ThemeChanged Name = "theme-changed"
	MenuToggled  Name = "menu-toggled"
	Submit       Name = "submit"
)

// Event carries the payload of one occurrence. Fields not relevant to a
// given Name are left zero.
type Event struct {
	Name   Name
	X, Y   float64
	Width  int
	Height int
	Target string
	Value  string
}

// Handler runs to completion for every published event it subscribed to.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Bus dispatches events to handlers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Name][]subscription
	logger *log.Logger
}

// NewBus creates a bus. A nil logger discards handler panics silently.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Bus{subs: map[Name][]subscription{}, logger: logger}
}

// Subscribe registers fn for name and returns a function that removes it.
func (b *Bus) Subscribe(name Name, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			list := b.subs[name]
			for i, s := range list {
				if s.id == id {
					b.subs[name] = append(list[:i:i], list[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers ev to every handler subscribed to ev.Name at the time of
// the call. A panicking handler is logged and does not stop the others.
func (b *Bus) Publish(ev Event) int {
	b.mu.RLock()
	list := make([]subscription, len(b.subs[ev.Name]))
	copy(list, b.subs[ev.Name])
	b.mu.RUnlock()

	for _, s := range list {
		b.dispatch(s.fn, ev)
	}
	return len(list)
}

func (b *Bus) dispatch(fn Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Printf("handler for %q panicked: %v", ev.Name, r)
		}
	}()
	fn(ev)
}
