// Package lazy defers loading of page images until they scroll into view.
package lazy

import (
	"fmt"
	"io"
	"log"

	"github.com/iburimskiy/portfolio-backdrop/internal/reveal"
)

// Loader turns a source path into a loaded value, usually a decoded image.
type Loader[T any] func(src string) (T, error)

// Item is one image on the page.
type Item[T any] struct {
	ID   string
	Rect reveal.Rect
	// DeferredSrc is the source waiting to be loaded. It is cleared once the
	// item has been loaded.
	DeferredSrc string
	// Src is the source that was loaded.
	Src    string
	Value  T
	Err    error
	Loaded bool
}

// Set tracks the lazily loaded items of a page.
type Set[T any] struct {
	load     Loader[T]
	observer *reveal.Observer
	items    map[string]*Item[T]
	order    []string
	logger   *log.Logger
}

// NewSet returns an empty set using load to fetch sources. Items load as soon
// as any part of them is inside the viewport.
func NewSet[T any](load Loader[T], logger *log.Logger) *Set[T] {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Set[T]{
		load:     load,
		observer: reveal.NewObserver(0, 0),
		items:    map[string]*Item[T]{},
		logger:   logger,
	}
}

// Add registers an item. Items without a deferred source are kept but never
// observed.
func (s *Set[T]) Add(id string, r reveal.Rect, deferredSrc string) {
	it := &Item[T]{ID: id, Rect: r, DeferredSrc: deferredSrc}
	if _, dup := s.items[id]; !dup {
		s.order = append(s.order, id)
	}
	s.items[id] = it
	if deferredSrc == "" {
		s.observer.Unobserve(id)
		return
	}
	s.observer.Observe(id, r, s.reveal)
}

// Check loads every pending item that intersects the viewport and returns
// the ids loaded by this call.
func (s *Set[T]) Check(scrollY, viewportHeight float64) []string {
	return s.observer.Check(scrollY, viewportHeight)
}

func (s *Set[T]) reveal(id string) {
	it := s.items[id]
	if it == nil || it.Loaded {
		return
	}
	src := it.DeferredSrc
	it.DeferredSrc = ""
	it.Src = src
	it.Loaded = true
	v, err := s.load(src)
	if err != nil {
		it.Err = fmt.Errorf("load %s: %w", src, err)
		s.logger.Printf("image %s: %v", id, it.Err)
		return
	}
	it.Value = v
}

// Get returns the item with the given id.
func (s *Set[T]) Get(id string) (Item[T], bool) {
	it, ok := s.items[id]
	if !ok {
		return Item[T]{}, false
	}
	return *it, true
}

// Items returns every item in insertion order.
func (s *Set[T]) Items() []Item[T] {
	out := make([]Item[T], 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Pending is the number of items still waiting to load.
func (s *Set[T]) Pending() int { return s.observer.Observed() }
