package theme

import "fmt"

// Switcher owns the active theme and persists every change.
type Switcher struct {
	store   Store
	current Theme
}

// NewSwitcher resolves the starting theme from store and the system preference.
// A store read error falls back to the system preference and is returned so
// the caller can log it.
func NewSwitcher(store Store, systemPrefersDark bool) (*Switcher, error) {
	saved, ok, err := store.Get(PreferenceKey)
	if err != nil {
		saved, ok = "", false
	}
	return &Switcher{store: store, current: Resolve(saved, ok, systemPrefersDark)}, err
}

// Current is the active theme.
func (s *Switcher) Current() Theme { return s.current }

// Toggle flips the theme and persists it. The in-memory theme changes even
// when persisting fails.
func (s *Switcher) Toggle() (Theme, error) {
	next := s.current.Opposite()
	err := s.Set(next)
	return next, err
}

// Set switches to t and persists it.
func (s *Switcher) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}
	s.current = t
	if err := s.store.Set(PreferenceKey, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}
