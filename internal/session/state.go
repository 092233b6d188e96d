// Package session holds the page-wide UI state shared by the behaviors.
package session

import (
	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
)

// State is the single UI-session record. Behaviors read and write it through
// its methods only; nothing else keeps page-wide mutable state.
type State struct {
	theme       theme.Theme
	menuOpen    bool
	scrollY     float64
	lastScrollY float64
	width       int
	height      int
}

// New returns a session for a viewport of the given size.
func New(t theme.Theme, width, height int) *State {
	if !t.Valid() {
		t = theme.Light
	}
	return &State{theme: t, width: width, height: height}
}

func (s *State) Theme() theme.Theme { return s.theme }

// SetTheme records the active theme; invalid values are ignored.
func (s *State) SetTheme(t theme.Theme) {
	if t.Valid() {
		s.theme = t
	}
}

func (s *State) MenuOpen() bool { return s.menuOpen }

// ToggleMenu opens or closes the mobile menu and reports the new state.
func (s *State) ToggleMenu() bool {
	s.menuOpen = !s.menuOpen
	return s.menuOpen
}

// CloseMenu closes the menu and reports whether it was open.
func (s *State) CloseMenu() bool {
	was := s.menuOpen
	s.menuOpen = false
	return was
}

// ClickOutside closes an open menu when the click landed outside the nav and
// its links. It reports whether the menu was closed.
func (s *State) ClickOutside(insideNav bool) bool {
	if !s.menuOpen || insideNav {
		return false
	}
	return s.CloseMenu()
}

// Viewport returns the current viewport size.
func (s *State) Viewport() (int, int) { return s.width, s.height }

// Resize records a new viewport. Growing past the mobile breakpoint closes
// the menu; the return value reports whether that happened.
func (s *State) Resize(width, height int) bool {
	s.width, s.height = width, height
	if width > config.MobileBreakpoint {
		return s.CloseMenu()
	}
	return false
}

// Mobile reports whether the viewport is at or below the breakpoint.
func (s *State) Mobile() bool { return s.width <= config.MobileBreakpoint }

// ScrollY is the current vertical scroll offset.
func (s *State) ScrollY() float64 { return s.scrollY }

// LastScrollY is the offset before the most recent scroll.
func (s *State) LastScrollY() float64 { return s.lastScrollY }

// ScrollTo records a new offset, remembering the previous one.
func (s *State) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	s.lastScrollY = s.scrollY
	s.scrollY = y
}
