// Package scroll derives the scroll-linked page state: header style and
// visibility, the back-to-top button, the hero parallax and smooth scrolling.
package scroll

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// HeaderState is how the fixed header is drawn.
type HeaderState struct {
	Solid  bool // stronger background and shadow
	Hidden bool // slid out of view
}

// Header follows the scroll position. Past HeaderHideAfter it hides while
// scrolling down and reappears while scrolling up; above that it keeps its
// last visibility.
func Header(prev HeaderState, lastY, y float64) HeaderState {
	next := HeaderState{
		Solid:  y > config.HeaderSolidAfter,
		Hidden: prev.Hidden,
	}
	if y > config.HeaderHideAfter {
		next.Hidden = y > lastY
	}
	return next
}

// ShowBackToTop reports whether the back-to-top button is visible.
func ShowBackToTop(y float64) bool { return y > config.ScrollTopShowAfter }

// ParallaxOffset is the vertical background shift of the hero section.
func ParallaxOffset(y float64) float64 { return y * config.ParallaxRate }

// AnchorTarget is the scroll offset that puts an element at elementTop (in
// page coordinates) just below the fixed header.
func AnchorTarget(elementTop, headerHeight float64) float64 {
	return math.Max(0, elementTop-headerHeight)
}

// Smooth animates the scroll offset towards a target with a cubic
// ease-in-out.
type Smooth struct {
	tween  *gween.Tween
	to     float64
	start  time.Time
	active bool
}

// Start begins an animation from the current offset to target.
func (s *Smooth) Start(from, to float64, now time.Time, d time.Duration) {
	if d <= 0 {
		d = config.SmoothScrollMs * time.Millisecond
	}
	*s = Smooth{
		tween:  gween.New(float32(from), float32(to), float32(d.Seconds()), ease.InOutCubic),
		to:     to,
		start:  now,
		active: true,
	}
}

// Active reports whether an animation is in progress.
func (s *Smooth) Active() bool { return s.active }

// Cancel stops the animation where it is, e.g. when the user scrolls.
func (s *Smooth) Cancel() { s.active = false }

// At returns the offset for now and whether the animation is still running.
// The tween is positioned from the wall clock rather than stepped, so a slow
// frame does not slow the scroll down.
func (s *Smooth) At(now time.Time) (float64, bool) {
	if !s.active {
		return s.to, false
	}
	y, done := s.tween.Set(float32(max(now.Sub(s.start).Seconds(), 0)))
	if done {
		s.active = false
		return s.to, false
	}
	return float64(y), true
}
