// Package hover tracks pointer micro-interactions per page element.
//
// Every element gets an explicit record with an idle -> animating -> idle
// cycle; pointer moves that arrive while a record is animating are dropped,
// which throttles tilt updates to one per ThrottleWindow.
package hover

import (
	"time"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// Kind selects the effect applied to an element.
type Kind int

const (
	NavLink Kind = iota
	Card
	SkillTag
	Button
)

// Phase is the throttle state of an element.
type Phase int

const (
	Idle Phase = iota
	Animating
)

// ThrottleWindow is how long a tilt update blocks the next one.
const ThrottleWindow = config.HoverThrottleMs * time.Millisecond

// Effect is the visual transform of an element.
type Effect struct {
	LiftPx  float64
	Scale   float64
	RotateX float64 // degrees
	RotateY float64 // degrees
	Glow    bool
	GlowX   float64 // pointer position inside the element
	GlowY   float64
}

// Rest is the transform of an element nobody hovers.
var Rest = Effect{Scale: 1}

// Record is the per-element state.
type Record struct {
	Kind    Kind
	Hovered bool
	Phase   Phase
	Effect  Effect
	until   time.Time
}

// Tracker owns every element record, keyed by element id.
type Tracker struct {
	records map[string]*Record
	now     func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{records: map[string]*Record{}, now: time.Now}
}

// SetClock replaces the time source, for tests.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// Register adds an element. Registering an existing id resets it.
func (t *Tracker) Register(id string, kind Kind) {
	t.records[id] = &Record{Kind: kind, Effect: Rest}
}

// Get returns a copy of the element's record.
func (t *Tracker) Get(id string) (Record, bool) {
	r, ok := t.records[id]
	if !ok {
		return Record{}, false
	}
	t.settle(r)
	return *r, true
}

// Effect is the current transform of id, Rest for unknown elements.
func (t *Tracker) Effect(id string) Effect {
	r, ok := t.Get(id)
	if !ok {
		return Rest
	}
	return r.Effect
}

// Enter applies the hover transform of the element's kind.
func (t *Tracker) Enter(id string) {
	r, ok := t.records[id]
	if !ok || r.Hovered {
		return
	}
	r.Hovered = true
	switch r.Kind {
	case NavLink:
		r.Effect = Effect{LiftPx: config.NavLinkLiftPx, Scale: 1}
	case Card:
		r.Effect = Effect{LiftPx: config.HoverLiftPx, Scale: 1, RotateX: 2, RotateY: 2, Glow: true}
	case SkillTag:
		r.Effect = Effect{LiftPx: config.SkillTagLiftPx, Scale: config.SkillTagScale}
	case Button:
		r.Effect = Effect{LiftPx: config.ButtonLiftPx, Scale: config.ButtonScale}
	}
}

// Leave returns the element to rest and ends any animation.
func (t *Tracker) Leave(id string) {
	r, ok := t.records[id]
	if !ok {
		return
	}
	r.Hovered = false
	r.Phase = Idle
	r.Effect = Rest
}

// Move tilts a hovered card towards the pointer at (x, y) inside a w x h
// element and moves its glow there. It reports whether the move was applied;
// moves during the throttle window are dropped.
func (t *Tracker) Move(id string, x, y, w, h float64) bool {
	r, ok := t.records[id]
	if !ok || r.Kind != Card || !r.Hovered {
		return false
	}
	t.settle(r)
	if r.Phase == Animating {
		return false
	}
	cx, cy := w/2, h/2
	r.Effect.RotateY = (x - cx) / config.HoverTiltDivisor
	r.Effect.RotateX = (cy - y) / config.HoverTiltDivisor
	r.Effect.GlowX, r.Effect.GlowY = x, y
	r.Phase = Animating
	r.until = t.now().Add(ThrottleWindow)
	return true
}

// settle finishes an animation whose window has passed.
func (t *Tracker) settle(r *Record) {
	if r.Phase == Animating && !t.now().Before(r.until) {
		r.Phase = Idle
	}
}
