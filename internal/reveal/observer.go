// Package reveal runs the visibility-triggered page effects: fade-ins, stat
// counters, skill bars and the hero typewriter.
package reveal

import "sort"

// Rect is an element's box in page coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Target is one observed element.
type Target struct {
	ID       string
	Rect     Rect
	Visible  bool
	OnReveal func(id string)

	// Repeat keeps the target watched after it fires. It fires again each
	// time it re-enters the viewport.
	Repeat bool
	inView bool
}

// Observer marks targets visible the first time enough of them enters the
// viewport. Once revealed a target is no longer observed, unless it was added
// with ObserveEach.
type Observer struct {
	// Threshold is the fraction of the element's height that must be inside
	// the viewport.
	Threshold float64
	// BottomInset shrinks the viewport from the bottom, in pixels.
	BottomInset float64

	targets map[string]*Target
}

// NewObserver returns an observer with the given trigger settings.
func NewObserver(threshold, bottomInset float64) *Observer {
	return &Observer{
		Threshold:   threshold,
		BottomInset: bottomInset,
		targets:     map[string]*Target{},
	}
}

// Observe starts watching an element. onReveal may be nil.
func (o *Observer) Observe(id string, r Rect, onReveal func(id string)) {
	o.targets[id] = &Target{ID: id, Rect: r, OnReveal: onReveal}
}

// ObserveEach watches an element for every entry into the viewport.
// Re-observing a repeating target only moves it.
func (o *Observer) ObserveEach(id string, r Rect, onEnter func(id string)) {
	if t, ok := o.targets[id]; ok && t.Repeat {
		t.Rect, t.OnReveal = r, onEnter
		return
	}
	o.targets[id] = &Target{ID: id, Rect: r, OnReveal: onEnter, Repeat: true}
}

// Unobserve stops watching an element.
func (o *Observer) Unobserve(id string) { delete(o.targets, id) }

// Observed reports how many elements are still watched.
func (o *Observer) Observed() int { return len(o.targets) }

// Ratio is the fraction of r's height inside the vertical span [top, bottom).
func Ratio(r Rect, top, bottom float64) float64 {
	if r.H <= 0 {
		if r.Y >= top && r.Y < bottom {
			return 1
		}
		return 0
	}
	lo := max(r.Y, top)
	hi := min(r.Y+r.H, bottom)
	if hi <= lo {
		return 0
	}
	return (hi - lo) / r.H
}

// Check evaluates every watched element against a viewport scrolled to
// scrollY with the given height and returns the ids revealed by this call, in
// page order. A repeating target is reported only on the check where it goes
// from out of view to in view.
func (o *Observer) Check(scrollY, viewportHeight float64) []string {
	top := scrollY
	bottom := scrollY + viewportHeight - o.BottomInset
	var hit []*Target
	for _, t := range o.targets {
		ratio := Ratio(t.Rect, top, bottom)
		in := ratio > 0 && ratio >= o.Threshold
		entered := in && !t.inView
		if t.Repeat {
			t.inView = in
		}
		if !entered {
			continue
		}
		hit = append(hit, t)
	}
	sort.Slice(hit, func(i, j int) bool {
		if hit[i].Rect.Y != hit[j].Rect.Y {
			return hit[i].Rect.Y < hit[j].Rect.Y
		}
		return hit[i].ID < hit[j].ID
	})

	ids := make([]string, 0, len(hit))
	for _, t := range hit {
		t.Visible = true
		if !t.Repeat {
			delete(o.targets, t.ID)
		}
		ids = append(ids, t.ID)
		if t.OnReveal != nil {
			t.OnReveal(t.ID)
		}
	}
	return ids
}
