// Package notify shows short-lived toast messages and mirrors them to the
// desktop and the speaker when asked to.
package notify

import (
	"image/color"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// Kind is the severity of a toast.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

var kindColors = map[Kind]color.RGBA{
	Success: {R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	Error:   {R: 0xef, G: 0x44, B: 0x44, A: 0xff},
	Warning: {R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	Info:    {R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
}

// Normalize maps unknown kinds to Info.
func (k Kind) Normalize() Kind {
	if _, ok := kindColors[k]; ok {
		return k
	}
	return Info
}

// Color is the background of a toast of this kind.
func (k Kind) Color() color.RGBA { return kindColors[k.Normalize()] }

// Toast is one message on screen.
type Toast struct {
	ID      uuid.UUID
	Message string
	Kind    Kind
	Shown   time.Time
}

// Mirror receives every toast that is shown.
type Mirror interface {
	Notify(t Toast)
}

// Displayer holds at most one toast at a time. It is safe for use from the
// timer goroutines that complete a form submission.
type Displayer struct {
	mu      sync.Mutex
	current *Toast
	mirrors []Mirror
	now     func() time.Time

	Visible time.Duration
	Slide   time.Duration
}

// NewDisplayer returns a displayer with the standard timings.
func NewDisplayer(mirrors ...Mirror) *Displayer {
	return &Displayer{
		mirrors: mirrors,
		now:     time.Now,
		Visible: config.ToastVisibleMs * time.Millisecond,
		Slide:   config.ToastSlideMs * time.Millisecond,
	}
}

// SetClock replaces the time source, for tests.
func (d *Displayer) SetClock(now func() time.Time) { d.now = now }

// Show replaces whatever toast is visible with a new one.
func (d *Displayer) Show(message string, kind Kind) {
	t := Toast{
		ID:      uuid.New(),
		Message: message,
		Kind:    kind.Normalize(),
	}
	d.mu.Lock()
	t.Shown = d.now()
	d.current = &t
	mirrors := d.mirrors
	d.mu.Unlock()

	for _, m := range mirrors {
		m.Notify(t)
	}
}

// Current returns the visible toast and its slide offset in [0,1], where 0
// is fully on screen and 1 fully off. ok is false when nothing is shown.
func (d *Displayer) Current() (t Toast, offset float64, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return Toast{}, 0, false
	}
	age := d.now().Sub(d.current.Shown)
	offset, alive := d.offset(age)
	if !alive {
		d.current = nil
		return Toast{}, 0, false
	}
	return *d.current, offset, true
}

// offset slides in for Slide, holds until Visible, then slides out for Slide.
func (d *Displayer) offset(age time.Duration) (float64, bool) {
	switch {
	case age < 0:
		return 1, true
	case age < d.Slide:
		return 1 - float64(age)/float64(d.Slide), true
	case age < d.Visible:
		return 0, true
	case age < d.Visible+d.Slide:
		return float64(age-d.Visible) / float64(d.Slide), true
	}
	return 0, false
}

// Dismiss removes the visible toast immediately.
func (d *Displayer) Dismiss() {
	d.mu.Lock()
	d.current = nil
	d.mu.Unlock()
}
