// Package particles animates the decorative background of the page: a fixed
// set of slowly drifting points joined by faint lines when they are close.
//
// A Field is owned by one host and is not safe for concurrent use. Hosts run
// Tick, Resize and Stop from the same frame scheduler, which serializes them.
package particles

import (
	"image/color"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/frame"
)

// Surface is the drawing target of a field. It spans the whole viewport and
// sits beneath all interactive content.
type Surface interface {
	Size() (width, height int)
	SetSize(width, height int)
	Clear()
	FillCircle(x, y, radius float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	Release()
}

// SurfaceFactory allocates a surface of the given size. It may return nil when
// the host cannot draw, in which case the field stays idle.
type SurfaceFactory func(width, height int) Surface

// FrameHost provides the refresh cadence a running field ticks on.
type FrameHost interface {
	RequestFrame(fn func()) frame.ID
	CancelFrame(id frame.ID)
}

// Option configures a Field.
type Option func(*Field)

// WithShrinkPolicy selects how Resize treats particles outside a smaller surface.
func WithShrinkPolicy(p config.ShrinkPolicy) Option {
	return func(f *Field) { f.shrink = p }
}

// WithLogger routes the field's diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// Field is the handle of one initialized particle field.
type Field struct {
	particles []Particle
	surface   Surface
	width     int
	height    int
	shrink    config.ShrinkPolicy
	logger    *log.Logger

	host    FrameHost
	frameID frame.ID
	running bool
	stopped bool
	ticks   uint64
}

// Initialize builds a field covering a width x height viewport. A degenerate
// viewport or a missing surface yields an idle field whose methods do nothing.
// A nil rng is replaced by a time-seeded source.
func Initialize(width, height int, rng *rand.Rand, newSurface SurfaceFactory, opts ...Option) *Field {
	f := &Field{
		shrink: config.ShrinkClamp,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(f)
	}

	if width <= 0 || height <= 0 {
		f.logger.Printf("viewport %dx%d is empty, field idle", width, height)
		return f
	}
	if newSurface == nil {
		f.logger.Printf("no drawing surface available, field idle")
		return f
	}
	surface := newSurface(width, height)
	if surface == nil {
		f.logger.Printf("drawing surface allocation failed, field idle")
		return f
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f.surface = surface
	f.width, f.height = width, height
	n := Count(width)
	f.particles = make([]Particle, n)
	for i := range f.particles {
		f.particles[i] = newParticle(rng, float64(width), float64(height))
	}
	f.logger.Printf("field initialized: %d particles on %dx%d", n, width, height)
	return f
}

// Idle reports whether the field has nothing to draw on.
func (f *Field) Idle() bool { return f.surface == nil }

// Count is the number of particles, fixed for the lifetime of the field.
func (f *Field) Count() int { return len(f.particles) }

// Particles returns a copy of the current particle state.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Size is the extent particles are bounded by.
func (f *Field) Size() (int, int) { return f.width, f.height }

// Surface is the drawing target, nil once the field is idle or stopped.
func (f *Field) Surface() Surface { return f.surface }

// Ticks reports how many ticks have completed.
func (f *Field) Ticks() uint64 { return f.ticks }

// Running reports whether a frame callback is scheduled.
func (f *Field) Running() bool { return f.running }

// Resize follows the viewport. Particles keep their count and velocities;
// with the clamp policy any coordinate outside the new extent is moved onto
// its edge so the next boundary check can turn it around.
func (f *Field) Resize(width, height int) {
	if f.surface == nil {
		return
	}
	width, height = max(width, 0), max(height, 0)
	f.width, f.height = width, height
	f.surface.SetSize(width, height)

	if f.shrink != config.ShrinkClamp {
		return
	}
	w, h := float64(width), float64(height)
	for i := range f.particles {
		p := &f.particles[i]
		if p.X > w {
			p.X = w
		}
		if p.Y > h {
			p.Y = h
		}
	}
}

// Tick advances every particle one step and redraws the surface: discs first,
// then one line per unordered pair closer than the proximity threshold.
func (f *Field) Tick() {
	if f.surface == nil {
		return
	}
	w, h := float64(f.width), float64(f.height)
	for i := range f.particles {
		f.particles[i].step(w, h)
	}

	f.surface.Clear()
	for _, p := range f.particles {
		f.surface.FillCircle(p.X, p.Y, p.Radius, p.Color())
	}
	// Brute force on purpose: N is capped at MaxParticles.
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j]
			alpha, ok := LineAlpha(a, b)
			if !ok {
				continue
			}
			f.surface.StrokeLine(a.X, a.Y, b.X, b.Y, config.LineWidth, hueColor(alpha))
		}
	}
	f.ticks++
}

// Run ticks the field once per refresh of host until Stop. Running an idle,
// stopped or already running field does nothing.
func (f *Field) Run(host FrameHost) {
	if f.surface == nil || f.running || host == nil {
		return
	}
	f.host = host
	f.running = true
	f.frameID = f.host.RequestFrame(f.onFrame)
}

func (f *Field) onFrame() {
	if !f.running {
		return
	}
	f.Tick()
	if f.running {
		f.frameID = f.host.RequestFrame(f.onFrame)
	}
}

// Stop cancels the pending frame and releases the surface. No tick or draw
// happens afterwards. Stopping twice is a no-op.
func (f *Field) Stop() {
	if f.stopped {
		return
	}
	f.stopped = true
	if f.running {
		f.running = false
		f.host.CancelFrame(f.frameID)
	}
	if f.surface != nil {
		f.surface.Release()
		f.surface = nil
	}
	f.logger.Printf("field stopped after %d ticks", f.ticks)
}
