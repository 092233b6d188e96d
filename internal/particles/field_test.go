package particles

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/frame"
)

type line struct {
	x0, y0, x1, y1 float64
	clr            color.NRGBA
}

// recorder is a Surface that remembers the draw calls of the last frame.
type recorder struct {
	width, height int
	clears        int
	discs         int
	lines         []line
	released      int
	drawsAfterRel int
}

func newRecorder(width, height int) Surface {
	return &recorder{width: width, height: height}
}

func (r *recorder) Size() (int, int) { return r.width, r.height }
func (r *recorder) SetSize(w, h int) { r.width, r.height = w, h }
func (r *recorder) Release()         { r.released++ }

func (r *recorder) Clear() {
	r.note()
	r.clears++
	r.discs = 0
	r.lines = nil
}

func (r *recorder) FillCircle(_, _, _ float64, _ color.Color) {
	r.note()
	r.discs++
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, _ float64, clr color.Color) {
	r.note()
	r.lines = append(r.lines, line{x0, y0, x1, y1, color.NRGBAModel.Convert(clr).(color.NRGBA)})
}

func (r *recorder) note() {
	if r.released > 0 {
		r.drawsAfterRel++
	}
}

// fakeHost is a FrameHost that fires callbacks only when told to.
type fakeHost struct {
	next      frame.ID
	pending   map[frame.ID]func()
	cancelled int
}

func newFakeHost() *fakeHost { return &fakeHost{pending: map[frame.ID]func(){}} }

func (h *fakeHost) RequestFrame(fn func()) frame.ID {
	h.next++
	h.pending[h.next] = fn
	return h.next
}

func (h *fakeHost) CancelFrame(id frame.ID) {
	if _, ok := h.pending[id]; ok {
		h.cancelled++
	}
	delete(h.pending, id)
}

func (h *fakeHost) refresh() {
	due := h.pending
	h.pending = map[frame.ID]func(){}
	for _, fn := range due {
		fn()
	}
}

func seeded() *rand.Rand { return rand.New(rand.NewSource(7)) }

func TestCount(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{-10, 0},
		{0, 0},
		{19, 0},
		{20, 1},
		{400, 20},
		{1999, 99},
		{2000, 100},
		{5000, 100},
	}
	for _, tt := range tests {
		if got := Count(tt.width); got != tt.want {
			t.Errorf("Count(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestInitializeCount(t *testing.T) {
	for _, width := range []int{1, 20, 399, 400, 1024, 2000, 3840} {
		f := Initialize(width, 600, seeded(), newRecorder)
		want := min(config.MaxParticles, width/config.DensityDivisor)
		if f.Count() != want {
			t.Errorf("width %d: Count = %d, want %d", width, f.Count(), want)
		}
		for i := 0; i < 10; i++ {
			f.Tick()
		}
		f.Resize(width/2, 300)
		f.Tick()
		if f.Count() != want {
			t.Errorf("width %d: Count changed to %d after ticks and resize", width, f.Count())
		}
	}
}

func TestInitializeConcreteWidths(t *testing.T) {
	if n := Initialize(2000, 1000, seeded(), newRecorder).Count(); n != 100 {
		t.Errorf("width 2000: %d particles, want 100", n)
	}
	if n := Initialize(400, 1000, seeded(), newRecorder).Count(); n != 20 {
		t.Errorf("width 400: %d particles, want 20", n)
	}
}

func TestInitializeRanges(t *testing.T) {
	const w, h = 1600, 900
	for seed := int64(1); seed <= 3; seed++ {
		f := Initialize(w, h, rand.New(rand.NewSource(seed)), newRecorder)
		for i, p := range f.Particles() {
			if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
				t.Errorf("seed %d particle %d: position (%v,%v) outside surface", seed, i, p.X, p.Y)
			}
			if p.Radius < config.MinParticleRadius || p.Radius >= config.MaxParticleRadius {
				t.Errorf("seed %d particle %d: radius %v out of range", seed, i, p.Radius)
			}
			if math.Abs(p.VX) > config.MaxParticleSpeed || math.Abs(p.VY) > config.MaxParticleSpeed {
				t.Errorf("seed %d particle %d: velocity (%v,%v) out of range", seed, i, p.VX, p.VY)
			}
			if p.Alpha < config.MinParticleAlpha || p.Alpha >= config.MaxParticleAlpha {
				t.Errorf("seed %d particle %d: alpha %v out of range", seed, i, p.Alpha)
			}
		}
	}
}

func TestInitializeSameSeedSameField(t *testing.T) {
	a := Initialize(800, 600, rand.New(rand.NewSource(99)), newRecorder).Particles()
	b := Initialize(800, 600, rand.New(rand.NewSource(99)), newRecorder).Particles()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestZeroViewportIsIdle(t *testing.T) {
	allocated := false
	factory := func(w, h int) Surface {
		allocated = true
		return newRecorder(w, h)
	}
	f := Initialize(0, 0, seeded(), factory)
	if !f.Idle() || f.Count() != 0 {
		t.Fatalf("Idle = %v, Count = %d; want idle with 0 particles", f.Idle(), f.Count())
	}
	if allocated {
		t.Error("surface allocated for an empty viewport")
	}
	f.Tick()
	f.Resize(100, 100)
	host := newFakeHost()
	f.Run(host)
	if len(host.pending) != 0 {
		t.Error("idle field requested a frame")
	}
	f.Stop()
	f.Stop()
}

func TestMissingSurfaceIsIdle(t *testing.T) {
	if f := Initialize(800, 600, seeded(), nil); !f.Idle() {
		t.Error("nil factory: field not idle")
	}
	nilFactory := func(int, int) Surface { return nil }
	f := Initialize(800, 600, seeded(), nilFactory)
	if !f.Idle() || f.Count() != 0 {
		t.Error("nil surface: field not idle")
	}
	f.Tick()
}

func TestTickMovesByVelocityAndReflects(t *testing.T) {
	f := Initialize(400, 300, seeded(), newRecorder)
	f.particles = []Particle{
		{X: 10, Y: 10, VX: 0.2, VY: -0.1, Radius: 1, Alpha: 0.2},
		{X: 0.1, Y: 150, VX: -0.25, VY: 0, Radius: 1, Alpha: 0.2},
		{X: 399.9, Y: 299.9, VX: 0.2, VY: 0.2, Radius: 1, Alpha: 0.2},
		{X: 200, Y: 0.05, VX: 0, VY: -0.1, Radius: 1, Alpha: 0.2},
	}
	before := f.Particles()
	f.Tick()
	after := f.Particles()

	for i := range before {
		b, a := before[i], after[i]
		if a.X != b.X+b.VX || a.Y != b.Y+b.VY {
			t.Errorf("particle %d: moved to (%v,%v), want (%v,%v)", i, a.X, a.Y, b.X+b.VX, b.Y+b.VY)
		}
		wantVX, wantVY := b.VX, b.VY
		if a.X < 0 || a.X > 400 {
			wantVX = -b.VX
		}
		if a.Y < 0 || a.Y > 300 {
			wantVY = -b.VY
		}
		if a.VX != wantVX || a.VY != wantVY {
			t.Errorf("particle %d: velocity (%v,%v), want (%v,%v)", i, a.VX, a.VY, wantVX, wantVY)
		}
		if a.Radius != b.Radius || a.Alpha != b.Alpha {
			t.Errorf("particle %d: radius or alpha changed", i)
		}
	}
	if after[2].VX >= 0 || after[2].VY >= 0 {
		t.Errorf("corner particle should reflect on both axes, got (%v,%v)", after[2].VX, after[2].VY)
	}
}

func TestTickDrawsDiscsAndPairLinesOnce(t *testing.T) {
	f := Initialize(1000, 1000, seeded(), newRecorder)
	f.particles = []Particle{
		{X: 100, Y: 100, Radius: 1, Alpha: 0.2},
		{X: 150, Y: 100, Radius: 1, Alpha: 0.2}, // 50 from #0
		{X: 100, Y: 199, Radius: 1, Alpha: 0.2}, // 99 from #0
		{X: 500, Y: 500, Radius: 1, Alpha: 0.2}, // far from everyone
		{X: 100, Y: 200, Radius: 1, Alpha: 0.2}, // 100 from #0, 1 from #2
	}
	f.Tick()
	r := f.Surface().(*recorder)

	if r.clears != 1 {
		t.Errorf("clears = %d, want 1", r.clears)
	}
	if r.discs != 5 {
		t.Errorf("discs = %d, want 5", r.discs)
	}
	// Pairs under 100: (0,1)=50, (0,2)=99, (1,2)=~111 no, (2,4)=1, (1,4)=~111 no, (0,4)=100 no.
	if len(r.lines) != 3 {
		t.Fatalf("lines = %d, want 3: %+v", len(r.lines), r.lines)
	}
	seen := map[[4]float64]bool{}
	for _, l := range r.lines {
		key := [4]float64{l.x0, l.y0, l.x1, l.y1}
		rev := [4]float64{l.x1, l.y1, l.x0, l.y0}
		if seen[key] || seen[rev] {
			t.Errorf("pair drawn twice: %+v", l)
		}
		seen[key] = true
		if l.clr.R != config.ParticleR || l.clr.G != config.ParticleG || l.clr.B != config.ParticleB {
			t.Errorf("line colour %+v not the field hue", l.clr)
		}
	}
}

func TestLineAlpha(t *testing.T) {
	tests := []struct {
		name   string
		d      float64
		want   float64
		wantOK bool
	}{
		{"touching", 0, config.BaseLineAlpha, true},
		{"half", 50, config.BaseLineAlpha / 2, true},
		{"threshold", 100, 0, false},
		{"beyond", 150, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Particle{X: 10, Y: 10}
			b := Particle{X: 10 + tt.d, Y: 10}
			got, ok := LineAlpha(a, b)
			if ok != tt.wantOK || math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("LineAlpha = (%v,%v), want (%v,%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLineAlphaSymmetric(t *testing.T) {
	rng := seeded()
	for i := 0; i < 500; i++ {
		a := Particle{X: rng.Float64() * 300, Y: rng.Float64() * 300}
		b := Particle{X: rng.Float64() * 300, Y: rng.Float64() * 300}
		ab, okAB := LineAlpha(a, b)
		ba, okBA := LineAlpha(b, a)
		if ab != ba || okAB != okBA {
			t.Fatalf("asymmetric: (%v,%v) vs (%v,%v) for %+v %+v", ab, okAB, ba, okBA, a, b)
		}
	}
}

func TestRunTicksOncePerRefresh(t *testing.T) {
	f := Initialize(800, 600, seeded(), newRecorder)
	host := newFakeHost()
	f.Run(host)
	f.Run(host)
	if len(host.pending) != 1 {
		t.Fatalf("pending frames = %d, want 1", len(host.pending))
	}
	for i := 0; i < 4; i++ {
		host.refresh()
	}
	if f.Ticks() != 4 {
		t.Errorf("Ticks = %d, want 4", f.Ticks())
	}
}

func TestStopIsIdempotentAndFinal(t *testing.T) {
	f := Initialize(800, 600, seeded(), newRecorder)
	r := f.Surface().(*recorder)
	host := newFakeHost()
	f.Run(host)
	host.refresh()

	f.Stop()
	snapshot := f.Particles()
	f.Stop()

	if r.released != 1 {
		t.Errorf("surface released %d times, want 1", r.released)
	}
	if host.cancelled != 1 {
		t.Errorf("frames cancelled = %d, want 1", host.cancelled)
	}
	if f.Running() || f.Surface() != nil {
		t.Error("stopped field still running or holding a surface")
	}

	f.Tick()
	host.refresh()
	f.Run(host)
	host.refresh()

	if f.Ticks() != 1 {
		t.Errorf("Ticks = %d after stop, want 1", f.Ticks())
	}
	if r.drawsAfterRel != 0 {
		t.Errorf("%d draw calls after release", r.drawsAfterRel)
	}
	for i, p := range f.Particles() {
		if p != snapshot[i] {
			t.Fatalf("particle %d mutated after stop", i)
		}
	}
}

func TestStopInsideQueuedRefresh(t *testing.T) {
	f := Initialize(800, 600, seeded(), newRecorder)
	s := frame.NewScheduler()
	f.Run(s)
	// A task posted ahead of the frame stops the field; the queued frame
	// callback must then do nothing.
	s.Post(f.Stop)
	s.Pump()
	if f.Ticks() != 0 {
		t.Errorf("Ticks = %d, want 0", f.Ticks())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestResizeClampPolicy(t *testing.T) {
	f := Initialize(1000, 800, seeded(), newRecorder)
	f.particles = []Particle{
		{X: 900, Y: 700, VX: 0.25, VY: -0.25, Radius: 1, Alpha: 0.2},
		{X: 100, Y: 100, VX: 0.25, VY: 0.25, Radius: 1, Alpha: 0.2},
	}
	f.Resize(500, 400)

	if w, h := f.Surface().Size(); w != 500 || h != 400 {
		t.Errorf("surface size %dx%d, want 500x400", w, h)
	}
	p := f.Particles()
	if p[0].X != 500 || p[0].Y != 400 {
		t.Errorf("outside particle at (%v,%v), want clamped to (500,400)", p[0].X, p[0].Y)
	}
	if p[0].VX != 0.25 || p[0].VY != -0.25 {
		t.Errorf("clamp changed velocity to (%v,%v)", p[0].VX, p[0].VY)
	}
	if p[1].X != 100 || p[1].Y != 100 {
		t.Error("inside particle moved on resize")
	}

	// The clamped particle heads back inside instead of oscillating.
	for i := 0; i < 3; i++ {
		f.Tick()
	}
	q := f.Particles()[0]
	if q.X > 500 || q.Y > 400 {
		t.Errorf("clamped particle still outside after ticks: (%v,%v)", q.X, q.Y)
	}
}

func TestResizeKeepPolicy(t *testing.T) {
	f := Initialize(1000, 800, seeded(), newRecorder, WithShrinkPolicy(config.ShrinkKeep))
	f.particles = []Particle{{X: 900, Y: 700, VX: 0.1, VY: 0.1, Radius: 1, Alpha: 0.2}}
	f.Resize(500, 400)

	if p := f.Particles()[0]; p.X != 900 || p.Y != 700 {
		t.Errorf("keep policy moved particle to (%v,%v)", p.X, p.Y)
	}
	if w, h := f.Size(); w != 500 || h != 400 {
		t.Errorf("Size = %dx%d, want 500x400", w, h)
	}
}

func TestResizeNegativeIsZero(t *testing.T) {
	f := Initialize(400, 400, seeded(), newRecorder)
	f.Resize(-5, -5)
	if w, h := f.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %dx%d, want 0x0", w, h)
	}
	f.Tick()
}
