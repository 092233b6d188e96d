package notify

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type captureMirror struct{ got []Toast }

func (m *captureMirror) Notify(t Toast) { m.got = append(m.got, t) }

func TestToastLifecycle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	d := NewDisplayer()
	d.SetClock(clock.now)

	if _, _, ok := d.Current(); ok {
		t.Fatal("toast visible before Show")
	}

	d.Show("hello", Info)
	_, off, ok := d.Current()
	if !ok || off != 1 {
		t.Fatalf("just shown: ok=%v offset=%v, want offscreen start", ok, off)
	}

	clock.advance(150 * time.Millisecond)
	if _, off, _ := d.Current(); math.Abs(off-0.5) > 1e-9 {
		t.Errorf("mid slide-in offset = %v, want 0.5", off)
	}

	clock.advance(2 * time.Second)
	if _, off, _ := d.Current(); off != 0 {
		t.Errorf("resting offset = %v, want 0", off)
	}

	clock.advance(3 * time.Second)
	if tt, off, ok := d.Current(); !ok || math.Abs(off-0.5) > 1e-9 || tt.Message != "hello" {
		t.Errorf("mid slide-out: ok=%v offset=%v", ok, off)
	}

	clock.advance(200 * time.Millisecond)
	if _, _, ok := d.Current(); ok {
		t.Error("toast still visible after dismissal time")
	}
}

func TestShowReplacesExisting(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	mirror := &captureMirror{}
	d := NewDisplayer(mirror)
	d.SetClock(clock.now)

	d.Show("first", Error)
	clock.advance(4 * time.Second)
	d.Show("second", "bogus")

	tt, _, ok := d.Current()
	if !ok || tt.Message != "second" {
		t.Fatalf("current = %+v, want second", tt)
	}
	if tt.Kind != Info {
		t.Errorf("unknown kind mapped to %q, want info", tt.Kind)
	}
	clock.advance(4 * time.Second)
	if _, _, ok := d.Current(); !ok {
		t.Error("replacement toast should have its own timer")
	}
	if len(mirror.got) != 2 || mirror.got[0].ID == mirror.got[1].ID {
		t.Errorf("mirror saw %d toasts with ids %v", len(mirror.got), mirror.got)
	}
}

func TestDismiss(t *testing.T) {
	d := NewDisplayer()
	d.Show("x", Warning)
	d.Dismiss()
	if _, _, ok := d.Current(); ok {
		t.Error("toast visible after Dismiss")
	}
}

func TestKindColors(t *testing.T) {
	tests := map[Kind][3]uint8{
		Success: {0x10, 0xb9, 0x81},
		Error:   {0xef, 0x44, 0x44},
		Warning: {0xf5, 0x9e, 0x0b},
		Info:    {0x3b, 0x82, 0xf6},
		"nope":  {0x3b, 0x82, 0xf6},
	}
	for kind, want := range tests {
		c := kind.Color()
		if c.R != want[0] || c.G != want[1] || c.B != want[2] {
			t.Errorf("%s colour = %v, want %v", kind, c, want)
		}
	}
}

func TestToneFadesAndEnds(t *testing.T) {
	s := tone(Success)
	buf := make([][2]float64, 1024)
	total := 0
	var last float64
	for {
		n, ok := s.Stream(buf)
		total += n
		if n > 0 {
			last = math.Abs(buf[n-1][0])
		}
		if !ok {
			break
		}
	}
	want := chimeSampleRate.N(chimeLength)
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if last > 0.01 {
		t.Errorf("final sample %v, want faded to near silence", last)
	}
	if s.Err() != nil {
		t.Errorf("Err = %v", s.Err())
	}
}
