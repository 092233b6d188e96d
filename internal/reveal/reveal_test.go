package reveal

import (
	"math/rand"
	"testing"
	"time"
)

func TestRatio(t *testing.T) {
	r := Rect{Y: 100, H: 200}
	tests := []struct {
		top, bottom float64
		want        float64
	}{
		{0, 100, 0},
		{0, 150, 0.25},
		{0, 1000, 1},
		{250, 1000, 0.25},
		{300, 1000, 0},
	}
	for _, tt := range tests {
		if got := Ratio(r, tt.top, tt.bottom); got != tt.want {
			t.Errorf("Ratio(%v..%v) = %v, want %v", tt.top, tt.bottom, got, tt.want)
		}
	}
}

func TestObserverOneShot(t *testing.T) {
	o := NewObserver(0.15, 50)
	var revealed []string
	cb := func(id string) { revealed = append(revealed, id) }
	o.Observe("about", Rect{Y: 900, H: 400}, cb)
	o.Observe("hero", Rect{Y: 0, H: 600}, cb)
	o.Observe("contact", Rect{Y: 3000, H: 400}, cb)

	// Viewport 0..800 minus 50px inset: hero fully in, about 0/400 in.
	got := o.Check(0, 800)
	if len(got) != 1 || got[0] != "hero" {
		t.Fatalf("first check revealed %v", got)
	}

	// Scrolled to 300: bottom edge 1050, about has 150/400 = 0.375 visible.
	got = o.Check(300, 800)
	if len(got) != 1 || got[0] != "about" {
		t.Fatalf("second check revealed %v", got)
	}

	// Back to the top: already revealed targets are not reported again.
	if got := o.Check(0, 800); len(got) != 0 {
		t.Errorf("re-revealed %v", got)
	}
	if o.Observed() != 1 {
		t.Errorf("Observed = %d, want 1", o.Observed())
	}
	if len(revealed) != 2 {
		t.Errorf("callbacks = %v", revealed)
	}
}

func TestObserverThreshold(t *testing.T) {
	o := NewObserver(0.5, 0)
	o.Observe("skills", Rect{Y: 700, H: 200}, nil)
	if got := o.Check(0, 790); len(got) != 0 {
		t.Errorf("revealed at 45%%: %v", got)
	}
	if got := o.Check(0, 800); len(got) != 1 {
		t.Errorf("not revealed at 50%%: %v", got)
	}
}

func TestObserveEachFiresOnEveryEntry(t *testing.T) {
	o := NewObserver(0.5, 0)
	entries := 0
	o.ObserveEach("skills", Rect{Y: 700, H: 200}, func(string) { entries++ })

	steps := []struct {
		scrollY float64
		want    int
	}{
		{0, 1},    // in view
		{50, 1},   // still in view
		{2000, 1}, // away
		{0, 2},    // back again
	}
	for _, st := range steps {
		o.Check(st.scrollY, 800)
		if entries != st.want {
			t.Errorf("after scroll to %v: %d entries, want %d", st.scrollY, entries, st.want)
		}
	}
	if o.Observed() != 1 {
		t.Errorf("Observed = %d, want 1", o.Observed())
	}

	// Moving the target keeps its in-view state.
	o.ObserveEach("skills", Rect{Y: 650, H: 200}, func(string) { entries++ })
	o.Check(0, 800)
	if entries != 2 {
		t.Errorf("re-observing fired again: %d entries", entries)
	}
}

func TestObserverPageOrder(t *testing.T) {
	o := NewObserver(0, 0)
	o.Observe("b", Rect{Y: 200, H: 10}, nil)
	o.Observe("a", Rect{Y: 100, H: 10}, nil)
	o.Observe("c", Rect{Y: 100, H: 10}, nil)
	o.Unobserve("c")
	got := o.Check(0, 1000)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("order = %v", got)
	}
}

func TestCounter(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewCounter(50)
	if c.Text(start) != "0+" {
		t.Errorf("before start = %q", c.Text(start))
	}
	c.Start(start)
	c.Start(start.Add(time.Second))
	if got := c.Text(start.Add(time.Second)); got != "25+" {
		t.Errorf("halfway = %q, want 25+", got)
	}
	if got := c.Text(start.Add(5 * time.Second)); got != "50+" {
		t.Errorf("end = %q, want 50+", got)
	}
	if !c.Done(start.Add(2 * time.Second)) {
		t.Error("not done after duration")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		value, end int
		want       string
	}{
		{0, 50, "0+"},
		{42, 50, "42+"},
		{0, 1500, "0.0K+"},
		{700, 1500, "0.7K+"},
		{1500, 1500, "1.5K+"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.value, tt.end); got != tt.want {
			t.Errorf("FormatCount(%d,%d) = %q, want %q", tt.value, tt.end, got, tt.want)
		}
	}
}

func TestSkillWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := map[int]bool{}
	for _, w := range SkillWidths(rng, 2000, 70, 100) {
		if w < 70 || w > 100 {
			t.Fatalf("width %d out of range", w)
		}
		seen[w] = true
	}
	if !seen[70] || !seen[100] {
		t.Error("range bounds never drawn")
	}
	for _, w := range SkillWidths(rng, 10, 90, 80) {
		if w < 80 || w > 90 {
			t.Fatalf("swapped range produced %d", w)
		}
	}
}

func TestTypewriter(t *testing.T) {
	start := time.Unix(0, 0)
	tw := NewTypewriter("héllo", start)
	tests := []struct {
		at   time.Duration
		want string
	}{
		{0, ""},
		{999 * time.Millisecond, ""},
		{1000 * time.Millisecond, "h"},
		{1049 * time.Millisecond, "h"},
		{1050 * time.Millisecond, "hé"},
		{1099 * time.Millisecond, "hé"},
		{1100 * time.Millisecond, "hél"},
		{10 * time.Second, "héllo"},
	}
	for _, tt := range tests {
		if got := tw.Visible(start.Add(tt.at)); got != tt.want {
			t.Errorf("at %v: %q, want %q", tt.at, got, tt.want)
		}
	}
	if !tw.Done(start.Add(2 * time.Second)) {
		t.Error("not done")
	}
}
