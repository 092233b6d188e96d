package reveal

import (
	"fmt"
	"math/rand"
	"time"
	"unicode/utf8"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// Counter animates a stat from 0 up to End.
type Counter struct {
	End      int
	Duration time.Duration
	tween    *gween.Tween
	start    time.Time
	started  bool
}

// NewCounter returns a counter with the standard duration.
func NewCounter(end int) *Counter {
	return &Counter{End: end, Duration: config.CounterDurationMs * time.Millisecond}
}

// Start begins counting at now. Restarting is a no-op.
func (c *Counter) Start(now time.Time) {
	if c.started {
		return
	}
	c.started = true
	c.start = now
	c.tween = gween.New(0, float32(c.End), float32(c.Duration.Seconds()), ease.Linear)
}

// Started reports whether the counter has been revealed.
func (c *Counter) Started() bool { return c.started }

// Value is the number shown at now.
func (c *Counter) Value(now time.Time) int {
	if !c.started {
		return 0
	}
	if c.Duration <= 0 {
		return c.End
	}
	v, done := c.tween.Set(float32(max(now.Sub(c.start).Seconds(), 0)))
	if done {
		return c.End
	}
	return int(v)
}

// Text is the formatted value at now.
func (c *Counter) Text(now time.Time) string {
	return FormatCount(c.Value(now), c.End)
}

// Done reports whether the counter reached its end.
func (c *Counter) Done(now time.Time) bool {
	return c.started && now.Sub(c.start) >= c.Duration
}

// FormatCount renders value with a trailing '+', in thousands with one
// decimal when the final value is 1000 or more.
func FormatCount(value, end int) string {
	if end >= 1000 {
		return fmt.Sprintf("%.1fK+", float64(value)/1000)
	}
	return fmt.Sprintf("%d+", value)
}

// SkillWidths draws n bar widths uniformly from [minPct, maxPct].
//
// The widths are placeholder data: they are re-rolled on every reveal and do
// not reflect any real proficiency.
func SkillWidths(rng *rand.Rand, n, minPct, maxPct int) []int {
	if maxPct < minPct {
		minPct, maxPct = maxPct, minPct
	}
	out := make([]int, n)
	for i := range out {
		out[i] = minPct + rng.Intn(maxPct-minPct+1)
	}
	return out
}

// Typewriter reveals text one character at a time.
type Typewriter struct {
	Text  string
	Delay time.Duration
	Speed time.Duration
	start time.Time
}

// NewTypewriter starts typing text at now using the standard timings.
func NewTypewriter(text string, now time.Time) *Typewriter {
	return &Typewriter{
		Text:  text,
		Delay: config.TypewriterDelayMs * time.Millisecond,
		Speed: config.TypewriterSpeedMs * time.Millisecond,
		start: now,
	}
}

// Visible is the typed prefix at now.
func (t *Typewriter) Visible(now time.Time) string {
	elapsed := now.Sub(t.start) - t.Delay
	if elapsed < 0 {
		return ""
	}
	total := utf8.RuneCountInString(t.Text)
	n := total
	if t.Speed > 0 {
		n = min(int(elapsed/t.Speed)+1, total)
	}
	i := 0
	for pos := range t.Text {
		if i == n {
			return t.Text[:pos]
		}
		i++
	}
	return t.Text
}

// Done reports whether the whole text is visible.
func (t *Typewriter) Done(now time.Time) bool {
	return t.Visible(now) == t.Text
}
