package notify

import (
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeLength     = 180 * time.Millisecond
	chimeVolume     = 0.2
)

var chimePitch = map[Kind]float64{
	Success: 880,
	Info:    660,
	Warning: 520,
	Error:   330,
}

// fadeOut wraps a beep.Streamer and applies a linear decay over n samples so
// the tone ends without a click.
type fadeOut struct {
	Source beep.Streamer
	total  int
	pos    int
}

func newFadeOut(src beep.Streamer, n int) *fadeOut {
	return &fadeOut{Source: src, total: n}
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	if f.pos >= f.total {
		return 0, false
	}
	if len(samples) > f.total-f.pos {
		samples = samples[:f.total-f.pos]
	}
	n, ok := f.Source.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(f.pos)/float64(f.total)
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.Source.Err() }

// sine returns an endless sine tone at freq Hz.
func sine(sr beep.SampleRate, freq float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := math.Sin(phase) * chimeVolume
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}

// Chime plays a short tone for every toast, pitched by kind.
type Chime struct {
	Logger   *log.Logger
	initOnce sync.Once
	initErr  error
}

// NewChime returns a chime mirror. The speaker is opened on first use.
func NewChime(logger *log.Logger) *Chime {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Chime{Logger: logger}
}

// tone builds the streamer for kind.
func tone(kind Kind) beep.Streamer {
	pitch, ok := chimePitch[kind]
	if !ok {
		pitch = chimePitch[Info]
	}
	return newFadeOut(sine(chimeSampleRate, pitch), chimeSampleRate.N(chimeLength))
}

func (c *Chime) Notify(t Toast) {
	c.initOnce.Do(func() {
		c.initErr = speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/20))
		if c.initErr != nil {
			c.Logger.Printf("speaker unavailable, chime disabled: %v", c.initErr)
		}
	})
	if c.initErr != nil {
		return
	}
	speaker.Play(tone(t.Kind))
}
