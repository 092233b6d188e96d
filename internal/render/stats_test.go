package render

import (
	"image/color"
	"math"
	"testing"
)

func TestStatsSurfaceCountsPerFrame(t *testing.T) {
	s := NewStatsSurface(640, 480)

	s.Clear()
	s.FillCircle(1, 1, 1, color.White)
	s.FillCircle(2, 2, 1, color.White)
	s.StrokeLine(0, 0, 1, 1, 0.5, color.NRGBA{A: 255})
	s.StrokeLine(0, 0, 1, 1, 0.5, color.NRGBA{A: 0})

	s.Clear()
	s.FillCircle(1, 1, 1, color.White)

	last := s.Last()
	if last.Discs != 2 || last.Lines != 2 {
		t.Errorf("Last = %+v, want 2 discs 2 lines", last)
	}
	if math.Abs(last.MeanAlpha-0.5) > 1e-9 {
		t.Errorf("MeanAlpha = %v, want 0.5", last.MeanAlpha)
	}
	if cur := s.Current(); cur.Discs != 1 || cur.Lines != 0 {
		t.Errorf("Current = %+v, want 1 disc", cur)
	}

	s.Release()
	s.Release()
	if !s.Released() {
		t.Error("Released = false")
	}
	if tot := s.Totals(); tot.Discs != 3 || tot.Lines != 2 {
		t.Errorf("Totals = %+v, want 3 discs 2 lines", tot)
	}
	if s.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", s.Frames())
	}
}

func TestStatsSurfaceResize(t *testing.T) {
	s := NewStatsSurface(10, 10)
	s.SetSize(20, 5)
	if w, h := s.Size(); w != 20 || h != 5 {
		t.Errorf("Size = %dx%d, want 20x5", w, h)
	}
}
