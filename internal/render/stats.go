package render

import (
	"image/color"
	"sync/atomic"
)

// FrameStats summarizes the draw calls of one frame.
type FrameStats struct {
	Discs     int
	Lines     int
	MeanAlpha float64 // mean line alpha in [0,1]
}

// StatsSurface counts draw calls instead of rasterizing them. It backs the
// headless bench where no graphics device exists.
type StatsSurface struct {
	width, height int

	frames   uint64
	last     FrameStats
	cur      FrameStats
	alphaSum float64
	totals   FrameStats
	released atomic.Bool
}

// NewStatsSurface returns a counting surface of the given size.
func NewStatsSurface(width, height int) *StatsSurface {
	return &StatsSurface{width: width, height: height}
}

func (s *StatsSurface) Size() (int, int)          { return s.width, s.height }
func (s *StatsSurface) SetSize(width, height int) { s.width, s.height = width, height }

// Clear closes the previous frame and starts counting a new one.
func (s *StatsSurface) Clear() {
	if s.frames > 0 {
		s.closeFrame()
	}
	s.frames++
	s.cur = FrameStats{}
	s.alphaSum = 0
}

func (s *StatsSurface) closeFrame() {
	if s.cur.Lines > 0 {
		s.cur.MeanAlpha = s.alphaSum / float64(s.cur.Lines)
	}
	s.last = s.cur
	s.totals.Discs += s.cur.Discs
	s.totals.Lines += s.cur.Lines
}

func (s *StatsSurface) FillCircle(_, _, _ float64, _ color.Color) {
	s.cur.Discs++
}

func (s *StatsSurface) StrokeLine(_, _, _, _, _ float64, clr color.Color) {
	s.cur.Lines++
	_, _, _, a := clr.RGBA()
	s.alphaSum += float64(a) / 0xffff
}

// Release finalizes the frame in progress.
func (s *StatsSurface) Release() {
	if s.released.Swap(true) {
		return
	}
	if s.frames > 0 {
		s.closeFrame()
	}
}

// Frames is the number of frames started.
func (s *StatsSurface) Frames() uint64 { return s.frames }

// Current is the frame being drawn.
func (s *StatsSurface) Current() FrameStats { return s.cur }

// Last is the most recently completed frame.
func (s *StatsSurface) Last() FrameStats { return s.last }

// Totals sums discs and lines over every completed frame.
func (s *StatsSurface) Totals() FrameStats { return s.totals }

// Released reports whether Release was called.
func (s *StatsSurface) Released() bool { return s.released.Load() }
