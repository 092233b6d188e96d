package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

// Particle is one moving point of the background field. Radius and Alpha are
// fixed at creation; only the sign of a velocity component ever changes.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Alpha  float64
}

func newParticle(rng *rand.Rand, width, height float64) Particle {
	return Particle{
		X:      rng.Float64() * width,
		Y:      rng.Float64() * height,
		VX:     rng.Float64()*2*config.MaxParticleSpeed - config.MaxParticleSpeed,
		VY:     rng.Float64()*2*config.MaxParticleSpeed - config.MaxParticleSpeed,
		Radius: config.MinParticleRadius + rng.Float64()*(config.MaxParticleRadius-config.MinParticleRadius),
		Alpha:  config.MinParticleAlpha + rng.Float64()*(config.MaxParticleAlpha-config.MinParticleAlpha),
	}
}

// step moves the particle by its velocity and flips each velocity component
// whose coordinate left [0, extent]. The particle may overshoot by one step.
func (p *Particle) step(width, height float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X > width || p.X < 0 {
		p.VX = -p.VX
	}
	if p.Y > height || p.Y < 0 {
		p.VY = -p.VY
	}
}

// Color is the fixed field hue at the particle's alpha.
func (p Particle) Color() color.NRGBA {
	return hueColor(p.Alpha)
}

// LineAlpha reports whether a and b are close enough to be connected and the
// opacity of the connecting line. It does not depend on argument order.
func LineAlpha(a, b Particle) (float64, bool) {
	d := math.Hypot(a.X-b.X, a.Y-b.Y)
	if d >= config.ProximityThreshold {
		return 0, false
	}
	return config.BaseLineAlpha * (1 - d/config.ProximityThreshold), true
}

// Count is the number of particles a field of the given width holds.
func Count(width int) int {
	if width <= 0 {
		return 0
	}
	return min(config.MaxParticles, width/config.DensityDivisor)
}

func hueColor(alpha float64) color.NRGBA {
	return color.NRGBA{
		R: config.ParticleR,
		G: config.ParticleG,
		B: config.ParticleB,
		A: uint8(math.Round(clamp01(alpha) * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
