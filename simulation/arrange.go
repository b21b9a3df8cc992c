package simulation

import (
	"math"

	"github.com/pthm-cable/sph/components"
)

// ArrangeParticles places the live particles on a square lattice centred in
// the bounding box, ceil(sqrt(n)) columns wide, with centre-to-centre
// distance 2*radius + spacing. Velocities are zeroed and colours reset to the
// default colour.
func (s *ParticleSystem) ArrangeParticles() {
	n := s.particleInfo.NumParticles
	if n == 0 {
		return
	}
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	stride := s.particleInfo.Stride()

	c := s.bbox.Center()
	origin := components.Vec2{
		X: c.X - float32(cols-1)*stride/2,
		Y: c.Y - float32(rows-1)*stride/2,
	}

	for i := range s.particles[:n] {
		s.particles[i] = components.Particle{
			Position: components.Vec2{
				X: origin.X + float32(i%cols)*stride,
				Y: origin.Y + float32(i/cols)*stride,
			},
			Color: s.particleInfo.DefaultColor,
		}
		s.densities[i] = 0
	}
	s.logger.Debug("particles arranged", "count", n, "columns", cols, "stride", stride)
}
