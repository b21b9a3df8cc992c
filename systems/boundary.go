package systems

import "github.com/pthm-cable/sph/components"

// ResolveBoundary clamps p inside box shrunk by radius and reflects the
// velocity component of every axis it crossed, scaled by damping. It reports
// whether any axis was hit. If the box is narrower than 2*radius on an axis,
// the particle is centred on that axis.
func ResolveBoundary(p *components.Particle, box components.BoundingBox, radius, damping float32) bool {
	hitX := resolveAxis(&p.Position.X, &p.Velocity.X, box.Left+radius, box.Right-radius, damping)
	hitY := resolveAxis(&p.Position.Y, &p.Velocity.Y, box.Bottom+radius, box.Top-radius, damping)
	return hitX || hitY
}

func resolveAxis(pos, vel *float32, lo, hi, damping float32) bool {
	if lo > hi {
		*pos = (lo + hi) / 2
		*vel = 0
		return true
	}
	switch {
	case *pos < lo:
		*pos = lo
	case *pos > hi:
		*pos = hi
	default:
		return false
	}
	*vel = -*vel * damping
	return true
}
