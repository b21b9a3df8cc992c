package game

import (
	"context"
	"time"
)

// RunHeadless calls UpdateHeadless until frames frames have run or ctx is
// done. A non-positive frames runs until ctx is done.
func (g *Game) RunHeadless(ctx context.Context, frames int) error {
	start := time.Now()
	g.logger.Info("starting headless simulation",
		"frames", frames,
		"dt", g.cfg.Physics.DT,
		"particles", g.sim.ParticleInfo().NumParticles,
	)

	for frames <= 0 || int(g.frame) < frames {
		select {
		case <-ctx.Done():
			g.logger.Info("headless run interrupted", "frame", g.frame)
			return ctx.Err()
		default:
		}
		g.UpdateHeadless()
	}

	elapsed := time.Since(start)
	fps := 0.0
	if elapsed > 0 {
		fps = float64(g.frame) / elapsed.Seconds()
	}
	g.logger.Info("headless run complete",
		"frames", g.frame,
		"elapsed", elapsed.Round(time.Millisecond),
		"frames_per_sec", int(fps),
		"stats", g.FluidStats(),
	)
	return nil
}
