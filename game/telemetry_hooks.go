package game

import (
	"github.com/pthm-cable/sph/simulation"
)

// endFrame counts the frame and flushes the stats window when it is full.
func (g *Game) endFrame() {
	g.frame++

	paused := g.sim.State() == simulation.Paused
	hits := g.sim.BoundaryHits()
	if paused {
		hits = 0
	}
	handActive := g.hand != nil && g.hand.Interacting()
	g.collector.RecordFrame(paused, handActive, hits)

	g.flushTelemetry()
}

// flushTelemetry writes the stats window to every enabled sink.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	phys := g.sim.PhysicsInfo()
	stats := g.collector.Flush(g.frame, g.sim.Particles(), g.sim.Densities(), phys.RestDensity)
	perfStats := g.perfCollector.Stats()
	if g.timer != nil {
		perfStats.FPS = g.timer.FPS()
	}
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}
	if g.metrics != nil {
		g.metrics.ObserveStats(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			g.logger.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}
