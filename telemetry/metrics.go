package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "sph"

// Metrics exports Update timing and fluid statistics to Prometheus. It
// implements the particle system's recorder interface.
type Metrics struct {
	registry *prometheus.Registry

	updates     prometheus.Counter
	updateTime  prometheus.Histogram
	phaseTime   *prometheus.HistogramVec
	particles   prometheus.Gauge
	density     prometheus.Gauge
	kinetic     prometheus.Gauge
	boundaryHit prometheus.Counter

	tickStart  time.Time
	phaseStart time.Time
	lastPhase  string
	now        func() time.Time
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "updates_total",
			Help:      "Number of Update calls that advanced the simulation.",
		}),
		updateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "update_duration_seconds",
			Help:      "Wall time of one Update.",
			Buckets:   prometheus.ExponentialBuckets(50e-6, 2, 14),
		}),
		phaseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "phase_duration_seconds",
			Help:      "Wall time per Update phase, summed over substeps.",
			Buckets:   prometheus.ExponentialBuckets(10e-6, 2, 14),
		}, []string{"phase"}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "particles",
			Help:      "Live particle count.",
		}),
		density: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "density_mean",
			Help:      "Mean particle density at the last stats window.",
		}),
		kinetic: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "kinetic_energy",
			Help:      "Total kinetic energy at the last stats window.",
		}),
		boundaryHit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "boundary_hits_total",
			Help:      "Particle-boundary contacts resolved.",
		}),
		now: time.Now,
	}
	m.registry.MustRegister(m.updates, m.updateTime, m.phaseTime, m.particles, m.density, m.kinetic, m.boundaryHit)
	return m
}

// StartTick begins timing an Update.
func (m *Metrics) StartTick() {
	m.tickStart = m.now()
	m.lastPhase = ""
}

// StartPhase ends the running phase and starts timing phase.
func (m *Metrics) StartPhase(phase string) {
	now := m.now()
	m.observePhase(now)
	m.phaseStart = now
	m.lastPhase = phase
}

// EndTick ends the running phase and records the Update.
func (m *Metrics) EndTick() {
	now := m.now()
	m.observePhase(now)
	m.lastPhase = ""
	m.updates.Inc()
	m.updateTime.Observe(now.Sub(m.tickStart).Seconds())
}

func (m *Metrics) observePhase(now time.Time) {
	if m.lastPhase == "" {
		return
	}
	m.phaseTime.WithLabelValues(m.lastPhase).Observe(now.Sub(m.phaseStart).Seconds())
}

// ObserveStats updates the gauges from a stats window.
func (m *Metrics) ObserveStats(ws WindowStats) {
	m.particles.Set(float64(ws.Particles))
	m.density.Set(ws.DensityMean)
	m.kinetic.Set(ws.KineticEnergy)
	m.boundaryHit.Add(float64(ws.BoundaryHits))
}

// Registry returns the registry backing the metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}()

	logger.Info("metrics listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
