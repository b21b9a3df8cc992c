package telemetry

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetrics_RecordsTicks(t *testing.T) {
	clock := newFakeClock()
	m := NewMetrics()
	m.now = clock.now

	for range 3 {
		m.StartTick()
		m.StartPhase(PhaseDensity)
		clock.advance(2 * time.Millisecond)
		m.StartPhase(PhaseForces)
		clock.advance(3 * time.Millisecond)
		m.EndTick()
	}
	m.ObserveStats(WindowStats{BoundaryHits: 7, FluidStats: FluidStats{Particles: 42, DensityMean: 1.5}})

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	got := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				got[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				got[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				got[mf.GetName()] += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}

	want := map[string]float64{
		"sph_updates_total":           3,
		"sph_update_duration_seconds": 3,
		"sph_phase_duration_seconds":  6, // two phases per tick
		"sph_particles":               42,
		"sph_density_mean":            1.5,
		"sph_boundary_hits_total":     7,
	}
	for name, v := range want {
		if got[name] != v {
			t.Errorf("%s = %v, want %v", name, got[name], v)
		}
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.StartTick()
	m.StartPhase(PhasePredict)
	m.EndTick()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	text := string(body)
	for _, want := range []string{
		"sph_updates_total 1",
		`sph_phase_duration_seconds_count{phase="predict"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestMetrics_ServeReturnsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	errc := make(chan error, 1)
	go func() {
		errc <- NewMetrics().Serve(context.Background(), ln.Addr().String(), slog.New(slog.DiscardHandler))
	}()

	select {
	case err := <-errc:
		if err == nil {
			t.Fatal("expected an error for an address already in use")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestMetrics_ServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- NewMetrics().Serve(ctx, "127.0.0.1:0", slog.New(slog.DiscardHandler))
	}()
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}
