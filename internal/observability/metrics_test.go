package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/Yuvraajb/artemis2/core"
)

func TestMiddlewareRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewMissionCollector(reg)
	if err != nil {
		t.Fatalf("NewMissionCollector: %v", err)
	}

	handler := collector.Middleware("/api/v1/telemetry", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/telemetry", nil))

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/api/v1/telemetry", "GET", "200")); got != 1 {
		t.Fatalf("mission_http_requests_total = %v, want 1", got)
	}
	if count := histogramSampleCount(t, reg, "mission_http_request_duration_seconds", map[string]string{
		"route":  "/api/v1/telemetry",
		"method": "GET",
	}); count != 1 {
		t.Fatalf("mission_http_request_duration_seconds sample_count = %d, want 1", count)
	}
}

func TestMiddlewareRecordsErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewMissionCollector(reg)
	if err != nil {
		t.Fatalf("NewMissionCollector: %v", err)
	}

	handler := collector.Middleware("/api/v1/trajectory", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad count", http.StatusBadRequest)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/trajectory?count=0", nil))

	if got := testutil.ToFloat64(collector.HTTPRequests.WithLabelValues("/api/v1/trajectory", "GET", "400")); got != 1 {
		t.Fatalf("mission_http_requests_total{code=400} = %v, want 1", got)
	}
}

func TestRecordTickUpdatesGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewMissionCollector(reg)
	if err != nil {
		t.Fatalf("NewMissionCollector: %v", err)
	}

	tm := core.Telemetry(core.EarthOrbit.StartTime())
	collector.RecordTick(core.EarthOrbit, tm)
	collector.RecordTick(core.EarthOrbit, tm)

	if got := testutil.ToFloat64(collector.Ticks); got != 2 {
		t.Fatalf("mission_clock_ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.PhaseIndex); got != float64(core.EarthOrbit) {
		t.Fatalf("mission_phase_index = %v, want %v", got, float64(core.EarthOrbit))
	}
	if got := testutil.ToFloat64(collector.Altitude); got != core.ParkingOrbitAltitudeKm {
		t.Fatalf("mission_altitude_km = %v, want %v", got, core.ParkingOrbitAltitudeKm)
	}
	if got := testutil.ToFloat64(collector.FuelRemaining); got != 30 {
		t.Fatalf("mission_fuel_percent = %v, want 30", got)
	}
}

func TestCollectorToleratesReRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMissionCollector(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewMissionCollector(reg); err != nil {
		t.Fatalf("second registration should reuse existing collectors: %v", err)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if !labelsMatch(metric.GetLabel(), labels) {
				continue
			}
			return metric.GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
