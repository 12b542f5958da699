package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yuvraajb/artemis2/core"
)

// MissionCollector bundles the simulator's Prometheus metrics and
// provides the HTTP middleware and /metrics handler to expose them.
type MissionCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	MissionElapsed prometheus.Gauge
	PhaseIndex     prometheus.Gauge
	Altitude       prometheus.Gauge
	Speed          prometheus.Gauge
	GForce         prometheus.Gauge
	FuelRemaining  prometheus.Gauge
	Ticks          prometheus.Counter
	StreamClients  prometheus.Gauge
}

// NewMissionCollector registers the simulator metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil. Re-registration of identical collectors is tolerated so
// tests can rebuild the stack against the default registry.
func NewMissionCollector(reg prometheus.Registerer) (*MissionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mission_http_requests_total",
		Help: "Total handled API requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "mission_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mission_http_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"route", "method"})
	durations, err = registerHistogramVec(reg, durations, "mission_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	elapsed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_elapsed_seconds",
		Help: "Current mission elapsed time in seconds.",
	}), "mission_elapsed_seconds")
	if err != nil {
		return nil, err
	}
	phaseIndex, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_phase_index",
		Help: "Index of the current mission phase (0=PreLaunch .. 7=Reentry).",
	}), "mission_phase_index")
	if err != nil {
		return nil, err
	}
	altitude, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_altitude_km",
		Help: "Telemetry altitude in kilometres.",
	}), "mission_altitude_km")
	if err != nil {
		return nil, err
	}
	speed, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_speed_km_s",
		Help: "Telemetry speed in km/s.",
	}), "mission_speed_km_s")
	if err != nil {
		return nil, err
	}
	gforce, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_g_force",
		Help: "Telemetry g-force.",
	}), "mission_g_force")
	if err != nil {
		return nil, err
	}
	fuel, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_fuel_percent",
		Help: "Telemetry fuel remaining in percent.",
	}), "mission_fuel_percent")
	if err != nil {
		return nil, err
	}
	streamClients, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mission_stream_clients",
		Help: "Currently connected websocket telemetry clients.",
	}), "mission_stream_clients")
	if err != nil {
		return nil, err
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mission_clock_ticks_total",
		Help: "Total mission clock ticks processed by the driver.",
	}), "mission_clock_ticks_total")
	if err != nil {
		return nil, err
	}

	return &MissionCollector{
		gatherer:       gatherer,
		HTTPRequests:   requests,
		HTTPDurations:  durations,
		MissionElapsed: elapsed,
		PhaseIndex:     phaseIndex,
		Altitude:       altitude,
		Speed:          speed,
		GForce:         gforce,
		FuelRemaining:  fuel,
		StreamClients:  streamClients,
		Ticks:          ticks,
	}, nil
}

// RecordTick pushes one tick's telemetry into the mission gauges.
func (c *MissionCollector) RecordTick(phase core.MissionPhase, t core.TelemetryData) {
	if c == nil {
		return
	}
	c.Ticks.Inc()
	c.MissionElapsed.Set(t.MissionElapsedTime)
	c.PhaseIndex.Set(float64(phase))
	c.Altitude.Set(t.Altitude)
	c.Speed.Set(t.Speed)
	c.GForce.Set(t.GForce)
	c.FuelRemaining.Set(t.FuelRemaining)
}

// Middleware records request counts and latencies for an HTTP route.
// The route label is the registered pattern, not the raw URL, to keep
// cardinality bounded.
func (c *MissionCollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		c.HTTPRequests.WithLabelValues(route, r.Method, fmt.Sprintf("%d", sw.status)).Inc()
		c.HTTPDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *MissionCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
