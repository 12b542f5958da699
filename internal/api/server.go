// Package api exposes the mission over HTTP: REST endpoints for state,
// telemetry, trajectory, and clock control, plus a websocket telemetry
// stream. Handlers are thin; everything they return is re-derived from
// MET by the core or read from the driver's latest snapshot.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Yuvraajb/artemis2/challenge"
	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/logging"
	"github.com/Yuvraajb/artemis2/internal/observability"
	"github.com/Yuvraajb/artemis2/internal/sim"
	"github.com/Yuvraajb/artemis2/model"
)

// maxTrajectoryPoints caps sample counts so a single request cannot ask
// for an unbounded polyline.
const maxTrajectoryPoints = 10000

// ClockControl is the slice of the mission clock the HTTP layer
// mutates. timectrl.MissionClock satisfies it.
type ClockControl interface {
	Pause()
	Resume()
	Paused() bool
	TimeScale() float64
	SetTimeScale(scale float64)
}

// Server routes mission API requests.
type Server struct {
	log        logging.Logger
	driver     *sim.Driver
	clock      ClockControl
	collector  *observability.MissionCollector
	milestones []core.Milestone
	stream     *streamHub
	router     *mux.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCollector wires request metrics and the stream-client gauge.
func WithCollector(c *observability.MissionCollector) Option {
	return func(s *Server) { s.collector = c }
}

// WithMilestones overrides the milestone list served by /milestones.
// It should match the list the driver watches.
func WithMilestones(list []core.Milestone) Option {
	return func(s *Server) { s.milestones = list }
}

// WithStreamLimits tunes the websocket frame rate and the concurrent
// connection cap.
func WithStreamLimits(rateHz float64, maxClients int) Option {
	return func(s *Server) {
		s.stream.rateHz = rateHz
		s.stream.maxClients = maxClients
	}
}

// NewServer builds the mission API around a driver and its clock.
func NewServer(driver *sim.Driver, clock ClockControl, log logging.Logger, opts ...Option) *Server {
	if log == nil {
		log = logging.Noop()
	}
	s := &Server{
		log:        log,
		driver:     driver,
		clock:      clock,
		milestones: core.Milestones(),
	}
	s.stream = newStreamHub(s)
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestMiddleware)

	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	v1.HandleFunc("/telemetry", s.handleTelemetry).Methods(http.MethodGet)
	v1.HandleFunc("/position", s.handlePosition).Methods(http.MethodGet)
	v1.HandleFunc("/phases", s.handlePhases).Methods(http.MethodGet)
	v1.HandleFunc("/milestones", s.handleMilestones).Methods(http.MethodGet)
	v1.HandleFunc("/trajectory", s.handleTrajectory).Methods(http.MethodGet)
	v1.HandleFunc("/crew", s.handleCrew).Methods(http.MethodGet)
	v1.HandleFunc("/mission", s.handleMission).Methods(http.MethodGet)
	v1.HandleFunc("/challenges", s.handleChallenges).Methods(http.MethodGet)

	v1.HandleFunc("/clock/pause", s.handleClockPause).Methods(http.MethodPost)
	v1.HandleFunc("/clock/resume", s.handleClockResume).Methods(http.MethodPost)
	v1.HandleFunc("/clock/scale", s.handleClockScale).Methods(http.MethodPost)

	v1.HandleFunc("/challenge/submit", s.handleChallengeSubmit).Methods(http.MethodPost)
	v1.HandleFunc("/challenge/skip", s.handleChallengeSkip).Methods(http.MethodPost)

	v1.HandleFunc("/stream", s.stream.handle).Methods(http.MethodGet)

	return r
}

// requestMiddleware attaches a request-scoped logger and records
// per-route metrics under the registered path template.
func (s *Server) requestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, reqLog := logging.WithRequestLogger(r.Context(), s.log)
		r = r.WithContext(ctx)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		reqLog.Debug(ctx, "api request",
			logging.String("route", route),
			logging.String("method", r.Method),
		)
		s.collector.Middleware(route, next).ServeHTTP(w, r)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.driver.Snapshot())
}

// metParam reads an optional ?met= query, defaulting to the latest tick.
func (s *Server) metParam(r *http.Request) (float64, error) {
	raw := r.URL.Query().Get("met")
	if raw == "" {
		return s.driver.Snapshot().MET, nil
	}
	met, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid met %q", raw)
	}
	return met, nil
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	met, err := s.metParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, core.Telemetry(met))
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	met, err := s.metParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	phase := core.CurrentPhase(met)
	writeJSON(w, http.StatusOK, map[string]any{
		"met":           met,
		"phase":         phase,
		"phaseName":     phase.String(),
		"phaseProgress": core.PhaseProgress(met),
		"position":      core.Position(met),
	})
}

// phaseJSON is the wire shape for one timeline entry.
type phaseJSON struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	ShortName string  `json:"shortName"`
	Tag       string  `json:"tag"`
	Start     float64 `json:"startSeconds"`
	End       float64 `json:"endSeconds"`
	Duration  float64 `json:"durationSeconds"`
}

func (s *Server) handlePhases(w http.ResponseWriter, r *http.Request) {
	phases := core.Phases()
	out := make([]phaseJSON, 0, len(phases))
	for _, p := range phases {
		info := p.Info()
		out = append(out, phaseJSON{
			Index:     int(p),
			Name:      info.Name,
			ShortName: info.ShortName,
			Tag:       info.Tag,
			Start:     p.StartTime(),
			End:       p.EndTime(),
			Duration:  info.Duration,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalDurationSeconds": core.TotalMissionDuration,
		"phases":               out,
	})
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"milestones": s.milestones})
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	count := 512
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid count %q", raw))
			return
		}
		count = n
	}
	if count < 1 || count > maxTrajectoryPoints {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("count must be in [1,%d], got %d", maxTrajectoryPoints, count))
		return
	}

	if raw := q.Get("phase"); raw != "" {
		phase, ok := phaseByName(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown phase %q", raw))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"phase":  phase,
			"points": core.PhaseTrajectoryPoints(phase, count),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"points": core.TrajectoryPoints(count),
	})
}

// phaseByName resolves a phase query parameter, accepting the numeric
// index or the short name (e.g. "TLI").
func phaseByName(raw string) (core.MissionPhase, bool) {
	if idx, err := strconv.Atoi(raw); err == nil {
		p := core.MissionPhase(idx)
		for _, known := range core.Phases() {
			if p == known {
				return p, true
			}
		}
		return 0, false
	}
	for _, p := range core.Phases() {
		if p.Info().ShortName == raw {
			return p, true
		}
	}
	return 0, false
}

func (s *Server) handleCrew(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"crew": model.Crew()})
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Facts())
}

func (s *Server) handleChallenges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"challenges": challenge.Catalog()})
}

func (s *Server) handleClockPause(w http.ResponseWriter, r *http.Request) {
	s.clock.Pause()
	writeJSON(w, http.StatusOK, map[string]any{"paused": s.clock.Paused()})
}

func (s *Server) handleClockResume(w http.ResponseWriter, r *http.Request) {
	// Resuming past a pending challenge would silently drop it; the
	// challenge endpoints own that transition.
	if s.driver.Snapshot().Pending != nil {
		writeError(w, http.StatusConflict, "a challenge is pending; submit or skip it first")
		return
	}
	s.clock.Resume()
	writeJSON(w, http.StatusOK, map[string]any{"paused": s.clock.Paused()})
}

type scaleRequest struct {
	Scale float64 `json:"scale"`
}

func (s *Server) handleClockScale(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Scale <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("scale must be positive, got %v", req.Scale))
		return
	}
	s.clock.SetTimeScale(req.Scale)
	writeJSON(w, http.StatusOK, map[string]any{"timeScale": s.clock.TimeScale()})
}

type submitRequest struct {
	Value float64 `json:"value"`
}

func (s *Server) handleChallengeSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	score, err := s.driver.SubmitChallenge(req.Value)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"score": score})
}

func (s *Server) handleChallengeSkip(w http.ResponseWriter, r *http.Request) {
	if err := s.driver.SkipChallenge(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"skipped": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
