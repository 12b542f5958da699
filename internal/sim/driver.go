// Package sim wires the mission clock to the stateless core: every
// tick it re-derives phase, position, and telemetry from the delivered
// MET, publishes the readings to Prometheus, and watches the milestone
// list for crossings that pause the mission for a challenge.
package sim

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Yuvraajb/artemis2/challenge"
	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/logging"
	"github.com/Yuvraajb/artemis2/internal/observability"
)

// Clock is the slice of the mission clock the driver needs. The
// concrete timectrl.MissionClock satisfies it; tests drive ticks by
// hand through a stub.
type Clock interface {
	AddListener(fn func(met float64))
	MET() float64
	Paused() bool
	Pause()
	Resume()
	TimeScale() float64
}

// Snapshot is the driver's read model: one coherent view of the
// mission at the last processed tick, handed to the API layer and the
// websocket stream.
type Snapshot struct {
	MET           float64             `json:"met"`
	Phase         core.MissionPhase   `json:"phase"`
	PhaseName     string              `json:"phaseName"`
	PhaseProgress float64             `json:"phaseProgress"`
	Position      core.Vec3           `json:"position"`
	Telemetry     core.TelemetryData  `json:"telemetry"`
	EarthRotation float64             `json:"earthRotation"`
	Paused        bool                `json:"paused"`
	TimeScale     float64             `json:"timeScale"`
	Pending       *PendingChallenge   `json:"pendingChallenge,omitempty"`
}

// PendingChallenge is surfaced while the clock holds at an interactive
// milestone.
type PendingChallenge struct {
	Milestone core.Milestone      `json:"milestone"`
	Challenge challenge.Challenge `json:"challenge"`
}

// Driver owns no simulation state beyond the latest snapshot; the core
// re-derives everything from MET, so a crash-and-rebuild loses nothing.
type Driver struct {
	clock      Clock
	log        logging.Logger
	collector  *observability.MissionCollector
	milestones []core.Milestone
	pauseOn    bool
	tracer     trace.Tracer

	mu       sync.RWMutex
	lastMET  float64
	snapshot Snapshot
	pending  *PendingChallenge
}

// Option configures a Driver.
type Option func(*Driver)

// WithCollector publishes per-tick telemetry to the Prometheus
// collector.
func WithCollector(c *observability.MissionCollector) Option {
	return func(d *Driver) { d.collector = c }
}

// WithMilestones overrides the built-in milestone list (scenario
// files).
func WithMilestones(list []core.Milestone) Option {
	return func(d *Driver) { d.milestones = list }
}

// WithMilestonePauses controls whether interactive milestones hold the
// clock. The playback CLI disables it to run uninterrupted.
func WithMilestonePauses(enabled bool) Option {
	return func(d *Driver) { d.pauseOn = enabled }
}

// NewDriver builds a driver and registers its tick listener on the
// clock. Construct before starting the clock.
func NewDriver(clock Clock, log logging.Logger, opts ...Option) *Driver {
	if log == nil {
		log = logging.Noop()
	}
	d := &Driver{
		clock:      clock,
		log:        log,
		milestones: core.Milestones(),
		pauseOn:    true,
		tracer:     otel.Tracer("artemis2/sim"),
	}
	for _, opt := range opts {
		opt(d)
	}

	// Back the crossing window off slightly so a milestone sitting
	// exactly at the start MET (Liftoff at 0) is still reported.
	d.lastMET = clock.MET() - 1e-9
	d.snapshot = d.evaluate(clock.MET())

	clock.AddListener(d.onTick)
	return d
}

// Snapshot returns the last processed tick's view of the mission.
func (d *Driver) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// SubmitChallenge grades the pending challenge and resumes the clock.
func (d *Driver) SubmitChallenge(value float64) (int, error) {
	d.mu.Lock()
	pending := d.pending
	d.mu.Unlock()

	if pending == nil {
		return 0, fmt.Errorf("no challenge is pending")
	}
	score, err := pending.Challenge.Score(value)
	if err != nil {
		return 0, err
	}

	d.log.Info(context.Background(), "challenge submitted",
		logging.String("challenge", pending.Challenge.ID),
		logging.Float64("value", value),
		logging.Int("score", score),
	)
	d.clearPendingAndResume()
	return score, nil
}

// SkipChallenge abandons the pending challenge and resumes the clock.
func (d *Driver) SkipChallenge() error {
	d.mu.Lock()
	pending := d.pending
	d.mu.Unlock()

	if pending == nil {
		return fmt.Errorf("no challenge is pending")
	}
	d.log.Info(context.Background(), "challenge skipped",
		logging.String("challenge", pending.Challenge.ID))
	d.clearPendingAndResume()
	return nil
}

func (d *Driver) clearPendingAndResume() {
	d.mu.Lock()
	d.pending = nil
	d.snapshot.Pending = nil
	d.mu.Unlock()
	d.clock.Resume()
}

func (d *Driver) onTick(met float64) {
	d.mu.Lock()
	prev := d.lastMET
	d.lastMET = met
	pending := d.pending
	d.mu.Unlock()

	snap := d.evaluate(met)

	if d.collector != nil {
		d.collector.RecordTick(snap.Phase, snap.Telemetry)
	}

	// While holding for a challenge the clock re-delivers the same MET;
	// nothing can cross.
	if pending == nil {
		for _, m := range core.MilestonesBetween(d.milestones, prev, met) {
			d.handleCrossing(m, &snap)
		}
	}

	// A crossing may have just paused the clock; refresh the flag so
	// the snapshot and the pending challenge appear together.
	snap.Paused = d.clock.Paused()

	d.mu.Lock()
	snap.Pending = d.pending
	d.snapshot = snap
	d.mu.Unlock()
}

func (d *Driver) handleCrossing(m core.Milestone, snap *Snapshot) {
	ctx, span := d.tracer.Start(context.Background(), "milestone.crossing",
		trace.WithAttributes(
			attribute.String("milestone", m.Name),
			attribute.Float64("met", m.MissionTime),
			attribute.Bool("interactive", m.Interactive),
		))
	defer span.End()

	d.log.Info(ctx, "milestone crossed",
		logging.String("milestone", m.Name),
		logging.Float64("met", m.MissionTime),
		logging.String("phase", m.Phase.String()),
	)

	if !m.Interactive || !d.pauseOn {
		return
	}
	c, ok := challenge.ForMilestone(m.Name)
	if !ok {
		return
	}

	d.clock.Pause()
	d.mu.Lock()
	d.pending = &PendingChallenge{Milestone: m, Challenge: c}
	d.mu.Unlock()

	d.log.Info(ctx, "mission holding for challenge",
		logging.String("challenge", c.ID),
		logging.String("title", c.Title),
	)
}

func (d *Driver) evaluate(met float64) Snapshot {
	phase := core.CurrentPhase(met)
	return Snapshot{
		MET:           met,
		Phase:         phase,
		PhaseName:     phase.String(),
		PhaseProgress: core.PhaseProgress(met),
		Position:      core.Position(met),
		Telemetry:     core.Telemetry(met),
		EarthRotation: core.EarthRotationAngle(met),
		Paused:        d.clock.Paused(),
		TimeScale:     d.clock.TimeScale(),
	}
}
