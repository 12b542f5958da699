package timectrl

import (
	"sync"
	"time"

	"github.com/Yuvraajb/artemis2/core"
)

// SimClock is a read-only view of mission time. Consumers that only
// sample telemetry (dashboards, the API layer) depend on this rather
// than on the concrete clock, which keeps them testable with a stub.
type SimClock interface {
	// MET returns the current mission elapsed time in seconds.
	MET() float64
	// Paused reports whether the clock is currently holding.
	Paused() bool
}

// Mode describes how wall-clock ticks map onto mission time.
type Mode int

const (
	// RealTime advances MET one second per wall second (times the scale).
	RealTime Mode = iota
	// Accelerated is RealTime with an aggressive default scale; the
	// playback CLI uses it to run a 10-day mission in minutes.
	Accelerated
)

// MissionClock owns the single authoritative MET value. It advances it
// on a periodic tick, applies the time-scale multiplier, clamps at the
// end of the mission, and fans each new value out to listeners. The
// core is stateless, so everything downstream re-derives from the MET
// values delivered here.
type MissionClock struct {
	mu        sync.RWMutex
	met       float64
	scale     float64
	tick      time.Duration
	mode      Mode
	paused    bool
	listeners []func(met float64)
}

// DefaultAcceleratedScale compresses the full mission into roughly five
// minutes of wall time at the default tick rate.
const DefaultAcceleratedScale = core.TotalMissionDuration / 300.0

// NewMissionClock constructs a clock starting at startMET (negative for
// a countdown). tick is the wall interval between updates; scale is the
// time-acceleration multiplier applied to each step, defaulted per mode
// when non-positive.
func NewMissionClock(startMET float64, tick time.Duration, scale float64, mode Mode) *MissionClock {
	if tick <= 0 {
		tick = 33 * time.Millisecond // ~30 Hz, the nominal dashboard rate
	}
	if scale <= 0 {
		if mode == Accelerated {
			scale = DefaultAcceleratedScale
		} else {
			scale = 1
		}
	}
	return &MissionClock{
		met:   clampMET(startMET),
		scale: scale,
		tick:  tick,
		mode:  mode,
	}
}

// MET returns the current mission elapsed time. Implements SimClock.
func (mc *MissionClock) MET() float64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.met
}

// Paused implements SimClock.
func (mc *MissionClock) Paused() bool {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.paused
}

// SetMET jumps the clock to the given mission time. Listeners are not
// notified; the next tick delivers the new value.
func (mc *MissionClock) SetMET(met float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.met = clampMET(met)
}

// TimeScale returns the current acceleration multiplier.
func (mc *MissionClock) TimeScale() float64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.scale
}

// SetTimeScale changes the acceleration multiplier. Non-positive
// values are ignored.
func (mc *MissionClock) SetTimeScale(scale float64) {
	if scale <= 0 {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.scale = scale
}

// Pause holds the clock; ticks keep firing but MET stops advancing.
// The driver pauses at interactive milestones and resumes on challenge
// submit/skip.
func (mc *MissionClock) Pause() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.paused = true
}

// Resume releases a paused clock.
func (mc *MissionClock) Resume() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.paused = false
}

// AddListener registers a callback invoked with the new MET on every
// tick, including ticks where a paused clock re-delivers the held
// value. Register listeners before calling Start.
func (mc *MissionClock) AddListener(fn func(met float64)) {
	mc.listeners = append(mc.listeners, fn)
}

// Start runs the tick loop in its own goroutine until the mission
// clamps at TotalMissionDuration or stop is closed. The returned
// channel closes when the loop exits.
func (mc *MissionClock) Start(stop <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(mc.tick)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			mc.mu.Lock()
			if !mc.paused {
				step := mc.tick.Seconds() * mc.scale
				mc.met = clampMET(mc.met + step)
			}
			met := mc.met
			paused := mc.paused
			mc.mu.Unlock()

			for _, fn := range mc.listeners {
				fn(met)
			}

			if !paused && met >= core.TotalMissionDuration {
				return
			}
		}
	}()
	return done
}

func clampMET(met float64) float64 {
	if met > core.TotalMissionDuration {
		return core.TotalMissionDuration
	}
	return met
}
