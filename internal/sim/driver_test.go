package sim

import (
	"testing"

	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/logging"
)

// stubClock delivers ticks synchronously and records pause/resume
// calls.
type stubClock struct {
	met       float64
	paused    bool
	listeners []func(float64)
}

func (s *stubClock) AddListener(fn func(met float64)) { s.listeners = append(s.listeners, fn) }
func (s *stubClock) MET() float64                     { return s.met }
func (s *stubClock) Paused() bool                     { return s.paused }
func (s *stubClock) Pause()                           { s.paused = true }
func (s *stubClock) Resume()                          { s.paused = false }
func (s *stubClock) TimeScale() float64               { return 1 }

func (s *stubClock) tick(met float64) {
	if !s.paused {
		s.met = met
	}
	for _, fn := range s.listeners {
		fn(s.met)
	}
}

func TestDriverSnapshotTracksTicks(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop(), WithMilestonePauses(false))

	clock.tick(100)
	snap := d.Snapshot()
	if snap.MET != 100 {
		t.Fatalf("snapshot MET = %v, want 100", snap.MET)
	}
	if snap.Phase != core.Launch {
		t.Fatalf("snapshot phase = %v, want Launch", snap.Phase)
	}
	if snap.Telemetry.MissionElapsedTime != 100 {
		t.Fatalf("telemetry MET = %v, want 100", snap.Telemetry.MissionElapsedTime)
	}
	if snap.Position != core.Position(100) {
		t.Fatalf("snapshot position = %+v, want %+v", snap.Position, core.Position(100))
	}
}

func TestDriverPausesAtInteractiveMilestone(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop())

	// Sweep past orbit insertion (MET 720, interactive).
	clock.tick(500)
	clock.tick(1000)

	if !clock.paused {
		t.Fatal("clock should be paused at the orbit insertion milestone")
	}
	snap := d.Snapshot()
	if snap.Pending == nil {
		t.Fatal("snapshot should carry the pending challenge")
	}
	if snap.Pending.Milestone.Name != "Orbit Insertion" {
		t.Fatalf("pending milestone = %q, want Orbit Insertion", snap.Pending.Milestone.Name)
	}
	if !snap.Paused {
		t.Fatal("snapshot should report the hold")
	}
}

func TestDriverSubmitChallengeResumes(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop())

	clock.tick(1000) // crosses Liftoff, Max Q, and Orbit Insertion
	if !clock.paused {
		t.Fatal("expected hold at orbit insertion")
	}

	score, err := d.SubmitChallenge(0.62)
	if err != nil {
		t.Fatalf("SubmitChallenge: %v", err)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100 for a bullseye", score)
	}
	if clock.paused {
		t.Fatal("clock should resume after submit")
	}
	if d.Snapshot().Pending != nil {
		t.Fatal("pending challenge should clear after submit")
	}

	// No double grading.
	if _, err := d.SubmitChallenge(0.5); err == nil {
		t.Fatal("second submit should fail with nothing pending")
	}
}

func TestDriverSkipChallengeResumes(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop())

	clock.tick(1000)
	if err := d.SkipChallenge(); err != nil {
		t.Fatalf("SkipChallenge: %v", err)
	}
	if clock.paused {
		t.Fatal("clock should resume after skip")
	}
	if err := d.SkipChallenge(); err == nil {
		t.Fatal("skip with nothing pending should fail")
	}
}

func TestDriverDoesNotRecrossWhileHolding(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop())

	clock.tick(1000)
	if !clock.paused {
		t.Fatal("expected hold")
	}
	held := d.Snapshot().Pending.Milestone.Name

	// Paused clock re-delivers the same MET; the hold must be stable.
	clock.tick(1000)
	clock.tick(1000)
	if !clock.paused {
		t.Fatal("hold should survive re-delivered ticks")
	}
	if got := d.Snapshot().Pending.Milestone.Name; got != held {
		t.Fatalf("pending milestone changed from %q to %q during hold", held, got)
	}
}

func TestDriverMilestonePausesDisabled(t *testing.T) {
	clock := &stubClock{}
	d := NewDriver(clock, logging.Noop(), WithMilestonePauses(false))

	clock.tick(core.TotalMissionDuration)
	if clock.paused {
		t.Fatal("pauses disabled: clock must run through every milestone")
	}
	if d.Snapshot().Pending != nil {
		t.Fatal("no challenge should pend with pauses disabled")
	}
}

func TestDriverCrossesMilestoneAtStartMET(t *testing.T) {
	clock := &stubClock{}
	// An interactive milestone sitting exactly on the starting MET must
	// still be reported on the first tick.
	milestones := []core.Milestone{
		{Name: "Orbit Insertion", MissionTime: 0, Phase: core.Launch, Interactive: true},
	}
	d := NewDriver(clock, logging.Noop(), WithMilestones(milestones))

	clock.tick(0)
	if !clock.paused {
		t.Fatal("milestone at the starting MET was not crossed")
	}
	if d.Snapshot().Pending == nil {
		t.Fatal("expected a pending challenge for the start-MET milestone")
	}
}
