package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/api"
	"github.com/Yuvraajb/artemis2/internal/logging"
	"github.com/Yuvraajb/artemis2/internal/sim"
	"github.com/Yuvraajb/artemis2/timectrl"
)

type missionTestEnv struct {
	clock  *timectrl.MissionClock
	driver *sim.Driver
	server *httptest.Server
	client *http.Client
	stop   chan struct{}
	done   <-chan struct{}
}

// newMissionTestEnv runs the full stack: a fast real clock, the driver,
// and the HTTP API. The scale finishes the mission in well under a
// second of wall time when nothing holds it.
func newMissionTestEnv(t *testing.T, pauseOnMilestones bool) *missionTestEnv {
	t.Helper()

	log := logging.Noop()
	clock := timectrl.NewMissionClock(0, time.Millisecond, 2_000_000, timectrl.RealTime)
	driver := sim.NewDriver(clock, log, sim.WithMilestonePauses(pauseOnMilestones))
	apiServer := api.NewServer(driver, clock, log)

	ts := httptest.NewServer(apiServer.Handler())
	stop := make(chan struct{})
	done := clock.Start(stop)

	env := &missionTestEnv{
		clock:  clock,
		driver: driver,
		server: ts,
		client: ts.Client(),
		stop:   stop,
		done:   done,
	}
	t.Cleanup(func() {
		select {
		case <-done:
		default:
			close(stop)
			<-done
		}
		ts.Close()
	})
	return env
}

func (env *missionTestEnv) getState(t *testing.T) sim.Snapshot {
	t.Helper()
	resp, err := env.client.Get(env.server.URL + "/api/v1/state")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("state returned %s", resp.Status)
	}
	var snap sim.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return snap
}

func (env *missionTestEnv) submitChallenge(t *testing.T, value float64) int {
	t.Helper()
	body, _ := json.Marshal(map[string]float64{"value": value})
	resp, err := env.client.Post(env.server.URL+"/api/v1/challenge/submit", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("submit challenge: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("submit returned %s", resp.Status)
	}
	var out struct {
		Score int `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	return out.Score
}

func TestMissionRunsToSplashdownWithoutHolds(t *testing.T) {
	env := newMissionTestEnv(t, false)

	select {
	case <-env.done:
	case <-time.After(10 * time.Second):
		t.Fatal("mission did not complete in time")
	}

	snap := env.getState(t)
	if snap.MET != core.TotalMissionDuration {
		t.Fatalf("final MET = %v, want %v", snap.MET, core.TotalMissionDuration)
	}
	if snap.PhaseName != "Reentry" {
		t.Fatalf("final phase = %q, want Reentry", snap.PhaseName)
	}
	if snap.Telemetry.FuelRemaining > 2.01 {
		t.Fatalf("final fuel = %v, want reserve level", snap.Telemetry.FuelRemaining)
	}
}

func TestMissionHoldsAndResumesThroughEveryChallenge(t *testing.T) {
	env := newMissionTestEnv(t, true)

	interactive := 0
	for _, m := range core.Milestones() {
		if m.Interactive {
			interactive++
		}
	}

	seen := map[string]bool{}
	deadline := time.Now().Add(20 * time.Second)
	for {
		select {
		case <-env.done:
			if len(seen) != interactive {
				t.Fatalf("mission finished after %d challenges, want %d (%v)", len(seen), interactive, seen)
			}
			snap := env.getState(t)
			if snap.MET != core.TotalMissionDuration {
				t.Fatalf("final MET = %v, want %v", snap.MET, core.TotalMissionDuration)
			}
			return
		default:
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out after %d of %d challenges (%v)", len(seen), interactive, seen)
		}

		snap := env.getState(t)
		if snap.Pending == nil {
			time.Sleep(5 * time.Millisecond)
			continue
		}

		name := snap.Pending.Milestone.Name
		if seen[name] {
			t.Fatalf("milestone %q held the clock twice", name)
		}
		seen[name] = true

		if !snap.Paused {
			t.Fatalf("pending challenge at %q without a clock hold", name)
		}
		if score := env.submitChallenge(t, snap.Pending.Challenge.Target); score != 100 {
			t.Fatalf("bullseye at %q scored %d, want 100", name, score)
		}
	}
}

func TestTelemetryEndpointAgainstCore(t *testing.T) {
	env := newMissionTestEnv(t, false)

	for _, met := range []float64{0, 360, 43200, 86000, 250000, 460000, 600000, 837000} {
		resp, err := env.client.Get(fmt.Sprintf("%s/api/v1/telemetry?met=%v", env.server.URL, met))
		if err != nil {
			t.Fatalf("get telemetry: %v", err)
		}
		var got core.TelemetryData
		err = json.NewDecoder(resp.Body).Decode(&got)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("decode telemetry: %v", err)
		}
		if want := core.Telemetry(met); got != want {
			t.Fatalf("telemetry(%v) over HTTP = %+v, want %+v", met, got, want)
		}
	}
}
