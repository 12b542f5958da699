// Command simulator plays the Artemis II mission back on the console:
// an accelerated clock drives the stateless evaluators and prints one
// telemetry line per tick, with milestone callouts as they are crossed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/logging"
	"github.com/Yuvraajb/artemis2/internal/sim"
	"github.com/Yuvraajb/artemis2/timectrl"
)

func main() {
	tick := flag.Duration("tick", 1*time.Second, "wall interval between updates")
	scale := flag.Float64("scale", 0, "MET seconds per wall second (0 = mode default)")
	accelerated := flag.Bool("accelerated", true, "run in accelerated mode (vs real-time)")
	startMET := flag.Float64("start-met", 0, "mission elapsed time to start from, in seconds (negative for countdown)")
	milestonesPath := flag.String("milestones", "", "optional JSON file overriding the built-in milestone list")
	flag.Parse()

	log := logging.NewFromEnv()

	milestones := core.Milestones()
	if *milestonesPath != "" {
		f, err := os.Open(*milestonesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open milestone file %q: %v\n", *milestonesPath, err)
			os.Exit(1)
		}
		milestones, err = core.LoadMilestones(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse milestone file %q: %v\n", *milestonesPath, err)
			os.Exit(1)
		}
	}

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	clock := timectrl.NewMissionClock(*startMET, *tick, *scale, mode)

	// Playback never holds for challenges; crossings print instead.
	driver := sim.NewDriver(clock, log,
		sim.WithMilestones(milestones),
		sim.WithMilestonePauses(false),
	)

	lastMET := *startMET - 1e-9
	clock.AddListener(func(met float64) {
		for _, m := range core.MilestonesBetween(milestones, lastMET, met) {
			fmt.Printf("=== %-10s %-30s %s\n", formatMET(m.MissionTime), m.Name, m.Description)
		}
		lastMET = met

		snap := driver.Snapshot()
		t := snap.Telemetry
		fmt.Printf("[%s] %-3s %5.1f%%  alt=%9.1f km  v=%6.2f km/s  dE=%9.0f km  dM=%9.0f km  g=%4.2f  fuel=%5.1f%%\n",
			formatMET(met),
			snap.Phase.Info().ShortName,
			snap.PhaseProgress*100,
			t.Altitude,
			t.Speed,
			t.DistanceFromEarth,
			t.DistanceFromMoon,
			t.GForce,
			t.FuelRemaining,
		)
	})

	fmt.Printf("Artemis II playback: tick=%s scale=%.0fx start=%s\n",
		*tick, clock.TimeScale(), formatMET(*startMET))

	stop := make(chan struct{})
	done := clock.Start(stop)
	<-done

	log.Info(context.Background(), "playback complete",
		logging.Float64("met", clock.MET()))
	fmt.Printf("Splashdown. Mission complete at %s.\n", formatMET(clock.MET()))
}

// formatMET renders seconds as a signed D/HH:MM:SS mission clock.
func formatMET(met float64) string {
	sign := "+"
	if met < 0 {
		sign = "-"
		met = -met
	}
	total := int64(met)
	days := total / 86400
	hours := (total % 86400) / 3600
	mins := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("T%s%d/%02d:%02d:%02d", sign, days, hours, mins, secs)
}
