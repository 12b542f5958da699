// Package challenge holds the interactive mini-games surfaced when the
// mission clock pauses at an interactive milestone. Each challenge
// scores a single slider value in [0,1] against a hand-tuned target;
// nothing here feeds back into the trajectory or telemetry evaluators.
package challenge

import (
	"fmt"
	"math"
)

// Challenge describes one mini-game. Target is the ideal slider
// position; Window is the distance at which the score reaches zero.
type Challenge struct {
	ID        string  `json:"id"`
	Milestone string  `json:"milestone"`
	Title     string  `json:"title"`
	Prompt    string  `json:"prompt"`
	Target    float64 `json:"target"`
	Window    float64 `json:"window"`
}

var catalog = []Challenge{
	{
		ID:        "orbit-insertion",
		Milestone: "Orbit Insertion",
		Title:     "Circularize the Orbit",
		Prompt:    "Time the OMS cutoff to settle into the 185 km parking orbit.",
		Target:    0.62,
		Window:    0.30,
	},
	{
		ID:        "tli-burn",
		Milestone: "TLI Burn Start",
		Title:     "Commit to the Moon",
		Prompt:    "Throttle the ICPS to hit trans-lunar injection velocity.",
		Target:    0.75,
		Window:    0.25,
	},
	{
		ID:        "outbound-mcc",
		Milestone: "Outbound Midcourse Correction",
		Title:     "Thread the Corridor",
		Prompt:    "Trim the burn to keep Orion inside the free-return corridor.",
		Target:    0.50,
		Window:    0.20,
	},
	{
		ID:        "flyby-photo",
		Milestone: "Closest Lunar Approach",
		Title:     "Farside Photography",
		Prompt:    "Align the camera during the perilune pass.",
		Target:    0.45,
		Window:    0.35,
	},
	{
		ID:        "return-mcc",
		Milestone: "Return Midcourse Correction",
		Title:     "Aim for Home",
		Prompt:    "Fine-tune the return corridor for entry interface.",
		Target:    0.55,
		Window:    0.20,
	},
	{
		ID:        "entry-angle",
		Milestone: "Entry Interface",
		Title:     "Skip Entry Angle",
		Prompt:    "Set the entry flight path angle for a clean two-pulse skip.",
		Target:    0.40,
		Window:    0.15,
	},
}

// Catalog returns all challenges in mission order. The slice is a copy.
func Catalog() []Challenge {
	out := make([]Challenge, len(catalog))
	copy(out, catalog)
	return out
}

// ForMilestone returns the challenge attached to the named milestone,
// if any.
func ForMilestone(name string) (Challenge, bool) {
	for _, c := range catalog {
		if c.Milestone == name {
			return c, true
		}
	}
	return Challenge{}, false
}

// Score grades a slider value against the challenge. The score falls
// off linearly from 100 at the target to 0 at the edge of the window.
// Values outside [0,1] are rejected.
func (c Challenge) Score(value float64) (int, error) {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return 0, fmt.Errorf("challenge %s: slider value %v outside [0,1]", c.ID, value)
	}
	if c.Window <= 0 {
		return 0, fmt.Errorf("challenge %s: non-positive window %v", c.ID, c.Window)
	}
	miss := math.Abs(value-c.Target) / c.Window
	if miss >= 1 {
		return 0, nil
	}
	return int(math.Round(100 * (1 - miss))), nil
}
