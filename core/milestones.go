package core

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Milestone is one entry of the fixed mission event list. The driver
// watches for crossings and pauses the clock on interactive ones; the
// core never mutates the list.
type Milestone struct {
	Name        string       `json:"name"`
	MissionTime float64      `json:"missionTime"`
	Phase       MissionPhase `json:"phase"`
	Description string       `json:"description"`
	Interactive bool         `json:"interactive"`
}

// builtinMilestones is ordered by trigger time. Times are seconds MET.
var builtinMilestones = []Milestone{
	{Name: "Liftoff", MissionTime: 0, Phase: Launch, Description: "SLS clears the tower from LC-39B."},
	{Name: "Max Q", MissionTime: 80, Phase: Launch, Description: "Peak aerodynamic pressure on the vehicle."},
	{Name: "Orbit Insertion", MissionTime: 720, Phase: EarthOrbit, Description: "Orion settles into its parking orbit.", Interactive: true},
	{Name: "TLI Burn Start", MissionTime: 85320, Phase: TranslunarInjection, Description: "ICPS lights for the trans-lunar injection burn.", Interactive: true},
	{Name: "TLI Cutoff", MissionTime: 86400, Phase: TranslunarCoast, Description: "Burn complete; Orion is on its free-return path."},
	{Name: "Outbound Midcourse Correction", MissionTime: 267840, Phase: TranslunarCoast, Description: "Trim burn at the outbound midpoint.", Interactive: true},
	{Name: "Lunar Sphere of Influence", MissionTime: 420000, Phase: TranslunarCoast, Description: "The Moon's gravity becomes the dominant pull."},
	{Name: "Closest Lunar Approach", MissionTime: 463680, Phase: LunarFlyby, Description: "Perilune pass over the lunar far side.", Interactive: true},
	{Name: "Return Midcourse Correction", MissionTime: 657075, Phase: ReturnTransit, Description: "Trim burn on the homeward leg.", Interactive: true},
	{Name: "Entry Interface", MissionTime: 836070, Phase: Reentry, Description: "Orion meets the atmosphere at 120 km.", Interactive: true},
	{Name: "Splashdown", MissionTime: 838470, Phase: Reentry, Description: "Main chutes out; recovery ships inbound."},
}

// Milestones returns the mission milestone list in trigger order. The
// returned slice is a copy; callers may not reorder the canonical list.
func Milestones() []Milestone {
	out := make([]Milestone, len(builtinMilestones))
	copy(out, builtinMilestones)
	return out
}

// MilestonesBetween returns the entries of list with trigger time in
// (from, to], in order. The driver calls this with two consecutive tick
// times to detect crossings; list is whatever milestone set it holds
// (built-in or loaded).
func MilestonesBetween(list []Milestone, from, to float64) []Milestone {
	var crossed []Milestone
	for _, m := range list {
		if m.MissionTime > from && m.MissionTime <= to {
			crossed = append(crossed, m)
		}
	}
	return crossed
}

// milestoneListJSON is the on-disk shape for scenario overrides.
type milestoneListJSON struct {
	Milestones []milestoneJSON `json:"milestones"`
}

type milestoneJSON struct {
	Name        string  `json:"name"`
	MissionTime float64 `json:"mission_time"`
	Phase       string  `json:"phase"`
	Description string  `json:"description"`
	Interactive bool    `json:"interactive"`
}

// LoadMilestones reads a milestone list from JSON, resolving phase
// short names against the phase table and sorting by trigger time. It
// fails only on JSON/structural errors; a trigger time outside its
// named phase's window is accepted the same way the built-ins are
// trusted.
func LoadMilestones(r io.Reader) ([]Milestone, error) {
	var payload milestoneListJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadMilestones: decode failed: %w", err)
	}
	if len(payload.Milestones) == 0 {
		return nil, fmt.Errorf("LoadMilestones: empty milestone list")
	}

	out := make([]Milestone, 0, len(payload.Milestones))
	for _, jm := range payload.Milestones {
		if jm.Name == "" {
			return nil, fmt.Errorf("LoadMilestones: milestone with empty name")
		}
		phase, ok := phaseByShortName(jm.Phase)
		if !ok {
			return nil, fmt.Errorf("LoadMilestones: milestone %q references unknown phase %q", jm.Name, jm.Phase)
		}
		out = append(out, Milestone{
			Name:        jm.Name,
			MissionTime: jm.MissionTime,
			Phase:       phase,
			Description: jm.Description,
			Interactive: jm.Interactive,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MissionTime < out[j].MissionTime })
	return out, nil
}

func phaseByShortName(short string) (MissionPhase, bool) {
	for p := MissionPhase(0); p < phaseCount; p++ {
		if phaseTable[p].ShortName == short {
			return p, true
		}
	}
	return 0, false
}
