package core

// MissionPhase identifies one of the eight mission segments, ordered by
// mission sequence. The zero value is PreLaunch.
type MissionPhase int

const (
	PreLaunch MissionPhase = iota
	Launch
	EarthOrbit
	TranslunarInjection
	TranslunarCoast
	LunarFlyby
	ReturnTransit
	Reentry

	phaseCount
)

// TotalMissionDuration is the mission length in seconds, liftoff to
// splashdown (~9.7 days). It equals the sum of all phase durations; a
// test pins that equality.
const TotalMissionDuration = 838470.0

// PhaseInfo carries the immutable per-phase constants. Tag is a
// presentation hint (icon/colour key) that the core itself never reads.
type PhaseInfo struct {
	Name      string  `json:"name"`
	ShortName string  `json:"shortName"`
	Tag       string  `json:"tag"`
	Duration  float64 `json:"durationSeconds"`
}

// phaseTable is indexed by MissionPhase. PreLaunch has zero duration:
// the countdown lives at negative mission time and is clamped onto it,
// so MET 0 is already inside Launch.
var phaseTable = [phaseCount]PhaseInfo{
	PreLaunch:           {Name: "Pre-Launch", ShortName: "PAD", Tag: "slate", Duration: 0},
	Launch:              {Name: "Launch", ShortName: "ASC", Tag: "flame", Duration: 720},
	EarthOrbit:          {Name: "Earth Orbit", ShortName: "LEO", Tag: "sky", Duration: 84600},
	TranslunarInjection: {Name: "Trans-Lunar Injection", ShortName: "TLI", Tag: "amber", Duration: 1080},
	TranslunarCoast:     {Name: "Translunar Coast", ShortName: "TLC", Tag: "indigo", Duration: 362880},
	LunarFlyby:          {Name: "Lunar Flyby", ShortName: "FLY", Tag: "silver", Duration: 28800},
	ReturnTransit:       {Name: "Return Transit", ShortName: "RET", Tag: "teal", Duration: 357990},
	Reentry:             {Name: "Reentry", ShortName: "ENT", Tag: "ember", Duration: 2400},
}

// Phases returns all phases in mission order.
func Phases() []MissionPhase {
	out := make([]MissionPhase, phaseCount)
	for i := range out {
		out[i] = MissionPhase(i)
	}
	return out
}

// Info returns the immutable constants for the phase.
func (p MissionPhase) Info() PhaseInfo {
	if p < 0 || p >= phaseCount {
		return PhaseInfo{Name: "Unknown", ShortName: "UNK"}
	}
	return phaseTable[p]
}

// String implements the Stringer interface.
func (p MissionPhase) String() string {
	return p.Info().Name
}

// Duration returns the phase length in seconds.
func (p MissionPhase) Duration() float64 {
	return p.Info().Duration
}

// StartTime returns the cumulative duration of all phases ordered
// strictly before p.
func (p MissionPhase) StartTime() float64 {
	start := 0.0
	for i := MissionPhase(0); i < p && i < phaseCount; i++ {
		start += phaseTable[i].Duration
	}
	return start
}

// EndTime returns StartTime + Duration.
func (p MissionPhase) EndTime() float64 {
	return p.StartTime() + p.Duration()
}

// CurrentPhase maps a mission elapsed time onto its phase. The walk
// returns the first phase whose cumulative end exceeds met, so negative
// values land on PreLaunch (zero-width, end 0) and anything at or past
// TotalMissionDuration clamps onto Reentry. Total over all reals, no
// error conditions.
func CurrentPhase(met float64) MissionPhase {
	end := 0.0
	for p := MissionPhase(0); p < phaseCount; p++ {
		end += phaseTable[p].Duration
		if met < end {
			return p
		}
	}
	return Reentry
}

// PhaseProgress returns the fraction of the current phase elapsed,
// clamped into [0,1] for out-of-range input. Zero-duration phases
// report 0.
func PhaseProgress(met float64) float64 {
	p := CurrentPhase(met)
	d := p.Duration()
	if d <= 0 {
		return 0
	}
	frac := (met - p.StartTime()) / d
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
