package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/soniakeys/meeus/v3/julian"
)

// LaunchEpoch anchors MET 0 to a wall-clock instant. Only the epoch
// helpers below read it; the simulation itself runs purely on MET.
var LaunchEpoch = time.Date(2026, time.April, 8, 18, 0, 0, 0, time.UTC)

// MissionUTC converts a mission elapsed time to UTC. Negative values
// land in the countdown before LaunchEpoch.
func MissionUTC(met float64) time.Time {
	return LaunchEpoch.Add(time.Duration(met * float64(time.Second)))
}

// JulianDate returns the Julian date of the given mission time.
func JulianDate(met float64) float64 {
	return julian.TimeToJD(MissionUTC(met))
}

// EarthRotationAngle returns the Greenwich mean sidereal time at the
// given mission time, in radians [0, 2π). The scene renderer uses it to
// orient the Earth texture under the trajectory.
func EarthRotationAngle(met float64) float64 {
	θ := satellite.ThetaG_JD(JulianDate(met))
	θ = math.Mod(θ, 2*math.Pi)
	if θ < 0 {
		θ += 2 * math.Pi
	}
	return θ
}
