package core

import (
	"fmt"
	"math"
)

// Per-phase curve geometry, hand-tuned against the visualization rather
// than derived from dynamics. Segment endpoints approximately meet at
// phase boundaries; the small seams are intentional and cheaper than
// boundary-matched control points for a camera marker.
var (
	// Outbound coast: post-injection point out to the near side of the Moon.
	coastStart    = Vec3{X: 2.0225, Y: -1.4695, Z: 0.1}
	coastControl1 = Vec3{X: 4.8, Y: -2.6, Z: 0.35}
	coastControl2 = Vec3{X: 7.6, Y: -1.1, Z: 0.45}
	coastEnd      = Vec3{X: 8.92, Y: 0.40, Z: 0.18}

	// Return transit: far side of the Moon back toward Earth, control
	// points mirrored across the Earth-Moon axis.
	returnStart    = Vec3{X: 11.1, Y: 0, Z: 0}
	returnControl1 = Vec3{X: 7.6, Y: 1.1, Z: 0.45}
	returnControl2 = Vec3{X: 4.8, Y: 2.6, Z: 0.35}
	returnEnd      = Vec3{X: 1.62, Y: 0.42, Z: 0.12}
)

const (
	// Parking orbit sweeps one and a half revolutions over the phase.
	earthOrbitRevolutions = 1.5
	earthOrbitWobble      = 0.05

	// Injection continues the parking arc's end angle while the radius
	// grows linearly out to the coast handoff.
	tliSweep        = 0.8 * math.Pi
	tliRadiusGrowth = 1.0
	tliClimb        = 0.1

	// Flyby: flattened ellipse arc about the Moon, 1.2π sweep entered
	// with a 0.8π angular lead.
	flybySemiMajor = 1.1
	flybySemiMinor = 0.7
	flybyLead      = 0.8 * math.Pi
	flybySweep     = 1.2 * math.Pi

	launchRise        = 0.5
	launchLateralBias = 0.15
)

// Position maps a mission elapsed time onto the spacecraft marker's
// visualization-space position. Stateless: everything is re-derived
// from met on every call.
func Position(met float64) Vec3 {
	phase := CurrentPhase(met)
	p := PhaseProgress(met)

	switch phase {
	case PreLaunch:
		return PadPosition
	case Launch:
		// Vertical rise off the pad with a small lateral sine bias.
		return Vec3{
			X: earthVisualRadius + launchRise*p,
			Y: launchLateralBias * math.Sin(p*math.Pi),
			Z: 0,
		}
	case EarthOrbit:
		θ := p * earthOrbitRevolutions * 2 * math.Pi
		return Vec3{
			X: orbitVisualRadius * math.Cos(θ),
			Y: orbitVisualRadius * math.Sin(θ),
			Z: earthOrbitWobble * math.Sin(p*4*math.Pi),
		}
	case TranslunarInjection:
		// Spiral outward from the parking arc's ending angle.
		θ := earthOrbitRevolutions*2*math.Pi + tliSweep*p
		r := orbitVisualRadius + tliRadiusGrowth*p
		return Vec3{
			X: r * math.Cos(θ),
			Y: r * math.Sin(θ),
			Z: tliClimb * p,
		}
	case TranslunarCoast:
		return cubicBezier(coastStart, coastControl1, coastControl2, coastEnd, p)
	case LunarFlyby:
		φ := flybyLead + flybySweep*p
		return MoonPosition.Add(Vec3{
			X: flybySemiMajor * math.Cos(φ),
			Y: flybySemiMinor * math.Sin(φ),
			Z: coastEnd.Z * (1 - p),
		})
	case ReturnTransit:
		return cubicBezier(returnStart, returnControl1, returnControl2, returnEnd, p)
	case Reentry:
		return returnEnd.Lerp(SplashdownPosition, p)
	default:
		return PadPosition
	}
}

// TrajectoryPoints samples Position at count evenly spaced mission
// times from 0 through TotalMissionDuration inclusive, for drawing the
// static full-mission path. The first point equals Position(0) and the
// last equals Position(TotalMissionDuration).
//
// count must be positive; anything else is a caller bug and panics
// rather than silently returning a garbage path.
func TrajectoryPoints(count int) []Vec3 {
	return sampleWindow(0, TotalMissionDuration, count)
}

// PhaseTrajectoryPoints samples the path across a single phase's time
// window. Zero-duration phases collapse to repeated samples of the
// window start. count must be positive.
func PhaseTrajectoryPoints(phase MissionPhase, count int) []Vec3 {
	start := phase.StartTime()
	return sampleWindow(start, start+phase.Duration(), count)
}

func sampleWindow(from, to float64, count int) []Vec3 {
	if count < 1 {
		panic(fmt.Sprintf("trajectory sample count must be positive, got %d", count))
	}
	pts := make([]Vec3, count)
	if count == 1 {
		pts[0] = Position(from)
		return pts
	}
	step := (to - from) / float64(count-1)
	for i := range pts {
		pts[i] = Position(from + float64(i)*step)
	}
	// Pin the final sample to the exact window end; the incremental sum
	// can otherwise land a hair past it.
	pts[count-1] = Position(to)
	return pts
}
