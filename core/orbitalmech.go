package core

import "math"

// Circular two-body helpers used by the dashboard for flavour readouts.
// They feed neither Position nor Telemetry. Inputs must be positive;
// validation is the caller's job.

// OrbitalVelocity returns the circular orbital speed (km/s) at the
// given altitude above Earth's surface.
func OrbitalVelocity(altitudeKm float64) float64 {
	return math.Sqrt(MuEarth / (EarthRadiusKm + altitudeKm))
}

// EscapeVelocity returns the escape speed (km/s) at the given distance
// from Earth's centre.
func EscapeVelocity(distanceKm float64) float64 {
	return math.Sqrt(2 * MuEarth / distanceKm)
}

// OrbitalPeriod returns the circular orbital period (s) at the given
// altitude above Earth's surface.
func OrbitalPeriod(altitudeKm float64) float64 {
	r := EarthRadiusKm + altitudeKm
	return 2 * math.Pi * math.Sqrt(r*r*r/MuEarth)
}
