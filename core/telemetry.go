package core

import "math"

// TelemetryData is the dashboard-facing readout for one mission time.
// Value struct, fully recomputed per call; there is no hidden state.
// Distances are km, speeds km/s, fuel in percent.
type TelemetryData struct {
	Altitude           float64 `json:"altitude"`
	Speed              float64 `json:"speed"`
	DistanceFromEarth  float64 `json:"distanceFromEarth"`
	DistanceFromMoon   float64 `json:"distanceFromMoon"`
	GForce             float64 `json:"gForce"`
	MissionElapsedTime float64 `json:"missionElapsedTime"`
	FuelRemaining      float64 `json:"fuelRemaining"`
}

// Telemetry evaluates the per-phase telemetry formulas at met. The
// curves are narrative-driven closed forms, not physics: each one was
// tuned so the dashboard tells the story the mission timeline expects.
// Total over all reals via the clamped phase lookup.
func Telemetry(met float64) TelemetryData {
	phase := CurrentPhase(met)
	p := PhaseProgress(met)

	t := TelemetryData{MissionElapsedTime: met}

	switch phase {
	case PreLaunch:
		t.Altitude = 0
		t.Speed = 0
		t.GForce = 1.0
		t.FuelRemaining = 100
	case Launch:
		t.Altitude = ParkingOrbitAltitudeKm * p * p
		t.Speed = LEOVelocityKmS * p
		t.GForce = 1.0 + 1.5*p
		t.FuelRemaining = 100 - 70*p
	case EarthOrbit:
		t.Altitude = ParkingOrbitAltitudeKm
		t.Speed = LEOVelocityKmS
		t.GForce = 0 // microgravity
		t.FuelRemaining = 30
	case TranslunarInjection:
		t.Altitude = ParkingOrbitAltitudeKm + (TLICutoffAltitudeKm-ParkingOrbitAltitudeKm)*p
		t.Speed = LEOVelocityKmS + (TLIVelocityKmS-LEOVelocityKmS)*p
		t.GForce = 0.5 + 1.0*p
		t.FuelRemaining = 30 - 20*p
	case TranslunarCoast:
		// Earth's pull fades linearly while the Moon's influence grows
		// with the square of progress, on top of a fixed floor.
		earthTerm := (TLIVelocityKmS - CoastBaseSpeedKmS) * (1 - p)
		moonTerm := MoonApproachGainKmS * p * p
		t.Speed = CoastBaseSpeedKmS + earthTerm + moonTerm
		t.Altitude = ParkingOrbitAltitudeKm + (EarthMoonDistanceKm-ParkingOrbitAltitudeKm)*p
		t.GForce = 0
		t.FuelRemaining = 10
	case LunarFlyby:
		t.Speed = FlybyBaseSpeedKmS + FlybySpeedBumpKmS*math.Sin(p*math.Pi)
		t.Altitude = LunarFlybyAltitudeKm
		t.GForce = 0
		t.FuelRemaining = 10
	case ReturnTransit:
		t.Speed = FlybyBaseSpeedKmS + (ReentrySpeedKmS-FlybyBaseSpeedKmS)*p*p
		t.Altitude = EarthMoonDistanceKm + (EntryInterfaceAltitudeKm-EarthMoonDistanceKm)*p
		t.GForce = 0
		t.FuelRemaining = 5
	case Reentry:
		// Decay toward 1% of the entry-interface speed.
		t.Speed = ReentrySpeedKmS * (1 - 0.99*p)
		t.Altitude = EntryInterfaceAltitudeKm * (1 - p)
		// Skip entry: the sine's positive lobes give the two
		// deceleration pulses with a trough between them.
		t.GForce = 1.0 + math.Max(0, math.Sin(p*2*math.Pi))*MaxGForceReentry
		t.FuelRemaining = 2
	}

	// Altitude doubles as a 1-D progress proxy along the Earth-Moon
	// corridor; both distances derive from it rather than from the 3-D
	// position curve.
	t.DistanceFromEarth = EarthRadiusKm + t.Altitude
	t.DistanceFromMoon = math.Max(MoonRadiusKm, EarthMoonDistanceKm-t.Altitude)

	return t
}
