package core

// Mission-wide physical and narrative constants. Defined once, never
// mutated. Distances in kilometres, speeds in km/s, times in seconds.
const (
	// EarthRadiusKm is the mean Earth radius.
	EarthRadiusKm = 6371.0
	// MoonRadiusKm is the mean lunar radius.
	MoonRadiusKm = 1737.4
	// EarthMoonDistanceKm is the mean centre-to-centre separation.
	EarthMoonDistanceKm = 384400.0

	// MuEarth is Earth's standard gravitational parameter (km³/s²).
	MuEarth = 398600.4418
	// MuMoon is the Moon's standard gravitational parameter (km³/s²).
	MuMoon = 4902.800066

	// ParkingOrbitAltitudeKm is the post-insertion LEO altitude.
	ParkingOrbitAltitudeKm = 185.0
	// LEOVelocityKmS is the circular parking-orbit speed.
	LEOVelocityKmS = 7.79
	// TLIVelocityKmS is the speed at trans-lunar injection cutoff.
	TLIVelocityKmS = 10.97
	// TLICutoffAltitudeKm is the apogee raise achieved during the burn.
	TLICutoffAltitudeKm = 540.0

	// Coast-speed blend terms. The outbound speed profile mixes a
	// decaying Earth-departure term with a growing Moon-approach term
	// on top of this floor.
	CoastBaseSpeedKmS    = 0.8
	MoonApproachGainKmS  = 0.15
	FlybyBaseSpeedKmS    = 0.95
	FlybySpeedBumpKmS    = 0.45
	FlybyPeriluneKm      = 10300.0
	// LunarFlybyAltitudeKm is the altitude proxy held during the flyby,
	// chosen so the distance-from-Moon readout lands on the perilune.
	LunarFlybyAltitudeKm = EarthMoonDistanceKm - FlybyPeriluneKm

	// EntryInterfaceAltitudeKm is where reentry is considered to begin.
	EntryInterfaceAltitudeKm = 120.0
	// ReentrySpeedKmS is the entry-interface speed for a lunar return.
	ReentrySpeedKmS = 11.0
	// MaxGForceReentry is the peak deceleration of each skip-entry pulse.
	MaxGForceReentry = 4.0
)

// Visualization-space constants. These are rendering units, not
// kilometres: Earth sits at the origin with radius 1, the Moon is fixed
// 10 units down the +X axis.
const (
	earthVisualRadius = 1.0
	orbitVisualRadius = 1.5
	moonVisualOffsetX = 10.0
)

// MoonPosition is the fixed visualization-space position of the Moon.
var MoonPosition = Vec3{X: moonVisualOffsetX, Y: 0, Z: 0}

// PadPosition is the launch pad in visualization space, on the
// Earth-sphere surface facing the Moon.
var PadPosition = Vec3{X: earthVisualRadius, Y: 0, Z: 0}

// SplashdownPosition is where the reentry segment terminates.
var SplashdownPosition = Vec3{X: 0, Y: -earthVisualRadius, Z: 0}
