package model

// MissionFacts is the static fact sheet rendered on the mission
// overview card.
type MissionFacts struct {
	Name         string  `json:"name"`
	Vehicle      string  `json:"vehicle"`
	Rocket       string  `json:"rocket"`
	LaunchSite   string  `json:"launchSite"`
	LaunchDate   string  `json:"launchDate"`
	DurationDays float64 `json:"durationDays"`
	CrewCount    int     `json:"crewCount"`
	Objective    string  `json:"objective"`
}

// Facts returns the Artemis II fact sheet.
func Facts() MissionFacts {
	return MissionFacts{
		Name:         "Artemis II",
		Vehicle:      "Orion MPCV",
		Rocket:       "Space Launch System Block 1",
		LaunchSite:   "Kennedy Space Center, LC-39B",
		LaunchDate:   "2026-04-08",
		DurationDays: 9.7,
		CrewCount:    4,
		Objective:    "First crewed lunar flyby since Apollo 17, on a free-return trajectory.",
	}
}
