package model

// CrewMember is one row of the static crew roster shown on the crew
// cards. Plain value data; nothing in the simulation reads it.
type CrewMember struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Agency string `json:"agency"`
	Bio    string `json:"bio"`
}

var crew = []CrewMember{
	{
		Name:   "Reid Wiseman",
		Role:   "Commander",
		Agency: "NASA",
		Bio:    "Naval aviator and veteran of Expedition 41 aboard the ISS.",
	},
	{
		Name:   "Victor Glover",
		Role:   "Pilot",
		Agency: "NASA",
		Bio:    "Flew SpaceX Crew-1; first person of color on a lunar mission.",
	},
	{
		Name:   "Christina Koch",
		Role:   "Mission Specialist 1",
		Agency: "NASA",
		Bio:    "Holds the record for the longest single spaceflight by a woman.",
	},
	{
		Name:   "Jeremy Hansen",
		Role:   "Mission Specialist 2",
		Agency: "CSA",
		Bio:    "CF-18 fighter pilot; first Canadian to travel to the Moon.",
	},
}

// Crew returns the Artemis II roster in seat order. The returned slice
// is a copy.
func Crew() []CrewMember {
	out := make([]CrewMember, len(crew))
	copy(out, crew)
	return out
}
