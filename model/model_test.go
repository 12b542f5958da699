package model

import "testing"

func TestCrewRoster(t *testing.T) {
	roster := Crew()
	if len(roster) != 4 {
		t.Fatalf("crew size = %d, want 4", len(roster))
	}
	if roster[0].Role != "Commander" {
		t.Fatalf("seat 1 role = %q, want Commander", roster[0].Role)
	}
	seen := map[string]bool{}
	for _, m := range roster {
		if m.Name == "" || m.Agency == "" {
			t.Fatalf("incomplete crew record: %+v", m)
		}
		if seen[m.Name] {
			t.Fatalf("duplicate crew member %q", m.Name)
		}
		seen[m.Name] = true
	}
}

func TestCrewReturnsACopy(t *testing.T) {
	roster := Crew()
	roster[0].Name = "scribbled"
	if Crew()[0].Name == "scribbled" {
		t.Fatal("mutating the returned roster leaked into the canonical list")
	}
}

func TestFacts(t *testing.T) {
	f := Facts()
	if f.Name != "Artemis II" {
		t.Fatalf("mission name = %q", f.Name)
	}
	if f.CrewCount != len(Crew()) {
		t.Fatalf("fact sheet crew count %d disagrees with roster size %d", f.CrewCount, len(Crew()))
	}
}
