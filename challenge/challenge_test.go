package challenge

import (
	"testing"

	"github.com/Yuvraajb/artemis2/core"
)

func TestEveryInteractiveMilestoneHasAChallenge(t *testing.T) {
	for _, m := range core.Milestones() {
		if !m.Interactive {
			continue
		}
		if _, ok := ForMilestone(m.Name); !ok {
			t.Fatalf("interactive milestone %q has no challenge", m.Name)
		}
	}
}

func TestEveryChallengeBindsAKnownMilestone(t *testing.T) {
	byName := map[string]core.Milestone{}
	for _, m := range core.Milestones() {
		byName[m.Name] = m
	}
	for _, c := range Catalog() {
		m, ok := byName[c.Milestone]
		if !ok {
			t.Fatalf("challenge %s references unknown milestone %q", c.ID, c.Milestone)
		}
		if !m.Interactive {
			t.Fatalf("challenge %s bound to non-interactive milestone %q", c.ID, c.Milestone)
		}
	}
}

func TestScore(t *testing.T) {
	c := Challenge{ID: "test", Target: 0.5, Window: 0.25}

	cases := []struct {
		name  string
		value float64
		want  int
	}{
		{"bullseye", 0.5, 100},
		{"half window off", 0.625, 50},
		{"edge of window", 0.75, 0},
		{"far miss", 1.0, 0},
		{"slider floor", 0.0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Score(tc.value)
			if err != nil {
				t.Fatalf("Score(%v): %v", tc.value, err)
			}
			if got != tc.want {
				t.Fatalf("Score(%v) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestScoreRejectsOutOfRangeValues(t *testing.T) {
	c := Catalog()[0]
	for _, v := range []float64{-0.1, 1.1, 2} {
		if _, err := c.Score(v); err == nil {
			t.Fatalf("Score(%v) accepted an out-of-range slider value", v)
		}
	}
}
