package floor

import (
	"math"
	"testing"
)

func TestClassifyCondition_Priority(t *testing.T) {
	dome := &Venue{Surface: "FieldTurf", Roof: "Dome"}
	outdoorTurf := &Venue{Surface: "A-Turf Titan", Roof: "Open"}

	// Cold outranks everything, including wind
	coldWindy := &Weather{Temperature: fptr(10), WindSpeed: fptr(25)}
	if got := ClassifyCondition(outdoorTurf, coldWindy); got != CondCold {
		t.Errorf("Expected cold, got %q", got)
	}

	windy := &Weather{Temperature: fptr(40), WindSpeed: fptr(20)}
	if got := ClassifyCondition(outdoorTurf, windy); got != CondHighWind {
		t.Errorf("Expected high_wind, got %q", got)
	}

	// Calm weather: venue decides, dome before outdoor
	calm := &Weather{Temperature: fptr(70), WindSpeed: fptr(5)}
	if got := ClassifyCondition(dome, calm); got != CondDome {
		t.Errorf("Expected dome, got %q", got)
	}
	if got := ClassifyCondition(outdoorTurf, calm); got != CondOutdoor {
		t.Errorf("Expected outdoor, got %q", got)
	}

	// No roof information: fall through to the surface
	if got := ClassifyCondition(&Venue{Surface: "Bermuda grass"}, nil); got != CondGrass {
		t.Errorf("Expected grass, got %q", got)
	}
	if got := ClassifyCondition(nil, nil); got != CondUnknown {
		t.Errorf("Expected unknown, got %q", got)
	}
}

func TestPlayerConditionFactor(t *testing.T) {
	// Player averages 64 overall but 72 in domes across 3 dome games
	history := []ConditionObservation{
		{CondDome, 70}, {CondDome, 72}, {CondDome, 74},
		{CondOutdoor, 55}, {CondOutdoor, 60}, {CondOutdoor, 53},
	}

	got := PlayerConditionFactor(history, CondDome)
	want := 72.0 / 64.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Dome factor: expected %.4f, got %.4f", want, got)
	}
}

func TestPlayerConditionFactor_Neutral(t *testing.T) {
	history := []ConditionObservation{
		{CondDome, 70}, {CondDome, 75},
		{CondOutdoor, 45}, {CondOutdoor, 50}, {CondOutdoor, 40},
	}

	// Only 2 dome games: below the 3-game minimum
	if got := PlayerConditionFactor(history, CondDome); got != 1.0 {
		t.Errorf("Insufficient history: expected 1.0, got %.4f", got)
	}
	if got := PlayerConditionFactor(history, CondUnknown); got != 1.0 {
		t.Errorf("Unknown condition: expected 1.0, got %.4f", got)
	}
	if got := PlayerConditionFactor(nil, CondDome); got != 1.0 {
		t.Errorf("No history: expected 1.0, got %.4f", got)
	}
}

func TestPlayerConditionFactor_Capped(t *testing.T) {
	history := []ConditionObservation{
		{CondCold, 100}, {CondCold, 110}, {CondCold, 120},
		{CondOutdoor, 10}, {CondOutdoor, 12}, {CondOutdoor, 8},
	}
	if got := PlayerConditionFactor(history, CondCold); got != 1.2 {
		t.Errorf("Expected upper cap 1.2, got %.4f", got)
	}
}
