package floor

import "strings"

// Environmental condition classes a game can fall into, most specific
// first. A game matches exactly one class.
const (
	CondCold     = "cold"
	CondHighWind = "high_wind"
	CondDome     = "dome"
	CondOutdoor  = "outdoor"
	CondTurf     = "turf"
	CondGrass    = "grass"
	CondUnknown  = ""
)

// ClassifyCondition buckets a game by its dominant environmental
// condition, checked in priority order: cold beats wind beats venue
// characteristics, since temperature is the strongest documented
// performance signal.
func ClassifyCondition(v *Venue, w *Weather) string {
	if w.ExtremeCold() {
		return CondCold
	}
	if w.HighWind() {
		return CondHighWind
	}
	if v != nil {
		switch strings.ToLower(v.Roof) {
		case "dome", "retractable dome":
			return CondDome
		case "":
		default:
			return CondOutdoor
		}
		surface := strings.ToLower(v.Surface)
		switch {
		case strings.Contains(surface, "turf"):
			return CondTurf
		case strings.Contains(surface, "grass"):
			return CondGrass
		}
	}
	return CondUnknown
}

// ConditionObservation is one historical game value tagged with the
// condition class it was played under.
type ConditionObservation struct {
	Condition string
	Value     float64
}

const conditionMinGames = 3

// PlayerConditionFactor measures how a player performs under a specific
// condition relative to their overall level: mean of matching games
// over mean of all games, capped to +/-20%. Fewer than three matching
// games, or an unknown condition, is neutral.
func PlayerConditionFactor(history []ConditionObservation, condition string) float64 {
	if condition == CondUnknown || len(history) == 0 {
		return 1.0
	}
	var all, matching []float64
	for _, obs := range history {
		all = append(all, obs.Value)
		if obs.Condition == condition {
			matching = append(matching, obs.Value)
		}
	}
	if len(matching) < conditionMinGames {
		return 1.0
	}
	overall := Mean(all)
	if overall <= 0 {
		return 1.0
	}
	return clamp(Mean(matching)/overall, 0.8, 1.2)
}
