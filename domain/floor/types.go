// Package floor contains the pure statistical core of the projection
// engine: winsorization, hierarchical shrinkage, temporal smoothing,
// game-script and environment modifiers, and bootstrap prediction
// intervals. Nothing in this package performs I/O; callers gather data
// through ports and hand plain values in.
package floor

// Position identifies a skill-position group. Projections are only
// produced for the four positions below.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
)

// SkillPositions lists every position the engine evaluates.
var SkillPositions = []Position{QB, RB, WR, TE}

// IsSkillPosition reports whether pos is one of the evaluated groups.
func IsSkillPosition(pos Position) bool {
	switch pos {
	case QB, RB, WR, TE:
		return true
	}
	return false
}

// StatCategory describes one projected statistic for a position, plus
// the opportunity metric (attempts, targets, touches) that drives its
// volume-based point estimate. Opportunity is empty for categories
// projected directly via EWMA.
type StatCategory struct {
	Stat        string
	Opportunity string
	Label       string
}

// Opportunity metric names shared with the store layer.
const (
	StatPassingYards    = "passing_yards"
	StatRushingYards    = "rushing_yards"
	StatReceivingYards  = "receiving_yards"
	StatFantasyPoints   = "fantasy_points_ppr"
	OppPassingAttempts  = "passing_attempts"
	OppRushingAttempts  = "rushing_attempts"
	OppReceivingTargets = "receiving_targets"
	OppTotalTouches     = "total_touches"
)

var categoriesByPosition = map[Position][]StatCategory{
	QB: {
		{Stat: StatPassingYards, Opportunity: OppPassingAttempts, Label: "Passing Yards"},
		{Stat: StatFantasyPoints, Opportunity: OppPassingAttempts, Label: "Fantasy Points"},
	},
	RB: {
		{Stat: StatRushingYards, Opportunity: OppRushingAttempts, Label: "Rushing Yards"},
		{Stat: StatReceivingYards, Opportunity: OppReceivingTargets, Label: "Receiving Yards"},
		// RB fantasy points combine rushing and receiving usage.
		{Stat: StatFantasyPoints, Opportunity: OppTotalTouches, Label: "Fantasy Points"},
	},
	WR: {
		{Stat: StatReceivingYards, Opportunity: OppReceivingTargets, Label: "Receiving Yards"},
		{Stat: StatFantasyPoints, Opportunity: OppReceivingTargets, Label: "Fantasy Points"},
	},
	TE: {
		{Stat: StatReceivingYards, Opportunity: OppReceivingTargets, Label: "Receiving Yards"},
		{Stat: StatFantasyPoints, Opportunity: OppReceivingTargets, Label: "Fantasy Points"},
	},
}

// Categories returns the stat categories projected for a position.
func Categories(pos Position) []StatCategory {
	return categoriesByPosition[pos]
}

// Observation is one recorded value for one player/stat in one
// completed game. Week ordering carries the autocorrelation signal the
// block bootstrap depends on; callers must keep series chronological.
type Observation struct {
	GameID string
	Week   int
	Value  float64
}

// Series is a player's chronological observation sequence for one stat,
// split into the full season and a position-specific trailing window.
// Recent is always a suffix of Season.
type Series struct {
	Season []Observation
	Recent []Observation
}

// SeasonValues returns the season observation values in week order.
func (s Series) SeasonValues() []float64 { return values(s.Season) }

// RecentValues returns the trailing-window values in week order.
func (s Series) RecentValues() []float64 { return values(s.Recent) }

func values(obs []Observation) []float64 {
	out := make([]float64, len(obs))
	for i, o := range obs {
		out[i] = o.Value
	}
	return out
}

// ModifierSet collects the multiplicative context factors applied to a
// projection. Every factor is a bounded positive real; 1.0 means "no
// adjustment", which is also the degraded value whenever the underlying
// data is missing.
type ModifierSet struct {
	Opponent   float64
	Venue      float64
	Weather    float64
	Home       float64
	Player     float64
	GameScript float64
}

// NeutralModifiers returns a ModifierSet with every factor at 1.0.
func NeutralModifiers() ModifierSet {
	return ModifierSet{Opponent: 1, Venue: 1, Weather: 1, Home: 1, Player: 1, GameScript: 1}
}

// Combined returns the product of all factors.
func (m ModifierSet) Combined() float64 {
	return m.Opponent * m.Venue * m.Weather * m.Home * m.Player * m.GameScript
}
