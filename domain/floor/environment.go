package floor

import "strings"

// Feature keys resolvable through a ModifierSource.
const (
	FeatureHome          = "home"
	FeatureAway          = "away"
	FeatureTurf          = "turf"
	FeatureGrass         = "grass"
	FeatureDome          = "dome"
	FeatureHighWind      = "high_wind"
	FeaturePrecipitation = "precipitation"
	FeatureExtremeCold   = "extreme_cold"
)

// ModifierSource resolves one environment feature to a multiplicative
// factor. The second return is false when the source has no opinion,
// letting the next source in a chain answer instead.
type ModifierSource interface {
	Modifier(feature string) (float64, bool)
}

// StaticDefaults is the config-backed ModifierSource, always answering.
type StaticDefaults struct {
	Home          float64
	Away          float64
	Turf          float64
	Grass         float64
	Dome          float64
	HighWind      float64
	Precipitation float64
	ExtremeCold   float64
}

// DefaultModifiers returns the stock static factors: small venue and
// home boosts, penalty multipliers for bad weather.
func DefaultModifiers() StaticDefaults {
	return StaticDefaults{
		Home:          1.02,
		Away:          0.99,
		Turf:          1.02,
		Grass:         1.0,
		Dome:          1.03,
		HighWind:      0.92,
		Precipitation: 0.95,
		ExtremeCold:   0.96,
	}
}

func (s StaticDefaults) Modifier(feature string) (float64, bool) {
	switch feature {
	case FeatureHome:
		return s.Home, true
	case FeatureAway:
		return s.Away, true
	case FeatureTurf:
		return s.Turf, true
	case FeatureGrass:
		return s.Grass, true
	case FeatureDome:
		return s.Dome, true
	case FeatureHighWind:
		return s.HighWind, true
	case FeaturePrecipitation:
		return s.Precipitation, true
	case FeatureExtremeCold:
		return s.ExtremeCold, true
	}
	return 0, false
}

// LearnedWeights maps externally trained feature importances (0..1)
// into bounded factors: 1 + (importance - 0.25) * 0.2, clamped to
// [0.8, 1.2]. Features without a trained importance defer to the next
// source.
type LearnedWeights struct {
	Importances map[string]float64
}

func (l LearnedWeights) Modifier(feature string) (float64, bool) {
	imp, ok := l.Importances[feature]
	if !ok {
		return 0, false
	}
	return clamp(1+(imp-0.25)*0.2, 0.8, 1.2), true
}

// ChainSource tries each source in order, so learned weights can sit in
// front of the static defaults.
type ChainSource []ModifierSource

func (c ChainSource) Modifier(feature string) (float64, bool) {
	for _, src := range c {
		if v, ok := src.Modifier(feature); ok {
			return v, true
		}
	}
	return 0, false
}

// Venue is the stadium context for a game. Nil pointer means unknown.
type Venue struct {
	Name    string
	Surface string
	Roof    string
}

// Weather is the observed or forecast game weather. Nil fields mean the
// reading is unavailable; a nil *Weather means no weather row at all,
// which is a benign condition, not an error.
type Weather struct {
	Temperature *float64
	WindSpeed   *float64
	Conditions  string
}

const (
	highWindThreshold    = 15.0
	extremeColdThreshold = 25.0
)

// HighWind reports a wind reading above the 15 mph penalty threshold.
func (w *Weather) HighWind() bool {
	return w != nil && w.WindSpeed != nil && *w.WindSpeed > highWindThreshold
}

// Precipitating reports rain or snow in the conditions text.
func (w *Weather) Precipitating() bool {
	if w == nil {
		return false
	}
	c := strings.ToLower(w.Conditions)
	return strings.Contains(c, "rain") || strings.Contains(c, "snow")
}

// ExtremeCold reports a temperature below the 25F penalty threshold.
func (w *Weather) ExtremeCold() bool {
	return w != nil && w.Temperature != nil && *w.Temperature < extremeColdThreshold
}

// EnvironmentInput carries everything the environment modifier reads.
// Any absent piece leaves its sub-factor at 1.0.
type EnvironmentInput struct {
	IsHome    bool
	HomeKnown bool
	Venue     *Venue
	Weather   *Weather
}

// Environment is the combined venue/weather/home modifier with its
// components and a human-readable summary of what applied.
type Environment struct {
	Modifier float64
	Venue    float64
	Weather  float64
	Home     float64
	Details  string
}

// NeutralEnvironment is the no-data result.
func NeutralEnvironment() Environment {
	return Environment{Modifier: 1, Venue: 1, Weather: 1, Home: 1, Details: "standard conditions"}
}

// EnvironmentModifier combines home-field, venue, and weather factors
// multiplicatively, resolving each through src. Every sub-factor
// degrades to 1.0 when its data is missing; weather penalties compound
// when several conditions hold at once.
func EnvironmentModifier(in EnvironmentInput, src ModifierSource) Environment {
	env := NeutralEnvironment()
	var details []string

	if in.HomeKnown {
		if in.IsHome {
			env.Home = resolve(src, FeatureHome)
			details = append(details, "home advantage")
		} else {
			env.Home = resolve(src, FeatureAway)
			details = append(details, "away game")
		}
	}

	if v := in.Venue; v != nil {
		surface := strings.ToLower(v.Surface)
		if strings.Contains(surface, "turf") {
			env.Venue *= resolve(src, FeatureTurf)
			details = append(details, v.Name+" (turf)")
		} else if strings.Contains(surface, "grass") {
			env.Venue *= resolve(src, FeatureGrass)
		}
		roof := strings.ToLower(v.Roof)
		if roof == "dome" || roof == "retractable dome" {
			env.Venue *= resolve(src, FeatureDome)
			details = append(details, "dome")
		}
	}

	if w := in.Weather; w != nil {
		if w.HighWind() {
			env.Weather *= resolve(src, FeatureHighWind)
			details = append(details, "high wind")
		}
		if w.Precipitating() {
			env.Weather *= resolve(src, FeaturePrecipitation)
			details = append(details, strings.ToLower(w.Conditions))
		}
		if w.ExtremeCold() {
			env.Weather *= resolve(src, FeatureExtremeCold)
			details = append(details, "extreme cold")
		}
	}

	env.Modifier = Round2(env.Venue * env.Weather * env.Home)
	env.Venue = Round2(env.Venue)
	env.Weather = Round2(env.Weather)
	env.Home = Round2(env.Home)
	if len(details) > 0 {
		env.Details = strings.Join(details, ", ")
	}
	return env
}

func resolve(src ModifierSource, feature string) float64 {
	if src == nil {
		return 1.0
	}
	if v, ok := src.Modifier(feature); ok {
		return v
	}
	return 1.0
}
