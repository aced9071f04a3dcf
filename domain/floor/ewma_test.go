package floor

import (
	"math"
	"testing"
)

func TestEWMA_WeightsRecentGames(t *testing.T) {
	// Scenario: rising passing yards, EWMA should sit above the plain
	// mean because the latest games are the biggest
	values := []float64{200, 180, 220}

	got := EWMA(values, 0.3)

	// Seed 200 -> 0.3*180+0.7*200 = 186 -> 0.3*220+0.7*186 = 196.2
	if math.Abs(got-196.2) > 1e-9 {
		t.Errorf("Expected 196.2, got %.4f", got)
	}
}

func TestEWMA_EmptyAndSingle(t *testing.T) {
	if got := EWMA(nil, 0.3); got != 0 {
		t.Errorf("Empty series: expected 0, got %.2f", got)
	}
	if got := EWMA([]float64{42}, 0.3); got != 42 {
		t.Errorf("Single value: expected 42, got %.2f", got)
	}
}

func TestPositionAlpha(t *testing.T) {
	if PositionAlpha(WR) <= PositionAlpha(QB) {
		t.Errorf("WR alpha (%.2f) should exceed QB alpha (%.2f)", PositionAlpha(WR), PositionAlpha(QB))
	}
	if got := PositionAlpha(Position("K")); got != defaultAlpha {
		t.Errorf("Unknown position: expected default %.2f, got %.2f", defaultAlpha, got)
	}
}

func TestAdaptiveAlpha_Clamped(t *testing.T) {
	// Perfectly steady player: CV=0, only the game-count boost applies
	steady := []float64{100, 100, 100, 100, 100}
	want := 0.3 * (1 + math.Log(5)/10)
	if got := AdaptiveAlpha(steady, 0.3); math.Abs(got-want) > 1e-9 {
		t.Errorf("Steady series: expected %.4f, got %.4f", want, got)
	}

	// Wildly volatile series pushes alpha down, never below the floor
	volatile := []float64{10, 300, 5, 280, 15, 310}
	got := AdaptiveAlpha(volatile, 0.3)
	if got < minAlpha || got > maxAlpha {
		t.Errorf("Alpha %.4f outside [%.2f, %.2f]", got, minAlpha, maxAlpha)
	}
	if got >= 0.3 {
		t.Errorf("Volatile series should lower alpha below base, got %.4f", got)
	}
}

func TestAdaptiveEWMA_ShortSeriesUsesLatest(t *testing.T) {
	// Under three games there is no volatility to estimate
	if got := AdaptiveEWMA([]float64{180, 220}, 0.3); got != 220 {
		t.Errorf("Expected latest value 220, got %.2f", got)
	}
	if got := AdaptiveEWMA(nil, 0.3); got != 0 {
		t.Errorf("Empty: expected 0, got %.2f", got)
	}
}

func TestEWMATrend_Classification(t *testing.T) {
	rising := []float64{100, 120, 140, 160, 180}
	if info := EWMATrend(rising, 0.3); info.Trend != TrendImproving || info.Direction != 1 {
		t.Errorf("Rising series: expected improving, got %s (dir %d)", info.Trend, info.Direction)
	}

	falling := []float64{180, 160, 140, 120, 100}
	if info := EWMATrend(falling, 0.3); info.Trend != TrendDeclining || info.Direction != -1 {
		t.Errorf("Falling series: expected declining, got %s (dir %d)", info.Trend, info.Direction)
	}

	flat := []float64{150, 150, 150, 150}
	if info := EWMATrend(flat, 0.3); info.Trend != TrendStable {
		t.Errorf("Flat series: expected stable, got %s", info.Trend)
	}

	if info := EWMATrend([]float64{100, 200}, 0.3); info.Trend != TrendStable {
		t.Errorf("Two games: expected stable, got %s", info.Trend)
	}
}

func TestTemporalProjection_Blend(t *testing.T) {
	// Two recent games: recent leg resolves to the latest value
	got := TemporalProjection(200, []float64{180, 220}, QB)
	want := 0.4*200 + 0.6*220
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected %.2f, got %.2f", want, got)
	}

	// No recent window: season mean stands alone
	if got := TemporalProjection(200, nil, QB); got != 200 {
		t.Errorf("Expected season mean 200, got %.2f", got)
	}
}
