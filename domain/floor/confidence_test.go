package floor

import (
	"math"
	"testing"
)

func TestConfidenceLabel(t *testing.T) {
	cases := []struct {
		name string
		iv   Interval
		want string
	}{
		{"large sample, tight band", Interval{Floor: 180, Expected: 200, Ceiling: 230, SampleSize: 10}, ConfidenceHigh},
		{"large sample, wide band", Interval{Floor: 100, Expected: 200, Ceiling: 320, SampleSize: 10}, ConfidenceLow},
		{"moderate sample", Interval{Floor: 170, Expected: 200, Ceiling: 250, SampleSize: 6}, ConfidenceMedium},
		{"tiny sample", Interval{Floor: 190, Expected: 200, Ceiling: 215, SampleSize: 3}, ConfidenceLow},
		{"boundary: 8 games at 30% width", Interval{Floor: 170, Expected: 200, Ceiling: 230, SampleSize: 8}, ConfidenceHigh},
	}
	for _, c := range cases {
		if got := ConfidenceLabel(c.iv); got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestConfidenceScore(t *testing.T) {
	// 10+ games, zero volatility: perfect score
	if got := ConfidenceScore(12, 0); got != 1.0 {
		t.Errorf("Expected 1.0, got %.3f", got)
	}
	// 5 games, CV 0.5: 0.4*0.5 + 0.6*0.5 = 0.5
	if got := ConfidenceScore(5, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected 0.5, got %.3f", got)
	}
	// CV above 1 cannot push the consistency term negative
	if got := ConfidenceScore(0, 2.0); got != 0 {
		t.Errorf("Expected 0, got %.3f", got)
	}
}
