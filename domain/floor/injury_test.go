package floor

import "testing"

func TestParseInjuryStatus(t *testing.T) {
	cases := map[string]InjuryStatus{
		"out":          StatusOut,
		"QUESTIONABLE": StatusQuestionable,
		" Doubtful ":   StatusDoubtful,
		"probable":     StatusProbable,
		"":             StatusActive,
		"IR-R":         StatusActive,
	}
	for raw, want := range cases {
		if got := ParseInjuryStatus(raw); got != want {
			t.Errorf("%q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestParticipationProbability(t *testing.T) {
	cases := []struct {
		status InjuryStatus
		want   float64
	}{
		{StatusOut, 0.0},
		{StatusDoubtful, 0.25},
		{StatusQuestionable, 0.70},
		{StatusProbable, 0.95},
		{StatusActive, 1.0},
	}
	for _, c := range cases {
		if got := ParticipationProbability(c.status); got != c.want {
			t.Errorf("%s: expected %.2f, got %.2f", c.status, c.want, got)
		}
	}
}
