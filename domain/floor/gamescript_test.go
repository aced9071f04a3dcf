package floor

import (
	"math"
	"testing"
)

func TestGameScriptModifier_SpreadDirection(t *testing.T) {
	ctx := BettingContext{Spread: 7, Total: 47.5, FavoriteTeam: "KC", HasData: true}

	// Favored RBs run out the clock; underdog RBs get scripted out
	rbFav := GameScriptModifier(RB, "KC", ctx)
	rbDog := GameScriptModifier(RB, "DEN", ctx)
	if rbFav.SpreadMod <= rbDog.SpreadMod {
		t.Errorf("RB: favored %.3f should exceed underdog %.3f", rbFav.SpreadMod, rbDog.SpreadMod)
	}
	if math.Abs(rbFav.SpreadMod-1.14) > 1e-9 {
		t.Errorf("Favored RB at spread 7: expected 1.14, got %.3f", rbFav.SpreadMod)
	}

	// Passing positions invert: trailing teams throw
	wrFav := GameScriptModifier(WR, "KC", ctx)
	wrDog := GameScriptModifier(WR, "DEN", ctx)
	if wrDog.SpreadMod <= wrFav.SpreadMod {
		t.Errorf("WR: underdog %.3f should exceed favored %.3f", wrDog.SpreadMod, wrFav.SpreadMod)
	}
}

func TestGameScriptModifier_SpreadCaps(t *testing.T) {
	// A 25-point spread blows through every cap
	ctx := BettingContext{Spread: 25, Total: 47.5, FavoriteTeam: "KC", HasData: true}

	cases := []struct {
		pos      Position
		team     string
		expected float64
	}{
		{RB, "KC", 1.20},
		{RB, "DEN", 0.80},
		{QB, "DEN", 1.15},
		{TE, "DEN", 1.05},
		{TE, "KC", 0.95},
	}
	for _, c := range cases {
		got := GameScriptModifier(c.pos, c.team, ctx)
		if math.Abs(got.SpreadMod-c.expected) > 1e-9 {
			t.Errorf("%s/%s: expected cap %.2f, got %.3f", c.pos, c.team, c.expected, got.SpreadMod)
		}
	}
}

func TestGameScriptModifier_TotalPace(t *testing.T) {
	// Shoot-out: total 57 is 20% above baseline
	ctx := BettingContext{Spread: 0, Total: 57, FavoriteTeam: "KC", HasData: true}

	wr := GameScriptModifier(WR, "KC", ctx)
	want := 1 + ((57-47.5)/47.5)*0.5
	if math.Abs(wr.TotalMod-want) > 1e-9 {
		t.Errorf("WR total mod: expected %.4f, got %.4f", want, wr.TotalMod)
	}

	// WR is the most pace-sensitive position
	qb := GameScriptModifier(QB, "KC", ctx)
	if wr.TotalMod <= qb.TotalMod {
		t.Errorf("WR pace sensitivity (%.4f) should exceed QB (%.4f)", wr.TotalMod, qb.TotalMod)
	}

	// Extreme total hits the [0.70, 1.30] cap
	high := GameScriptModifier(WR, "KC", BettingContext{Spread: 0, Total: 90, FavoriteTeam: "KC", HasData: true})
	if math.Abs(high.TotalMod-1.30) > 1e-9 {
		t.Errorf("Extreme total: expected cap 1.30, got %.4f", high.TotalMod)
	}
}

func TestGameScriptModifier_CombinedProduct(t *testing.T) {
	ctx := BettingContext{Spread: 3.5, Total: 52.5, FavoriteTeam: "CIN", HasData: true}
	got := GameScriptModifier(WR, "PIT", ctx)
	if math.Abs(got.Modifier-got.SpreadMod*got.TotalMod) > 1e-12 {
		t.Errorf("Combined %.4f != spread %.4f * total %.4f", got.Modifier, got.SpreadMod, got.TotalMod)
	}
	if got.IsFavored {
		t.Error("PIT is the underdog here")
	}
}

func TestGameScriptModifier_MissingBettingData(t *testing.T) {
	got := GameScriptModifier(QB, "KC", BettingContext{})
	if got.Modifier != 1.0 || got.SpreadMod != 1.0 || got.TotalMod != 1.0 {
		t.Errorf("No betting line: expected neutral, got %+v", got)
	}
}
