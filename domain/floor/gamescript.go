package floor

// BettingContext is the market consensus for one game. Spread is the
// absolute line; FavoriteTeam names the favored side. HasData is false
// when no line was published, in which case the modifier is neutral.
type BettingContext struct {
	Spread       float64
	Total        float64
	FavoriteTeam string
	HasData      bool
}

// GameScript breaks the betting-line modifier into its components.
type GameScript struct {
	Modifier  float64
	SpreadMod float64
	TotalMod  float64
	Spread    float64
	Total     float64
	IsFavored bool
}

// baselineTotal is the league-average over/under that pace adjustments
// pivot around.
const baselineTotal = 47.5

var spreadSensitivities = map[Position]float64{
	QB: 0.01,
	RB: 0.02,
	WR: 0.015,
	TE: 0.005,
}

var totalSensitivities = map[Position]float64{
	QB: 0.4,
	RB: 0.3,
	WR: 0.5,
	TE: 0.3,
}

var spreadCaps = map[Position][2]float64{
	QB: {0.85, 1.15},
	RB: {0.80, 1.20},
	WR: {0.85, 1.15},
	TE: {0.95, 1.05},
}

// NeutralGameScript is the no-information result: every component 1.0.
func NeutralGameScript() GameScript {
	return GameScript{Modifier: 1, SpreadMod: 1, TotalMod: 1}
}

// GameScriptModifier converts the betting line into a volume modifier
// for one player. Favored teams run more, so RBs gain with the spread
// while QB/WR/TE gain as underdogs; the over/under scales everyone with
// expected pace around the 47.5 baseline. Spread and total components
// are capped per position before being multiplied. Missing betting data
// degrades to neutral.
func GameScriptModifier(pos Position, playerTeam string, ctx BettingContext) GameScript {
	if !ctx.HasData {
		return NeutralGameScript()
	}

	isFavored := playerTeam == ctx.FavoriteTeam

	sens := spreadSensitivities[pos]
	caps, ok := spreadCaps[pos]
	if !ok {
		caps = [2]float64{0.90, 1.10}
	}

	var spreadMod float64
	if pos == RB {
		if isFavored {
			spreadMod = 1 + ctx.Spread*sens
		} else {
			spreadMod = 1 - ctx.Spread*sens
		}
	} else {
		if isFavored {
			spreadMod = 1 - ctx.Spread*sens
		} else {
			spreadMod = 1 + ctx.Spread*sens
		}
	}
	spreadMod = clamp(spreadMod, caps[0], caps[1])

	totalDelta := (ctx.Total - baselineTotal) / baselineTotal
	totalMod := clamp(1+totalDelta*totalSensitivities[pos], 0.70, 1.30)

	return GameScript{
		Modifier:  spreadMod * totalMod,
		SpreadMod: spreadMod,
		TotalMod:  totalMod,
		Spread:    ctx.Spread,
		Total:     ctx.Total,
		IsFavored: isFavored,
	}
}
