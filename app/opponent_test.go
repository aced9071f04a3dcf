package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"floorcast/internal/config"
)

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		MinGamesPlayed:    3,
		OpponentFactorMin: 0.70,
		OpponentFactorMax: 1.30,
		OpponentMinSample: 4,
		OpponentTarget:    1.0,
		UseEmpiricalBayes: true,
		TrendMinGames:     3,
		TrendMaxAdjust:    0.30,
	}
}

func TestOpponentFactor_NoDataIsNeutral(t *testing.T) {
	store := newFakeStore()
	o := NewOpponentFactors(store, testEngineConfig(), zap.NewNop().Sugar())

	// No defensive games at all: the factor must degrade to 1.0 rather
	// than erroring out of the projection.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 1.0, got)
}

func TestOpponentFactor_UnknownTeamIsNeutral(t *testing.T) {
	store := newFakeStore()
	store.defense = defenseGames("DEF-A", 300, 300)
	o := NewOpponentFactors(store, testEngineConfig(), zap.NewNop().Sugar())

	got := o.Factor(context.Background(), "DEF-Z", "receiving", 2025, 10)
	assert.Equal(t, 1.0, got)
}

func TestOpponentFactor_HeuristicBlend(t *testing.T) {
	store := newFakeStore()
	store.defense = append(
		defenseGames("DEF-A", 300, 300),
		defenseGames("DEF-B", 100, 100)...)

	cfg := testEngineConfig()
	cfg.UseEmpiricalBayes = false
	o := NewOpponentFactors(store, cfg, zap.NewNop().Sugar())

	// League mean 200. DEF-A allows 300 per game, raw ratio 1.5, with 2
	// of the 4 minimum games the blend weight is 0.5:
	// 1.0 + 0.5*(1.5-1.0) = 1.25.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 1.25, got)

	// DEF-B mirrors it below average: 1.0 + 0.5*(0.5-1.0) = 0.75.
	got = o.Factor(context.Background(), "DEF-B", "receiving", 2025, 10)
	assert.Equal(t, 0.75, got)
}

func TestOpponentFactor_EmpiricalBayesKeepsSignal(t *testing.T) {
	store := newFakeStore()
	store.defense = append(store.defense, defenseGames("DEF-A", 299, 301, 300, 300)...)
	store.defense = append(store.defense, defenseGames("DEF-B", 99, 101, 100, 100)...)
	store.defense = append(store.defense, defenseGames("DEF-C", 199, 201, 200, 200)...)

	o := NewOpponentFactors(store, testEngineConfig(), zap.NewNop().Sugar())

	// Team means 300/100/200 are far apart while per-game noise is tiny,
	// so nearly the whole raw ratio (1.5) survives shrinkage and the cap
	// binds.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 1.30, got)
}

func TestOpponentFactor_EmpiricalBayesShrinksNoise(t *testing.T) {
	store := newFakeStore()
	store.defense = append(store.defense, defenseGames("DEF-A", 120, 520)...)
	store.defense = append(store.defense, defenseGames("DEF-B", 480, 80)...)

	o := NewOpponentFactors(store, testEngineConfig(), zap.NewNop().Sugar())

	// Team means 320 vs 280 barely differ while per-game swings are
	// enormous: between 800 vs within/n 40000 leaves only ~2% of the raw
	// ratio, so the factor rounds back to neutral.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 1.0, got)
}

func TestOpponentFactor_LowerCap(t *testing.T) {
	store := newFakeStore()
	store.defense = append(store.defense, defenseGames("DEF-A", 10, 10, 10, 10)...)
	store.defense = append(store.defense, defenseGames("DEF-B", 390, 390, 390, 390)...)

	cfg := testEngineConfig()
	cfg.UseEmpiricalBayes = false
	o := NewOpponentFactors(store, cfg, zap.NewNop().Sugar())

	// Raw ratio 0.05 at full blend weight, capped at the floor.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 0.70, got)
}

func TestOpponentFactor_RollingWindow(t *testing.T) {
	store := newFakeStore()
	store.defense = append(store.defense, defenseGames("DEF-A", 100, 100, 100, 300, 300, 300)...)
	store.defense = append(store.defense, defenseGames("DEF-B", 200, 200, 200, 200, 200, 200)...)

	cfg := testEngineConfig()
	cfg.UseEmpiricalBayes = false
	o := NewOpponentFactors(store, cfg, zap.NewNop().Sugar())

	// DEF-A collapsed mid-season: the full-season mean of 200 matches the
	// league exactly, but the last five games average 220. The factor has
	// to read the recent window, 220/200 at full blend weight.
	got := o.Factor(context.Background(), "DEF-A", "receiving", 2025, 10)
	assert.Equal(t, 1.10, got)
}

func TestOpponentFactor_CachesLeagueLoad(t *testing.T) {
	store := newFakeStore()
	store.defense = append(
		defenseGames("DEF-A", 300, 300),
		defenseGames("DEF-B", 100, 100)...)

	o := NewOpponentFactors(store, testEngineConfig(), zap.NewNop().Sugar())
	ctx := context.Background()

	o.Factor(ctx, "DEF-A", "receiving", 2025, 10)
	o.Factor(ctx, "DEF-B", "receiving", 2025, 10)
	assert.Equal(t, 1, store.leagueCalls, "same week and category should hit the cache")

	o.Factor(ctx, "DEF-A", "receiving", 2025, 11)
	assert.Equal(t, 2, store.leagueCalls, "a different cutoff week is a different key")
}
