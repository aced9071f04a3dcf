package app

import (
	"context"
	"database/sql"
	"sync"

	"floorcast/ports"
)

// fakeStore is an in-memory implementation of every port, shared by the
// app-layer tests.
type fakeStore struct {
	mu sync.Mutex

	games    []ports.Game
	players  map[string][]ports.Player         // by team id
	stats    map[string][]ports.PlayerGameStat // by player id
	position map[string][]ports.PlayerGameStat // by position
	defense  []ports.TeamDefenseGame
	stadiums map[string]ports.Stadium
	weather  map[string]ports.GameWeather
	lines    map[string]ports.BettingLine
	injuries map[string]ports.InjuryReport // by player id
	envs     map[string]ports.GameEnvironment

	leagueCalls int
	upserts     []ports.Projection
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:  map[string][]ports.Player{},
		stats:    map[string][]ports.PlayerGameStat{},
		position: map[string][]ports.PlayerGameStat{},
		stadiums: map[string]ports.Stadium{},
		weather:  map[string]ports.GameWeather{},
		lines:    map[string]ports.BettingLine{},
		injuries: map[string]ports.InjuryReport{},
		envs:     map[string]ports.GameEnvironment{},
	}
}

func (f *fakeStore) GameByID(_ context.Context, gameID string, season int) (*ports.Game, error) {
	for i := range f.games {
		if f.games[i].ID == gameID && f.games[i].Season == season {
			g := f.games[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GamesByWeek(_ context.Context, season, week int) ([]ports.Game, error) {
	var out []ports.Game
	for _, g := range f.games {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) SkillPlayersByTeam(_ context.Context, teamID string, _ int) ([]ports.Player, error) {
	return f.players[teamID], nil
}

func (f *fakeStore) PlayerGameStats(_ context.Context, playerID string, _, beforeWeek int) ([]ports.PlayerGameStat, error) {
	var out []ports.PlayerGameStat
	for _, s := range f.stats[playerID] {
		if s.Week < beforeWeek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) PositionGameStats(_ context.Context, position string, _, beforeWeek int) ([]ports.PlayerGameStat, error) {
	var out []ports.PlayerGameStat
	for _, s := range f.position[position] {
		if s.Week < beforeWeek {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) TeamDefenseGames(_ context.Context, teamID string, _, beforeWeek int) ([]ports.TeamDefenseGame, error) {
	var out []ports.TeamDefenseGame
	for _, d := range f.defense {
		if d.TeamID == teamID && d.Week < beforeWeek {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) LeagueDefenseGames(_ context.Context, _, beforeWeek int) ([]ports.TeamDefenseGame, error) {
	f.mu.Lock()
	f.leagueCalls++
	f.mu.Unlock()

	var out []ports.TeamDefenseGame
	for _, d := range f.defense {
		if d.Week < beforeWeek {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) StadiumByID(_ context.Context, stadiumID string) (*ports.Stadium, error) {
	if s, ok := f.stadiums[stadiumID]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeStore) WeatherByGame(_ context.Context, gameID string) (*ports.GameWeather, error) {
	if w, ok := f.weather[gameID]; ok {
		return &w, nil
	}
	return nil, nil
}

func (f *fakeStore) BettingLineByGame(_ context.Context, gameID string, _ int) (*ports.BettingLine, error) {
	if l, ok := f.lines[gameID]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakeStore) InjuryStatus(_ context.Context, playerID string, _, _ int) (*ports.InjuryReport, error) {
	if r, ok := f.injuries[playerID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeStore) GameEnvironments(_ context.Context, gameIDs []string) (map[string]ports.GameEnvironment, error) {
	out := map[string]ports.GameEnvironment{}
	for _, id := range gameIDs {
		if env, ok := f.envs[id]; ok {
			out[id] = env
		}
	}
	return out, nil
}

func (f *fakeStore) UpsertProjection(_ context.Context, p ports.Projection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, p)
	return nil
}

func (f *fakeStore) upserted() []ports.Projection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ports.Projection(nil), f.upserts...)
}

func nf(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }
func ns(v string) sql.NullString   { return sql.NullString{String: v, Valid: true} }

// receivingRow builds one stat line carrying receiving yards and
// targets.
func receivingRow(playerID, teamID string, week int, yards, targets float64) ports.PlayerGameStat {
	row := ports.PlayerGameStat{
		PlayerID: playerID,
		GameID:   gameIDForWeek(week),
		Season:   2025,
		Week:     week,
		TeamID:   teamID,
	}
	row.ReceivingYards = nf(yards)
	if targets > 0 {
		row.ReceivingTargets = nf(targets)
	}
	return row
}

func gameIDForWeek(week int) string {
	return "g-" + string(rune('a'+week))
}

// defenseGames builds one defensive line per value, weeks 1..n, with
// receiving yards allowed.
func defenseGames(teamID string, allowed ...float64) []ports.TeamDefenseGame {
	out := make([]ports.TeamDefenseGame, len(allowed))
	for i, v := range allowed {
		out[i] = ports.TeamDefenseGame{
			TeamID:                teamID,
			GameID:                gameIDForWeek(i + 1),
			Season:                2025,
			Week:                  i + 1,
			ReceivingYardsAllowed: nf(v),
		}
	}
	return out
}
