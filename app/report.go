package app

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// RenderJSON writes the full result set as indented JSON, for piping
// into other tooling. Nothing else may write to the same stream.
func RenderJSON(w io.Writer, results []GameResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// RenderConsole writes a human-readable projection report, one section
// per game, players grouped by team and ordered by expected value.
func RenderConsole(w io.Writer, results []GameResult) {
	for i := range results {
		renderGame(w, &results[i])
	}
}

func renderGame(w io.Writer, result *GameResult) {
	fmt.Fprintf(w, "\n%s @ %s  (season %d, week %d)\n",
		result.Game.AwayTeamID, result.Game.HomeTeamID, result.Game.Season, result.Game.Week)
	fmt.Fprintln(w, strings.Repeat("=", 72))

	for _, team := range result.Teams {
		fmt.Fprintf(w, "\n%s\n", team.TeamID)
		fmt.Fprintln(w, strings.Repeat("-", 72))

		projections := append([]PlayerProjection(nil), team.Projections...)
		sort.SliceStable(projections, func(i, j int) bool {
			if projections[i].Player.Name != projections[j].Player.Name {
				return projections[i].Player.Name < projections[j].Player.Name
			}
			return projections[i].Category.Label < projections[j].Category.Label
		})

		for _, p := range projections {
			fmt.Fprintf(w, "  %-22s %-2s  %-16s %6.1f ← %6.1f → %6.1f  [%s]\n",
				p.Player.Name, p.Player.Position, p.Category.Label,
				p.Interval.Floor, p.Interval.Expected, p.Interval.Ceiling,
				p.ConfidenceLabel)
			if notes := projectionNotes(p); notes != "" {
				fmt.Fprintf(w, "  %-44s%s\n", "", notes)
			}
		}

		for _, e := range team.Excluded {
			fmt.Fprintf(w, "  %-22s %-2s  excluded: %s\n",
				e.Player.Name, e.Player.Position, e.Reason)
		}
		if len(projections) == 0 && len(team.Excluded) == 0 {
			fmt.Fprintln(w, "  no eligible players")
		}
	}
	fmt.Fprintln(w)
}

// projectionNotes summarizes the non-neutral context behind a line.
func projectionNotes(p PlayerProjection) string {
	var notes []string
	if p.Modifiers.Opponent != 1.0 {
		notes = append(notes, fmt.Sprintf("opp %.2f", p.Modifiers.Opponent))
	}
	if p.TrendFactor != 1.0 {
		notes = append(notes, fmt.Sprintf("trend %.2f", p.TrendFactor))
	}
	if p.Modifiers.GameScript != 1.0 {
		notes = append(notes, fmt.Sprintf("script %.2f", p.Modifiers.GameScript))
	}
	if p.Participation < 1.0 {
		notes = append(notes, fmt.Sprintf("%s %.0f%%", strings.ToLower(string(p.InjuryStatus)), p.Participation*100))
	}
	if p.Environment != "" && p.Environment != "standard conditions" {
		notes = append(notes, p.Environment)
	}
	return strings.Join(notes, ", ")
}
