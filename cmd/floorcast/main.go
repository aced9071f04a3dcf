package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floorcast/adapters/postgres"
	"floorcast/app"
	"floorcast/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "floorcast",
		Short: "Performance floor projections from point-in-time NFL data",
	}

	rootCmd.AddCommand(newProjectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newProjectCmd() *cobra.Command {
	var (
		gameID  string
		week    int
		season  int
		jsonOut bool
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project floor/expected/ceiling bands for a game or a full week",
		Long: `Project performance floors for every eligible skill player.

Either --game or --week selects the scope; --season is required.

Example: floorcast project --season 2025 --week 8 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == "" && week == 0 {
				return fmt.Errorf("either --game or --week is required")
			}
			if season == 0 {
				return fmt.Errorf("--season is required")
			}
			return runProject(cmd, gameID, season, week, jsonOut, seed)
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Single game identifier to evaluate")
	cmd.Flags().IntVar(&week, "week", 0, "Evaluate every scheduled game in this week")
	cmd.Flags().IntVar(&season, "season", 0, "Season year")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON instead of the console report")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Bootstrap RNG seed for reproducible runs (0 = time-seeded)")

	return cmd
}

func runProject(cmd *cobra.Command, gameID string, season, week int, jsonOut bool, seed int64) error {
	// Missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Bootstrap.Seed = seed
	}

	log, err := newLogger(jsonOut)
	if err != nil {
		return err
	}
	defer log.Sync()
	sugar := log.Sugar()

	db, err := postgres.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	service := app.NewFloorService(
		postgres.NewGameRepository(db, cfg.Retry),
		postgres.NewStatRepository(db, cfg.Retry),
		postgres.NewProjectionRepository(db, cfg.Retry),
		app.NewOpponentFactors(postgres.NewDefenseRepository(db, cfg.Retry), cfg.Engine, sugar),
		app.NewContextGatherer(postgres.NewContextRepository(db, cfg.Retry), cfg.Engine.LearnedWeightsPath, sugar),
		cfg, sugar,
	)

	ctx := cmd.Context()
	var results []app.GameResult
	if gameID != "" {
		result, err := service.EvaluateGame(ctx, gameID, season)
		if err != nil {
			return err
		}
		results = []app.GameResult{*result}
	} else {
		results, err = service.EvaluateWeek(ctx, season, week)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		return app.RenderJSON(os.Stdout, results)
	}
	app.RenderConsole(os.Stdout, results)
	return nil
}

// newLogger keeps stdout clean for the report: diagnostics always go to
// stderr, as JSON when the report itself is JSON.
func newLogger(jsonOut bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if !jsonOut {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
