package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jules-levecq/pokemonML/internal/battle"
	"github.com/jules-levecq/pokemonML/internal/config"
	"github.com/jules-levecq/pokemonML/internal/data"
	"github.com/jules-levecq/pokemonML/internal/ml"
	"github.com/jules-levecq/pokemonML/internal/storage/sqlite"
	"github.com/jules-levecq/pokemonML/internal/util"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pokemonml <command> [flags]

commands:
  duel     play one predicted + executed turn between two Pokémon
  battle   simulate a full team battle and write the result as JSON
  gen      generate labeled battle samples into the sample store
  train    train the outcome model on stored samples
  eval     evaluate a saved model against stored samples
  runs     list recorded training runs`)
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "duel":
		err = runDuel(os.Args[2:])
	case "battle":
		err = runBattle(os.Args[2:])
	case "gen":
		err = runGen(os.Args[2:])
	case "train":
		err = runTrain(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "runs":
		err = runRuns(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("pokemonml %s: %v", os.Args[1], err)
	}
}

// loadWorld loads the CSV tables and builds the factory and type chart.
func loadWorld(cfg config.Config) (*battle.Factory, *battle.TypeChart, error) {
	dex, err := data.LoadPokedex(cfg.PokemonPath())
	if err != nil {
		return nil, nil, err
	}
	moves, err := data.LoadMoves(cfg.MovesPath())
	if err != nil {
		return nil, nil, err
	}
	chartMap, err := data.LoadTypeChart(cfg.TypeChartPath())
	if err != nil {
		return nil, nil, err
	}
	chart, err := battle.NewTypeChart(chartMap)
	if err != nil {
		return nil, nil, err
	}
	return battle.NewFactory(dex, moves), chart, nil
}

// fighter builds a Pokémon and teaches it either the named moves or, when
// none are given, the first few moves from the move list.
func fighter(factory *battle.Factory, name string, level int, moveList string) (*battle.Pokemon, error) {
	p, err := factory.Pokemon(name, level)
	if err != nil {
		return nil, err
	}
	var names []string
	if moveList != "" {
		for _, n := range strings.Split(moveList, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	} else {
		all := factory.MoveNames()
		if len(all) > battle.MaxMoves {
			all = all[:battle.MaxMoves]
		}
		names = all
	}
	if err := factory.Teach(p, names...); err != nil {
		return nil, err
	}
	return p, nil
}

func runDuel(args []string) error {
	fs := flag.NewFlagSet("duel", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	attackerName := fs.String("attacker", "Pikachu", "attacking pokemon")
	defenderName := fs.String("defender", "Bulbasaur", "defending pokemon")
	attackerMoves := fs.String("attacker-moves", "", "comma-separated moves for the attacker")
	defenderMoves := fs.String("defender-moves", "", "comma-separated moves for the defender")
	level := fs.Int("level", 0, "pokemon level (0 = config default)")
	seed := fs.Int64("seed", 12345, "rng seed")
	random := fs.Bool("random", false, "apply the random damage spread instead of its mean")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *level <= 0 {
		*level = cfg.Battle.DefaultLevel
	}

	factory, chart, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	attacker, err := fighter(factory, *attackerName, *level, *attackerMoves)
	if err != nil {
		return err
	}
	defender, err := fighter(factory, *defenderName, *level, *defenderMoves)
	if err != nil {
		return err
	}

	calc := battle.NewCalculator(chart, util.New(*seed))
	advisor := battle.NewMoveAdvisor(calc)

	predicted, err := advisor.BestMove(attacker, defender)
	if err != nil {
		return err
	}
	executed := calc.Resolve(attacker, defender, predicted.Move, *random)
	battle.RenderTurnSummary(os.Stdout, attacker, defender, predicted, executed)
	return nil
}

func runBattle(args []string) error {
	fs := flag.NewFlagSet("battle", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	sideA := fs.String("a", "Pikachu", "comma-separated team A")
	sideB := fs.String("b", "Bulbasaur", "comma-separated team B")
	level := fs.Int("level", 0, "pokemon level (0 = config default)")
	seed := fs.Int64("seed", 12345, "rng seed")
	out := fs.String("out", "battle.json", "output file")
	saveLog := fs.Bool("log", true, "include the full event log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *level <= 0 {
		*level = cfg.Battle.DefaultLevel
	}

	factory, chart, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	buildTeam := func(name, members string) (*battle.Team, error) {
		var roster []*battle.Pokemon
		for _, n := range strings.Split(members, ",") {
			p, err := fighter(factory, strings.TrimSpace(n), *level, "")
			if err != nil {
				return nil, err
			}
			roster = append(roster, p)
		}
		return battle.NewTeam(name, roster)
	}

	teamA, err := buildTeam("A", *sideA)
	if err != nil {
		return err
	}
	teamB, err := buildTeam("B", *sideB)
	if err != nil {
		return err
	}

	calc := battle.NewCalculator(chart, util.New(*seed))
	sim := battle.NewSimulator(calc, cfg.Battle.MaxTurns)
	result, err := sim.Run(teamA, teamB, *saveLog)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, battle.MarshalPretty(result), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	if result.Draw {
		log.Printf("draw after %d turns -> %s", result.Turns, *out)
	} else {
		log.Printf("team %s wins after %d turns -> %s", result.Winner, result.Turns, *out)
	}
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	count := fs.Int("n", 0, "samples to generate (0 = config default)")
	seed := fs.Int64("seed", 0, "rng seed (0 = draw one at random)")
	workers := fs.Int("workers", 0, "worker goroutines (0 = config default)")
	level := fs.Int("level", 0, "pokemon level (0 = config default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *count <= 0 {
		*count = cfg.Training.Samples
	}
	if *workers <= 0 {
		*workers = cfg.Training.Workers
	}
	if *level <= 0 {
		*level = cfg.Battle.DefaultLevel
	}
	if *seed == 0 {
		if *seed, err = util.NewSeed(); err != nil {
			return err
		}
	}

	factory, chart, err := loadWorld(cfg)
	if err != nil {
		return err
	}

	samples, err := ml.Generate(factory, chart, ml.GenerateOptions{
		Count:    *count,
		Level:    *level,
		MaxTurns: cfg.Battle.MaxTurns,
		Seed:     *seed,
		Workers:  *workers,
	})
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := uuid.NewString()
	if err := store.SaveSamples(runID, samples); err != nil {
		return err
	}
	total, err := store.CountSamples()
	if err != nil {
		return err
	}
	log.Printf("generated %d samples (seed %d, run %s), store now holds %d", len(samples), *seed, runID, total)
	return nil
}

type hyperparams struct {
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
	HiddenSize   int     `json:"hidden_size"`
	HoldoutRatio float64 `json:"holdout_ratio"`
	Seed         int64   `json:"seed"`
	Samples      int     `json:"samples"`
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	epochs := fs.Int("epochs", 0, "training epochs (0 = config default)")
	lr := fs.Float64("lr", 0, "learning rate (0 = config default)")
	hidden := fs.Int("hidden", 0, "hidden layer size (0 = config default)")
	holdout := fs.Float64("holdout", -1, "holdout ratio (negative = config default)")
	seed := fs.Int64("seed", 0, "rng seed (0 = config default)")
	out := fs.String("out", "", "artifact path (default models/model-<run>.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *epochs <= 0 {
		*epochs = cfg.Training.Epochs
	}
	if *lr <= 0 {
		*lr = cfg.Training.LearningRate
	}
	if *hidden <= 0 {
		*hidden = cfg.Training.HiddenSize
	}
	if *holdout < 0 {
		*holdout = cfg.Training.HoldoutRatio
	}
	if *seed == 0 {
		*seed = cfg.Training.Seed
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	samples, err := store.Samples()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no stored samples, run gen first")
	}

	rng := util.New(*seed)
	rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })
	split := len(samples) - int(float64(len(samples))**holdout)
	if split <= 0 || split > len(samples) {
		split = len(samples)
	}
	train, hold := samples[:split], samples[split:]
	if len(hold) == 0 {
		hold = train
	}

	runID := uuid.NewString()
	if *out == "" {
		*out = filepath.Join(cfg.ModelsDir, "model-"+runID+".json")
	}

	started := time.Now()
	model := ml.NewModel(ml.FeatureCount, *hidden, rng)
	if err := model.Train(train, *epochs, *lr, rng); err != nil {
		return err
	}
	accuracy, loss, err := ml.Evaluate(model, hold)
	if err != nil {
		return err
	}
	finished := time.Now()

	meta := ml.Meta{
		RunID:        runID,
		Seed:         *seed,
		Epochs:       *epochs,
		LearningRate: *lr,
		SampleCount:  len(train),
		Accuracy:     accuracy,
		Loss:         loss,
		TrainedAt:    finished,
	}
	if err := model.Save(*out, meta); err != nil {
		return err
	}

	params, err := json.Marshal(hyperparams{
		Epochs:       *epochs,
		LearningRate: *lr,
		HiddenSize:   *hidden,
		HoldoutRatio: *holdout,
		Seed:         *seed,
		Samples:      len(train),
	})
	if err != nil {
		return fmt.Errorf("marshal hyperparams: %w", err)
	}
	if err := store.RecordRun(sqlite.TrainingRun{
		ID:           runID,
		StartedAt:    started,
		FinishedAt:   finished,
		Hyperparams:  string(params),
		Accuracy:     accuracy,
		Loss:         loss,
		ArtifactPath: *out,
	}); err != nil {
		return err
	}

	log.Printf("trained on %d samples, holdout accuracy %.3f, loss %.4f -> %s", len(train), accuracy, loss, *out)
	return nil
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	modelPath := fs.String("model", "", "model artifact to evaluate (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return fmt.Errorf("-model is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	model, meta, err := ml.Load(*modelPath)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	samples, err := store.Samples()
	if err != nil {
		return err
	}
	accuracy, loss, err := ml.Evaluate(model, samples)
	if err != nil {
		return err
	}

	summary := map[string]any{
		"model":      *modelPath,
		"run_id":     meta.RunID,
		"trained_at": meta.TrainedAt,
		"samples":    len(samples),
		"accuracy":   accuracy,
		"loss":       loss,
	}
	fmt.Println(string(battle.MarshalPretty(summary)))
	return nil
}

func runRuns(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	cfgPath := fs.String("config", "pokemonml.yaml", "config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Println("no training runs recorded")
		return nil
	}
	for _, run := range runs {
		log.Printf("%s  %s  accuracy=%.3f loss=%.4f  %s",
			run.ID, run.FinishedAt.Format(time.RFC3339), run.Accuracy, run.Loss, run.ArtifactPath)
	}
	return nil
}
