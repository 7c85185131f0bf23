package ml

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/jules-levecq/pokemonML/internal/battle"
	"github.com/jules-levecq/pokemonML/internal/util"
)

// GenerateOptions controls dataset generation.
type GenerateOptions struct {
	Count    int
	Level    int
	MaxTurns int
	Seed     int64
	Workers  int
}

// Generate produces labeled samples by simulating seeded 1v1 battles between
// randomly drawn Pokémon with random movesets. Sample i only depends on
// Seed and i, so a batch is reproducible regardless of worker scheduling.
func Generate(factory *battle.Factory, chart *battle.TypeChart, opts GenerateOptions) ([]Sample, error) {
	if opts.Count <= 0 {
		return nil, fmt.Errorf("generate: count must be positive")
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 100
	}

	samples := make([]Sample, opts.Count)
	errs := make([]error, opts.Count)

	jobs := make(chan int, opts.Count)
	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := util.New(opts.Seed + int64(i)*7919)
				samples[i], errs[i] = generateOne(factory, chart, opts, rng)
			}
		}()
	}
	for i := 0; i < opts.Count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return samples, nil
}

func generateOne(factory *battle.Factory, chart *battle.TypeChart, opts GenerateOptions, rng *rand.Rand) (Sample, error) {
	species := factory.PokemonNames()
	if len(species) < 2 {
		return Sample{}, fmt.Errorf("generate: need at least two species")
	}

	attacker, err := randomFighter(factory, species, opts.Level, rng)
	if err != nil {
		return Sample{}, err
	}
	defender, err := randomFighter(factory, species, opts.Level, rng)
	if err != nil {
		return Sample{}, err
	}

	calc := battle.NewCalculator(chart, rng)
	advisor := battle.NewMoveAdvisor(calc)
	features, err := Features(advisor, attacker, defender)
	if err != nil {
		return Sample{}, err
	}

	teamA, err := battle.NewTeam("attacker", []*battle.Pokemon{attacker})
	if err != nil {
		return Sample{}, err
	}
	teamB, err := battle.NewTeam("defender", []*battle.Pokemon{defender})
	if err != nil {
		return Sample{}, err
	}

	sim := battle.NewSimulator(calc, opts.MaxTurns)
	result, err := sim.Run(teamA, teamB, false)
	if err != nil {
		return Sample{}, err
	}

	label := 0.0
	switch {
	case result.Winner == teamA.Name:
		label = 1
	case result.Draw:
		// turn cap hit: credit whoever kept the larger HP fraction
		if hpFraction(attacker) >= hpFraction(defender) {
			label = 1
		}
	}

	return Sample{
		BattleID: uuid.NewString(),
		Features: features,
		Label:    label,
	}, nil
}

// randomFighter draws a species and teaches it up to four distinct random moves.
func randomFighter(factory *battle.Factory, species []string, level int, rng *rand.Rand) (*battle.Pokemon, error) {
	p, err := factory.Pokemon(species[rng.Intn(len(species))], level)
	if err != nil {
		return nil, err
	}

	names := factory.MoveNames()
	picks := rng.Perm(len(names))
	for _, idx := range picks {
		if len(p.Moves) >= battle.MaxMoves {
			break
		}
		m, err := factory.Move(names[idx])
		if err != nil {
			return nil, err
		}
		if err := p.AddMove(m); err != nil {
			return nil, err
		}
	}
	if len(p.Moves) == 0 {
		return nil, fmt.Errorf("generate: no moves available for %s", p.Name)
	}
	return p, nil
}

func hpFraction(p *battle.Pokemon) float64 {
	if p.Base.HP <= 0 {
		return 0
	}
	return float64(p.Current.HP) / float64(p.Base.HP)
}
