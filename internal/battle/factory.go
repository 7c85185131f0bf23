package battle

import (
	"fmt"

	"github.com/jules-levecq/pokemonML/internal/data"
)

// Factory turns CSV reference rows into battle-ready Pokémon and moves.
type Factory struct {
	dex   *data.Pokedex
	moves *data.Moves
}

// NewFactory wires a factory to loaded reference tables.
func NewFactory(dex *data.Pokedex, moves *data.Moves) *Factory {
	return &Factory{dex: dex, moves: moves}
}

// Pokemon builds a Pokémon of the named species at the given level, with
// default IVs and zero EVs. The moveset starts empty.
func (f *Factory) Pokemon(name string, level int) (*Pokemon, error) {
	row, err := f.dex.Find(name)
	if err != nil {
		return nil, err
	}
	base := BaseStats{
		HP:        row.HP,
		Attack:    row.Attack,
		Defense:   row.Defense,
		SpAttack:  row.SpAttack,
		SpDefense: row.SpDefense,
		Speed:     row.Speed,
	}
	stats := ComputeStats(base, DefaultIVs(), EffortValues{}, level)
	return NewPokemon(row.Name, row.Type1, row.Type2, level, stats), nil
}

// Move builds a fresh move instance from its CSV record.
func (f *Factory) Move(name string) (*Move, error) {
	row, err := f.moves.Find(name)
	if err != nil {
		return nil, err
	}
	category, err := ParseCategory(row.DamageClass)
	if err != nil {
		return nil, fmt.Errorf("move %s: %w", row.Name, err)
	}
	return &Move{
		Name:     row.Name,
		Type:     row.Type,
		Power:    row.Power,
		Category: category,
		Accuracy: row.Accuracy,
		PP:       row.PP,
		MaxPP:    row.PP,
		Priority: row.Priority,
	}, nil
}

// Teach looks up each named move and adds it to the Pokémon's moveset.
func (f *Factory) Teach(p *Pokemon, moveNames ...string) error {
	for _, name := range moveNames {
		m, err := f.Move(name)
		if err != nil {
			return err
		}
		if err := p.AddMove(m); err != nil {
			return fmt.Errorf("teach %s to %s: %w", name, p.Name, err)
		}
	}
	return nil
}

// MoveNames lists the move names available to the factory, in file order.
func (f *Factory) MoveNames() []string { return f.moves.Names() }

// PokemonNames lists the species names available to the factory, in file order.
func (f *Factory) PokemonNames() []string { return f.dex.Names() }
