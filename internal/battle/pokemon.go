package battle

import "errors"

// MaxMoves is the moveset limit per Pokémon.
const MaxMoves = 4

// ErrMovesetFull indicates an attempt to teach a fifth move.
var ErrMovesetFull = errors.New("moveset is full")

// Pokemon is one battle participant. Base holds the stats computed at its
// level; Current is the mutable in-battle copy (HP loss, stage changes).
type Pokemon struct {
	Name    string
	Type1   string
	Type2   string
	Level   int
	Base    Stats
	Current Stats
	Moves   []*Move
}

// NewPokemon builds a Pokémon from precomputed stats. Current starts as a
// copy of Base.
func NewPokemon(name, type1, type2 string, level int, stats Stats) *Pokemon {
	return &Pokemon{
		Name:    name,
		Type1:   type1,
		Type2:   type2,
		Level:   level,
		Base:    stats,
		Current: stats,
	}
}

// AddMove teaches a move, up to MaxMoves.
func (p *Pokemon) AddMove(m *Move) error {
	if len(p.Moves) >= MaxMoves {
		return ErrMovesetFull
	}
	p.Moves = append(p.Moves, m)
	return nil
}

// HasType reports whether t matches either of the Pokémon's types.
func (p *Pokemon) HasType(t string) bool {
	return t != "" && (t == p.Type1 || t == p.Type2)
}

// TakeDamage subtracts damage from current HP, flooring at zero.
func (p *Pokemon) TakeDamage(damage int) {
	p.Current.HP -= damage
	if p.Current.HP < 0 {
		p.Current.HP = 0
	}
}

// Heal restores HP without exceeding the base maximum.
func (p *Pokemon) Heal(amount int) {
	p.Current.HP += amount
	if p.Current.HP > p.Base.HP {
		p.Current.HP = p.Base.HP
	}
}

// Fainted reports whether the Pokémon is out of the fight.
func (p *Pokemon) Fainted() bool {
	return p.Current.HP <= 0
}

// ResetStats restores current stats and move PP to their out-of-battle values.
func (p *Pokemon) ResetStats() {
	p.Current = p.Base
	for _, m := range p.Moves {
		m.PP = m.MaxPP
	}
}

// Clone deep-copies the Pokémon, moves included. Attack records hold clones
// so the battle state at the time of the attack stays inspectable.
func (p *Pokemon) Clone() *Pokemon {
	cp := *p
	cp.Moves = make([]*Move, len(p.Moves))
	for i, m := range p.Moves {
		cp.Moves[i] = m.Clone()
	}
	return &cp
}
