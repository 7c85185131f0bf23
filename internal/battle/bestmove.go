package battle

import "errors"

// ErrNoMoves indicates a best-move query for a Pokémon with an empty moveset.
var ErrNoMoves = errors.New("pokemon has no moves")

// MoveAdvisor ranks an attacker's moves against a defender using theoretical
// damage. It is a pure function of the battle state, no rolls involved.
type MoveAdvisor struct {
	calc *Calculator
}

// NewMoveAdvisor builds an advisor on top of a damage calculator.
func NewMoveAdvisor(calc *Calculator) *MoveAdvisor {
	return &MoveAdvisor{calc: calc}
}

// BestMove picks the attacker's strongest option:
//
//  1. Among moves that knock the defender out even on the minimum roll, the
//     one with the highest accuracy wins.
//  2. Otherwise the move with the highest minimum damage wins.
//
// Ties resolve to the move declared first, so the choice is stable.
func (a *MoveAdvisor) BestMove(attacker, defender *Pokemon) (Attack, error) {
	if len(attacker.Moves) == 0 {
		return Attack{}, ErrNoMoves
	}

	attacks := make([]Attack, 0, len(attacker.Moves))
	for _, m := range attacker.Moves {
		attacks = append(attacks, a.calc.Theoretical(attacker, defender, m))
	}

	var best *Attack
	for i := range attacks {
		atk := &attacks[i]
		if atk.EffectiveDamage == UnknownDamage {
			continue
		}
		if best == nil || atk.Move.Accuracy > best.Move.Accuracy {
			best = atk
		}
	}
	if best != nil {
		return *best, nil
	}

	best = &attacks[0]
	for i := 1; i < len(attacks); i++ {
		if attacks[i].Range.Min > best.Range.Min {
			best = &attacks[i]
		}
	}
	return *best, nil
}

// BestMoveName returns only the name of the best move.
func (a *MoveAdvisor) BestMoveName(attacker, defender *Pokemon) (string, error) {
	best, err := a.BestMove(attacker, defender)
	if err != nil {
		return "", err
	}
	return best.Move.Name, nil
}
