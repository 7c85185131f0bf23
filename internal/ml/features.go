// Package ml turns battle matchups into feature vectors, generates labeled
// samples by simulation, and trains an outcome-prediction model on them.
package ml

import (
	"github.com/jules-levecq/pokemonML/internal/battle"
)

// FeatureCount is the fixed width of a feature vector.
const FeatureCount = 16

// statScale normalizes battle stats into roughly [0, 1]; 400 is near the
// ceiling a level-100 stat can reach in this sandbox.
const statScale = 400.0

// effectivenessScale normalizes type effectiveness; 4 is the double-weakness
// maximum.
const effectivenessScale = 4.0

// Sample is one labeled training example: the pre-battle features of an
// (attacker, defender) matchup and whether the attacker's side won.
type Sample struct {
	BattleID string    `json:"battle_id"`
	Features []float64 `json:"features"`
	Label    float64   `json:"label"`
}

// Features builds the matchup feature vector: both sides' normalized stats,
// the attacker's best move against the defender (minimum damage as a
// fraction of the defender's HP, its effectiveness, STAB), and the speed
// matchup.
func Features(advisor *battle.MoveAdvisor, attacker, defender *battle.Pokemon) ([]float64, error) {
	best, err := advisor.BestMove(attacker, defender)
	if err != nil {
		return nil, err
	}

	minFraction := 1.0
	if best.EffectiveDamage == battle.UnknownDamage && defender.Current.HP > 0 {
		minFraction = best.Range.Min / float64(defender.Current.HP)
		if minFraction > 1 {
			minFraction = 1
		}
	}

	speed := 0.5
	switch {
	case attacker.Current.Speed > defender.Current.Speed:
		speed = 1
	case attacker.Current.Speed < defender.Current.Speed:
		speed = 0
	}

	stab := 0.0
	if attacker.HasType(best.Move.Type) {
		stab = 1
	}

	return []float64{
		float64(attacker.Current.HP) / statScale,
		float64(attacker.Current.Attack) / statScale,
		float64(attacker.Current.Defense) / statScale,
		float64(attacker.Current.SpAttack) / statScale,
		float64(attacker.Current.SpDefense) / statScale,
		float64(attacker.Current.Speed) / statScale,
		float64(defender.Current.HP) / statScale,
		float64(defender.Current.Attack) / statScale,
		float64(defender.Current.Defense) / statScale,
		float64(defender.Current.SpAttack) / statScale,
		float64(defender.Current.SpDefense) / statScale,
		float64(defender.Current.Speed) / statScale,
		minFraction,
		best.Effectiveness / effectivenessScale,
		speed,
		stab,
	}, nil
}
