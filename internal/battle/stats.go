package battle

import "math"

// Crit chance by crit stage (index 0 = base).
var critChanceByStage = [...]float64{0.0625, 0.125, 0.5, 1.0}

// Accuracy and evasion stage multipliers. Index 6 is neutral.
var stageMultipliers = [...]float64{0.33, 0.38, 0.43, 0.5, 0.6, 0.75, 1, 1.33, 1.67, 2, 2.33, 2.67, 3}

const (
	neutralStage = 6
	maxStage     = 12
	maxCritStage = 3
)

// IndividualValues are the innate per-stat bonuses fixed at creation.
type IndividualValues struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// DefaultIVs returns perfect IVs, the sandbox default.
func DefaultIVs() IndividualValues {
	return IndividualValues{HP: 31, Attack: 31, Defense: 31, SpAttack: 31, SpDefense: 31, Speed: 31}
}

// EffortValues are the trained per-stat bonuses, zero by default.
type EffortValues struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// BaseStats are the species values straight from the pokedex CSV.
type BaseStats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Stats are the level-scaled battle stats plus the in-battle stage modifiers.
type Stats struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int

	AccuracyStage int
	EvasionStage  int
	CritStage     int
}

// ComputeStats scales base stats to the given level using the standard
// formulas: HP = floor((iv + 2*base + ev/4) * level / 100) + level + 10,
// others = floor((iv + 2*base + ev/4) * level / 100) + 5.
func ComputeStats(base BaseStats, iv IndividualValues, ev EffortValues, level int) Stats {
	return Stats{
		HP:            hpAt(base.HP, iv.HP, ev.HP, level),
		Attack:        statAt(base.Attack, iv.Attack, ev.Attack, level, 1.0),
		Defense:       statAt(base.Defense, iv.Defense, ev.Defense, level, 1.0),
		SpAttack:      statAt(base.SpAttack, iv.SpAttack, ev.SpAttack, level, 1.0),
		SpDefense:     statAt(base.SpDefense, iv.SpDefense, ev.SpDefense, level, 1.0),
		Speed:         statAt(base.Speed, iv.Speed, ev.Speed, level, 1.0),
		AccuracyStage: neutralStage,
		EvasionStage:  neutralStage,
	}
}

func hpAt(base, iv, ev, level int) int {
	return int(math.Floor(float64((iv+2*base+ev/4)*level)/100)) + level + 10
}

func statAt(base, iv, ev, level int, nature float64) int {
	raw := int(math.Floor(float64((iv+2*base+ev/4)*level)/100)) + 5
	return int(math.Floor(float64(raw) * nature))
}

// CritChance returns the probability of a critical hit at the current stage.
func (s *Stats) CritChance() float64 {
	return critChanceByStage[s.CritStage]
}

// AccuracyMultiplier returns the current accuracy stage multiplier.
func (s *Stats) AccuracyMultiplier() float64 {
	return stageMultipliers[s.AccuracyStage]
}

// EvasionMultiplier returns the current evasion stage multiplier.
func (s *Stats) EvasionMultiplier() float64 {
	return stageMultipliers[s.EvasionStage]
}

// RaiseCrit bumps the crit stage, saturating at the maximum.
func (s *Stats) RaiseCrit() {
	if s.CritStage < maxCritStage {
		s.CritStage++
	}
}

// LowerCrit drops the crit stage, saturating at zero.
func (s *Stats) LowerCrit() {
	if s.CritStage > 0 {
		s.CritStage--
	}
}

// RaiseAccuracy bumps the accuracy stage, saturating at the maximum.
func (s *Stats) RaiseAccuracy() {
	if s.AccuracyStage < maxStage {
		s.AccuracyStage++
	}
}

// LowerAccuracy drops the accuracy stage, saturating at zero.
func (s *Stats) LowerAccuracy() {
	if s.AccuracyStage > 0 {
		s.AccuracyStage--
	}
}

// RaiseEvasion bumps the evasion stage, saturating at the maximum.
func (s *Stats) RaiseEvasion() {
	if s.EvasionStage < maxStage {
		s.EvasionStage++
	}
}

// LowerEvasion drops the evasion stage, saturating at zero.
func (s *Stats) LowerEvasion() {
	if s.EvasionStage > 0 {
		s.EvasionStage--
	}
}
