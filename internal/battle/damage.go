package battle

import (
	"math"
	"math/rand"
)

// damageSpread is the weighted 85..100 roll applied to every damaging move.
// Values appearing three times are the most likely, per the original spread.
var damageSpread = buildDamageSpread()

func buildDamageSpread() []int {
	var spread []int
	for i := 0; i < 3; i++ {
		spread = append(spread, 85, 87, 89, 90, 92, 94, 96, 98)
	}
	for i := 0; i < 2; i++ {
		spread = append(spread, 86, 88, 91, 93, 95, 97, 99)
	}
	return append(spread, 100)
}

func meanDamageFactor() float64 {
	sum := 0
	for _, v := range damageSpread {
		sum += v
	}
	return float64(sum) / float64(len(damageSpread)) / 100
}

// UnknownDamage marks a theoretical attack whose outcome depends on rolls
// that have not happened yet.
const UnknownDamage = -1

// DamageRange is the min/max damage a move can deal after effectiveness.
type DamageRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Attack is the full record of one damage calculation: what was rolled, what
// landed, and snapshots of everyone involved at that moment.
type Attack struct {
	Move            *Move       `json:"-"`
	MoveName        string      `json:"move"`
	Attacker        *Pokemon    `json:"-"`
	Defender        *Pokemon    `json:"-"`
	EffectiveDamage int         `json:"damage"`
	Range           DamageRange `json:"range"`
	Missed          bool        `json:"missed"`
	Crit            bool        `json:"crit"`
	Effectiveness   float64     `json:"effectiveness"`
}

// Calculator computes damage using a type chart and a seeded RNG. All
// randomness flows through Rng, so a fixed seed replays identically.
type Calculator struct {
	Chart *TypeChart
	Rng   *rand.Rand
}

// NewCalculator wires a calculator to a chart and RNG.
func NewCalculator(chart *TypeChart, rng *rand.Rand) *Calculator {
	return &Calculator{Chart: chart, Rng: rng}
}

// randomFactor draws from the damage spread, or returns its exact mean when
// randomness is off (deterministic simulations).
func (c *Calculator) randomFactor(random bool) float64 {
	if !random {
		return meanDamageFactor()
	}
	return float64(damageSpread[c.Rng.Intn(len(damageSpread))]) / 100
}

func (c *Calculator) critRoll(attacker *Pokemon) bool {
	return c.Rng.Float64() <= attacker.Current.CritChance()
}

func (c *Calculator) accuracyRoll(m *Move) bool {
	return c.Rng.Float64()*100 < float64(m.Accuracy)
}

// baseDamage computes the pre-roll damage and type effectiveness. Status
// moves and zero-power moves deal nothing. A critical hit reads the base
// stats, ignoring in-battle stat changes.
func (c *Calculator) baseDamage(attacker, defender *Pokemon, m *Move, crit bool) (base, effectiveness float64) {
	if m.Category == CategoryStatus || m.Power <= 0 {
		return 0, 0
	}

	var atk, def int
	switch {
	case m.Category == CategoryPhysical && crit:
		atk, def = attacker.Base.Attack, defender.Base.Defense
	case m.Category == CategoryPhysical:
		atk, def = attacker.Current.Attack, defender.Current.Defense
	case crit:
		atk, def = attacker.Base.SpAttack, defender.Base.SpDefense
	default:
		atk, def = attacker.Current.SpAttack, defender.Current.SpDefense
	}
	if def <= 0 {
		def = 1
	}

	base = ((2*float64(attacker.Level)/5+2)*float64(m.Power)*(float64(atk)/float64(def)))/50 + 2
	if attacker.HasType(m.Type) {
		base *= 1.5
	}

	effectiveness = c.Chart.Effectiveness(m.Type, defender.Type1, defender.Type2)
	return base, effectiveness
}

func damageRange(base, effectiveness float64) DamageRange {
	return DamageRange{
		Min: math.Round(base*0.85*effectiveness*100) / 100,
		Max: math.Round(base*effectiveness*100) / 100,
	}
}

func (c *Calculator) buildAttack(damage int, crit bool, effectiveness float64, rng DamageRange, missed bool, attacker, defender *Pokemon, m *Move) Attack {
	return Attack{
		Move:            m.Clone(),
		MoveName:        m.Name,
		Attacker:        attacker.Clone(),
		Defender:        defender.Clone(),
		EffectiveDamage: damage,
		Range:           rng,
		Missed:          missed,
		Crit:            crit,
		Effectiveness:   effectiveness,
	}
}

func (c *Calculator) missedAttack(attacker, defender *Pokemon, m *Move) Attack {
	return c.buildAttack(0, false, 0, DamageRange{}, true, attacker, defender, m)
}

// Calculate runs a full damage calculation: PP check, accuracy roll, crit
// roll, base damage, and the random spread. It does not mutate anyone.
func (c *Calculator) Calculate(attacker, defender *Pokemon, m *Move, random bool) Attack {
	if m.PP <= 0 {
		return c.missedAttack(attacker, defender, m)
	}
	if !c.accuracyRoll(m) {
		return c.missedAttack(attacker, defender, m)
	}

	crit := c.critRoll(attacker)
	base, effectiveness := c.baseDamage(attacker, defender, m, crit)
	if crit {
		base *= 1.5
	}

	rng := damageRange(base, effectiveness)
	damage := int(base * effectiveness * c.randomFactor(random))
	return c.buildAttack(damage, crit, effectiveness, rng, false, attacker, defender, m)
}

// Theoretical evaluates a move without any rolls. When even the minimum roll
// knocks the defender out, EffectiveDamage is pinned to the defender's
// remaining HP; otherwise it is UnknownDamage, meaning the real value only
// exists once the move is actually used.
func (c *Calculator) Theoretical(attacker, defender *Pokemon, m *Move) Attack {
	base, effectiveness := c.baseDamage(attacker, defender, m, false)
	rng := damageRange(base, effectiveness)

	damage := UnknownDamage
	if rng.Min > 0 && rng.Min >= float64(defender.Current.HP) {
		damage = defender.Current.HP
	}
	return c.buildAttack(damage, false, effectiveness, rng, false, attacker, defender, m)
}

// Resolve runs Calculate and applies the outcome: the defender takes the
// damage and the attacker spends one PP on the move.
func (c *Calculator) Resolve(attacker, defender *Pokemon, m *Move, random bool) Attack {
	result := c.Calculate(attacker, defender, m, random)
	if !result.Missed {
		defender.TakeDamage(result.EffectiveDamage)
	}

	used := m
	for _, owned := range attacker.Moves {
		if owned.Name == m.Name {
			used = owned
			break
		}
	}
	if used.PP > 0 {
		used.PP--
	}

	return c.buildAttack(result.EffectiveDamage, result.Crit, result.Effectiveness, result.Range, result.Missed, attacker, defender, used)
}
