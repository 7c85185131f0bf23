package battle

import (
	"math"
	"testing"

	"github.com/jules-levecq/pokemonML/internal/util"
)

func flatStats(hp, atk, def, spa, spd, spe int) Stats {
	return Stats{
		HP: hp, Attack: atk, Defense: def, SpAttack: spa, SpDefense: spd, Speed: spe,
		AccuracyStage: neutralStage, EvasionStage: neutralStage,
	}
}

func testFighter(name, type1, type2 string, stats Stats) *Pokemon {
	return NewPokemon(name, type1, type2, 50, stats)
}

func physicalMove(name, typ string, power, accuracy int) *Move {
	return &Move{Name: name, Type: typ, Power: power, Category: CategoryPhysical, Accuracy: accuracy, PP: 10, MaxPP: 10}
}

func damageCalc(t *testing.T, seed int64) *Calculator {
	t.Helper()
	chart, err := NewTypeChart(map[string]map[string]float64{
		"Fire":  {"Grass": 2, "Water": 0.5, "Ghost": 0},
		"Grass": {"Water": 2, "Fire": 0.5},
	})
	if err != nil {
		t.Fatalf("NewTypeChart returned error: %v", err)
	}
	return NewCalculator(chart, util.New(seed))
}

// TestImmuneDefenderTakesZero pins the core immunity edge case: any stats,
// any rolls, a zero-multiplier pairing deals nothing.
func TestImmuneDefenderTakesZero(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Ghost", "", flatStats(100, 50, 50, 50, 50, 50))
	move := physicalMove("Fire Punch", "Fire", 60, 100)

	for i := 0; i < 20; i++ {
		result := calc.Calculate(attacker, defender, move, true)
		if result.EffectiveDamage != 0 {
			t.Fatalf("immune defender took %d damage", result.EffectiveDamage)
		}
		if result.Effectiveness != 0 {
			t.Fatalf("effectiveness = %v, want 0", result.Effectiveness)
		}
	}
}

func TestStatusMoveDealsZero(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Fire", "", flatStats(100, 200, 50, 200, 50, 50))
	defender := testFighter("Defender", "Grass", "", flatStats(100, 50, 10, 50, 10, 50))
	status := &Move{Name: "Growl", Type: "Normal", Power: 60, Category: CategoryStatus, Accuracy: 100, PP: 10, MaxPP: 10}

	result := calc.Calculate(attacker, defender, status, true)
	if result.EffectiveDamage != 0 {
		t.Fatalf("status move dealt %d damage", result.EffectiveDamage)
	}
}

// TestTheoreticalDamageRange checks the formula with hand-computed values:
// level 50, power 40, attack 100 vs defense 50 gives a base of 37.2.
func TestTheoreticalDamageRange(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(1000, 50, 50, 50, 50, 50))
	move := physicalMove("Slam", "Normal", 40, 100)

	result := calc.Theoretical(attacker, defender, move)
	if math.Abs(result.Range.Max-37.2) > 1e-9 {
		t.Fatalf("max damage = %v, want 37.2", result.Range.Max)
	}
	if math.Abs(result.Range.Min-31.62) > 1e-9 {
		t.Fatalf("min damage = %v, want 31.62", result.Range.Min)
	}
	if result.EffectiveDamage != UnknownDamage {
		t.Fatalf("effective damage = %d, want unknown", result.EffectiveDamage)
	}
}

func TestTheoreticalAppliesSTAB(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Fire", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(1000, 50, 50, 50, 50, 50))
	move := physicalMove("Flame Tackle", "Fire", 40, 100)

	result := calc.Theoretical(attacker, defender, move)
	// 37.2 * 1.5 STAB * 0.5 resisted = 27.9
	if math.Abs(result.Range.Max-27.9) > 1e-9 {
		t.Fatalf("max damage = %v, want 27.9", result.Range.Max)
	}
}

func TestTheoreticalGuaranteedKO(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(10, 50, 50, 50, 50, 50))
	move := physicalMove("Slam", "Normal", 40, 100)

	result := calc.Theoretical(attacker, defender, move)
	if result.EffectiveDamage != 10 {
		t.Fatalf("effective damage = %d, want pinned to defender HP 10", result.EffectiveDamage)
	}
}

func TestCalculateMissesWithoutPP(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(100, 50, 50, 50, 50, 50))
	move := physicalMove("Slam", "Normal", 40, 100)
	move.PP = 0

	result := calc.Calculate(attacker, defender, move, true)
	if !result.Missed {
		t.Fatal("expected a miss with zero PP")
	}
}

func TestCalculateMissesAtZeroAccuracy(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(100, 50, 50, 50, 50, 50))
	move := physicalMove("Wild Swing", "Normal", 40, 0)

	result := calc.Calculate(attacker, defender, move, true)
	if !result.Missed {
		t.Fatal("expected a miss at zero accuracy")
	}
	if result.EffectiveDamage != 0 {
		t.Fatalf("missed move dealt %d damage", result.EffectiveDamage)
	}
}

// TestCalculateCritUsesBaseStats forces a guaranteed crit and checks that
// the lowered current attack stat is ignored.
func TestCalculateCritUsesBaseStats(t *testing.T) {
	calc := damageCalc(t, 1)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	attacker.Current.Attack = 50 // halved in battle
	attacker.Current.CritStage = maxCritStage
	defender := testFighter("Defender", "Water", "", flatStats(1000, 50, 50, 50, 50, 50))
	move := physicalMove("Slam", "Normal", 40, 100)

	result := calc.Calculate(attacker, defender, move, false)
	if !result.Crit {
		t.Fatal("expected a guaranteed crit at max crit stage")
	}
	// base 37.2 from the unmodified stats, *1.5 crit, * mean factor
	if result.EffectiveDamage != 51 {
		t.Fatalf("crit damage = %d, want 51", result.EffectiveDamage)
	}
}

func TestResolveAppliesDamageAndSpendsPP(t *testing.T) {
	calc := damageCalc(t, 7)
	attacker := testFighter("Attacker", "Normal", "", flatStats(100, 100, 50, 50, 50, 50))
	defender := testFighter("Defender", "Water", "", flatStats(200, 50, 50, 50, 50, 50))
	move := physicalMove("Slam", "Normal", 40, 100)
	if err := attacker.AddMove(move); err != nil {
		t.Fatalf("AddMove returned error: %v", err)
	}

	result := calc.Resolve(attacker, defender, move, false)
	if result.Missed {
		t.Fatal("move with 100 accuracy missed")
	}
	if got := defender.Current.HP; got != 200-result.EffectiveDamage {
		t.Fatalf("defender HP = %d, want %d", got, 200-result.EffectiveDamage)
	}
	if move.PP != 9 {
		t.Fatalf("PP = %d, want 9", move.PP)
	}
	// the attack snapshot keeps the post-use PP
	if result.Move.PP != 9 {
		t.Fatalf("snapshot PP = %d, want 9", result.Move.PP)
	}
}

func TestMeanDamageFactor(t *testing.T) {
	if got := meanDamageFactor(); math.Abs(got-0.9207692307692308) > 1e-12 {
		t.Fatalf("mean damage factor = %v", got)
	}
}
