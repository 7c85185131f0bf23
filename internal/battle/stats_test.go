package battle

import "testing"

// TestComputeStatsLevel50 checks the stat formulas against hand-computed
// values for Pikachu's base stats at level 50 with perfect IVs and no EVs.
func TestComputeStatsLevel50(t *testing.T) {
	base := BaseStats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}
	stats := ComputeStats(base, DefaultIVs(), EffortValues{}, 50)

	if stats.HP != 110 {
		t.Fatalf("HP = %d, want 110", stats.HP)
	}
	if stats.Attack != 75 {
		t.Fatalf("Attack = %d, want 75", stats.Attack)
	}
	if stats.Defense != 60 {
		t.Fatalf("Defense = %d, want 60", stats.Defense)
	}
	if stats.SpAttack != 70 {
		t.Fatalf("SpAttack = %d, want 70", stats.SpAttack)
	}
	if stats.SpDefense != 70 {
		t.Fatalf("SpDefense = %d, want 70", stats.SpDefense)
	}
	if stats.Speed != 110 {
		t.Fatalf("Speed = %d, want 110", stats.Speed)
	}
}

func TestComputeStatsEVs(t *testing.T) {
	base := BaseStats{HP: 35, Attack: 55, Defense: 40, SpAttack: 50, SpDefense: 50, Speed: 90}
	ev := EffortValues{Speed: 252}
	stats := ComputeStats(base, DefaultIVs(), ev, 50)

	// (31 + 180 + 63) * 50 / 100 = 137, +5 = 142
	if stats.Speed != 142 {
		t.Fatalf("Speed with 252 EVs = %d, want 142", stats.Speed)
	}
}

func TestStatsStagesStartNeutral(t *testing.T) {
	stats := ComputeStats(BaseStats{HP: 1}, DefaultIVs(), EffortValues{}, 50)
	if got := stats.AccuracyMultiplier(); got != 1 {
		t.Fatalf("accuracy multiplier = %v, want 1", got)
	}
	if got := stats.EvasionMultiplier(); got != 1 {
		t.Fatalf("evasion multiplier = %v, want 1", got)
	}
	if got := stats.CritChance(); got != 0.0625 {
		t.Fatalf("crit chance = %v, want 0.0625", got)
	}
}

func TestStatsStageSaturation(t *testing.T) {
	var stats Stats

	for i := 0; i < 10; i++ {
		stats.RaiseCrit()
	}
	if stats.CritStage != maxCritStage {
		t.Fatalf("crit stage = %d, want %d", stats.CritStage, maxCritStage)
	}
	if stats.CritChance() != 1 {
		t.Fatalf("crit chance at max stage = %v, want 1", stats.CritChance())
	}

	for i := 0; i < 10; i++ {
		stats.LowerCrit()
	}
	if stats.CritStage != 0 {
		t.Fatalf("crit stage = %d, want 0", stats.CritStage)
	}

	stats.AccuracyStage = neutralStage
	for i := 0; i < 20; i++ {
		stats.RaiseAccuracy()
	}
	if stats.AccuracyStage != maxStage {
		t.Fatalf("accuracy stage = %d, want %d", stats.AccuracyStage, maxStage)
	}
	for i := 0; i < 20; i++ {
		stats.LowerAccuracy()
	}
	if stats.AccuracyStage != 0 {
		t.Fatalf("accuracy stage = %d, want 0", stats.AccuracyStage)
	}
}
