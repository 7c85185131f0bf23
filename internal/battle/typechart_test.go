package battle

import "testing"

func testChart(t *testing.T) *TypeChart {
	t.Helper()
	chart, err := NewTypeChart(map[string]map[string]float64{
		"Fire":     {"Grass": 2, "Water": 0.5, "Fire": 0.5},
		"Water":    {"Fire": 2, "Grass": 0.5},
		"Electric": {"Water": 2, "Ground": 0},
	})
	if err != nil {
		t.Fatalf("NewTypeChart returned error: %v", err)
	}
	return chart
}

func TestEffectivenessLookupsAreTotal(t *testing.T) {
	chart := testChart(t)

	if got := chart.Effectiveness("Fire", "Grass"); got != 2 {
		t.Fatalf("Fire vs Grass = %v, want 2", got)
	}
	// undeclared pairings default to neutral
	if got := chart.Effectiveness("Fire", "Dragon"); got != 1 {
		t.Fatalf("Fire vs undeclared type = %v, want 1", got)
	}
	if got := chart.Effectiveness("Unknown", "Grass"); got != 1 {
		t.Fatalf("undeclared attacking type = %v, want 1", got)
	}
}

func TestEffectivenessDualType(t *testing.T) {
	chart := testChart(t)

	// 2 * 0.5 = 1
	if got := chart.Effectiveness("Fire", "Grass", "Water"); got != 1 {
		t.Fatalf("Fire vs Grass/Water = %v, want 1", got)
	}
	// empty secondary type is skipped
	if got := chart.Effectiveness("Fire", "Grass", ""); got != 2 {
		t.Fatalf("Fire vs Grass/- = %v, want 2", got)
	}
	// immunity zeroes the product
	if got := chart.Effectiveness("Electric", "Water", "Ground"); got != 0 {
		t.Fatalf("Electric vs Water/Ground = %v, want 0", got)
	}
}

func TestNewTypeChartRejectsNegative(t *testing.T) {
	_, err := NewTypeChart(map[string]map[string]float64{
		"Fire": {"Grass": -1},
	})
	if err == nil {
		t.Fatal("expected error for negative multiplier")
	}
}
