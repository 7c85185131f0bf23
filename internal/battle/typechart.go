package battle

import (
	"fmt"
	"sort"
)

// TypeChart maps (attacking type, defending type) to a damage multiplier.
// Lookups are total: any pairing the chart does not declare is 1.0.
type TypeChart struct {
	multipliers map[string]map[string]float64
}

// NewTypeChart validates and wraps a multiplier table. Multipliers must be
// non-negative; zero means immunity.
func NewTypeChart(multipliers map[string]map[string]float64) (*TypeChart, error) {
	for atk, row := range multipliers {
		for def, mult := range row {
			if mult < 0 {
				return nil, fmt.Errorf("type chart: negative multiplier %v for %s vs %s", mult, atk, def)
			}
		}
	}
	return &TypeChart{multipliers: multipliers}, nil
}

// Effectiveness returns the combined multiplier of an attacking type against
// one or more defending types. Empty defending types are skipped, so a
// mono-type defender can be passed with an empty second type.
func (c *TypeChart) Effectiveness(attacking string, defending ...string) float64 {
	mult := 1.0
	for _, def := range defending {
		if def == "" {
			continue
		}
		if row, ok := c.multipliers[attacking]; ok {
			if m, ok := row[def]; ok {
				mult *= m
			}
		}
	}
	return mult
}

// Types returns the attacking types declared by the chart, sorted.
func (c *TypeChart) Types() []string {
	types := make([]string, 0, len(c.multipliers))
	for t := range c.multipliers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
