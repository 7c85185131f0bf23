// Package data loads the CSV reference tables under data/: the pokedex, the
// move list, and the type effectiveness chart.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// Lookup errors.
var (
	ErrUnknownPokemon = errors.New("unknown pokemon")
	ErrUnknownMove    = errors.New("unknown move")
)

func init() {
	// a record CSV missing a required column is a data error, not a table
	// of zero values
	gocsv.FailIfUnmatchedStructTags = true
}

// PokedexRow is one species record from pokemon.csv.
type PokedexRow struct {
	Name      string `csv:"Name"`
	Type1     string `csv:"Type 1"`
	Type2     string `csv:"Type 2"`
	HP        int    `csv:"HP"`
	Attack    int    `csv:"Attack"`
	Defense   int    `csv:"Defense"`
	SpAttack  int    `csv:"Sp. Atk"`
	SpDefense int    `csv:"Sp. Def"`
	Speed     int    `csv:"Speed"`
}

// MoveRow is one move record from moves.csv.
type MoveRow struct {
	Name        string `csv:"name"`
	Type        string `csv:"type"`
	Power       int    `csv:"power"`
	DamageClass string `csv:"damage_class"`
	Accuracy    int    `csv:"accuracy"`
	PP          int    `csv:"pp"`
	Priority    int    `csv:"priority"`
}

// Pokedex indexes species rows by folded name, preserving file order.
type Pokedex struct {
	rows   []*PokedexRow
	byName map[string]*PokedexRow
}

// Moves indexes move rows by folded name, preserving file order.
type Moves struct {
	rows   []*MoveRow
	byName map[string]*MoveRow
}

// LoadPokedex reads pokemon.csv. Every row must carry a name, a primary
// type, and non-negative stats.
func LoadPokedex(path string) (*Pokedex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pokedex: %w", err)
	}
	defer f.Close()

	var rows []*PokedexRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse pokedex %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pokedex %s: no rows", path)
	}

	dex := &Pokedex{rows: rows, byName: make(map[string]*PokedexRow, len(rows))}
	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			return nil, fmt.Errorf("pokedex %s: row %d has no name", path, i+1)
		}
		if strings.TrimSpace(row.Type1) == "" {
			return nil, fmt.Errorf("pokedex %s: %s has no primary type", path, row.Name)
		}
		for stat, v := range map[string]int{
			"HP": row.HP, "Attack": row.Attack, "Defense": row.Defense,
			"Sp. Atk": row.SpAttack, "Sp. Def": row.SpDefense, "Speed": row.Speed,
		} {
			if v < 0 {
				return nil, fmt.Errorf("pokedex %s: %s has negative %s", path, row.Name, stat)
			}
		}
		key := Fold(row.Name)
		if _, dup := dex.byName[key]; dup {
			return nil, fmt.Errorf("pokedex %s: duplicate name %q", path, row.Name)
		}
		dex.byName[key] = row
	}
	return dex, nil
}

// Find returns the species record for a name, folding case and accents.
func (d *Pokedex) Find(name string) (*PokedexRow, error) {
	if row, ok := d.byName[Fold(name)]; ok {
		return row, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPokemon, name)
}

// Names lists species names in file order.
func (d *Pokedex) Names() []string {
	out := make([]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = row.Name
	}
	return out
}

// Len returns the number of species.
func (d *Pokedex) Len() int { return len(d.rows) }

// LoadMoves reads moves.csv.
func LoadMoves(path string) (*Moves, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open moves: %w", err)
	}
	defer f.Close()

	var rows []*MoveRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse moves %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("moves %s: no rows", path)
	}

	moves := &Moves{rows: rows, byName: make(map[string]*MoveRow, len(rows))}
	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			return nil, fmt.Errorf("moves %s: row %d has no name", path, i+1)
		}
		if row.Power < 0 || row.Accuracy < 0 || row.PP < 0 {
			return nil, fmt.Errorf("moves %s: %s has a negative field", path, row.Name)
		}
		key := Fold(row.Name)
		if _, dup := moves.byName[key]; dup {
			return nil, fmt.Errorf("moves %s: duplicate name %q", path, row.Name)
		}
		moves.byName[key] = row
	}
	return moves, nil
}

// Find returns the move record for a name, folding case and accents.
func (m *Moves) Find(name string) (*MoveRow, error) {
	if row, ok := m.byName[Fold(name)]; ok {
		return row, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
}

// Names lists move names in file order.
func (m *Moves) Names() []string {
	out := make([]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.Name
	}
	return out
}

// Len returns the number of moves.
func (m *Moves) Len() int { return len(m.rows) }

// LoadTypeChart reads chart.csv, a cross-tabulated matrix: the first header
// cell is "Attacking", the remaining header cells are defending types, and
// each row holds an attacking type followed by one multiplier per defending
// type. Multipliers must be non-negative.
func LoadTypeChart(path string) (map[string]map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open type chart: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse type chart %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("type chart %s: no data rows", path)
	}

	header := records[0]
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "Attacking") {
		return nil, fmt.Errorf("type chart %s: first column must be Attacking", path)
	}
	defending := make([]string, len(header)-1)
	for i, h := range header[1:] {
		defending[i] = strings.TrimSpace(h)
	}

	chart := make(map[string]map[string]float64, len(records)-1)
	for rowNum, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("type chart %s: row %d has %d cells, want %d", path, rowNum+2, len(record), len(header))
		}
		attacking := strings.TrimSpace(record[0])
		if attacking == "" {
			return nil, fmt.Errorf("type chart %s: row %d has no attacking type", path, rowNum+2)
		}
		row := make(map[string]float64, len(defending))
		for i, cell := range record[1:] {
			mult, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("type chart %s: %s vs %s: %w", path, attacking, defending[i], err)
			}
			if mult < 0 {
				return nil, fmt.Errorf("type chart %s: %s vs %s is negative", path, attacking, defending[i])
			}
			row[defending[i]] = mult
		}
		chart[attacking] = row
	}
	return chart, nil
}
