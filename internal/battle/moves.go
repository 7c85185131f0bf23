package battle

import "fmt"

// Category tells which stats a move uses, or that it deals no damage at all.
type Category int

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

func (c Category) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	case CategoryStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ParseCategory maps a damage_class column value to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "physical", "Physical":
		return CategoryPhysical, nil
	case "special", "Special":
		return CategorySpecial, nil
	case "status", "Status":
		return CategoryStatus, nil
	default:
		return CategoryStatus, fmt.Errorf("unknown damage class %q", s)
	}
}

// Move is a single attack a Pokémon can use. PP tracks the remaining uses,
// MaxPP the value it resets to.
type Move struct {
	Name     string
	Type     string
	Power    int
	Category Category
	Accuracy int
	PP       int
	MaxPP    int
	Priority int
}

// Clone returns a copy of the move. Attack records keep clones so later PP
// changes do not rewrite history.
func (m *Move) Clone() *Move {
	cp := *m
	return &cp
}
