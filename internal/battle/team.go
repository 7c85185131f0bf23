package battle

import "errors"

// Team errors.
var (
	ErrEmptyTeam      = errors.New("team needs at least one pokemon")
	ErrAlreadyActive  = errors.New("pokemon is already active")
	ErrFaintedSwitch  = errors.New("cannot switch to a fainted pokemon")
	ErrBadSwitchIndex = errors.New("switch index out of range")
)

// Team is an ordered roster with one active member.
type Team struct {
	Name    string
	Members []*Pokemon
	active  int
}

// NewTeam builds a team; the first member starts active.
func NewTeam(name string, members []*Pokemon) (*Team, error) {
	if len(members) == 0 {
		return nil, ErrEmptyTeam
	}
	return &Team{Name: name, Members: members}, nil
}

// Active returns the Pokémon currently in battle.
func (t *Team) Active() *Pokemon {
	return t.Members[t.active]
}

// Defeated reports whether every member has fainted.
func (t *Team) Defeated() bool {
	for _, p := range t.Members {
		if !p.Fainted() {
			return false
		}
	}
	return true
}

// AvailableSwitches lists the indexes that SwitchTo would accept.
func (t *Team) AvailableSwitches() []int {
	var out []int
	for i, p := range t.Members {
		if i != t.active && !p.Fainted() {
			out = append(out, i)
		}
	}
	return out
}

// SwitchTo makes the member at index the active Pokémon.
func (t *Team) SwitchTo(index int) error {
	if index < 0 || index >= len(t.Members) {
		return ErrBadSwitchIndex
	}
	if index == t.active {
		return ErrAlreadyActive
	}
	if t.Members[index].Fainted() {
		return ErrFaintedSwitch
	}
	t.active = index
	return nil
}

// NextAvailable returns the first living bench index, if any.
func (t *Team) NextAvailable() (int, bool) {
	for i, p := range t.Members {
		if i != t.active && !p.Fainted() {
			return i, true
		}
	}
	return 0, false
}

// Reset restores every member for a fresh battle and reactivates the lead.
func (t *Team) Reset() {
	for _, p := range t.Members {
		p.ResetStats()
	}
	t.active = 0
}
