package battle

import (
	"encoding/json"
	"math/rand"
)

// Event is one entry of a battle log, JSON-friendly for file output.
type Event struct {
	Turn    int            `json:"turn"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Result summarizes a finished battle.
type Result struct {
	Winner          string         `json:"winner,omitempty"`
	Draw            bool           `json:"draw"`
	Turns           int            `json:"turns"`
	DamageByPokemon map[string]int `json:"damage_by_pokemon"`
	DamageByMove    map[string]int `json:"damage_by_move"`
	Survivors       map[string]int `json:"survivors"`
	Events          []Event        `json:"events,omitempty"`
}

// Simulator plays out full team battles. Both sides pick moves with the
// same advisor, so battles measure matchups rather than play skill.
type Simulator struct {
	Calc     *Calculator
	Advisor  *MoveAdvisor
	Rng      *rand.Rand
	MaxTurns int
}

// NewSimulator builds a simulator sharing the calculator's RNG.
func NewSimulator(calc *Calculator, maxTurns int) *Simulator {
	return &Simulator{
		Calc:     calc,
		Advisor:  NewMoveAdvisor(calc),
		Rng:      calc.Rng,
		MaxTurns: maxTurns,
	}
}

type halfTurn struct {
	team     *Team
	opponent *Team
	attack   Attack
}

// Run simulates a battle to completion. With record set, the full event log
// is attached to the result. The battle ends on team defeat or when the
// turn cap is hit, which counts as a draw.
func (s *Simulator) Run(teamA, teamB *Team, record bool) (Result, error) {
	res := Result{
		DamageByPokemon: map[string]int{},
		DamageByMove:    map[string]int{},
		Survivors:       map[string]int{},
	}

	emit := func(ev Event) {
		if record {
			res.Events = append(res.Events, ev)
		}
	}

	turn := 0
	for !teamA.Defeated() && !teamB.Defeated() && turn < s.MaxTurns {
		turn++
		emit(Event{Turn: turn, Type: "TurnStart", Payload: map[string]any{
			"a": teamA.Active().Name, "a_hp": teamA.Active().Current.HP,
			"b": teamB.Active().Name, "b_hp": teamB.Active().Current.HP,
		}})

		first, second, err := s.order(teamA, teamB)
		if err != nil {
			return Result{}, err
		}

		secondActor := second.team.Active()
		if done := s.halfTurn(first, emit, &res, turn); done {
			break
		}
		if secondActor.Fainted() {
			// the second attacker went down before acting; its replacement
			// was already switched in, the turn ends here
			continue
		}
		// re-plan: the first half may have changed the board
		attack, err := s.Advisor.BestMove(second.team.Active(), second.opponent.Active())
		if err != nil {
			return Result{}, err
		}
		second.attack = attack
		if done := s.halfTurn(second, emit, &res, turn); done {
			break
		}
	}

	res.Turns = turn
	switch {
	case teamA.Defeated() && !teamB.Defeated():
		res.Winner = teamB.Name
	case teamB.Defeated() && !teamA.Defeated():
		res.Winner = teamA.Name
	default:
		res.Draw = true
	}
	for _, t := range []*Team{teamA, teamB} {
		alive := 0
		for _, p := range t.Members {
			if !p.Fainted() {
				alive++
			}
		}
		res.Survivors[t.Name] = alive
	}

	emit(Event{Turn: turn, Type: "BattleEnd", Payload: map[string]any{
		"winner": res.Winner, "draw": res.Draw,
	}})
	return res, nil
}

// order decides which side acts first: move priority, then speed, then a
// coin flip from the shared RNG.
func (s *Simulator) order(teamA, teamB *Team) (first, second halfTurn, err error) {
	bestA, err := s.Advisor.BestMove(teamA.Active(), teamB.Active())
	if err != nil {
		return halfTurn{}, halfTurn{}, err
	}
	bestB, err := s.Advisor.BestMove(teamB.Active(), teamA.Active())
	if err != nil {
		return halfTurn{}, halfTurn{}, err
	}

	a := halfTurn{team: teamA, opponent: teamB, attack: bestA}
	b := halfTurn{team: teamB, opponent: teamA, attack: bestB}

	aFirst := false
	switch {
	case bestA.Move.Priority != bestB.Move.Priority:
		aFirst = bestA.Move.Priority > bestB.Move.Priority
	case teamA.Active().Current.Speed != teamB.Active().Current.Speed:
		aFirst = teamA.Active().Current.Speed > teamB.Active().Current.Speed
	default:
		aFirst = s.Rng.Intn(2) == 0
	}
	if aFirst {
		return a, b, nil
	}
	return b, a, nil
}

// halfTurn resolves one attack and any resulting faint. It returns true
// when the battle is over.
func (s *Simulator) halfTurn(h halfTurn, emit func(Event), res *Result, turn int) bool {
	attacker := h.team.Active()
	defender := h.opponent.Active()

	// find the attacker-owned move so PP is spent on the real one
	move := h.attack.Move
	for _, m := range attacker.Moves {
		if m.Name == move.Name {
			move = m
			break
		}
	}

	outcome := s.Calc.Resolve(attacker, defender, move, true)
	res.DamageByPokemon[attacker.Name] += outcome.EffectiveDamage
	res.DamageByMove[move.Name] += outcome.EffectiveDamage

	payload := map[string]any{
		"attacker": attacker.Name, "defender": defender.Name,
		"move": move.Name, "damage": outcome.EffectiveDamage,
		"effectiveness": outcome.Effectiveness,
	}
	if outcome.Missed {
		payload["missed"] = true
	}
	if outcome.Crit {
		payload["crit"] = true
	}
	emit(Event{Turn: turn, Type: "Attack", Payload: payload})

	if defender.Fainted() {
		emit(Event{Turn: turn, Type: "Faint", Payload: map[string]any{"pokemon": defender.Name}})
		return !s.replaceFainted(h.opponent, emit, turn)
	}
	return false
}

// replaceFainted switches in the next living member. It returns false when
// nobody is left.
func (s *Simulator) replaceFainted(t *Team, emit func(Event), turn int) bool {
	if !t.Active().Fainted() {
		return true
	}
	next, ok := t.NextAvailable()
	if !ok {
		return false
	}
	if err := t.SwitchTo(next); err != nil {
		return false
	}
	emit(Event{Turn: turn, Type: "Switch", Payload: map[string]any{
		"team": t.Name, "pokemon": t.Active().Name,
	}})
	return true
}

// MarshalPretty renders a value as indented JSON for file output.
func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
