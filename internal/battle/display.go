package battle

import (
	"fmt"
	"io"
	"strings"
)

const summaryRule = 60

// RenderTurnSummary writes a console summary of one turn: the predicted best
// move, the move that was actually executed, and the defender's HP after.
func RenderTurnSummary(w io.Writer, attacker, defender *Pokemon, predicted, executed Attack) {
	bar := strings.Repeat("=", summaryRule)
	sep := strings.Repeat("-", summaryRule)

	fmt.Fprintf(w, "\n%s\nPre-Turn Prediction\n%s\n", bar, sep)
	fmt.Fprintf(w, "Expected best move: %s (PP: %d)\n", predicted.Move.Name, predicted.Move.PP)
	if predicted.EffectiveDamage == UnknownDamage {
		fmt.Fprintf(w, "-> Estimated damage: %.2f - %.2f\n", predicted.Range.Min, predicted.Range.Max)
	} else {
		fmt.Fprintf(w, "-> Estimated damage: %d (guaranteed KO)\n", predicted.EffectiveDamage)
	}
	fmt.Fprintf(w, "-> Effectiveness: x%.2f\n%s\n", predicted.Effectiveness, bar)

	fmt.Fprintf(w, "Turn Execution\n%s\n", sep)
	fmt.Fprintf(w, "%s uses %s (PP left: %d)\n", attacker.Name, executed.Move.Name, executed.Move.PP)
	if executed.Missed {
		fmt.Fprintln(w, "-> The move missed!")
	} else {
		fmt.Fprintf(w, "-> Deals %d damage to %s\n", executed.EffectiveDamage, defender.Name)
		if executed.Crit {
			fmt.Fprintln(w, "-> It's a critical hit!")
		}
		fmt.Fprintf(w, "-> Effectiveness: x%.2f\n", executed.Effectiveness)
	}
	fmt.Fprintln(w, bar)

	fmt.Fprintf(w, "Post-Turn Status\n%s\n", sep)
	fmt.Fprintf(w, "%s's HP: %d / %d\n%s\n\n", defender.Name, defender.Current.HP, defender.Base.HP, bar)
}
