package compile

import (
	"context"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// streakProcessor awards the compounding survival bonus: one point per
// consecutive episode a member's current pick stays in the game, growing
// by one each episode up to the configured cap. The bonus is a ledger
// delta like any other, so it compounds into the cumulative total.
type streakProcessor struct {
	ledger     *scoreLedger
	selections selectionResolver
	eliminated map[types.CastawayID]int // castaway -> first elimination episode
	cap        int                      // 0 means uncapped
}

// buildEliminationIndex maps each castaway to the first episode they were
// eliminated in.
func buildEliminationIndex(eliminations map[int][]model.Elimination) map[types.CastawayID]int {
	index := make(map[types.CastawayID]int)
	for _, episode := range sortedKeys(eliminations) {
		for _, elim := range eliminations[episode] {
			if _, ok := index[elim.CastawayID]; !ok {
				index[elim.CastawayID] = episode
			}
		}
	}
	return index
}

// run walks every member's pick history in episode order and returns the
// streak length each member holds after their last recorded episode.
// The counter resets to zero at any episode where the member has no pick
// or the pick was already eliminated, and restarts at one with the next
// surviving pick.
func (p *streakProcessor) run(_ context.Context) map[types.MemberID]int {
	current := make(map[types.MemberID]int, len(p.selections.selections.MemberCastaways))
	for _, member := range sortedKeys(p.selections.selections.MemberCastaways) {
		history := p.selections.selections.MemberCastaways[member]
		streak := 0
		for episode := 1; episode < len(history); episode++ {
			pick, ok := p.selections.pickAt(member, episode)
			if !ok || p.eliminatedBy(pick, episode) {
				streak = 0
				continue
			}
			streak++
			bonus := float64(streak)
			if p.cap > 0 && bonus > float64(p.cap) {
				bonus = float64(p.cap)
			}
			p.ledger.addMember(member, episode, bonus)
		}
		current[member] = streak
	}
	return current
}

// eliminatedBy reports whether the castaway was out of the game at or
// before the episode.
func (p *streakProcessor) eliminatedBy(castaway types.CastawayID, episode int) bool {
	elim, ok := p.eliminated[castaway]
	return ok && elim <= episode
}
