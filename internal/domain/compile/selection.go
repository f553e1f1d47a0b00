package compile

import (
	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// selectionResolver answers pick-ownership questions by direct indexing
// into the pre-built per-episode histories. Out-of-range episodes and
// nil slots mean "no holder".
type selectionResolver struct {
	selections model.SelectionTimeline
}

// holderAt returns the member holding the castaway at the episode.
func (s selectionResolver) holderAt(castaway types.CastawayID, episode int) (types.MemberID, bool) {
	history := s.selections.CastawayMembers[castaway]
	if episode < 0 || episode >= len(history) || history[episode] == nil {
		return 0, false
	}
	return *history[episode], true
}

// pickAt returns the castaway the member holds at the episode.
func (s selectionResolver) pickAt(member types.MemberID, episode int) (types.CastawayID, bool) {
	history := s.selections.MemberCastaways[member]
	if episode < 0 || episode >= len(history) || history[episode] == nil {
		return 0, false
	}
	return *history[episode], true
}

// secondaryHoldersAt returns every member whose secondary pick at the
// episode is the castaway, in ascending member order for determinism.
// Empty unless the league carries a secondary pick history.
func (s selectionResolver) secondaryHoldersAt(castaway types.CastawayID, episode int) []types.MemberID {
	if len(s.selections.SecondaryPicks) == 0 || episode < 0 {
		return nil
	}
	var holders []types.MemberID
	for _, member := range sortedKeys(s.selections.SecondaryPicks) {
		history := s.selections.SecondaryPicks[member]
		if episode >= len(history) || history[episode] == nil {
			continue
		}
		if *history[episode] == castaway {
			holders = append(holders, member)
		}
	}
	return holders
}
