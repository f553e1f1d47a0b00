package compile

import (
	"sort"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// rosterResolver answers "what was tribe T's roster as of episode E"
// against the sparse tribe timeline: the roster in force is the one at
// the largest timeline key at or before E.
type rosterResolver struct {
	timeline model.TribeTimeline
	keys     []int // ascending
}

func newRosterResolver(timeline model.TribeTimeline) *rosterResolver {
	keys := make([]int, 0, len(timeline))
	for k := range timeline {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return &rosterResolver{timeline: timeline, keys: keys}
}

// rosterAt returns the tribe's roster as of the given episode. An episode
// before the first timeline key, or a tribe missing from the selected
// snapshot, yields an empty roster.
func (r *rosterResolver) rosterAt(tribe types.TribeID, episode int) []types.CastawayID {
	idx := sort.SearchInts(r.keys, episode+1) - 1
	if idx < 0 {
		return nil
	}
	return r.timeline[r.keys[idx]][tribe]
}
