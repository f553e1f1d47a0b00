package compile

import (
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// scoreLedger accumulates cumulative per-episode totals for the three
// entity kinds. Arrays materialize lazily on first touch, so entities
// that never score stay absent from the snapshot.
type scoreLedger struct {
	tribes    map[types.TribeID][]float64
	castaways map[types.CastawayID][]float64
	members   map[types.MemberID][]float64
}

func newScoreLedger() *scoreLedger {
	return &scoreLedger{
		tribes:    make(map[types.TribeID][]float64),
		castaways: make(map[types.CastawayID][]float64),
		members:   make(map[types.MemberID][]float64),
	}
}

// addDelta is the single get-or-create primitive every processor writes
// through. On first touch it materializes a zero baseline from episode 0
// through the target episode; on later touches it forward-fills from the
// last recorded episode with the running total. The delta is applied at
// the target episode and every already-materialized episode after it, so
// arrays stay cumulative even when a later processor pass revisits an
// earlier episode.
func addDelta[K comparable](m map[K][]float64, id K, episode int, amount float64) {
	if episode < 0 {
		return
	}
	arr, ok := m[id]
	if !ok {
		arr = make([]float64, 1, episode+1)
	}
	last := arr[len(arr)-1]
	for len(arr) <= episode {
		arr = append(arr, last)
	}
	for i := episode; i < len(arr); i++ {
		arr[i] += amount
	}
	m[id] = arr
}

func (l *scoreLedger) addTribe(id types.TribeID, episode int, amount float64) {
	addDelta(l.tribes, id, episode, amount)
}

func (l *scoreLedger) addCastaway(id types.CastawayID, episode int, amount float64) {
	addDelta(l.castaways, id, episode, amount)
}

func (l *scoreLedger) addMember(id types.MemberID, episode int, amount float64) {
	addDelta(l.members, id, episode, amount)
}

// snapshot emits the three public maps. The backing arrays are handed
// over as-is; the ledger is discarded after a single compilation, so no
// copy is needed.
func (l *scoreLedger) snapshot() types.Scoreboard {
	return types.Scoreboard{
		Tribes:    l.tribes,
		Castaways: l.castaways,
		Members:   l.members,
	}
}
