package compile

import (
	"context"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
	"github.com/tribeline/scorekeep/pkg/metrics"
)

// directProcessor applies direct events to the ledger: points to the
// referenced entity, expansion of tribe references across the roster in
// force, and propagation of castaway deltas to the members holding them.
type directProcessor struct {
	ledger     *scoreLedger
	rules      *rules.Rules
	rosters    *rosterResolver
	selections selectionResolver
	log        logger.Logger
}

// run applies every Direct event in the stream, episodes ascending and
// event ids ascending within an episode. Prediction-kind events in the
// stream are ignored here; they carry no direct points.
func (p *directProcessor) run(ctx context.Context, events map[int]map[string]model.Event) {
	for _, episode := range sortedKeys(events) {
		byID := events[episode]
		for _, id := range sortedKeys(byID) {
			p.apply(ctx, episode, byID[id])
		}
	}
}

func (p *directProcessor) apply(ctx context.Context, episode int, ev model.Event) {
	if ev.Kind != types.KindDirect {
		return
	}
	points, ok := p.rules.DirectPoints(ev.Name)
	if !ok {
		// No base or custom rule covers this name: silent no-op.
		p.log.Debug(ctx, "event has no matching rule, skipping",
			logger.String("event", ev.Name),
			logger.Int("episode", episode),
		)
		metrics.RecordEventSkipped()
		return
	}
	for _, ref := range ev.References {
		switch ref.Type {
		case types.RefTribe:
			tribe := ref.TribeID()
			p.ledger.addTribe(tribe, episode, points)
			// Full propagation: every castaway on the roster gets the
			// same points, not a share of them.
			for _, castaway := range p.rosters.rosterAt(tribe, episode) {
				p.creditCastaway(castaway, episode, points)
			}
		case types.RefCastaway:
			p.creditCastaway(ref.CastawayID(), episode, points)
		}
	}
	metrics.RecordEventScored()
}

// creditCastaway writes a castaway delta and propagates it to the main
// holder and, when the overlay is enabled, to secondary holders at the
// configured multiplier. Main and secondary credits are independent and
// additive.
func (p *directProcessor) creditCastaway(castaway types.CastawayID, episode int, points float64) {
	p.ledger.addCastaway(castaway, episode, points)
	if member, ok := p.selections.holderAt(castaway, episode); ok {
		p.ledger.addMember(member, episode, points)
	}
	if p.rules.SecondaryEnabled() {
		multiplier := p.rules.SecondaryPick.Multiplier
		for _, member := range p.selections.secondaryHoldersAt(castaway, episode) {
			p.ledger.addMember(member, episode, points*multiplier)
		}
	}
}
