package compile

import (
	"context"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
	"github.com/tribeline/scorekeep/pkg/metrics"
)

// predictionProcessor resolves hit/miss predictions into member points,
// layering the Shauhin betting overlay on top when its activation window
// is open for the scoring episode.
type predictionProcessor struct {
	ledger *scoreLedger
	rules  *rules.Rules
	keys   model.KeyEpisodes
	log    logger.Logger
}

// runBase applies the base prediction stream, scoring episodes ascending
// and event names ascending within an episode.
func (p *predictionProcessor) runBase(ctx context.Context, predictions map[int]map[string][]model.Prediction) {
	for _, episode := range sortedKeys(predictions) {
		byName := predictions[episode]
		for _, name := range sortedKeys(byName) {
			for _, pr := range byName[name] {
				p.apply(ctx, episode, pr)
			}
		}
	}
}

// runCustom applies the owner-defined prediction stream.
func (p *predictionProcessor) runCustom(ctx context.Context, predictions map[int][]model.Prediction) {
	for _, episode := range sortedKeys(predictions) {
		for _, pr := range predictions[episode] {
			p.apply(ctx, episode, pr)
		}
	}
}

func (p *predictionProcessor) apply(ctx context.Context, episode int, pr model.Prediction) {
	points, ok := p.rules.PredictionPoints(pr.EventName)
	if !ok {
		// Unmatched or disabled rule: no credit, no penalty, even when
		// an outcome is present.
		p.log.Debug(ctx, "prediction has no enabled rule, skipping",
			logger.String("event", pr.EventName),
			logger.Int("episode", episode),
		)
		return
	}
	if !pr.Resolved() {
		return
	}
	metrics.RecordPredictionResolved()
	if *pr.Hit {
		p.ledger.addMember(pr.MakerID, episode, points)
	}

	// Shauhin overlay: amplified gain on hit, loss on miss, inside the
	// activation window only.
	shauhin := p.rules.Shauhin
	if !shauhin.BetAllowed(pr.EventName) || pr.Bet == nil {
		return
	}
	if !windowOpen(shauhin, p.keys, episode) {
		return
	}
	effective := shauhin.ClampBet(*pr.Bet)
	if effective != *pr.Bet {
		metrics.RecordBetClamped()
	}
	if *pr.Hit {
		p.ledger.addMember(pr.MakerID, episode, effective)
	} else {
		p.ledger.addMember(pr.MakerID, episode, -effective)
	}
}

// windowOpen evaluates the Shauhin activation window for a scoring
// episode. An unresolved dependency (no merge marker yet, no custom week
// configured) leaves the window closed.
func windowOpen(s rules.ShauhinSettings, keys model.KeyEpisodes, episode int) bool {
	switch s.StartWeek {
	case types.CustomTiming:
		return s.CustomStartWeek != nil && episode >= *s.CustomStartWeek
	case types.AfterPremiere:
		return episode >= 2
	case types.AfterMerge:
		return keys.MergeEpisode != nil && episode > keys.MergeEpisode.EpisodeNumber
	case types.BeforeFinale:
		finale := keys.FinaleEpisode()
		return finale != 0 && episode < finale
	}
	return false
}
