// Package compile implements the score compilation engine: it folds a
// season's raw event records, elimination history, tribe rosters, pick
// histories, prediction outcomes, and league rules into one cumulative,
// episode-indexed point ledger per tribe, castaway, and member.
//
// The engine is purely synchronous and performs no I/O. It operates on
// read-only snapshots assembled by the caller, owns its ledger for the
// duration of a single invocation, and keeps no state across calls, so
// identical inputs always yield identical outputs.
package compile

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
	"github.com/tribeline/scorekeep/pkg/metrics"
)

// defaultSurvivalCap is the league-default ceiling for the per-episode
// survival bonus.
const defaultSurvivalCap = 5

// Input carries every snapshot the engine reads. BaseEvents,
// Eliminations, and TribeTimeline are required and must be non-nil
// (empty is fine); the rest default to feature-inactive values.
type Input struct {
	// BaseEvents maps episode number -> event id -> event.
	BaseEvents map[int]map[string]model.Event
	// Eliminations maps episode number -> eliminations in that episode.
	Eliminations map[int][]model.Elimination
	// TribeTimeline is the sparse roster history.
	TribeTimeline model.TribeTimeline
	// KeyEpisodes carries the season markers for time-gated behavior.
	KeyEpisodes model.KeyEpisodes
	// Selections holds the pick histories; empty disables member
	// propagation and the streak bonus.
	Selections model.SelectionTimeline
	// Custom holds owner-defined events and predictions.
	Custom model.CustomEvents
	// BasePredictions maps scoring episode -> event name -> predictions.
	BasePredictions map[int]map[string][]model.Prediction
	// Rules is the league's scoring configuration; nil means the
	// league-default base rules only.
	Rules *rules.Rules
}

// Result is the compiled ledger plus the streak each member currently
// holds.
type Result struct {
	Scores         types.Scoreboard       `json:"scores"`
	CurrentStreaks map[types.MemberID]int `json:"current_streaks"`
}

// compiler holds the per-invocation wiring.
type compiler struct {
	survivalCap int
	log         logger.Logger
}

// Option applies a configuration option to a compilation.
type Option func(*compiler)

// WithSurvivalCap overrides the league-default survival bonus ceiling.
// Zero means uncapped.
func WithSurvivalCap(cap int) Option {
	return func(c *compiler) {
		if cap >= 0 {
			c.survivalCap = cap
		}
	}
}

// WithLogger sets a custom logger for the compilation.
func WithLogger(log logger.Logger) Option {
	return func(c *compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// Compile runs the full pipeline: direct events (base then custom),
// predictions (base then custom), then the survival streak bonus, and
// returns the ledger snapshot. It fails fast only on nil required
// collections; every data-quality issue inside the inputs is tolerated
// silently per the engine contract.
func Compile(ctx context.Context, in Input, opts ...Option) (Result, error) {
	start := time.Now()

	c := &compiler{
		survivalCap: defaultSurvivalCap,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validate(in); err != nil {
		return Result{}, err
	}

	leagueRules := in.Rules
	if leagueRules == nil {
		leagueRules = rules.Default()
	}

	ledger := newScoreLedger()
	selections := selectionResolver{selections: in.Selections}

	direct := &directProcessor{
		ledger:     ledger,
		rules:      leagueRules,
		rosters:    newRosterResolver(in.TribeTimeline),
		selections: selections,
		log:        c.log,
	}
	direct.run(ctx, in.BaseEvents)
	direct.run(ctx, in.Custom.Events)

	predictions := &predictionProcessor{
		ledger: ledger,
		rules:  leagueRules,
		keys:   in.KeyEpisodes,
		log:    c.log,
	}
	predictions.runBase(ctx, in.BasePredictions)
	predictions.runCustom(ctx, in.Custom.Predictions)

	streaks := &streakProcessor{
		ledger:     ledger,
		selections: selections,
		eliminated: buildEliminationIndex(in.Eliminations),
		cap:        c.survivalCap,
	}
	current := streaks.run(ctx)

	board := ledger.snapshot()
	metrics.RecordCompileDuration(time.Since(start))
	metrics.UpdateTrackedEntities(len(board.Tribes), len(board.Castaways), len(board.Members))

	return Result{Scores: board, CurrentStreaks: current}, nil
}

// validate rejects structurally missing required collections. A nil
// required map is a caller contract violation and must not silently
// produce zero-filled scores.
func validate(in Input) error {
	if in.BaseEvents == nil {
		return ErrNilBaseEvents
	}
	if in.Eliminations == nil {
		return ErrNilEliminations
	}
	if in.TribeTimeline == nil {
		return ErrNilTribeTimeline
	}
	return nil
}

// sortedKeys returns the map's keys in ascending order. Every processor
// iterates through this helper; forward-fill correctness depends on
// monotonic episode order, never on map iteration order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
