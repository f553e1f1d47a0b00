// Package service provides the core business service that compiles a
// season snapshot into standings, applying league-level overrides on top
// of the snapshot's own rules.
package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/tribeline/scorekeep/internal/adapters/snapshot"
	"github.com/tribeline/scorekeep/internal/domain/compile"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
)

// Service compiles season snapshots under a league's settings.
type Service struct {
	survivalCap int
	basePoints  map[string]float64
	log         logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSurvivalCap sets the survival bonus ceiling. Zero means uncapped.
func WithSurvivalCap(cap int) Option {
	return func(s *Service) {
		if cap >= 0 {
			s.survivalCap = cap
		}
	}
}

// WithBasePointOverrides sets league overrides for base direct event
// point values.
func WithBasePointOverrides(points map[string]float64) Option {
	return func(s *Service) {
		s.basePoints = points
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		survivalCap: 5, // league default
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompileSeason resolves the effective rules for the snapshot and runs
// the engine over it.
func (s *Service) CompileSeason(ctx context.Context, season *snapshot.Season) (compile.Result, error) {
	start := time.Now()

	in := season.EngineInput()
	in.Rules = s.effectiveRules(season.Rules)

	result, err := compile.Compile(ctx, in,
		compile.WithSurvivalCap(s.survivalCap),
		compile.WithLogger(s.log),
	)
	if err != nil {
		s.log.Error(ctx, "season compilation failed", logger.Error(err))
		return compile.Result{}, err
	}

	s.log.Info(ctx, "season compiled",
		logger.Int("tribes", len(result.Scores.Tribes)),
		logger.Int("castaways", len(result.Scores.Castaways)),
		logger.Int("members", len(result.Scores.Members)),
		logger.Float64("seconds", time.Since(start).Seconds()),
	)
	return result, nil
}

// effectiveRules layers the service's base point overrides onto a copy
// of the snapshot's rules, so repeated compilations never observe each
// other's mutations.
func (s *Service) effectiveRules(snapshotRules *rules.Rules) *rules.Rules {
	effective := rules.Default()
	if snapshotRules != nil {
		copied := *snapshotRules
		copied.Base = make(map[string]float64, len(snapshotRules.Base))
		for name, pts := range snapshotRules.Base {
			copied.Base[name] = pts
		}
		effective = &copied
	}
	if len(s.basePoints) > 0 {
		effective.OverrideBase(s.basePoints)
	}
	return effective
}

// MemberStandings ranks members by final cumulative total, descending,
// with ascending id as the deterministic tie-break.
func MemberStandings(board types.Scoreboard) []types.Standing {
	return standings(board.Members)
}

// CastawayStandings ranks castaways by final cumulative total.
func CastawayStandings(board types.Scoreboard) []types.Standing {
	return standings(board.Castaways)
}

// TribeStandings ranks tribes by final cumulative total.
func TribeStandings(board types.Scoreboard) []types.Standing {
	return standings(board.Tribes)
}

func standings[K ~int64](ledger map[K][]float64) []types.Standing {
	rows := make([]types.Standing, 0, len(ledger))
	for id, totals := range ledger {
		final := 0.0
		if len(totals) > 0 {
			final = totals[len(totals)-1]
		}
		rows = append(rows, types.Standing{ID: int64(id), Total: final})
	}
	slices.SortFunc(rows, func(a, b types.Standing) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
