// Package rules defines the scoring rules tables a league runs under and
// the lookup helpers the compilation processors use to resolve them.
package rules

import (
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// Rules is a league's full scoring configuration.
type Rules struct {
	// Base maps direct event names to their point values. Structural
	// names (roster declarations, notes) are present with value 0 so the
	// events still flow through compilation.
	Base map[string]float64 `json:"base"`

	// BasePredictions maps prediction event names to their rule.
	BasePredictions map[string]PredictionRule `json:"base_predictions"`

	// Shauhin configures the betting overlay.
	Shauhin ShauhinSettings `json:"shauhin"`

	// Custom holds owner-defined rules, both direct and prediction.
	Custom []CustomRule `json:"custom,omitempty"`

	// SecondaryPick configures the secondary pick overlay; nil disables it.
	SecondaryPick *SecondaryPickSettings `json:"secondary_pick,omitempty"`
}

// PredictionRule configures one base prediction event.
type PredictionRule struct {
	Enabled bool           `json:"enabled"`
	Points  float64        `json:"points"`
	Timing  []types.Timing `json:"timing,omitempty"`
}

// CustomRule is an owner-defined scoring rule.
type CustomRule struct {
	EventName      string                `json:"event_name"`
	Points         float64               `json:"points"`
	Kind           types.EventKind       `json:"kind"`
	ReferenceTypes []types.ReferenceType `json:"reference_types,omitempty"`
	Timing         []types.Timing        `json:"timing,omitempty"`
}

// ShauhinSettings configures the betting overlay. StartWeek selects the
// activation window; CustomStartWeek is consulted only when StartWeek is
// CustomTiming. MaxBetsPerWeek is enforced at submission time, outside
// the engine.
type ShauhinSettings struct {
	Enabled         bool         `json:"enabled"`
	MaxBet          float64      `json:"max_bet"`
	MaxBetsPerWeek  int          `json:"max_bets_per_week"`
	StartWeek       types.Timing `json:"start_week"`
	CustomStartWeek *int         `json:"custom_start_week,omitempty"`
	EnabledBets     []string     `json:"enabled_bets,omitempty"`
}

// SecondaryPickSettings configures the secondary pick overlay.
type SecondaryPickSettings struct {
	Enabled    bool    `json:"enabled"`
	Multiplier float64 `json:"multiplier"`
}

// Default returns the league-default rules: the base direct table with
// show-wide point values, the base prediction table, and Shauhin mode
// switched off.
func Default() *Rules {
	return &Rules{
		Base: map[string]float64{
			"advFound":     5,
			"advPlay":      10,
			"badAdvPlay":   -5,
			"spokeEpTitle": 2,
			"tribe1st":     2,
			"tribe2nd":     1,
			"indivWin":     10,
			"indivReward":  4,
			"finalists":    5,
			"fireWin":      5,
			"soleSurvivor": 25,
			// structural, zero-point
			"elim":        0,
			"noVoteExit":  0,
			"tribeUpdate": 0,
			"otherNotes":  0,
		},
		BasePredictions: map[string]PredictionRule{
			"firstBoot":    {Enabled: true, Points: 10, Timing: []types.Timing{types.DraftTiming}},
			"nextBoot":     {Enabled: true, Points: 3, Timing: []types.Timing{types.WeeklyTiming}},
			"indivWinner":  {Enabled: true, Points: 5, Timing: []types.Timing{types.WeeklyTiming}},
			"firstJuror":   {Enabled: true, Points: 5, Timing: []types.Timing{types.AfterPremiere}},
			"soleSurvivor": {Enabled: true, Points: 25, Timing: []types.Timing{types.DraftTiming, types.AfterMerge}},
		},
		Shauhin: ShauhinSettings{
			Enabled:        false,
			MaxBet:         100,
			MaxBetsPerWeek: 3,
			StartWeek:      types.AfterMerge,
			EnabledBets:    []string{"nextBoot", "indivWinner"},
		},
	}
}

// OverrideBase replaces base direct point values with league-configured
// ones. Unknown names are added so leagues can score events the defaults
// omit.
func (r *Rules) OverrideBase(points map[string]float64) {
	if r.Base == nil {
		r.Base = make(map[string]float64, len(points))
	}
	for name, pts := range points {
		r.Base[name] = pts
	}
}

// DirectPoints resolves the point value for a direct event name. Base
// rules win over custom ones; the second return is false when no rule
// matches and the event must be skipped.
func (r *Rules) DirectPoints(name string) (float64, bool) {
	if pts, ok := r.Base[name]; ok {
		return pts, true
	}
	for _, c := range r.Custom {
		if c.Kind == types.KindDirect && c.EventName == name {
			return c.Points, true
		}
	}
	return 0, false
}

// PredictionPoints resolves the rule for a prediction event name. The
// second return is false when no matching rule exists or the rule is
// disabled; either way the prediction must be skipped.
func (r *Rules) PredictionPoints(name string) (float64, bool) {
	if pr, ok := r.BasePredictions[name]; ok {
		if !pr.Enabled {
			return 0, false
		}
		return pr.Points, true
	}
	for _, c := range r.Custom {
		if c.Kind == types.KindPrediction && c.EventName == name {
			return c.Points, true
		}
	}
	return 0, false
}

// SecondaryEnabled reports whether the secondary pick overlay applies.
func (r *Rules) SecondaryEnabled() bool {
	return r.SecondaryPick != nil && r.SecondaryPick.Enabled
}

// BetAllowed reports whether the named event is open for betting.
func (s ShauhinSettings) BetAllowed(name string) bool {
	if !s.Enabled {
		return false
	}
	for _, b := range s.EnabledBets {
		if b == name {
			return true
		}
	}
	return false
}

// ClampBet bounds a wagered amount to [0, MaxBet].
func (s ShauhinSettings) ClampBet(bet float64) float64 {
	if bet < 0 {
		return 0
	}
	if bet > s.MaxBet {
		return s.MaxBet
	}
	return bet
}
