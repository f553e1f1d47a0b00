package model

import (
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// Prediction is a member's forecast, resolved hit or miss against a later
// direct outcome. ScoringEpisode is the episode under which the outcome
// was posted and credited; it is independent of when the prediction was
// made or which episode it concerns.
type Prediction struct {
	MakerID        types.MemberID      `json:"maker_id"`
	EventName      string              `json:"event_name"`
	ReferenceType  types.ReferenceType `json:"reference_type"`
	ReferenceID    int64               `json:"reference_id"`
	Hit            *bool               `json:"hit"` // nil until the outcome is known
	Bet            *float64            `json:"bet,omitempty"`
	ScoringEpisode int                 `json:"scoring_episode"`
}

// Resolved reports whether the prediction outcome has been posted.
func (p Prediction) Resolved() bool { return p.Hit != nil }

// CustomEvents bundles the owner-defined events and predictions of a
// league, keyed the same way as their base counterparts.
type CustomEvents struct {
	Events      map[int]map[string]Event `json:"events"`
	Predictions map[int][]Prediction     `json:"predictions"`
}
