// Package model contains the immutable input records passed between layers.
package model

import (
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// Event represents a single scored occurrence within an episode. Events
// are read-only snapshots assembled by the caller; the engine never
// mutates them.
type Event struct {
	ID            string            `json:"id"` // unique id for ordering and idempotency
	Name          string            `json:"name"`
	EpisodeNumber int               `json:"episode_number"`
	Source        types.EventSource `json:"source"`
	Kind          types.EventKind   `json:"kind"`
	References    []Reference       `json:"references"`
	Notes         []string          `json:"notes,omitempty"`
}

// Reference points an event at the entity it scores. An event may carry
// several references; each is applied independently.
type Reference struct {
	Type types.ReferenceType `json:"type"`
	ID   int64               `json:"id"`
}

// TribeID returns the reference id as a tribe id. Only meaningful when
// Type is RefTribe.
func (r Reference) TribeID() types.TribeID { return types.TribeID(r.ID) }

// CastawayID returns the reference id as a castaway id. Only meaningful
// when Type is RefCastaway.
func (r Reference) CastawayID() types.CastawayID { return types.CastawayID(r.ID) }

// Elimination records a castaway leaving the game, keyed to the event
// that removed them.
type Elimination struct {
	CastawayID types.CastawayID `json:"castaway_id"`
	EventID    string           `json:"event_id"`
}
