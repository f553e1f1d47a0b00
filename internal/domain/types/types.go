// Package types contains common types shared across the application.
package types

// Entity identifiers. Zero is never a valid id; the snapshot assembly
// layer allocates ids starting at 1.
type (
	// TribeID identifies a tribe within a season.
	TribeID int64
	// CastawayID identifies a contestant within a season.
	CastawayID int64
	// MemberID identifies a league member.
	MemberID int64
)

// EventSource discriminates league-default rules from owner-defined ones.
type EventSource string

// Event sources.
const (
	SourceBase   EventSource = "Base"
	SourceCustom EventSource = "Custom"
)

// EventKind discriminates immediately-scored events from forecasts.
type EventKind string

// Event kinds.
const (
	KindDirect     EventKind = "Direct"
	KindPrediction EventKind = "Prediction"
)

// ReferenceType names the entity kind an event reference points at.
type ReferenceType string

// Reference types.
const (
	RefCastaway ReferenceType = "Castaway"
	RefTribe    ReferenceType = "Tribe"
)

// Timing names a point in the season at which a prediction may be made
// or a betting window activates.
type Timing string

// Timings. DraftTiming and WeeklyTiming only annotate prediction rules;
// the remaining four double as Shauhin activation window starts.
const (
	DraftTiming   Timing = "Draft"
	WeeklyTiming  Timing = "Weekly"
	AfterPremiere Timing = "After Premiere"
	AfterMerge    Timing = "After Merge"
	BeforeFinale  Timing = "Before Finale"
	CustomTiming  Timing = "Custom"
)

// Valid reports whether s is a known event source.
func (s EventSource) Valid() bool {
	switch s {
	case SourceBase, SourceCustom:
		return true
	}
	return false
}

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case KindDirect, KindPrediction:
		return true
	}
	return false
}

// Valid reports whether r is a known reference type.
func (r ReferenceType) Valid() bool {
	switch r {
	case RefCastaway, RefTribe:
		return true
	}
	return false
}

// Valid reports whether t is a known timing.
func (t Timing) Valid() bool {
	switch t {
	case DraftTiming, WeeklyTiming, AfterPremiere, AfterMerge, BeforeFinale, CustomTiming:
		return true
	}
	return false
}

// Standing represents one row of a final standings report.
type Standing struct {
	Rank  int     `json:"rank"`
	ID    int64   `json:"id"`
	Total float64 `json:"total"`
}

// Scoreboard holds the cumulative point ledgers for the three entity
// kinds. Each slice is indexed by episode number; index 0 is the zero
// baseline before any episode airs. An entity that never participated
// in a scored pathway is absent from its map entirely.
type Scoreboard struct {
	Tribes    map[TribeID][]float64    `json:"tribes"`
	Castaways map[CastawayID][]float64 `json:"castaways"`
	Members   map[MemberID][]float64   `json:"members"`
}
