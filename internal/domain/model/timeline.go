package model

import (
	"github.com/tribeline/scorekeep/internal/domain/types"
)

// TribeTimeline records tribe composition across the season. Keys are
// sparse: an episode appears only when some tribe's roster changed, and
// the roster in force at any episode is the one at the latest key at or
// before it.
type TribeTimeline map[int]map[types.TribeID][]types.CastawayID

// SelectionTimeline holds the per-episode pick histories. Every slice is
// indexed by episode number; a nil element means no holder/pick at that
// episode. Index 0 covers the pre-season baseline and is normally nil.
type SelectionTimeline struct {
	// CastawayMembers answers who holds a castaway at an episode.
	CastawayMembers map[types.CastawayID][]*types.MemberID `json:"castaway_members"`
	// MemberCastaways answers which castaway a member holds at an episode.
	MemberCastaways map[types.MemberID][]*types.CastawayID `json:"member_castaways"`
	// SecondaryPicks is present only for leagues with the secondary pick
	// feature enabled.
	SecondaryPicks map[types.MemberID][]*types.CastawayID `json:"secondary_picks,omitempty"`
}

// EpisodeMarker describes one episode's place in the season arc.
type EpisodeMarker struct {
	EpisodeNumber int    `json:"episode_number"`
	IsMerge       bool   `json:"is_merge"`
	IsFinale      bool   `json:"is_finale"`
	AirStatus     string `json:"air_status,omitempty"`
}

// KeyEpisodes carries the season markers the engine needs to evaluate
// time-gated behavior. Any marker may be nil when not yet known; a
// missing marker closes the windows that depend on it.
type KeyEpisodes struct {
	NextEpisode     *EpisodeMarker `json:"next_episode,omitempty"`
	MergeEpisode    *EpisodeMarker `json:"merge_episode,omitempty"`
	PreviousEpisode *EpisodeMarker `json:"previous_episode,omitempty"`
}

// FinaleEpisode returns the episode number of the flagged finale, or 0
// when no marker identifies it.
func (k KeyEpisodes) FinaleEpisode() int {
	if k.NextEpisode != nil && k.NextEpisode.IsFinale {
		return k.NextEpisode.EpisodeNumber
	}
	if k.PreviousEpisode != nil && k.PreviousEpisode.IsFinale {
		return k.PreviousEpisode.EpisodeNumber
	}
	return 0
}
