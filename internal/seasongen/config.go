package seasongen

import (
	"fmt"
)

// Default generation parameters, sized like a typical season.
const (
	defaultCastaways    = 18
	defaultTribes       = 3
	defaultMembers      = 10
	defaultEpisodes     = 13
	defaultMergeEpisode = 7
	defaultSeed         = 42
)

// Config controls the shape of a generated season.
type Config struct {
	Castaways    int   // contestants in the season
	Tribes       int   // starting tribes
	Members      int   // league members drafting picks
	Episodes     int   // aired episodes
	MergeEpisode int   // episode at which tribes merge
	Seed         int64 // rng seed; same seed, same season

	Shauhin        bool // enable the betting overlay with bets in the data
	SecondaryPicks bool // enable the secondary pick overlay
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Castaways:    defaultCastaways,
		Tribes:       defaultTribes,
		Members:      defaultMembers,
		Episodes:     defaultEpisodes,
		MergeEpisode: defaultMergeEpisode,
		Seed:         defaultSeed,
	}
}

// Validate rejects shapes that cannot form a playable season.
func (c *Config) Validate() error {
	if c.Tribes < 2 {
		return fmt.Errorf("%w: a season needs at least two starting tribes", ErrInvalidShape)
	}
	if c.Castaways < c.Tribes {
		return fmt.Errorf("%w: need at least one castaway per tribe", ErrInvalidShape)
	}
	if c.Members < 1 || c.Members > c.Castaways {
		return fmt.Errorf("%w: members must be between 1 and the castaway count", ErrInvalidShape)
	}
	if c.Episodes < 2 {
		return fmt.Errorf("%w: a season needs at least two episodes", ErrInvalidShape)
	}
	if c.MergeEpisode < 2 || c.MergeEpisode >= c.Episodes {
		return fmt.Errorf("%w: merge episode must fall inside the season", ErrInvalidShape)
	}
	return nil
}
