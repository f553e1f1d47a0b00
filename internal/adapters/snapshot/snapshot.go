// Package snapshot reads and writes season snapshot files: the read-only
// bundle of raw inputs the compilation engine consumes. The snapshot is
// assembled once per invocation by whatever owns persistence; this codec
// only moves it between disk and memory.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tribeline/scorekeep/internal/domain/compile"
	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/pkg/metrics"
)

// File permission for saved snapshots.
const snapshotFilePermission = 0600

// Season aggregates every input the engine reads, in one file-friendly
// record.
type Season struct {
	BaseEvents      map[int]map[string]model.Event        `json:"base_events"`
	Eliminations    map[int][]model.Elimination           `json:"eliminations"`
	TribeTimeline   model.TribeTimeline                   `json:"tribe_timeline"`
	KeyEpisodes     model.KeyEpisodes                     `json:"key_episodes"`
	Selections      model.SelectionTimeline               `json:"selections"`
	Custom          model.CustomEvents                    `json:"custom"`
	BasePredictions map[int]map[string][]model.Prediction `json:"base_predictions"`
	Rules           *rules.Rules                          `json:"rules,omitempty"`
}

// Load reads and decodes a season snapshot from path.
func Load(ctx context.Context, path string) (*Season, error) {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSnapshot, err)
	}
	var season Season
	if err := json.Unmarshal(raw, &season); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSnapshot, err)
	}
	season.normalize()
	metrics.RecordSnapshotLoad(time.Since(start))
	return &season, nil
}

// Save encodes and writes a season snapshot to path.
func Save(ctx context.Context, path string, season *Season) error {
	start := time.Now()
	raw, err := json.MarshalIndent(season, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeSnapshot, err)
	}
	if err := os.WriteFile(path, raw, snapshotFilePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteSnapshot, err)
	}
	metrics.RecordSnapshotSave(time.Since(start))
	return nil
}

// normalize replaces absent required collections with empty ones. A file
// that omits them means "nothing happened yet", which is a valid season,
// unlike a caller passing nil maps straight to the engine.
func (s *Season) normalize() {
	if s.BaseEvents == nil {
		s.BaseEvents = make(map[int]map[string]model.Event)
	}
	if s.Eliminations == nil {
		s.Eliminations = make(map[int][]model.Elimination)
	}
	if s.TribeTimeline == nil {
		s.TribeTimeline = make(model.TribeTimeline)
	}
}

// EngineInput converts the snapshot into the engine's input record.
func (s *Season) EngineInput() compile.Input {
	return compile.Input{
		BaseEvents:      s.BaseEvents,
		Eliminations:    s.Eliminations,
		TribeTimeline:   s.TribeTimeline,
		KeyEpisodes:     s.KeyEpisodes,
		Selections:      s.Selections,
		Custom:          s.Custom,
		BasePredictions: s.BasePredictions,
		Rules:           s.Rules,
	}
}
