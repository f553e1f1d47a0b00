// Package seasongen builds deterministic synthetic season snapshots for
// load testing and demos: full tribe timelines, drafts, weekly events,
// eliminations, and prediction streams that exercise every scoring
// pathway the engine has.
package seasongen

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/tribeline/scorekeep/internal/adapters/snapshot"
	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
)

// Bet generation bounds. The upper bound deliberately exceeds the
// default max bet so generated seasons exercise clamping.
const (
	minBet = 10
	maxBet = 150
)

// generator holds the mutable state of one generation run.
type generator struct {
	cfg    *Config
	rng    *rand.Rand
	season *snapshot.Season

	alive     map[types.CastawayID]bool
	drafted   map[types.CastawayID]bool
	picks     map[types.MemberID]types.CastawayID // current main pick, 0 when none
	secondary map[types.MemberID]types.CastawayID
}

// Generate builds a full season snapshot from the config. The same seed
// always produces the same season.
func Generate(ctx context.Context, cfg *Config, log logger.Logger) (*snapshot.Season, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)), //nolint:gosec // deterministic seed for reproducible seasons
		season: &snapshot.Season{
			BaseEvents:      make(map[int]map[string]model.Event),
			Eliminations:    make(map[int][]model.Elimination),
			TribeTimeline:   make(model.TribeTimeline),
			BasePredictions: make(map[int]map[string][]model.Prediction),
		},
		alive:     make(map[types.CastawayID]bool),
		drafted:   make(map[types.CastawayID]bool),
		picks:     make(map[types.MemberID]types.CastawayID),
		secondary: make(map[types.MemberID]types.CastawayID),
	}

	g.setupSeason()
	for episode := 1; episode <= cfg.Episodes; episode++ {
		g.playEpisode(episode)
	}
	g.finishSeason()

	log.Info(ctx, "season generated",
		logger.Int("episodes", cfg.Episodes),
		logger.Int("castaways", cfg.Castaways),
		logger.Int("members", cfg.Members),
		logger.Int64("seed", cfg.Seed),
	)
	return g.season, nil
}

// setupSeason creates the starting tribes, the draft, and the season
// markers.
func (g *generator) setupSeason() {
	initial := make(map[types.TribeID][]types.CastawayID)
	for i := 1; i <= g.cfg.Castaways; i++ {
		castaway := types.CastawayID(i)
		g.alive[castaway] = true
		tribe := types.TribeID((i-1)%g.cfg.Tribes + 1)
		initial[tribe] = append(initial[tribe], castaway)
	}
	g.season.TribeTimeline[1] = initial

	// Draft: member m takes castaway m; secondary picks offset by the
	// member count so they never collide with a main pick at draft time.
	selections := model.SelectionTimeline{
		CastawayMembers: make(map[types.CastawayID][]*types.MemberID),
		MemberCastaways: make(map[types.MemberID][]*types.CastawayID),
	}
	if g.cfg.SecondaryPicks {
		selections.SecondaryPicks = make(map[types.MemberID][]*types.CastawayID)
	}
	for m := 1; m <= g.cfg.Members; m++ {
		member := types.MemberID(m)
		pick := types.CastawayID(m)
		g.picks[member] = pick
		g.drafted[pick] = true
		if g.cfg.SecondaryPicks {
			g.secondary[member] = types.CastawayID((m-1+g.cfg.Members)%g.cfg.Castaways + 1)
		}
	}
	g.season.Selections = selections

	g.season.KeyEpisodes = model.KeyEpisodes{
		MergeEpisode:    &model.EpisodeMarker{EpisodeNumber: g.cfg.MergeEpisode, IsMerge: true, AirStatus: "Aired"},
		PreviousEpisode: &model.EpisodeMarker{EpisodeNumber: g.cfg.Episodes, IsFinale: true, AirStatus: "Aired"},
	}

	leagueRules := rules.Default()
	leagueRules.Shauhin.Enabled = g.cfg.Shauhin
	if g.cfg.SecondaryPicks {
		leagueRules.SecondaryPick = &rules.SecondaryPickSettings{Enabled: true, Multiplier: 0.5}
	}
	g.season.Rules = leagueRules

	// Structural roster declaration so every tribe shows a baseline.
	refs := make([]model.Reference, 0, g.cfg.Tribes)
	for t := 1; t <= g.cfg.Tribes; t++ {
		refs = append(refs, model.Reference{Type: types.RefTribe, ID: int64(t)})
	}
	g.addEvent(1, "tribeUpdate", refs...)
}

// playEpisode generates one episode's events, predictions, pick history,
// and elimination.
func (g *generator) playEpisode(episode int) {
	merged := episode >= g.cfg.MergeEpisode

	if episode == g.cfg.MergeEpisode {
		g.mergeTribes()
	}

	g.recordSelections(episode)

	if merged {
		if winner, ok := g.randomAlive(0); ok {
			g.addEvent(episode, "indivWin", model.Reference{Type: types.RefCastaway, ID: int64(winner)})
		}
		if reward, ok := g.randomAlive(0); ok {
			g.addEvent(episode, "indivReward", model.Reference{Type: types.RefCastaway, ID: int64(reward)})
		}
	} else {
		first := types.TribeID(g.rng.Intn(g.cfg.Tribes) + 1)
		second := types.TribeID(g.rng.Intn(g.cfg.Tribes) + 1)
		for second == first {
			second = types.TribeID(g.rng.Intn(g.cfg.Tribes) + 1)
		}
		g.addEvent(episode, "tribe1st", model.Reference{Type: types.RefTribe, ID: int64(first)})
		g.addEvent(episode, "tribe2nd", model.Reference{Type: types.RefTribe, ID: int64(second)})
	}

	if g.rng.Intn(2) == 0 {
		if finder, ok := g.randomAlive(0); ok {
			g.addEvent(episode, "advFound", model.Reference{Type: types.RefCastaway, ID: int64(finder)})
		}
	}

	// Leave the finalists standing; the season wraps in finishSeason.
	remaining := len(g.aliveList())
	if episode == g.cfg.Episodes || remaining <= 3 {
		return
	}

	booted, _ := g.randomAlive(0)
	g.generatePredictions(episode, booted)

	eventID := g.addEvent(episode, "elim", model.Reference{Type: types.RefCastaway, ID: int64(booted)})
	g.season.Eliminations[episode] = append(g.season.Eliminations[episode], model.Elimination{
		CastawayID: booted,
		EventID:    eventID,
	})
	g.alive[booted] = false
	g.redraftAfter(booted)
}

// generatePredictions has every member call the next boot, with an
// occasional wager when the betting overlay is on.
func (g *generator) generatePredictions(episode int, booted types.CastawayID) {
	for m := 1; m <= g.cfg.Members; m++ {
		member := types.MemberID(m)
		guess, ok := g.randomAlive(g.picks[member])
		if !ok {
			continue
		}
		hit := guess == booted
		prediction := model.Prediction{
			MakerID:        member,
			EventName:      "nextBoot",
			ReferenceType:  types.RefCastaway,
			ReferenceID:    int64(guess),
			Hit:            &hit,
			ScoringEpisode: episode,
		}
		if g.cfg.Shauhin && g.rng.Intn(2) == 0 {
			bet := float64(minBet + g.rng.Intn(maxBet-minBet+1))
			prediction.Bet = &bet
		}
		byName := g.season.BasePredictions[episode]
		if byName == nil {
			byName = make(map[string][]model.Prediction)
			g.season.BasePredictions[episode] = byName
		}
		byName["nextBoot"] = append(byName["nextBoot"], prediction)
	}
}

// finishSeason awards the finalist and winner events at the last episode.
func (g *generator) finishSeason() {
	finalists := g.aliveList()
	refs := make([]model.Reference, 0, len(finalists))
	for _, castaway := range finalists {
		refs = append(refs, model.Reference{Type: types.RefCastaway, ID: int64(castaway)})
	}
	if len(refs) == 0 {
		return
	}
	g.addEvent(g.cfg.Episodes, "finalists", refs...)
	winner := finalists[g.rng.Intn(len(finalists))]
	g.addEvent(g.cfg.Episodes, "soleSurvivor", model.Reference{Type: types.RefCastaway, ID: int64(winner)})
}

// mergeTribes moves every remaining castaway onto a single new tribe at
// the merge episode.
func (g *generator) mergeTribes() {
	mergeTribe := types.TribeID(g.cfg.Tribes + 1)
	g.season.TribeTimeline[g.cfg.MergeEpisode] = map[types.TribeID][]types.CastawayID{
		mergeTribe: g.aliveList(),
	}
}

// recordSelections appends the current pick state to every history array
// for the episode.
func (g *generator) recordSelections(episode int) {
	s := &g.season.Selections
	for m := 1; m <= g.cfg.Members; m++ {
		member := types.MemberID(m)
		g.extendHistories(episode, member)
		if pick, ok := g.picks[member]; ok && pick != 0 {
			p := pick
			s.MemberCastaways[member][episode] = &p
			mm := member
			s.CastawayMembers[pick][episode] = &mm
		}
		if !g.cfg.SecondaryPicks {
			continue
		}
		if pick, ok := g.secondary[member]; ok && pick != 0 && g.alive[pick] {
			p := pick
			s.SecondaryPicks[member][episode] = &p
		}
	}
}

// extendHistories grows every history slice to cover the episode index.
func (g *generator) extendHistories(episode int, member types.MemberID) {
	s := &g.season.Selections
	for len(s.MemberCastaways[member]) <= episode {
		s.MemberCastaways[member] = append(s.MemberCastaways[member], nil)
	}
	if g.cfg.SecondaryPicks {
		for len(s.SecondaryPicks[member]) <= episode {
			s.SecondaryPicks[member] = append(s.SecondaryPicks[member], nil)
		}
	}
	for c := 1; c <= g.cfg.Castaways; c++ {
		castaway := types.CastawayID(c)
		for len(s.CastawayMembers[castaway]) <= episode {
			s.CastawayMembers[castaway] = append(s.CastawayMembers[castaway], nil)
		}
	}
}

// redraftAfter moves members off an eliminated pick onto the lowest-id
// surviving undrafted castaway, effective the next episode.
func (g *generator) redraftAfter(booted types.CastawayID) {
	for m := 1; m <= g.cfg.Members; m++ {
		member := types.MemberID(m)
		if g.picks[member] != booted {
			continue
		}
		g.picks[member] = 0
		for c := 1; c <= g.cfg.Castaways; c++ {
			castaway := types.CastawayID(c)
			if g.alive[castaway] && !g.drafted[castaway] {
				g.picks[member] = castaway
				g.drafted[castaway] = true
				break
			}
		}
	}
	for m := 1; m <= g.cfg.Members; m++ {
		member := types.MemberID(m)
		if g.secondary[member] == booted {
			g.secondary[member] = 0
		}
	}
}

// addEvent appends a base direct event and returns its id. Ids are
// UUIDs drawn from the seeded rng so the same seed reproduces them.
func (g *generator) addEvent(episode int, name string, refs ...model.Reference) string {
	u, _ := uuid.NewRandomFromReader(g.rng) // the seeded rng never errors
	id := u.String()
	byID := g.season.BaseEvents[episode]
	if byID == nil {
		byID = make(map[string]model.Event)
		g.season.BaseEvents[episode] = byID
	}
	byID[id] = model.Event{
		ID:            id,
		Name:          name,
		EpisodeNumber: episode,
		Source:        types.SourceBase,
		Kind:          types.KindDirect,
		References:    refs,
	}
	return id
}

// aliveList returns the surviving castaways in ascending id order.
func (g *generator) aliveList() []types.CastawayID {
	var list []types.CastawayID
	for c := 1; c <= g.cfg.Castaways; c++ {
		if g.alive[types.CastawayID(c)] {
			list = append(list, types.CastawayID(c))
		}
	}
	return list
}

// randomAlive picks a random surviving castaway, excluding one id (0
// excludes nobody).
func (g *generator) randomAlive(exclude types.CastawayID) (types.CastawayID, bool) {
	candidates := g.aliveList()
	if exclude != 0 {
		filtered := candidates[:0]
		for _, c := range candidates {
			if c != exclude {
				filtered = append(filtered, c)
			}
		}
		candidates = filtered
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[g.rng.Intn(len(candidates))], true
}
