package compile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tribeline/scorekeep/internal/domain/compile"
	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/rules"
	"github.com/tribeline/scorekeep/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// emptyInput returns the minimal valid input: every required collection
// present but empty.
func emptyInput() compile.Input {
	return compile.Input{
		BaseEvents:    map[int]map[string]model.Event{},
		Eliminations:  map[int][]model.Elimination{},
		TribeTimeline: model.TribeTimeline{},
	}
}

func directEvent(episode int, id, name string, refs ...model.Reference) model.Event {
	return model.Event{
		ID:            id,
		Name:          name,
		EpisodeNumber: episode,
		Source:        types.SourceBase,
		Kind:          types.KindDirect,
		References:    refs,
	}
}

func castawayRef(id int64) model.Reference {
	return model.Reference{Type: types.RefCastaway, ID: id}
}

func tribeRef(id int64) model.Reference {
	return model.Reference{Type: types.RefTribe, ID: id}
}

func addEvent(in compile.Input, ev model.Event) {
	byID := in.BaseEvents[ev.EpisodeNumber]
	if byID == nil {
		byID = make(map[string]model.Event)
		in.BaseEvents[ev.EpisodeNumber] = byID
	}
	byID[ev.ID] = ev
}

func memberPtr(id types.MemberID) *types.MemberID       { return &id }
func castawayPtr(id types.CastawayID) *types.CastawayID { return &id }
func boolPtr(v bool) *bool                              { return &v }
func floatPtr(v float64) *float64                       { return &v }

// holderHistory builds a castaway->member history where the member holds
// the castaway at every episode from 1 through lastEpisode.
func holderHistory(member types.MemberID, lastEpisode int) []*types.MemberID {
	history := make([]*types.MemberID, lastEpisode+1)
	for ep := 1; ep <= lastEpisode; ep++ {
		history[ep] = memberPtr(member)
	}
	return history
}

// pickHistory builds a member->castaway history where the member holds
// the castaway at every episode from 1 through lastEpisode.
func pickHistory(castaway types.CastawayID, lastEpisode int) []*types.CastawayID {
	history := make([]*types.CastawayID, lastEpisode+1)
	for ep := 1; ep <= lastEpisode; ep++ {
		history[ep] = castawayPtr(castaway)
	}
	return history
}

func TestCompileDirectEvents(t *testing.T) {
	ctx := context.Background()

	Convey("Given a season with base direct events", t, func() {
		Convey("When a default-rule event scores a castaway", func() {
			in := emptyInput()
			addEvent(in, directEvent(1, "ev-structural", "tribeUpdate", castawayRef(3), castawayRef(4)))
			addEvent(in, directEvent(15, "ev-adv", "advFound", castawayRef(3)))

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the castaway's cumulative total reflects the default points", func() {
				So(result.Scores.Castaways[3][15], ShouldEqual, 5)
			})

			Convey("And structural events pre-seed referenced castaways to zero", func() {
				So(result.Scores.Castaways[4][1], ShouldEqual, 0)
				So(result.Scores.Castaways[3][1], ShouldEqual, 0)
			})

			Convey("And the array is contiguous from episode zero onward", func() {
				So(len(result.Scores.Castaways[3]), ShouldEqual, 16)
				for ep := 0; ep < 15; ep++ {
					So(result.Scores.Castaways[3][ep], ShouldEqual, 0)
				}
			})

			Convey("And entities that never scored are absent, not zero-valued", func() {
				So(result.Scores.Castaways, ShouldNotContainKey, types.CastawayID(99))
				So(result.Scores.Members, ShouldBeEmpty)
				So(result.Scores.Tribes, ShouldBeEmpty)
			})
		})

		Convey("When an event has no matching rule", func() {
			in := emptyInput()
			addEvent(in, directEvent(2, "ev-unknown", "noSuchEvent", castawayRef(1)))

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then it is skipped entirely with no ledger writes", func() {
				So(result.Scores.Castaways, ShouldBeEmpty)
			})
		})

		Convey("When rule values are negative", func() {
			in := emptyInput()
			addEvent(in, directEvent(2, "ev-bad", "badAdvPlay", castawayRef(1)))
			addEvent(in, directEvent(4, "ev-good", "advFound", castawayRef(1)))

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then negative deltas compound with later positive ones", func() {
				So(result.Scores.Castaways[1][2], ShouldEqual, -5)
				So(result.Scores.Castaways[1][3], ShouldEqual, -5)
				So(result.Scores.Castaways[1][4], ShouldEqual, 0)
			})
		})
	})
}

func TestCompileTribePropagation(t *testing.T) {
	ctx := context.Background()

	Convey("Given a tribe event and a roster timeline", t, func() {
		in := emptyInput()
		in.TribeTimeline = model.TribeTimeline{
			1: {7: {1, 2, 3}},
			5: {7: {1, 2, 3, 4}},
		}
		in.Rules = &rules.Rules{Base: map[string]float64{
			"tribe1st": 2,
			"oneOff":   1,
		}}
		addEvent(in, directEvent(1, "ev-early", "oneOff", castawayRef(1)))
		addEvent(in, directEvent(4, "ev-tribe", "tribe1st", tribeRef(7)))

		result, err := compile.Compile(ctx, in)
		So(err, ShouldBeNil)

		Convey("Then the tribe and every rostered castaway get the full points", func() {
			So(result.Scores.Tribes[7][4], ShouldEqual, 2)
			So(result.Scores.Castaways[1][4], ShouldEqual, 3) // 1 earned earlier + 2
			So(result.Scores.Castaways[2][4], ShouldEqual, 2)
			So(result.Scores.Castaways[3][4], ShouldEqual, 2)
		})

		Convey("And castaways who joined the tribe only later are untouched", func() {
			So(result.Scores.Castaways, ShouldNotContainKey, types.CastawayID(4))
		})

		Convey("And a dangling tribe reference still scores the tribe itself", func() {
			dangling := emptyInput()
			dangling.Rules = in.Rules
			addEvent(dangling, directEvent(2, "ev-ghost", "tribe1st", tribeRef(42)))

			ghost, err := compile.Compile(ctx, dangling)
			So(err, ShouldBeNil)
			So(ghost.Scores.Tribes[42][2], ShouldEqual, 2)
			So(ghost.Scores.Castaways, ShouldBeEmpty)
		})
	})
}

func TestCompileMemberPropagation(t *testing.T) {
	ctx := context.Background()

	Convey("Given pick histories and a scoring event", t, func() {
		in := emptyInput()
		in.Selections = model.SelectionTimeline{
			CastawayMembers: map[types.CastawayID][]*types.MemberID{
				3: holderHistory(1, 6),
			},
			MemberCastaways: map[types.MemberID][]*types.CastawayID{},
		}
		addEvent(in, directEvent(4, "ev-adv", "advFound", castawayRef(3)))

		Convey("When compiled without the secondary overlay", func() {
			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the holder is credited alongside the castaway", func() {
				So(result.Scores.Castaways[3][4], ShouldEqual, 5)
				So(result.Scores.Members[1][4], ShouldEqual, 5)
			})
		})

		Convey("When the secondary overlay credits the same castaway", func() {
			in.Selections.SecondaryPicks = map[types.MemberID][]*types.CastawayID{
				2: pickHistory(3, 6),
			}
			in.Rules = rules.Default()
			in.Rules.SecondaryPick = &rules.SecondaryPickSettings{Enabled: true, Multiplier: 1}

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then main and secondary crediting are independent and additive", func() {
				So(result.Scores.Members[1][4], ShouldEqual, 5)
				So(result.Scores.Members[2][4], ShouldEqual, 5)
				So(result.Scores.Castaways[3][4], ShouldEqual, 5)
			})
		})

		Convey("When the secondary multiplier is fractional", func() {
			in.Selections.SecondaryPicks = map[types.MemberID][]*types.CastawayID{
				2: pickHistory(3, 6),
			}
			in.Rules = rules.Default()
			in.Rules.SecondaryPick = &rules.SecondaryPickSettings{Enabled: true, Multiplier: 0.5}

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the secondary credit scales without rounding", func() {
				So(result.Scores.Members[2][4], ShouldEqual, 2.5)
			})
		})
	})
}

func TestCompileCustomRules(t *testing.T) {
	ctx := context.Background()

	Convey("Given league-configured rules", t, func() {
		Convey("When the league overrides a base value", func() {
			in := emptyInput()
			in.Rules = rules.Default()
			in.Rules.OverrideBase(map[string]float64{"advFound": 12})
			addEvent(in, directEvent(4, "ev-adv", "advFound", castawayRef(3)))

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the override replaces the default points", func() {
				So(result.Scores.Castaways[3][4], ShouldEqual, 12)
			})
		})

		Convey("When a custom direct rule names an event the base table lacks", func() {
			in := emptyInput()
			in.Rules = rules.Default()
			in.Rules.Custom = []rules.CustomRule{{
				EventName: "blindsideOrchestrated",
				Points:    7,
				Kind:      types.KindDirect,
			}}
			in.Custom = model.CustomEvents{
				Events: map[int]map[string]model.Event{
					3: {"cev-1": {
						ID: "cev-1", Name: "blindsideOrchestrated", EpisodeNumber: 3,
						Source: types.SourceCustom, Kind: types.KindDirect,
						References: []model.Reference{castawayRef(5)},
					}},
				},
			}

			result, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the custom event scores through the same pipeline", func() {
				So(result.Scores.Castaways[5][3], ShouldEqual, 7)
			})
		})
	})
}

func TestCompileContract(t *testing.T) {
	ctx := context.Background()

	Convey("Given structurally invalid inputs", t, func() {
		Convey("When base events are nil", func() {
			in := emptyInput()
			in.BaseEvents = nil
			_, err := compile.Compile(ctx, in)
			So(errors.Is(err, compile.ErrNilBaseEvents), ShouldBeTrue)
		})

		Convey("When eliminations are nil", func() {
			in := emptyInput()
			in.Eliminations = nil
			_, err := compile.Compile(ctx, in)
			So(errors.Is(err, compile.ErrNilEliminations), ShouldBeTrue)
		})

		Convey("When the tribe timeline is nil", func() {
			in := emptyInput()
			in.TribeTimeline = nil
			_, err := compile.Compile(ctx, in)
			So(errors.Is(err, compile.ErrNilTribeTimeline), ShouldBeTrue)
		})
	})

	Convey("Given identical inputs", t, func() {
		in := emptyInput()
		in.TribeTimeline = model.TribeTimeline{1: {7: {1, 2, 3}}}
		addEvent(in, directEvent(1, "ev-a", "advFound", castawayRef(1)))
		addEvent(in, directEvent(2, "ev-b", "tribe1st", tribeRef(7)))
		addEvent(in, directEvent(2, "ev-c", "badAdvPlay", castawayRef(2)))

		Convey("When compiled repeatedly", func() {
			first, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)
			second, err := compile.Compile(ctx, in)
			So(err, ShouldBeNil)

			Convey("Then the outputs are identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}
