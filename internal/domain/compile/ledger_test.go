package compile

import (
	"testing"

	"github.com/tribeline/scorekeep/internal/domain/model"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestScoreLedger(t *testing.T) {
	convey.Convey("Given a fresh ledger", t, func() {
		ledger := newScoreLedger()

		convey.Convey("When an entity is first touched at a later episode", func() {
			ledger.addCastaway(3, 4, 5)

			convey.Convey("Then the array materializes from episode zero with forward fill", func() {
				convey.So(ledger.castaways[3], convey.ShouldResemble, []float64{0, 0, 0, 0, 5})
			})
		})

		convey.Convey("When touched again at a later episode", func() {
			ledger.addCastaway(3, 2, 5)
			ledger.addCastaway(3, 5, 2)

			convey.Convey("Then the gap forward-fills with the running total", func() {
				convey.So(ledger.castaways[3], convey.ShouldResemble, []float64{0, 0, 5, 5, 5, 7})
			})
		})

		convey.Convey("When a later pass writes to an earlier episode", func() {
			ledger.addMember(1, 5, 10)
			ledger.addMember(1, 2, 3)

			convey.Convey("Then the delta propagates through every later episode", func() {
				convey.So(ledger.members[1], convey.ShouldResemble, []float64{0, 0, 3, 3, 3, 13})
			})
		})

		convey.Convey("When deltas land on the same episode twice", func() {
			ledger.addTribe(7, 1, 2)
			ledger.addTribe(7, 1, 2)

			convey.Convey("Then they accumulate", func() {
				convey.So(ledger.tribes[7], convey.ShouldResemble, []float64{0, 4})
			})
		})

		convey.Convey("When nothing is ever written", func() {
			board := ledger.snapshot()

			convey.Convey("Then the snapshot maps are empty, not nil", func() {
				convey.So(board.Tribes, convey.ShouldBeEmpty)
				convey.So(board.Castaways, convey.ShouldBeEmpty)
				convey.So(board.Members, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestRosterResolver(t *testing.T) {
	convey.Convey("Given a sparse tribe timeline", t, func() {
		resolver := newRosterResolver(model.TribeTimeline{
			2: {7: {1, 2, 3}},
			6: {7: {1, 2}, 8: {3}},
		})

		convey.Convey("When resolving between keys", func() {
			convey.So(resolver.rosterAt(7, 4), convey.ShouldResemble, []types.CastawayID{1, 2, 3})
		})

		convey.Convey("When resolving exactly on a key", func() {
			convey.So(resolver.rosterAt(7, 6), convey.ShouldResemble, []types.CastawayID{1, 2})
		})

		convey.Convey("When resolving before the first key", func() {
			convey.So(resolver.rosterAt(7, 1), convey.ShouldBeEmpty)
		})

		convey.Convey("When the tribe is absent from the selected snapshot", func() {
			convey.So(resolver.rosterAt(8, 4), convey.ShouldBeEmpty)
		})

		convey.Convey("When the tribe is unknown entirely", func() {
			convey.So(resolver.rosterAt(99, 10), convey.ShouldBeEmpty)
		})
	})
}

func TestSelectionResolver(t *testing.T) {
	convey.Convey("Given pick histories", t, func() {
		member1 := types.MemberID(1)
		member2 := types.MemberID(2)
		castaway3 := types.CastawayID(3)
		resolver := selectionResolver{selections: model.SelectionTimeline{
			CastawayMembers: map[types.CastawayID][]*types.MemberID{
				3: {nil, &member1, nil},
			},
			MemberCastaways: map[types.MemberID][]*types.CastawayID{
				1: {nil, &castaway3},
			},
			SecondaryPicks: map[types.MemberID][]*types.CastawayID{
				2: {nil, &castaway3},
			},
		}}

		convey.Convey("When the holder exists at the episode", func() {
			holder, ok := resolver.holderAt(3, 1)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(holder, convey.ShouldEqual, member1)
		})

		convey.Convey("When the slot is nil", func() {
			_, ok := resolver.holderAt(3, 2)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When the episode is out of range", func() {
			_, ok := resolver.holderAt(3, 9)
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = resolver.pickAt(1, 9)
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("When secondary holders match", func() {
			convey.So(resolver.secondaryHoldersAt(3, 1), convey.ShouldResemble, []types.MemberID{member2})
		})

		convey.Convey("When no secondary pick matches", func() {
			convey.So(resolver.secondaryHoldersAt(5, 1), convey.ShouldBeEmpty)
		})
	})
}
