package score_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/score"
)

func entry(event, athlete string, seconds float64) model.Assignment {
	return model.Assignment{Event: event, Athlete: athlete, Seconds: seconds}
}

func squad(relay, label string, legSeconds ...float64) model.RelaySquad {
	s := model.RelaySquad{Relay: relay, Squad: label}
	for i, sec := range legSeconds {
		s.Legs = append(s.Legs, model.RelayLeg{Index: i + 1, Athlete: label, Seconds: sec})
	}
	return s
}

func TestProjectIndividual(t *testing.T) {
	ctx := context.Background()

	Convey("Given one individual event with interleaved times", t, func() {
		home := model.TeamLineup{
			Team: "Home",
			Assignments: []model.Assignment{
				entry("50 free", "H1", 23.0),
				entry("50 free", "H2", 24.0),
			},
		}
		opponent := model.TeamLineup{
			Team: "Away",
			Assignments: []model.Assignment{
				entry("50 free", "A1", 23.5),
				entry("50 free", "A2", 24.5),
			},
		}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then places should count opposing entrants only", func() {
				// H1 places 1st (9), H2 2nd (4); A1 2nd (4), A2 3rd (3).
				So(board.Events, ShouldHaveLength, 1)
				So(board.Events[0].HomePoints, ShouldEqual, 13)
				So(board.Events[0].OpponentPoints, ShouldEqual, 7)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerHome)
			})

			Convey("Then totals and winner should aggregate", func() {
				So(board.HomePoints, ShouldEqual, 13)
				So(board.OpponentPoints, ShouldEqual, 7)
				So(board.Winner, ShouldEqual, score.WinnerHome)
			})
		})
	})

	Convey("Given an event only one team entered", t, func() {
		home := model.TeamLineup{
			Assignments: []model.Assignment{entry("100 fly", "H1", 60.0)},
		}
		opponent := model.TeamLineup{}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then the entered team should sweep it", func() {
				So(board.Events[0].HomePoints, ShouldEqual, 9)
				So(board.Events[0].OpponentPoints, ShouldEqual, 0)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerHome)
			})
		})
	})

	Convey("Given both entrants on the same time", t, func() {
		home := model.TeamLineup{Assignments: []model.Assignment{entry("50 free", "H1", 24.0)}}
		opponent := model.TeamLineup{Assignments: []model.Assignment{entry("50 free", "A1", 24.0)}}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then neither side beats the other, so both place second", func() {
				So(board.Events[0].HomePoints, ShouldEqual, 4)
				So(board.Events[0].OpponentPoints, ShouldEqual, 4)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerTie)
			})
		})
	})

	Convey("Given identical lineups", t, func() {
		assignments := []model.Assignment{entry("50 free", "X", 23.0)}
		home := model.TeamLineup{Assignments: assignments}
		opponent := model.TeamLineup{Assignments: assignments}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then the meet should tie", func() {
				So(board.HomePoints, ShouldEqual, board.OpponentPoints)
				So(board.Winner, ShouldEqual, score.WinnerTie)
			})
		})
	})
}

func TestProjectRelays(t *testing.T) {
	ctx := context.Background()

	Convey("Given relay squads on both sides", t, func() {
		home := model.TeamLineup{
			Relays: []model.RelaySquad{squad("200 Free Relay", "A", 23, 23, 23, 23)}, // 92s
		}
		opponent := model.TeamLineup{
			Relays: []model.RelaySquad{squad("200 Free Relay", "B", 24, 24, 24, 24)}, // 96s
		}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then the faster squad should take first place points", func() {
				So(board.Events, ShouldHaveLength, 1)
				So(board.Events[0].HomePoints, ShouldEqual, 11)
				So(board.Events[0].OpponentPoints, ShouldEqual, 4)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerHome)
			})
		})
	})

	Convey("Given both best squads on the same total time", t, func() {
		home := model.TeamLineup{
			Relays: []model.RelaySquad{squad("200 Free Relay", "A", 24, 24, 24, 24)},
		}
		opponent := model.TeamLineup{
			Relays: []model.RelaySquad{squad("200 Free Relay", "A", 24, 24, 24, 24)},
		}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then both squads place second", func() {
				So(board.Events[0].HomePoints, ShouldEqual, 4)
				So(board.Events[0].OpponentPoints, ShouldEqual, 4)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerTie)
			})
		})
	})

	Convey("Given a relay only home could field", t, func() {
		home := model.TeamLineup{
			Relays: []model.RelaySquad{squad("200 Medley Relay", "A", 28, 31, 27, 23)},
		}
		opponent := model.TeamLineup{}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)

			Convey("Then home should take the relay uncontested", func() {
				So(board.Events[0].HomePoints, ShouldEqual, 11)
				So(board.Events[0].OpponentPoints, ShouldEqual, 0)
				So(board.Events[0].Winner, ShouldEqual, score.WinnerHome)
			})
		})
	})
}

func TestPointTableOverride(t *testing.T) {
	ctx := context.Background()

	Convey("Given a custom point table", t, func() {
		projector := score.NewProjector(score.WithPointTable(score.PointTable{
			Individual: []int{6, 4, 3, 2, 1},
			Relay:      []int{8},
		}))

		home := model.TeamLineup{
			Assignments: []model.Assignment{entry("50 free", "H1", 23.0)},
			Relays:      []model.RelaySquad{squad("200 Free Relay", "A", 23, 23, 23, 23)},
		}
		opponent := model.TeamLineup{
			Assignments: []model.Assignment{entry("50 free", "A1", 24.0)},
		}

		Convey("When projecting", func() {
			board := score.NewProjector().Project(ctx, home, opponent)
			custom := projector.Project(ctx, home, opponent)

			Convey("Then the override should change the awarded points", func() {
				So(board.HomePoints, ShouldEqual, 9+11)
				So(custom.HomePoints, ShouldEqual, 6+8)
			})
		})
	})

	Convey("Given empty override slices", t, func() {
		projector := score.NewProjector(score.WithPointTable(score.PointTable{}))
		home := model.TeamLineup{Assignments: []model.Assignment{entry("50 free", "H1", 23.0)}}

		Convey("When projecting", func() {
			board := projector.Project(ctx, home, model.TeamLineup{})

			Convey("Then the defaults should survive", func() {
				So(board.HomePoints, ShouldEqual, 9)
			})
		})
	})
}
