package engine_test

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/engine"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
	"github.com/poolside/lineup/internal/domain/usage"
)

func individual(name string, slots int) catalog.EventDefinition {
	return catalog.EventDefinition{Name: name, Kind: catalog.KindIndividual, SlotCount: slots}
}

func tableOf(records ...model.TimeRecord) *times.Table {
	return times.NewTable(records)
}

func rec(athlete, event string, seconds float64) model.TimeRecord {
	return model.TimeRecord{Athlete: athlete, Event: event, Seconds: seconds}
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	Convey("Given a roster with depth in one event", t, func() {
		table := tableOf(
			rec("Avery", "50 free", 23.1),
			rec("Blake", "50 free", 23.9),
			rec("Casey", "50 free", 24.2),
			rec("Drew", "50 free", 24.8),
			rec("Emerson", "50 free", 25.0),
		)
		defs := []catalog.EventDefinition{individual("50 free", 4)}

		Convey("When assigning", func() {
			tracker := usage.NewTracker()
			assignments, warnings, err := engine.New(table, tracker).Assign(ctx, defs)

			Convey("Then the four fastest should fill the slots in rank order", func() {
				So(err, ShouldBeNil)
				So(warnings, ShouldBeEmpty)
				So(assignments, ShouldHaveLength, 4)
				So(assignments[0].Athlete, ShouldEqual, "Avery")
				So(assignments[0].Rank, ShouldEqual, 1)
				So(assignments[3].Athlete, ShouldEqual, "Drew")
				So(assignments[3].Rank, ShouldEqual, 4)
			})

			Convey("Then the fifth athlete should stay unassigned", func() {
				So(tracker.Count("Emerson"), ShouldEqual, 0)
			})
		})

		Convey("When the same inputs run twice", func() {
			first, _, err1 := engine.New(table, usage.NewTracker()).Assign(ctx, defs)
			second, _, err2 := engine.New(table, usage.NewTracker()).Assign(ctx, defs)

			Convey("Then the lineups should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given one dominant athlete across many events", t, func() {
		var records []model.TimeRecord
		events := []string{"50 free", "100 free", "200 free", "100 fly", "100 back"}
		for _, event := range events {
			records = append(records, rec("Avery", event, 50.0))
			records = append(records, rec("Blake", event, 55.0))
		}
		table := tableOf(records...)

		var defs []catalog.EventDefinition
		for _, event := range events {
			defs = append(defs, individual(event, 2))
		}

		Convey("When assigning with a cap of three", func() {
			tracker := usage.NewTracker()
			assignments, warnings, err := engine.New(table, tracker,
				engine.WithMaxEvents(3),
			).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then both athletes should stop at the cap", func() {
				So(assignments, ShouldHaveLength, 6)
				So(tracker.Count("Avery"), ShouldEqual, 3)
				So(tracker.Count("Blake"), ShouldEqual, 3)
			})

			Convey("Then the charges should land on the earliest events", func() {
				for _, a := range assignments {
					So(a.Event, ShouldBeIn, "50 free", "100 free", "200 free")
				}
			})

			Convey("Then the later events should warn data gaps", func() {
				So(warningFor(warnings, "100 fly").Code, ShouldEqual, model.WarnDataGap)
				So(warningFor(warnings, "100 back").Code, ShouldEqual, model.WarnDataGap)
			})
		})
	})

	Convey("Given events with thin or missing data", t, func() {
		table := tableOf(
			rec("Avery", "50 free", 23.1),
			rec("Blake", "50 free", 23.9),
		)
		defs := []catalog.EventDefinition{
			individual("50 free", 4),
			individual("200 breast", 4),
		}

		Convey("When assigning", func() {
			assignments, warnings, err := engine.New(table, usage.NewTracker()).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then the thin event should fill partially with a warning", func() {
				So(assignments, ShouldHaveLength, 2)
				So(warningFor(warnings, "50 free").Code, ShouldEqual, model.WarnPartialFill)
			})

			Convey("Then the empty event should warn a data gap", func() {
				So(warningFor(warnings, "200 breast").Code, ShouldEqual, model.WarnDataGap)
			})
		})
	})

	Convey("Given a tie on time", t, func() {
		table := tableOf(
			rec("Morgan", "50 free", 24.0),
			rec("Riley", "50 free", 24.0),
		)
		defs := []catalog.EventDefinition{individual("50 free", 1)}

		Convey("When only one slot exists", func() {
			assignments, _, err := engine.New(table, usage.NewTracker()).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then the first-seen athlete should win the tie", func() {
				So(assignments, ShouldHaveLength, 1)
				So(assignments[0].Athlete, ShouldEqual, "Morgan")
			})
		})
	})

	Convey("Given relay definitions mixed into the program", t, func() {
		table := tableOf(rec("Avery", "50 free", 23.1))
		defs := []catalog.EventDefinition{
			{Name: catalog.Free200, Kind: catalog.KindRelay, Squads: 1},
			individual("50 free", 4),
		}

		Convey("When assigning", func() {
			assignments, _, err := engine.New(table, usage.NewTracker()).Assign(ctx, defs)

			Convey("Then relays should be skipped", func() {
				So(err, ShouldBeNil)
				So(assignments, ShouldHaveLength, 1)
				So(assignments[0].Event, ShouldEqual, "50 free")
			})
		})
	})
}

func TestAssignStrategies(t *testing.T) {
	ctx := context.Background()

	Convey("Given a tracker with uneven prior usage", t, func() {
		table := tableOf(
			rec("Avery", "100 fly", 60.0),
			rec("Blake", "100 fly", 61.0),
		)
		defs := []catalog.EventDefinition{individual("100 fly", 1)}

		tracker := usage.NewTracker()
		So(tracker.Charge("Avery", 4), ShouldBeNil)
		So(tracker.Charge("Avery", 4), ShouldBeNil)

		Convey("When assigning with the depth strategy", func() {
			assignments, _, err := engine.New(table, tracker,
				engine.WithStrategy(catalog.StrategyDepth),
			).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then the less-used athlete should be preferred", func() {
				So(assignments[0].Athlete, ShouldEqual, "Blake")
			})
		})

		Convey("When assigning with the speed strategy", func() {
			assignments, _, err := engine.New(table, tracker,
				engine.WithStrategy(catalog.StrategySpeed),
			).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then pure time order should hold", func() {
				So(assignments[0].Athlete, ShouldEqual, "Avery")
			})
		})
	})
}

func TestAssignExpectedPlace(t *testing.T) {
	ctx := context.Background()

	Convey("Given an opponent table", t, func() {
		table := tableOf(
			rec("Avery", "50 free", 23.5),
			rec("Blake", "50 free", 24.5),
		)
		opponent := tableOf(
			rec("Rival One", "50 free", 23.0),
			rec("Rival Two", "50 free", 24.0),
			rec("Rival Three", "50 free", 26.0),
		)
		defs := []catalog.EventDefinition{individual("50 free", 4)}

		Convey("When assigning in dual mode", func() {
			assignments, _, err := engine.New(table, usage.NewTracker(),
				engine.WithOpponent(opponent),
			).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then each assignment should project a place", func() {
				So(assignments[0].ExpectedPlace, ShouldEqual, 2) // one faster rival
				So(assignments[1].ExpectedPlace, ShouldEqual, 3) // two faster rivals
			})
		})

		Convey("When assigning without an opponent", func() {
			assignments, _, err := engine.New(table, usage.NewTracker()).Assign(ctx, defs)
			So(err, ShouldBeNil)

			Convey("Then expected places should be zero", func() {
				for _, a := range assignments {
					So(a.ExpectedPlace, ShouldEqual, 0)
				}
			})
		})
	})
}

func warningFor(warnings []model.Warning, subject string) model.Warning {
	for _, w := range warnings {
		if w.Subject == subject {
			return w
		}
	}
	return model.Warning{Code: fmt.Sprintf("no warning for %s", subject)}
}
