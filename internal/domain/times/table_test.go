package times_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
)

func TestCleanName(t *testing.T) {
	Convey("Given scraped athlete names", t, func() {
		Convey("When the name carries a team parenthetical", func() {
			So(times.CleanName("Jordan Reed (RIV)"), ShouldEqual, "Jordan Reed")
		})

		Convey("When whitespace is irregular", func() {
			So(times.CleanName("  Avery   Chen "), ShouldEqual, "Avery Chen")
		})

		Convey("When the parenthetical sits mid-name", func() {
			So(times.CleanName("Sage (capt.) Walsh"), ShouldEqual, "Sage Walsh")
		})
	})
}

func TestParseRows(t *testing.T) {
	Convey("Given raw roster rows", t, func() {
		rows := []model.RawRow{
			{Athlete: "Avery Chen (RIV)", Event: "50 free", Time: "24.10", Date: "2026-01-15"},
			{Athlete: "Avery Chen", Event: "50  free", Time: "23.98"},
			{Athlete: "Morgan Diaz", Event: "100 back", Time: "NT"},
			{Athlete: "Morgan Diaz", Event: "100 back", Time: "garbled"},
			{Athlete: "xx", Event: "50 free", Time: "25.00"},
			{Athlete: "Riley Kim", Event: "", Time: "30.00"},
		}

		Convey("When parsing", func() {
			records, warnings := times.ParseRows(rows)

			Convey("Then valid rows should become records with cleaned fields", func() {
				So(records, ShouldHaveLength, 2)
				So(records[0].Athlete, ShouldEqual, "Avery Chen")
				So(records[0].Event, ShouldEqual, "50 free")
				So(records[1].Event, ShouldEqual, "50 free")
				So(records[0].Recorded.IsZero(), ShouldBeFalse)
			})

			Convey("Then bad rows should warn but no-time rows should not", func() {
				// garbled clock, short name, empty event
				So(warnings, ShouldHaveLength, 3)
				for _, w := range warnings {
					So(w.Code, ShouldEqual, model.WarnBadRecord)
				}
			})
		})
	})
}

func TestTable(t *testing.T) {
	Convey("Given a table built from records", t, func() {
		records := []model.TimeRecord{
			{Athlete: "Avery Chen", Event: "50 free", Seconds: 24.10},
			{Athlete: "Morgan Diaz", Event: "50 free", Seconds: 23.50},
			{Athlete: "Avery Chen", Event: "50 free", Seconds: 23.90},
			{Athlete: "Riley Kim", Event: "50 free", Seconds: 23.50},
			{Athlete: "Avery Chen", Event: "100 fly", Seconds: 61.20},
		}
		table := times.NewTable(records)

		Convey("When listing candidates for an event", func() {
			candidates := table.Candidates("50 free")

			Convey("Then they should be sorted fastest first", func() {
				So(candidates, ShouldHaveLength, 3)
				So(candidates[0].Seconds, ShouldAlmostEqual, 23.50, 0.001)
				So(candidates[2].Athlete, ShouldEqual, "Avery Chen")
			})

			Convey("Then equal times should keep first-seen order", func() {
				So(candidates[0].Athlete, ShouldEqual, "Morgan Diaz")
				So(candidates[1].Athlete, ShouldEqual, "Riley Kim")
			})
		})

		Convey("When asking for a best time", func() {
			seconds, ok := table.Best("Avery Chen", "50 free")

			Convey("Then only the minimum should survive", func() {
				So(ok, ShouldBeTrue)
				So(seconds, ShouldAlmostEqual, 23.90, 0.001)
			})

			Convey("Then unknown athletes and events should miss", func() {
				_, ok := table.Best("Nobody", "50 free")
				So(ok, ShouldBeFalse)
				_, ok = table.Best("Avery Chen", "400 IM")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When inspecting coverage", func() {
			So(table.HasEvent("100 fly"), ShouldBeTrue)
			So(table.HasEvent("200 breast"), ShouldBeFalse)
			So(table.AthleteCount(), ShouldEqual, 3)
		})

		Convey("When mutating a returned candidate slice", func() {
			candidates := table.Candidates("50 free")
			candidates[0].Seconds = 1.0

			Convey("Then the table should be unaffected", func() {
				fresh := table.Candidates("50 free")
				So(fresh[0].Seconds, ShouldAlmostEqual, 23.50, 0.001)
			})
		})
	})
}
