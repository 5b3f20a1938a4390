package times_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/domain/times"
)

func TestParseClock(t *testing.T) {
	Convey("Given clock strings from a results page", t, func() {
		Convey("When parsing a minutes:seconds clock", func() {
			seconds, err := times.ParseClock("1:02.45")

			Convey("Then it should convert to seconds", func() {
				So(err, ShouldBeNil)
				So(seconds, ShouldAlmostEqual, 62.45, 0.001)
			})
		})

		Convey("When parsing a plain seconds clock", func() {
			seconds, err := times.ParseClock("58.30")

			Convey("Then it should parse directly", func() {
				So(err, ShouldBeNil)
				So(seconds, ShouldAlmostEqual, 58.30, 0.001)
			})
		})

		Convey("When parsing a clock with surrounding whitespace", func() {
			seconds, err := times.ParseClock("  24.99 ")

			Convey("Then whitespace should be ignored", func() {
				So(err, ShouldBeNil)
				So(seconds, ShouldAlmostEqual, 24.99, 0.001)
			})
		})

		Convey("When parsing no-time markers", func() {
			for _, marker := range []string{"", "NT", "ns", "DQ", "NaN"} {
				_, err := times.ParseClock(marker)

				Convey("Then "+marker+" should report ErrNoTime", func() {
					So(errors.Is(err, times.ErrNoTime), ShouldBeTrue)
				})
			}
		})

		Convey("When parsing malformed clocks", func() {
			for _, bad := range []string{"abc", "1:75.00", "-5.0", "1:-3.0", "0"} {
				_, err := times.ParseClock(bad)

				Convey("Then "+bad+" should report ErrBadClock", func() {
					So(errors.Is(err, times.ErrBadClock), ShouldBeTrue)
				})
			}
		})
	})
}

func TestFormatClock(t *testing.T) {
	Convey("Given seconds values", t, func() {
		Convey("When the time is over a minute", func() {
			So(times.FormatClock(62.45), ShouldEqual, "1:02.45")
		})

		Convey("When the time is under a minute", func() {
			So(times.FormatClock(58.3), ShouldEqual, "58.30")
		})

		Convey("When the value is not a real time", func() {
			So(times.FormatClock(0), ShouldEqual, "NT")
			So(times.FormatClock(-1), ShouldEqual, "NT")
		})

		Convey("When round-tripping through ParseClock", func() {
			seconds, err := times.ParseClock(times.FormatClock(125.33))
			So(err, ShouldBeNil)
			So(seconds, ShouldAlmostEqual, 125.33, 0.001)
		})
	})
}
