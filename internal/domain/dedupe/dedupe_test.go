package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/domain/dedupe"
)

func TestMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new deduper", t, func() {
		d := dedupe.NewMemoryDeduper()

		Convey("When recording a fresh run id", func() {
			seen := d.SeenAndRecord(ctx, "run-1")

			Convey("Then it should be recorded as new", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And a repeat should be flagged", func() {
				So(d.SeenAndRecord(ctx, "run-1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording a run id", func() {
			d.SeenAndRecord(ctx, "run-1")
			d.Unrecord(ctx, "run-1")

			Convey("Then the id should be fresh again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "run-1"), ShouldBeFalse)
			})
		})

		Convey("When checking an id read-only", func() {
			So(d.Seen(ctx, "run-1"), ShouldBeFalse)

			Convey("Then the lookup should leave no record behind", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "run-1"), ShouldBeFalse)
			})

			Convey("And a recorded id should be reported seen", func() {
				d.SeenAndRecord(ctx, "run-2")
				So(d.Seen(ctx, "run-2"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an unknown id", func() {
			d.Unrecord(ctx, "never-seen")

			Convey("Then nothing should change", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a deduper with a small window", t, func() {
		d := dedupe.NewMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When the window overflows", func() {
			for i := 0; i < 4; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("run-%d", i))
			}

			Convey("Then the oldest id should be forgotten", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "run-0"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "run-3"), ShouldBeTrue)
			})
		})
	})

	Convey("Given concurrent submitters", t, func() {
		d := dedupe.NewMemoryDeduper()

		Convey("When many goroutines race on the same id", func() {
			const goroutines = 32
			var wg sync.WaitGroup
			fresh := make(chan bool, goroutines)

			for i := 0; i < goroutines; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					fresh <- !d.SeenAndRecord(ctx, "contested")
				}()
			}
			wg.Wait()
			close(fresh)

			Convey("Then exactly one should win", func() {
				wins := 0
				for won := range fresh {
					if won {
						wins++
					}
				}
				So(wins, ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}
