package queue_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/adapters/mq/queue"
	"github.com/poolside/lineup/internal/domain/model"
)

func job(runID string) queue.Job {
	return model.BuildRequest{RunID: runID}
}

func TestMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with a small capacity", t, func() {
		q := queue.NewMemoryQueue(queue.WithCapacity(2))

		Convey("When enqueueing within capacity", func() {
			So(q.Enqueue(ctx, job("run-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, job("run-2")), ShouldBeTrue)

			Convey("Then the length should track the jobs", func() {
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("Then a third enqueue should report backpressure", func() {
				So(q.Enqueue(ctx, job("run-3")), ShouldBeFalse)
			})
		})

		Convey("When dequeuing", func() {
			So(q.Enqueue(ctx, job("run-1")), ShouldBeTrue)
			jobs := q.Dequeue(ctx)

			Convey("Then the job should arrive in order", func() {
				select {
				case j := <-jobs:
					So(j.RunID, ShouldEqual, "run-1")
				case <-time.After(time.Second):
					So("timed out", ShouldBeEmpty)
				}
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Enqueue(ctx, job("run-1")), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues should be rejected", func() {
				So(q.Enqueue(ctx, job("run-2")), ShouldBeFalse)
			})

			Convey("Then the dequeue channel should drain and close", func() {
				jobs := q.Dequeue(ctx)
				j, ok := <-jobs
				So(ok, ShouldBeTrue)
				So(j.RunID, ShouldEqual, "run-1")

				_, ok = <-jobs
				So(ok, ShouldBeFalse)
			})

			Convey("Then closing again should be a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
