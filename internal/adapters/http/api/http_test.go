package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/poolside/lineup/internal/adapters/http/api"
	"github.com/poolside/lineup/internal/adapters/repository"
	"github.com/poolside/lineup/internal/domain/model"
)

// Mock implementations for testing.
type mockService struct {
	submitOK   bool
	duplicates map[string]bool
	results    map[string]model.LineupResult
	pending    map[string]bool
	submitted  []model.BuildRequest
}

func newMockService() *mockService {
	return &mockService{
		submitOK:   true,
		duplicates: map[string]bool{},
		results:    map[string]model.LineupResult{},
		pending:    map[string]bool{},
	}
}

func (m *mockService) Submit(_ context.Context, req model.BuildRequest) (string, bool, bool) {
	if !m.submitOK {
		return req.RunID, false, false
	}
	runID := req.RunID
	if runID == "" {
		runID = "generated-id"
	}
	m.submitted = append(m.submitted, req)
	return runID, m.duplicates[runID], true
}

func (m *mockService) Result(_ context.Context, runID string) (model.LineupResult, bool, error) {
	if m.pending[runID] {
		return model.LineupResult{}, true, nil
	}
	result, ok := m.results[runID]
	if !ok {
		return model.LineupResult{}, false, fmt.Errorf("run %q: %w", runID, repository.ErrNotFound)
	}
	return result, false, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(svc *mockService) *http.ServeMux {
	server := api.NewServer(svc, &mockStatsProvider{stats: map[string]interface{}{"started": true}},
		api.WithMaxRosterRows(100),
	)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func validBody() string {
	return `{
		"run_id": "run-1",
		"config": {"team_name": "Poolside"},
		"roster": [
			{"athlete": "Avery Chen", "event": "50 free", "time": "23.10"}
		]
	}`
}

func TestSubmitRun(t *testing.T) {
	Convey("Given the API routes", t, func() {
		svc := newMockService()
		mux := newMux(svc)

		Convey("When posting a valid run", func() {
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be accepted", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)

				var ack map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &ack), ShouldBeNil)
				So(ack["run_id"], ShouldEqual, "run-1")
				So(ack["status"], ShouldEqual, "accepted")
				So(ack["duplicate"], ShouldEqual, false)
			})

			Convey("Then the config should reach the service normalized", func() {
				So(svc.submitted, ShouldHaveLength, 1)
				So(string(svc.submitted[0].Config.Mode), ShouldEqual, "single")
				So(svc.submitted[0].Config.PoolLanes, ShouldEqual, 8)
			})
		})

		Convey("When posting malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader("{not json"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting without a roster", func() {
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(`{"config": {}}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When posting an invalid meet configuration", func() {
			body := `{
				"config": {"mode": "dual"},
				"roster": [{"athlete": "Avery Chen", "event": "50 free", "time": "23.10"}]
			}`
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the missing opponent name should be a client error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "opponent_name")
			})
		})

		Convey("When the run id was already submitted", func() {
			svc.duplicates["run-1"] = true
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the ack should flag the duplicate with 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"duplicate":true`)
			})
		})

		Convey("When the queue is saturated", func() {
			svc.submitOK = false
			req := httptest.NewRequest(http.MethodPost, "/runs", strings.NewReader(validBody()))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the caller should see backpressure", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/runs", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestGetRun(t *testing.T) {
	Convey("Given the API routes", t, func() {
		svc := newMockService()
		mux := newMux(svc)

		Convey("When fetching a finished run", func() {
			svc.results["run-1"] = model.LineupResult{RunID: "run-1", Mode: "single"}
			req := httptest.NewRequest(http.MethodGet, "/runs/run-1", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the lineup should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var result model.LineupResult
				So(json.Unmarshal(w.Body.Bytes(), &result), ShouldBeNil)
				So(result.RunID, ShouldEqual, "run-1")
			})
		})

		Convey("When fetching a run still building", func() {
			svc.pending["run-2"] = true
			req := httptest.NewRequest(http.MethodGet, "/runs/run-2", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should report pending with 202", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(w.Body.String(), ShouldContainSubstring, "pending")
			})
		})

		Convey("When fetching an unknown run", func() {
			req := httptest.NewRequest(http.MethodGet, "/runs/never-seen", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the path carries extra segments", func() {
			req := httptest.NewRequest(http.MethodGet, "/runs/run-1/extra", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestOperationalEndpoints(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newMux(newMockService())

		Convey("When hitting the health endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then Prometheus metrics should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When hitting the stats endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the stats JSON should be served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "started")
			})
		})
	})
}
