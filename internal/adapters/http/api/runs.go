// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/model"
)

// Submission bounds.
const defaultMaxRosterRows = 20_000

// RunsHandler handles lineup run submission and retrieval.
type RunsHandler struct {
	deps          Dependencies
	maxRosterRows int
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps Dependencies) *RunsHandler {
	return &RunsHandler{deps: deps, maxRosterRows: defaultMaxRosterRows}
}

// runRequest mirrors the OpenAPI schema for POST /runs.
type runRequest struct {
	RunID          string             `json:"run_id"`
	Config         catalog.MeetConfig `json:"config"`
	Roster         []model.RawRow     `json:"roster"`
	OpponentRoster []model.RawRow     `json:"opponent_roster"`
}

func (r *runRequest) validate(maxRows int) error {
	if len(r.Roster) == 0 {
		return errors.New("missing roster")
	}
	if len(r.Roster) > maxRows || len(r.OpponentRoster) > maxRows {
		return fmt.Errorf("roster exceeds %d rows", maxRows)
	}
	r.Config.Normalize()
	if err := r.Config.Validate(); err != nil {
		return err
	}
	return nil
}

// HandleSubmitRun handles POST /runs requests.
func (h *RunsHandler) HandleSubmitRun(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_run"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxRosterRows); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	runID, duplicate, ok := h.deps.Submit(r.Context(), model.BuildRequest{
		RunID:          req.RunID,
		Config:         req.Config,
		Roster:         req.Roster,
		OpponentRoster: req.OpponentRoster,
	})
	if !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{RunID: runID, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{RunID: runID, Status: "accepted", Duplicate: false})
}

// HandleGetRun handles GET /runs/{run_id} requests.
func (h *RunsHandler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	runID := strings.TrimPrefix(r.URL.Path, "/runs/")
	if runID == "" || strings.Contains(runID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	result, pending, err := h.deps.Result(r.Context(), runID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if pending {
		writeJSON(w, http.StatusAccepted, pendingResponse{RunID: runID, Status: "pending"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
