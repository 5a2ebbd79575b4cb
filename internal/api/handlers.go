package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nishasharma303/NitiVimarsh/app"
	"github.com/nishasharma303/NitiVimarsh/domain/core"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/internal/errors"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// simulationRequest is the POST /api/v1/simulations body. Scenario is
// kept raw so that present fields overlay the configured defaults the
// same way the settings file does. Seed is optional; when absent one
// is generated and recorded in the result metadata for replay.
type simulationRequest struct {
	Policy   policy.Variables `json:"policy"`
	Scenario json.RawMessage  `json:"scenario,omitempty"`
	Seed     *int64           `json:"seed,omitempty"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulationRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "malformed request body: "+err.Error())
		return
	}

	scenarioParams := s.settings.Scenario
	if len(req.Scenario) > 0 {
		overlay := json.NewDecoder(bytes.NewReader(req.Scenario))
		overlay.DisallowUnknownFields()
		if err := overlay.Decode(&scenarioParams); err != nil {
			writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "malformed scenario overrides: "+err.Error())
			return
		}
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	if !s.limiter.TryAcquire(1) {
		writeError(w, http.StatusTooManyRequests, errors.CodeRateLimited, "simulation capacity exhausted, retry later")
		return
	}
	defer s.limiter.Release(1)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.service.RunAnalysis(ctx, app.AnalysisRequest{
		Graph:     s.graph,
		Policy:    req.Policy,
		Scenario:  scenarioParams,
		Config:    s.settings.Simulation,
		Rules:     s.settings.ShockRules,
		Matrix:    s.settings.Effects,
		Freshness: s.settings.Freshness,
		Seed:      seed,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// listRunsResponse wraps the run collection with its length so clients
// can page without counting.
type listRunsResponse struct {
	Runs  []ports.RunRecord `json:"runs"`
	Count int               `json:"count"`
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	filters, err := parseRunFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, err.Error())
		return
	}

	runs, err := s.service.Ledger().ListRuns(r.Context(), filters)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listRunsResponse{Runs: runs, Count: len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, err.Error())
		return
	}

	record, err := s.service.Ledger().GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// graphValidationResponse flattens a validation report into plain
// strings so hard failures survive JSON encoding.
type graphValidationResponse struct {
	Valid    bool            `json:"valid"`
	Errors   []string        `json:"errors,omitempty"`
	Findings []graph.Finding `json:"findings,omitempty"`
}

func (s *Server) handleGraphValidation(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.ValidateGraph(s.graph)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, graphValidationResponse{
		Valid:    report.OK,
		Errors:   report.ErrorMessages(),
		Findings: report.Warnings,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseRunFilters(r *http.Request) (ports.RunFilters, error) {
	filters := ports.RunFilters{Limit: defaultListLimit}

	query := r.URL.Query()
	if raw := query.Get("policy_type"); raw != "" {
		policyType, err := policy.ParseType(raw)
		if err != nil {
			return filters, err
		}
		filters.PolicyType = &policyType
	}
	if raw := query.Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, fmt.Errorf("since must be an RFC3339 timestamp: %w", err)
		}
		since := core.NewTimestamp(parsed)
		filters.Since = &since
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filters, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		filters.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filters, fmt.Errorf("offset must be a non-negative integer, got %q", raw)
		}
		filters.Offset = offset
	}

	return filters, nil
}
