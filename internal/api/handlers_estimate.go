// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/estimator"
)

// AffinityResponse is the data of POST /estimate/affinity. Result is null until the
// selection is complete.
type AffinityResponse struct {
	Ready  bool                      `json:"ready"`
	Result *estimator.AffinityResult `json:"result"`
}

// decodeSelection reads, normalizes and validates a selection body.
func decodeSelection(w http.ResponseWriter, r *http.Request) (estimator.Selection, bool) {
	var sel estimator.Selection
	if !decodeJSON(w, r, &sel) {
		return sel, false
	}
	sel = sel.Normalize()
	if !respondValidation(w, r, &sel) {
		return sel, false
	}
	return sel, true
}

// Estimate runs every computation for a selection.
//
// @Summary Full estimate
// @Description Affinity score, production plan and recommended resources for a selection. A partial selection returns the parts that can be computed with ready=false.
// @Tags Estimate
// @Accept json
// @Produce json
// @Param selection body estimator.Selection true "Selection"
// @Success 200 {object} APIResponse{data=estimator.Estimate}
// @Failure 400 {object} APIResponse "Malformed or invalid selection"
// @Failure 422 {object} APIResponse "Unknown genre or budget tier"
// @Router /estimate [post]
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sel, ok := decodeSelection(w, r)
	if !ok {
		return
	}

	est, err := h.engine.Estimate(r.Context(), sel)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, est, start)
}

// EstimateAffinity scores a selection.
//
// @Summary Affinity score
// @Tags Estimate
// @Accept json
// @Produce json
// @Param selection body estimator.Selection true "Selection"
// @Success 200 {object} APIResponse{data=AffinityResponse}
// @Failure 400 {object} APIResponse "Malformed or invalid selection"
// @Failure 422 {object} APIResponse "Unknown genre or budget tier"
// @Router /estimate/affinity [post]
func (h *Handler) EstimateAffinity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	sel, ok := decodeSelection(w, r)
	if !ok {
		return
	}

	result, err := h.engine.ComputeAffinity(sel)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, AffinityResponse{Ready: result != nil, Result: result}, start)
}

// EstimateProduction allocates planning effort for one or two genres.
//
// @Summary Production plan
// @Tags Estimate
// @Accept json
// @Produce json
// @Param request body ProductionRequest true "Genres"
// @Success 200 {object} APIResponse{data=estimator.ProductionPlan}
// @Failure 400 {object} APIResponse "Malformed or invalid request"
// @Failure 422 {object} APIResponse "Unknown genre"
// @Router /estimate/production [post]
func (h *Handler) EstimateProduction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ProductionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = req.Normalize()
	if !respondValidation(w, r, &req) {
		return
	}

	plan := h.engine.ComputeProductionPlan(req.Genre1, req.Genre2)
	if plan == nil {
		respondError(w, r, http.StatusUnprocessableEntity, ErrCodeUnknownGenre,
			fmt.Sprintf("%v: %q", estimator.ErrUnknownGenre, req.Genre1), nil)
		return
	}
	respondSuccess(w, r, plan, start)
}

// EstimateResources recommends extra resources for a production plan.
//
// @Summary Resource recommendations
// @Tags Estimate
// @Accept json
// @Produce json
// @Param request body ResourcesRequest true "Plan, budget and theme"
// @Success 200 {object} APIResponse{data=estimator.ResourceRecommendations}
// @Failure 400 {object} APIResponse "Malformed or invalid request"
// @Failure 422 {object} APIResponse "Unknown budget tier"
// @Router /estimate/resources [post]
func (h *Handler) EstimateResources(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ResourcesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Budget = strings.TrimSpace(req.Budget)
	req.Theme = strings.TrimSpace(req.Theme)
	if !respondValidation(w, r, &req) {
		return
	}

	if _, ok := h.engine.Catalog().Tier(req.Budget); !ok {
		respondError(w, r, http.StatusUnprocessableEntity, ErrCodeUnknownBudgetTier,
			fmt.Sprintf("%v: %q", estimator.ErrUnknownBudgetTier, req.Budget), nil)
		return
	}

	respondSuccess(w, r, h.engine.RecommendResources(req.Plan(), req.Budget, req.Theme), start)
}

// GenreOptions ranks the genre candidates for both selection slots.
//
// @Summary Ranked genre options
// @Tags Estimate
// @Produce json
// @Param theme query string false "Theme"
// @Param genre1 query string false "Selected primary genre"
// @Param genre2 query string false "Selected secondary genre"
// @Success 200 {object} APIResponse{data=estimator.GenreOptions}
// @Failure 400 {object} APIResponse "Invalid parameter"
// @Router /genres/options [get]
func (h *Handler) GenreOptions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	req := GenreOptionsRequest{
		Theme:  strings.TrimSpace(q.Get("theme")),
		Genre1: strings.TrimSpace(q.Get("genre1")),
		Genre2: strings.TrimSpace(q.Get("genre2")),
	}
	if !respondValidation(w, r, &req) {
		return
	}

	respondSuccess(w, r, h.engine.GenreOptions(req.Theme, req.Genre1, req.Genre2), start)
}
