// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
)

// MatrixView renders a weight table: one row per key, one value per genre column.
type MatrixView struct {
	Columns []string    `json:"columns"`
	Rows    []MatrixRow `json:"rows"`
}

// MatrixRow is one keyed row of a MatrixView.
type MatrixRow struct {
	Key    string    `json:"key"`
	Values []float64 `json:"values"`
}

// GenresView lists the genre vocabulary.
type GenresView struct {
	Genres []string `json:"genres"`
}

// BudgetsView lists budget tiers with the scalar script adjustment.
type BudgetsView struct {
	Tiers  []catalog.BudgetTier `json:"tiers"`
	Script catalog.ScriptConfig `json:"script"`
}

// FeaturesView is the feature catalog.
type FeaturesView struct {
	Meta    catalog.FeatureMeta     `json:"meta"`
	Sets    []catalog.FeatureSet    `json:"sets"`
	Records []catalog.FeatureRecord `json:"records"`
}

func newMatrixView(genres []string, m catalog.Matrix) MatrixView {
	keys := m.Keys()
	view := MatrixView{Columns: genres, Rows: make([]MatrixRow, 0, len(keys))}
	for _, key := range keys {
		values, _ := m.Row(key)
		view.Rows = append(view.Rows, MatrixRow{Key: key, Values: values})
	}
	return view
}

// CatalogGenres lists the genres.
//
// @Summary List genres
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=GenresView}
// @Router /catalog/genres [get]
func (h *Handler) CatalogGenres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, GenresView{Genres: h.engine.Catalog().Genres()}, start)
}

// CatalogThemes returns the theme weight matrix.
//
// @Summary Theme weights per genre
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=MatrixView}
// @Router /catalog/themes [get]
func (h *Handler) CatalogThemes(w http.ResponseWriter, r *http.Request) {
	h.respondMatrix(w, r, h.engine.Catalog().Themes())
}

// CatalogRatings returns the rating weight matrix.
//
// @Summary Rating weights per genre
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=MatrixView}
// @Router /catalog/ratings [get]
func (h *Handler) CatalogRatings(w http.ResponseWriter, r *http.Request) {
	h.respondMatrix(w, r, h.engine.Catalog().Ratings())
}

// CatalogSeasons returns the seasonal multiplier matrix.
//
// @Summary Seasonal multipliers per genre
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=MatrixView}
// @Router /catalog/seasons [get]
func (h *Handler) CatalogSeasons(w http.ResponseWriter, r *http.Request) {
	h.respondMatrix(w, r, h.engine.Catalog().Seasons())
}

// CatalogBudgets lists the budget tiers.
//
// @Summary List budget tiers
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=BudgetsView}
// @Router /catalog/budgets [get]
func (h *Handler) CatalogBudgets(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	c := h.engine.Catalog()
	respondSuccess(w, r, BudgetsView{Tiers: c.Tiers(), Script: c.Script()}, start)
}

// CatalogFeatures returns the feature sets and records.
//
// @Summary Feature catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} APIResponse{data=FeaturesView}
// @Router /catalog/features [get]
func (h *Handler) CatalogFeatures(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	c := h.engine.Catalog()
	respondSuccess(w, r, FeaturesView{Meta: c.Meta(), Sets: c.Sets(), Records: c.Records()}, start)
}

func (h *Handler) respondMatrix(w http.ResponseWriter, r *http.Request, m catalog.Matrix) {
	start := time.Now()
	respondSuccess(w, r, newMatrixView(h.engine.Catalog().Genres(), m), start)
}
