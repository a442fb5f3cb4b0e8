// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"strings"

	"github.com/tomtom215/marquee/internal/estimator"
)

// ProductionRequest is the body of POST /estimate/production.
type ProductionRequest struct {
	Genre1 string `json:"genre1" validate:"required,catalog_key"`
	Genre2 string `json:"genre2" validate:"omitempty,catalog_key"`
}

// Normalize trims surrounding whitespace.
func (p ProductionRequest) Normalize() ProductionRequest {
	return ProductionRequest{
		Genre1: strings.TrimSpace(p.Genre1),
		Genre2: strings.TrimSpace(p.Genre2),
	}
}

// ProductionEffort is the pre-production split supplied to the resource recommender.
type ProductionEffort struct {
	Writing   int `json:"writing" validate:"gte=0,lte=100"`
	Costume   int `json:"costume" validate:"gte=0,lte=100"`
	SetDesign int `json:"setdesign" validate:"gte=0,lte=100"`
}

// PostProductionEffort is the post-production split supplied to the resource recommender.
type PostProductionEffort struct {
	SpecialEffect int `json:"specialeffect" validate:"gte=0,lte=100"`
	Sound         int `json:"sound" validate:"gte=0,lte=100"`
	Editing       int `json:"editing" validate:"gte=0,lte=100"`
}

// ResourcesRequest is the body of POST /estimate/resources.
type ResourcesRequest struct {
	Production     ProductionEffort     `json:"production"`
	PostProduction PostProductionEffort `json:"postProduction"`
	Budget         string               `json:"budget" validate:"required,catalog_key"`
	Theme          string               `json:"theme" validate:"omitempty,catalog_key"`
}

// Plan converts the request into the allocator's output shape.
func (r *ResourcesRequest) Plan() *estimator.ProductionPlan {
	return &estimator.ProductionPlan{
		Production: estimator.Production{
			Writing:   r.Production.Writing,
			Costume:   r.Production.Costume,
			SetDesign: r.Production.SetDesign,
		},
		PostProduction: estimator.PostProduction{
			SpecialEffect: r.PostProduction.SpecialEffect,
			Sound:         r.PostProduction.Sound,
			Editing:       r.PostProduction.Editing,
		},
	}
}

// GenreOptionsRequest holds the query parameters of GET /genres/options.
type GenreOptionsRequest struct {
	Theme  string `json:"theme" validate:"omitempty,catalog_key"`
	Genre1 string `json:"genre1" validate:"omitempty,catalog_key"`
	Genre2 string `json:"genre2" validate:"omitempty,catalog_key"`
}
