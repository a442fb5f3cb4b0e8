// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct metadata).
// It is used for two things: API request bodies and the structure of the catalog data
// files. Field names in error messages are taken from json tags.
//
// Example:
//
//	type SelectionRequest struct {
//	    Genre1 string `json:"genre1" validate:"required,catalog_key"`
//	    Budget string `json:"budget" validate:"required,oneof=Small Moderate Large Blockbuster"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return verr // Error() joins the messages, Details() lists the fields
//	}
package validation
