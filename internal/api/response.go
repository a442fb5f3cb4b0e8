// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/validation"
)

// maxRequestBodySize bounds JSON request bodies.
const maxRequestBodySize = 64 << 10

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time) {
	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   data,
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// respondJSON sends a JSON response with caching headers. GET responses carry an
// ETag computed over data alone so that the varying metadata does not defeat
// conditional requests; a matching If-None-Match yields 304.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	if r.Method == http.MethodGet && status == http.StatusOK {
		if w.Header().Get("Cache-Control") == "" {
			w.Header().Set("Cache-Control", "public, max-age=60")
		}
		if payload, err := json.Marshal(response.Data); err == nil {
			etag := `"` + generateETag(payload) + `"`
			w.Header().Set("ETag", etag)
			if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response. err, when set, is logged but never exposed.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondErrorDetails(w, r, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Msg("API Error")
	}

	respondJSON(w, r, status, &APIResponse{
		Status: "error",
		Metadata: Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondEngineError renders an estimator error with the matching status code.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "estimate could not be computed"
	}
	respondError(w, r, status, code, message, err)
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *APIError {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return nil
	}
	return &APIError{
		Code:    ErrCodeValidation,
		Message: verr.Error(),
		Details: verr.Details(),
	}
}

// decodeJSON reads a bounded JSON body into v. It writes the error response itself
// and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeInvalidRequest, "request body too large", nil)
		case errors.Is(err, io.EOF):
			respondError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "request body is empty", nil)
		default:
			respondError(w, r, http.StatusBadRequest, ErrCodeInvalidRequest, "request body is not valid JSON: "+err.Error(), nil)
		}
		return false
	}
	return true
}

// respondValidation validates v and answers 400 when it fails.
func respondValidation(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if apiErr := validateRequest(v); apiErr != nil {
		respondErrorDetails(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return false
	}
	return true
}
