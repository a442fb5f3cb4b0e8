// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/estimator"
)

// Client to server message types.
const (
	MessageTypeSelection = "selection"
	MessageTypeClear     = "clear"
	MessageTypePing      = "ping"
)

// Server to client message types.
const (
	MessageTypeWelcome    = "welcome"
	MessageTypeProduction = "production"
	MessageTypeResources  = "resources"
	MessageTypeAffinity   = "affinity"
	MessageTypeCleared    = "cleared"
	MessageTypePong       = "pong"
	MessageTypeError      = "error"
)

// Error codes carried by error messages.
const (
	ErrCodeInvalidMessage   = "INVALID_MESSAGE"
	ErrCodeUnknownType      = "UNKNOWN_MESSAGE_TYPE"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeUnknownGenre     = "UNKNOWN_GENRE"
	ErrCodeUnknownBudget    = "UNKNOWN_BUDGET_TIER"
	ErrCodeComputationError = "COMPUTATION_ERROR"
)

// Incoming is a message read from a client. Data is decoded according to Type.
type Incoming struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is a message written to a client. Seq ties production, resources and
// affinity messages to the selection that produced them.
type Message struct {
	Type string      `json:"type"`
	Seq  uint64      `json:"seq,omitempty"`
	Data interface{} `json:"data"`
}

// WelcomeData is sent once when a session opens.
type WelcomeData struct {
	SessionID        string `json:"session_id"`
	DebounceWindowMS int64  `json:"debounce_window_ms"`
}

// AffinityData carries a debounced affinity result. Result is nil while the selection
// is incomplete.
type AffinityData struct {
	Ready  bool                      `json:"ready"`
	Result *estimator.AffinityResult `json:"result"`
}

// ErrorData describes a rejected message or failed computation.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
