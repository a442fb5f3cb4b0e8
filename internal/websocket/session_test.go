// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/estimator"
)

const fullSelection = `{"type":"selection","data":{"genre1":"ACTION","genre2":"SCIFI","theme":"WAR","rating":"PG-13","budget":"Large"}}`

func TestSession_SelectionPushesResults(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 20*time.Millisecond, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, fullSelection)

	production := readMessage(t, conn)
	if production.Type != MessageTypeProduction || production.Seq != 1 {
		t.Fatalf("got %s seq %d, want production seq 1", production.Type, production.Seq)
	}
	var plan estimator.ProductionPlan
	if err := json.Unmarshal(production.Data, &plan); err != nil {
		t.Fatalf("Unmarshal(plan) error = %v", err)
	}
	pre := plan.Production.Writing + plan.Production.Costume + plan.Production.SetDesign
	if pre == 0 {
		t.Error("production plan has no pre-production effort")
	}

	resources := readMessage(t, conn)
	if resources.Type != MessageTypeResources || resources.Seq != 1 {
		t.Fatalf("got %s seq %d, want resources seq 1", resources.Type, resources.Seq)
	}
	var recs estimator.ResourceRecommendations
	if err := json.Unmarshal(resources.Data, &recs); err != nil {
		t.Fatalf("Unmarshal(resources) error = %v", err)
	}
	if recs.ProductionExtras == nil || recs.PostProductionExtras == nil {
		t.Error("resource lists must be non-nil")
	}

	affinity := readMessage(t, conn)
	if affinity.Type != MessageTypeAffinity || affinity.Seq != 1 {
		t.Fatalf("got %s seq %d, want affinity seq 1", affinity.Type, affinity.Seq)
	}
	var data AffinityData
	if err := json.Unmarshal(affinity.Data, &data); err != nil {
		t.Fatalf("Unmarshal(affinity) error = %v", err)
	}
	if !data.Ready || data.Result == nil {
		t.Fatalf("affinity = %+v, want ready result", data)
	}
	if len(data.Result.Seasons) == 0 {
		t.Error("affinity result has no season scores")
	}
}

func TestSession_DebounceKeepsLastSelection(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 200*time.Millisecond, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, fullSelection)
	send(t, conn, strings.Replace(fullSelection, `"SCIFI"`, `"COMEDY"`, 1))

	var types []string
	for i := 0; i < 4; i++ {
		msg := readMessage(t, conn)
		types = append(types, fmt.Sprintf("%s/%d", msg.Type, msg.Seq))
	}
	want := []string{"production/1", "resources/1", "production/2", "resources/2"}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("messages = %v, want %v", types, want)
		}
	}

	affinity := readMessage(t, conn)
	if affinity.Type != MessageTypeAffinity || affinity.Seq != 2 {
		t.Fatalf("got %s seq %d, want affinity seq 2", affinity.Type, affinity.Seq)
	}
	expectSilence(t, conn, 400*time.Millisecond)
}

func TestSession_ClearCancelsPendingAffinity(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 200*time.Millisecond, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, fullSelection)
	send(t, conn, `{"type":"clear"}`)

	readMessage(t, conn) // production
	readMessage(t, conn) // resources
	cleared := readMessage(t, conn)
	if cleared.Type != MessageTypeCleared || cleared.Seq != 2 {
		t.Fatalf("got %s seq %d, want cleared seq 2", cleared.Type, cleared.Seq)
	}
	expectSilence(t, conn, 400*time.Millisecond)
}

func TestSession_IncompleteSelection(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 10*time.Millisecond, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, `{"type":"selection","data":{"genre1":"DRAMA"}}`)

	production := readMessage(t, conn)
	if production.Type != MessageTypeProduction || string(production.Data) == "null" {
		t.Fatalf("got %s %s, want production plan for genre1 alone", production.Type, production.Data)
	}
	readMessage(t, conn) // resources

	affinity := readMessage(t, conn)
	var data AffinityData
	if err := json.Unmarshal(affinity.Data, &data); err != nil {
		t.Fatalf("Unmarshal(affinity) error = %v", err)
	}
	if data.Ready || data.Result != nil {
		t.Errorf("affinity = %+v, want not ready", data)
	}
}

func TestSession_ErrorReplies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantCode string
	}{
		{"invalid json", `{"type":`, ErrCodeInvalidMessage},
		{"unknown type", `{"type":"subscribe"}`, ErrCodeUnknownType},
		{"malformed selection", `{"type":"selection","data":[1,2]}`, ErrCodeInvalidMessage},
		{"bad identifier", `{"type":"selection","data":{"genre1":"ACT ION"}}`, ErrCodeValidation},
	}

	f := newLiveFixture(t, 10*time.Millisecond, SessionConfig{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := f.dialSession(t)
			send(t, conn, tt.raw)
			if got := errorData(t, readMessage(t, conn)); got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestSession_UnknownGenre(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 10*time.Millisecond, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, strings.Replace(fullSelection, `"ACTION"`, `"WESTERN"`, 1))

	production := readMessage(t, conn)
	if production.Type != MessageTypeProduction || string(production.Data) != "null" {
		t.Errorf("got %s %s, want empty production plan", production.Type, production.Data)
	}
	readMessage(t, conn) // resources

	msg := readMessage(t, conn)
	if msg.Seq != 1 {
		t.Errorf("error seq = %d, want 1", msg.Seq)
	}
	if got := errorData(t, msg); got.Code != ErrCodeUnknownGenre {
		t.Errorf("code = %q, want %q", got.Code, ErrCodeUnknownGenre)
	}
}

func TestSession_PingPong(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 0, SessionConfig{})
	conn := f.dialSession(t)

	send(t, conn, `{"type":"ping"}`)
	if msg := readMessage(t, conn); msg.Type != MessageTypePong {
		t.Errorf("type = %q, want %q", msg.Type, MessageTypePong)
	}
}

func TestSession_RateLimit(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 0, SessionConfig{MessageRate: 0.5, MessageBurst: 2})
	conn := f.dialSession(t)

	for i := 0; i < 3; i++ {
		send(t, conn, `{"type":"ping"}`)
	}

	readMessage(t, conn)
	readMessage(t, conn)
	if got := errorData(t, readMessage(t, conn)); got.Code != ErrCodeRateLimited {
		t.Errorf("code = %q, want %q", got.Code, ErrCodeRateLimited)
	}
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: %q", estimator.ErrUnknownGenre, "X"), ErrCodeUnknownGenre},
		{fmt.Errorf("%w: %q", estimator.ErrUnknownBudgetTier, "X"), ErrCodeUnknownBudget},
		{errors.New("boom"), ErrCodeComputationError},
	}
	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.want {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}
	if got := string(data); got != `{"type":"pong","data":null}` {
		t.Errorf("MarshalMessage() = %s", got)
	}

	data, err = MarshalMessage(Message{Type: MessageTypeError, Seq: 7, Data: ErrorData{Code: ErrCodeRateLimited, Message: "slow"}})
	if err != nil {
		t.Fatalf("MarshalMessage() error = %v", err)
	}
	if !strings.Contains(string(data), `"seq":7`) || !strings.Contains(string(data), `"code":"RATE_LIMITED"`) {
		t.Errorf("MarshalMessage() = %s", data)
	}
}
