// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/estimator"
)

const readTimeout = 2 * time.Second

type testMessage struct {
	Type string          `json:"type"`
	Seq  uint64          `json:"seq"`
	Data json.RawMessage `json:"data"`
}

type liveFixture struct {
	hub    *Hub
	server *httptest.Server
	cancel context.CancelFunc
	done   chan error
}

func newTestEngine(t *testing.T, window time.Duration) *estimator.Engine {
	t.Helper()
	c, _, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	cfg := estimator.DefaultConfig()
	cfg.DebounceWindow = window
	engine, err := estimator.NewEngine(c, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// newLiveFixture starts a running hub behind an httptest server.
func newLiveFixture(t *testing.T, window time.Duration, cfg SessionConfig) *liveFixture {
	t.Helper()

	hub := NewHub(newTestEngine(t, window), cfg, zerolog.Nop())
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := hub.Serve(r.Context(), conn); err != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
				time.Now().Add(time.Second))
			_ = conn.Close()
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	waitFor(t, func() bool { return hub.Admit() == nil })

	f := &liveFixture{hub: hub, server: server, cancel: cancel, done: done}
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return f
}

func (f *liveFixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// dialSession connects and consumes the welcome message.
func (f *liveFixture) dialSession(t *testing.T) *websocket.Conn {
	t.Helper()
	conn := f.dial(t)
	msg := readMessage(t, conn)
	if msg.Type != MessageTypeWelcome {
		t.Fatalf("first message type = %q, want %q", msg.Type, MessageTypeWelcome)
	}
	return conn
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(readTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func readMessage(t *testing.T, conn *websocket.Conn) testMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		t.Fatalf("SetReadDeadline() error = %v", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var msg testMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	return msg
}

// expectSilence fails if any message arrives within d. The connection is unusable
// afterwards.
func expectSilence(t *testing.T, conn *websocket.Conn, d time.Duration) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(d)); err != nil {
		t.Fatalf("SetReadDeadline() error = %v", err)
	}
	if _, data, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected message %s", data)
	}
}

func send(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

func errorData(t *testing.T, msg testMessage) ErrorData {
	t.Helper()
	if msg.Type != MessageTypeError {
		t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeError)
	}
	var data ErrorData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("Unmarshal(error data) error = %v", err)
	}
	return data
}

func TestHub_AdmitBeforeRun(t *testing.T) {
	t.Parallel()

	hub := NewHub(newTestEngine(t, 0), SessionConfig{}, zerolog.Nop())
	if err := hub.Admit(); !errors.Is(err, ErrHubStopped) {
		t.Errorf("Admit() = %v, want ErrHubStopped", err)
	}
	if hub.Config() != DefaultSessionConfig() {
		t.Errorf("Config() = %+v, want defaults", hub.Config())
	}
}

func TestHub_Welcome(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 50*time.Millisecond, SessionConfig{})
	conn := f.dial(t)

	msg := readMessage(t, conn)
	if msg.Type != MessageTypeWelcome {
		t.Fatalf("type = %q, want %q", msg.Type, MessageTypeWelcome)
	}
	var welcome WelcomeData
	if err := json.Unmarshal(msg.Data, &welcome); err != nil {
		t.Fatalf("Unmarshal(welcome) error = %v", err)
	}
	if len(welcome.SessionID) != 8 {
		t.Errorf("session_id = %q, want 8 characters", welcome.SessionID)
	}
	if welcome.DebounceWindowMS != 50 {
		t.Errorf("debounce_window_ms = %d, want 50", welcome.DebounceWindowMS)
	}
	if got := f.hub.SessionCount(); got != 1 {
		t.Errorf("SessionCount() = %d, want 1", got)
	}
}

func TestHub_SessionLimit(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 0, SessionConfig{MaxSessions: 1})
	f.dialSession(t)

	if err := f.hub.Admit(); !errors.Is(err, ErrHubFull) {
		t.Fatalf("Admit() = %v, want ErrHubFull", err)
	}

	second := f.dial(t)
	if err := second.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		t.Fatalf("SetReadDeadline() error = %v", err)
	}
	_, _, err := second.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.CloseTryAgainLater {
		t.Errorf("second session read error = %v, want close %d", err, websocket.CloseTryAgainLater)
	}
	if got := f.hub.SessionCount(); got != 1 {
		t.Errorf("SessionCount() = %d, want 1", got)
	}
}

func TestHub_ShutdownClosesSessions(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 0, SessionConfig{})
	first := f.dialSession(t)
	second := f.dialSession(t)
	waitFor(t, func() bool { return f.hub.SessionCount() == 2 })

	f.cancel()

	select {
	case err := <-f.done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(readTimeout):
		t.Fatal("RunWithContext() did not return after cancel")
	}

	for _, conn := range []*websocket.Conn{first, second} {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			t.Fatalf("SetReadDeadline() error = %v", err)
		}
		_, _, err := conn.ReadMessage()
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			t.Errorf("ReadMessage() after hub shutdown = %v, want normal close frame", err)
		}
	}

	waitFor(t, func() bool { return f.hub.SessionCount() == 0 })
	if err := f.hub.Admit(); !errors.Is(err, ErrHubStopped) {
		t.Errorf("Admit() after shutdown = %v, want ErrHubStopped", err)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	t.Parallel()

	f := newLiveFixture(t, 0, SessionConfig{})
	conn := f.dialSession(t)
	waitFor(t, func() bool { return f.hub.SessionCount() == 1 })

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitFor(t, func() bool { return f.hub.SessionCount() == 0 })
}

func TestSessionConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   SessionConfig
		want SessionConfig
	}{
		{
			name: "zero value",
			in:   SessionConfig{},
			want: DefaultSessionConfig(),
		},
		{
			name: "explicit values kept",
			in: SessionConfig{
				MaxSessions: 3, MessageRate: 1.5, MessageBurst: 2, MaxMessageSize: 128,
				PingInterval: time.Second, PongTimeout: 2 * time.Second,
				WriteTimeout: 3 * time.Second, SendBuffer: 4,
			},
			want: SessionConfig{
				MaxSessions: 3, MessageRate: 1.5, MessageBurst: 2, MaxMessageSize: 128,
				PingInterval: time.Second, PongTimeout: 2 * time.Second,
				WriteTimeout: 3 * time.Second, SendBuffer: 4,
			},
		},
		{
			name: "negative replaced",
			in:   SessionConfig{MaxSessions: -1, MessageRate: -2},
			want: DefaultSessionConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.in.withDefaults(); got != tt.want {
				t.Errorf("withDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGetShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if got := getShutdownReason(canceled); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled: got %q", got)
	}

	expired, cancel2 := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel2()
	<-expired.Done()
	if got := getShutdownReason(expired); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline: got %q", got)
	}
}
