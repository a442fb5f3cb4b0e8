// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/estimator"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/validation"
)

// sessionIDCounter orders sessions for deterministic shutdown.
var sessionIDCounter atomic.Uint64

// Session is one live estimator connection. Production and resource results are pushed
// as soon as a selection arrives; the affinity score is debounced so rapid edits
// produce one score for the last selection.
type Session struct {
	order  uint64
	id     string
	hub    *Hub
	conn   *websocket.Conn
	config SessionConfig
	logger zerolog.Logger

	send      chan Message
	limiter   *rate.Limiter
	debouncer *estimator.Debouncer[*estimator.AffinityResult]
	seq       atomic.Uint64

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newSession(ctx context.Context, hub *Hub, conn *websocket.Conn, id string) *Session {
	cfg := hub.config
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		order:     sessionIDCounter.Add(1),
		id:        id,
		hub:       hub,
		conn:      conn,
		config:    cfg,
		logger:    hub.logger.With().Str("session_id", id).Logger(),
		send:      make(chan Message, cfg.SendBuffer),
		limiter:   rate.NewLimiter(rate.Limit(cfg.MessageRate), cfg.MessageBurst),
		debouncer: hub.engine.NewAffinityDebouncer(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// run serves the session until the client disconnects, its context is canceled or
// the hub closes it. It blocks; the write side runs on its own goroutine.
func (s *Session) run() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump()
	}()

	s.enqueue(Message{Type: MessageTypeWelcome, Data: WelcomeData{
		SessionID:        s.id,
		DebounceWindowMS: s.debouncer.Window().Milliseconds(),
	}})

	s.readPump()
	s.close()
	<-done
}

// close cancels pending work and stops the session. The write side sends the close
// frame and then closes the connection, which unblocks the read side. Safe to call
// repeatedly.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.debouncer.Cancel()
		s.cancel()
	})
}

func (s *Session) readPump() {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout)); err != nil {
		s.logger.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) &&
				s.ctx.Err() == nil {
				metrics.WSErrors.WithLabelValues("read").Inc()
				s.logger.Debug().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()

		if !s.limiter.Allow() {
			metrics.WSErrors.WithLabelValues("rate_limited").Inc()
			s.sendError(0, ErrCodeRateLimited, "too many messages, slow down")
			continue
		}

		s.handle(data)
	}
}

func (s *Session) handle(data []byte) {
	var in Incoming
	if err := json.Unmarshal(data, &in); err != nil {
		metrics.WSErrors.WithLabelValues("decode").Inc()
		s.sendError(0, ErrCodeInvalidMessage, "message is not valid JSON")
		return
	}

	switch in.Type {
	case MessageTypeSelection:
		s.handleSelection(in.Data)
	case MessageTypeClear:
		s.debouncer.Cancel()
		s.enqueue(Message{Type: MessageTypeCleared, Seq: s.seq.Add(1)})
	case MessageTypePing:
		s.enqueue(Message{Type: MessageTypePong})
	default:
		s.sendError(0, ErrCodeUnknownType, "unknown message type: "+in.Type)
	}
}

func (s *Session) handleSelection(data json.RawMessage) {
	var sel estimator.Selection
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sel); err != nil {
			s.sendError(0, ErrCodeInvalidMessage, "selection is malformed")
			return
		}
	}
	sel = sel.Normalize()
	if verr := validation.ValidateStruct(&sel); verr != nil {
		s.sendError(0, ErrCodeValidation, verr.Error())
		return
	}

	engine := s.hub.engine
	seq := s.seq.Add(1)

	plan := engine.ComputeProductionPlan(sel.Genre1, sel.Genre2)
	s.enqueue(Message{Type: MessageTypeProduction, Seq: seq, Data: plan})
	s.enqueue(Message{Type: MessageTypeResources, Seq: seq, Data: engine.RecommendResources(plan, sel.Budget, sel.Theme)})

	engine.ScheduleAffinity(s.ctx, s.debouncer, sel, func(result *estimator.AffinityResult, err error) {
		if err != nil {
			s.sendError(seq, errorCode(err), err.Error())
			return
		}
		s.enqueue(Message{Type: MessageTypeAffinity, Seq: seq, Data: AffinityData{
			Ready:  result != nil,
			Result: result,
		}})
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, estimator.ErrUnknownGenre):
		return ErrCodeUnknownGenre
	case errors.Is(err, estimator.ErrUnknownBudgetTier):
		return ErrCodeUnknownBudget
	default:
		return ErrCodeComputationError
	}
}

func (s *Session) sendError(seq uint64, code, message string) {
	s.enqueue(Message{Type: MessageTypeError, Seq: seq, Data: ErrorData{Code: code, Message: message}})
}

// enqueue queues msg for the writer without blocking. Messages for a slow client are
// dropped; a newer selection always follows with fresh results.
func (s *Session) enqueue(msg Message) {
	select {
	case <-s.ctx.Done():
		return
	default:
	}

	select {
	case s.send <- msg:
	default:
		metrics.WSErrors.WithLabelValues("send_buffer_full").Inc()
		s.logger.Warn().Str("message_type", msg.Type).Msg("send buffer full, dropping message")
	}
}

// writePump owns the connection's lifetime: it is the only place conn is closed.
func (s *Session) writePump() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	defer func() {
		_ = s.conn.Close() // best-effort, the peer may already be gone
	}()

	for {
		select {
		case <-s.ctx.Done():
			deadline := time.Now().Add(s.config.WriteTimeout)
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return

		case msg := <-s.send:
			if err := s.write(msg); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				s.logger.Debug().Err(err).Msg("failed to write message")
				s.close()
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
				s.close()
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		}
	}
}

func (s *Session) write(msg Message) error {
	payload, err := MarshalMessage(msg)
	if err != nil {
		return err
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	metrics.WSMessagesSent.Inc()
	return nil
}
