// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package websocket serves live estimator sessions over gorilla/websocket.

A client opens a session on /api/v1/live and streams selection changes. For
every selection the session immediately pushes the production plan and the
resource recommendations, then schedules the affinity score on a per-session
debouncer so a burst of edits yields one score for the last selection.

Key Components:

  - Hub: admits sessions up to a cap, tracks them and closes them all when its
    supervised run loop stops
  - Session: one connection with a read loop, a write goroutine, a message rate
    limiter and an affinity debouncer
  - Message: the JSON envelope written to clients

Protocol:

Client to server:

	{"type":"selection","data":{"genre1":"ACTION","genre2":"SCIFI","theme":"WAR","rating":"PG-13","budget":"Large"}}
	{"type":"clear"}
	{"type":"ping"}

Server to client:

	{"type":"welcome","data":{"session_id":"1a2b3c4d","debounce_window_ms":300}}
	{"type":"production","seq":1,"data":{...}}
	{"type":"resources","seq":1,"data":{...}}
	{"type":"affinity","seq":1,"data":{"ready":true,"result":{...}}}
	{"type":"cleared","seq":2,"data":null}
	{"type":"error","seq":0,"data":{"code":"RATE_LIMITED","message":"..."}}

Seq increases with every selection or clear, so a client can discard results that
belong to a superseded selection. Clearing cancels a pending affinity computation.

Flow Control:

Writes never block the reader. When a client falls behind and its send buffer
fills, further messages are dropped and counted in the websocket error metric;
the next selection carries fresh results. Messages beyond the per-session rate
are answered with a RATE_LIMITED error and otherwise ignored.

Usage:

	hub := websocket.NewHub(engine, websocket.DefaultSessionConfig(), logger)
	go hub.RunWithContext(ctx) // normally supervised

	if err := hub.Admit(); err != nil {
	    http.Error(w, "live sessions unavailable", http.StatusServiceUnavailable)
	    return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
	    return
	}
	if err := hub.Serve(r.Context(), conn); err != nil {
	    conn.Close()
	}
*/
package websocket
