// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
)

// ContextHub is satisfied by *websocket.Hub.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// LiveHubService runs the live session hub under supervision.
//
// While the service is down the hub refuses new sessions, so the live
// endpoint answers 503 until the supervisor restarts it. Sessions open at
// shutdown are closed by the hub itself.
type LiveHubService struct {
	hub  ContextHub
	name string
}

// NewLiveHubService wraps hub.
func NewLiveHubService(hub ContextHub) *LiveHubService {
	return &LiveHubService{
		hub:  hub,
		name: "live-hub",
	}
}

// Serve implements suture.Service. It returns ctx.Err() on shutdown.
func (s *LiveHubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer for suture events.
func (s *LiveHubService) String() string {
	return s.name
}
