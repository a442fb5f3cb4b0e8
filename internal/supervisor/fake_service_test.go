// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

var errSimulated = errors.New("simulated failure")

// fakeService fails its first `failures` runs, then returns exit if set or
// blocks until canceled.
type fakeService struct {
	name     string
	failures int32
	exit     error

	starts atomic.Int32
	stops  atomic.Int32
}

func newFakeService(name string) *fakeService {
	return &fakeService{name: name}
}

func (f *fakeService) Serve(ctx context.Context) error {
	run := f.starts.Add(1)
	defer f.stops.Add(1)

	if run <= f.failures {
		return errSimulated
	}
	if f.exit != nil {
		return f.exit
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) String() string { return f.name }
