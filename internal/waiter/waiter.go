// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package waiter provides the cooperative suspend/resume capability that
// lets InputStream drive one refill algorithm for both synchronous and
// asynchronous sources (sync: retry-with-pause; async: suspend-until-signal).
package waiter

import (
	"context"
	"runtime"
	"time"
)

// Waiter pauses a retry loop between refill attempts. Implementations must
// honor ctx cancellation.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Cooperative yields the scheduler once per call, matching a zero retryDelay.
type Cooperative struct{}

func (Cooperative) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		runtime.Gosched()
		return nil
	}
}

// Delay sleeps for a fixed duration, matching a positive retryDelay.
type Delay time.Duration

func (d Delay) Wait(ctx context.Context) error {
	t := time.NewTimer(time.Duration(d))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Signal is a channel-based waiter for asynchronous devices: a background
// reader goroutine calls Notify when it makes progress, and Wait blocks
// until that happens or ctx is done.
type Signal struct {
	ch chan struct{}
}

// NewSignal creates a Signal ready to be waited on.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ch:
		return nil
	}
}

// Notify wakes one pending Wait call. Non-blocking: a Notify with no
// waiter listening is remembered for the next Wait call.
func (s *Signal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// FromRetryDelay builds the waiter matching a synchronous source's retry
// policy: negative means "never wait, report ErrWouldBlock instead" (nil is
// returned; the caller must check for a nil Waiter and end the current
// attempt without retrying), zero means cooperative yield-and-retry,
// positive means sleep-and-retry.
func FromRetryDelay(d time.Duration) Waiter {
	switch {
	case d < 0:
		return nil
	case d == 0:
		return Cooperative{}
	default:
		return Delay(d)
	}
}
