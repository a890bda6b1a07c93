// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package waiter

import (
	"context"
	"testing"
	"time"
)

func TestCooperative_WaitRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (Cooperative{}).Wait(ctx); err == nil {
		t.Fatalf("Wait on a cancelled context returned nil")
	}
}

func TestDelay_WaitSleepsThenReturns(t *testing.T) {
	start := time.Now()
	if err := Delay(10 * time.Millisecond).Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("Wait returned after %v, want at least 10ms", elapsed)
	}
}

func TestSignal_NotifyThenWait(t *testing.T) {
	s := NewSignal()
	s.Notify()
	if err := s.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestSignal_WaitBlocksUntilNotified(t *testing.T) {
	s := NewSignal()
	done := make(chan struct{})
	go func() {
		_ = s.Wait(context.Background())
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Wait returned before Notify")
	case <-time.After(20 * time.Millisecond):
	}

	s.Notify()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Wait did not return after Notify")
	}
}

func TestFromRetryDelay(t *testing.T) {
	if w := FromRetryDelay(-1); w != nil {
		t.Fatalf("FromRetryDelay(-1) = %v, want nil", w)
	}
	if _, ok := FromRetryDelay(0).(Cooperative); !ok {
		t.Fatalf("FromRetryDelay(0) did not return Cooperative")
	}
	if _, ok := FromRetryDelay(time.Second).(Delay); !ok {
		t.Fatalf("FromRetryDelay(positive) did not return Delay")
	}
}
