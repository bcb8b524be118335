// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefreshCmd_FetchesCount(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (int, error) {
		return 7, nil
	}, time.Minute)

	cmd := p.RefreshCmd()
	if cmd == nil {
		t.Fatal("first refresh should be allowed")
	}
	msg, ok := cmd().(UnreadMsg)
	if !ok {
		t.Fatalf("expected UnreadMsg, got %T", msg)
	}
	if msg.Count != 7 {
		t.Errorf("Count = %d, want 7", msg.Count)
	}
}

func TestRefreshCmd_RespectsRateLimit(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	}, time.Hour)

	// Burst of 2, then suppressed.
	fired := 0
	for i := 0; i < 10; i++ {
		if cmd := p.RefreshCmd(); cmd != nil {
			cmd()
			fired++
		}
	}

	if fired != 2 {
		t.Errorf("%d refreshes went through, want burst of 2", fired)
	}
	if calls.Load() != 2 {
		t.Errorf("fetch ran %d times, want 2", calls.Load())
	}
}

func TestSetInterval_AdjustsLimiter(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	}, time.Hour)

	// Exhaust the burst at the hour-long cadence.
	for i := 0; i < 3; i++ {
		if cmd := p.RefreshCmd(); cmd != nil {
			cmd()
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("fetch ran %d times, want 2", calls.Load())
	}

	p.SetInterval(time.Nanosecond)
	if p.Interval() != time.Nanosecond {
		t.Errorf("Interval = %v after SetInterval", p.Interval())
	}

	// At the new cadence tokens replenish immediately.
	time.Sleep(time.Millisecond)
	if cmd := p.RefreshCmd(); cmd == nil {
		t.Error("refresh should be allowed again at the shorter interval")
	}
}

func TestSetInterval_IgnoresNonPositive(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (int, error) { return 0, nil }, time.Minute)
	p.SetInterval(0)
	p.SetInterval(-time.Second)
	if p.Interval() != time.Minute {
		t.Errorf("Interval = %v, want unchanged minute", p.Interval())
	}
}

func TestRefreshCmd_FailuresAreSilent(t *testing.T) {
	p := NewPoller(func(ctx context.Context) (int, error) {
		return 0, errors.New("backend down")
	}, time.Minute)

	cmd := p.RefreshCmd()
	if cmd == nil {
		t.Fatal("refresh should be allowed")
	}
	if msg := cmd(); msg != nil {
		t.Errorf("failed fetch should produce no message, got %v", msg)
	}
}
