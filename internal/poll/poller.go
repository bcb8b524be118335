// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package poll

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"
)

// fetchTimeout bounds a single unread-count request.
const fetchTimeout = 10 * time.Second

// Fetcher returns the current unread notification count.
type Fetcher func(ctx context.Context) (int, error)

// =============================================================================
// POLLER
// =============================================================================

// Poller drives periodic unread-count refreshes.
type Poller struct {
	fetch    Fetcher
	limiter  *rate.Limiter
	interval time.Duration
}

// NewPoller creates a poller that refreshes at most once per interval, with
// a small burst allowance so a manual refresh right after a tick still goes
// through.
func NewPoller(fetch Fetcher, interval time.Duration) *Poller {
	return &Poller{
		fetch:    fetch,
		limiter:  rate.NewLimiter(rate.Every(interval), 2),
		interval: interval,
	}
}

// Interval returns the configured poll interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// SetInterval changes the poll cadence. The rate limiter is adjusted in
// place and the next scheduled tick uses the new interval.
func (p *Poller) SetInterval(interval time.Duration) {
	if interval <= 0 || interval == p.interval {
		return
	}
	p.interval = interval
	p.limiter.SetLimit(rate.Every(interval))
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent each poll interval.
type TickMsg struct {
	Time time.Time
}

// UnreadMsg carries a fresh unread count.
type UnreadMsg struct {
	Count int
}

// TickCmd returns a command that ticks once per poll interval.
func (p *Poller) TickCmd() tea.Cmd {
	return tea.Tick(p.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// RefreshCmd fetches the unread count if the rate limiter allows it.
// Suppressed or failed fetches produce no message.
func (p *Poller) RefreshCmd() tea.Cmd {
	if !p.limiter.Allow() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		count, err := p.fetch(ctx)
		if err != nil {
			return nil
		}
		return UnreadMsg{Count: count}
	}
}

// HandleTick refreshes and schedules the next tick.
func (p *Poller) HandleTick() tea.Cmd {
	return tea.Batch(p.RefreshCmd(), p.TickCmd())
}
