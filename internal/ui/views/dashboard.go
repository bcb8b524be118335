// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// DashboardAPI is the slice of the API client the player dashboard needs.
type DashboardAPI interface {
	Dashboard(ctx context.Context) (model.DashboardSummary, error)
}

type dashboardLoadedMsg struct {
	summary model.DashboardSummary
	err     error
}

// =============================================================================
// PLAYER DASHBOARD
// =============================================================================

// Dashboard is the landing view after sign-in: next fixture, recent results,
// the member's season statistics and their dues status.
type Dashboard struct {
	api   DashboardAPI
	theme *styles.Theme

	summary model.DashboardSummary
	loading bool
	loaded  bool
	errMsg  string
	width   int
}

// NewDashboard creates the dashboard view.
func NewDashboard(api DashboardAPI, theme *styles.Theme) *Dashboard {
	return &Dashboard{api: api, theme: theme, width: 80}
}

// SetSize updates the available width.
func (v *Dashboard) SetSize(width, _ int) {
	v.width = width
}

// Init starts the first load.
func (v *Dashboard) Init() tea.Cmd {
	return v.load()
}

func (v *Dashboard) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		summary, err := api.Dashboard(ctx)
		return dashboardLoadedMsg{summary: summary, err: err}
	}
}

// Update handles the load result and the refresh key.
func (v *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.summary = msg.summary
		v.loaded = true
		return nil

	case tea.KeyMsg:
		if msg.String() == "r" && !v.loading {
			return v.load()
		}
	}
	return nil
}

// View renders the dashboard.
func (v *Dashboard) View() string {
	if v.loading && !v.loaded {
		return v.theme.LoadingText.Render("Loading dashboard...")
	}
	if v.errMsg != "" && !v.loaded {
		return v.theme.FormError.Render(styles.StatusIndicators.Error+" "+v.errMsg) +
			"\n\n" + v.theme.FormHint.Render("r retry")
	}

	var b strings.Builder
	s := v.summary

	b.WriteString(v.theme.HeaderTitle.Render("Dashboard"))
	b.WriteString("\n\n")

	// Next fixture
	b.WriteString(v.theme.TableHeader.Render("Next match"))
	b.WriteString("\n")
	if s.NextMatch != nil {
		b.WriteString(renderMatchLine(v.theme, *s.NextMatch))
	} else {
		b.WriteString(v.theme.ShortcutDesc.Render("  no upcoming fixtures"))
	}
	b.WriteString("\n\n")

	// Recent results
	b.WriteString(v.theme.TableHeader.Render("Recent results"))
	b.WriteString("\n")
	if len(s.RecentResults) == 0 {
		b.WriteString(v.theme.ShortcutDesc.Render("  no results yet"))
	} else {
		for i, m := range s.RecentResults {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderMatchLine(v.theme, m))
		}
	}
	b.WriteString("\n\n")

	// Season statistics
	b.WriteString(v.theme.TableHeader.Render("My season"))
	b.WriteString("\n  ")
	st := s.Stats
	b.WriteString(v.theme.ShortcutDesc.Render(
		strconv.Itoa(st.MatchesPlayed) + " played · " +
			strconv.Itoa(st.Goals) + " goals · " +
			strconv.Itoa(st.Assists) + " assists · " +
			strconv.Itoa(st.MinutesPlayed) + " min"))
	b.WriteString("\n\n")

	// Dues
	b.WriteString(v.theme.TableHeader.Render("Dues"))
	b.WriteString("\n  ")
	status := s.PaymentStatus
	if status == "" {
		status = "no payment on record"
	}
	b.WriteString(v.theme.PaymentStyle(s.PaymentStatus).Render(status))

	if s.UnreadCount > 0 {
		b.WriteString("\n\n")
		b.WriteString(v.theme.InfoStyle.Render(
			styles.StatusIndicators.Unread + " " + strconv.Itoa(s.UnreadCount) + " unread notifications"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("r refresh"))
	return b.String()
}

// renderMatchLine renders "  Home 2-1 Away · venue" with live matches marked.
func renderMatchLine(theme *styles.Theme, m model.Match) string {
	line := "  " + m.HomeTeam.Name + " " + m.Score() + " " + m.AwayTeam.Name
	if m.Venue != "" {
		line += " · " + m.Venue
	}
	if m.IsLive() {
		return theme.InfoStyle.Render(line + " · LIVE")
	}
	if m.IsFixture() {
		line += " · " + m.KickoffAt.Format("Mon 2 Jan 15:04")
	}
	return theme.TableRow.Render(line)
}
