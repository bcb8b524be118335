// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// MatchAPI is the slice of the API client the matches view needs.
type MatchAPI interface {
	Fixtures(ctx context.Context) ([]model.Match, error)
	Results(ctx context.Context) ([]model.Match, error)
	LiveMatches(ctx context.Context) ([]model.Match, error)
}

// matchTab indexes the fixtures/results/live tabs.
type matchTab int

const (
	tabFixtures matchTab = iota
	tabResults
	tabLive
)

var matchTabLabels = []string{"Fixtures", "Results", "Live"}

type matchesLoadedMsg struct {
	tab     matchTab
	matches []model.Match
	err     error
}

// =============================================================================
// MATCHES VIEW
// =============================================================================

// Matches shows the match calendar split over fixtures, results and live
// tabs. Each tab loads lazily on first visit and re-loads on refresh.
type Matches struct {
	api   MatchAPI
	theme *styles.Theme

	tab     matchTab
	table   *components.Table
	matches []model.Match
	loading bool
	errMsg  string
	width   int
}

// NewMatches creates the matches view on the fixtures tab.
func NewMatches(api MatchAPI, theme *styles.Theme) *Matches {
	cols := []components.Column{
		{Title: "Date", Width: 16},
		{Title: "Home", Width: 18},
		{Title: "Score", Width: 6},
		{Title: "Away", Width: 18},
		{Title: "Venue", Width: 16},
	}
	return &Matches{
		api:   api,
		theme: theme,
		table: components.NewTable(theme, cols),
		width: 80,
	}
}

// SetSize updates the layout.
func (v *Matches) SetSize(width, height int) {
	v.width = width
	if height > 8 {
		v.table.SetHeight(height - 8)
	}
}

// Init loads the current tab.
func (v *Matches) Init() tea.Cmd {
	return v.load()
}

func (v *Matches) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	tab := v.tab
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		var (
			matches []model.Match
			err     error
		)
		switch tab {
		case tabResults:
			matches, err = api.Results(ctx)
		case tabLive:
			matches, err = api.LiveMatches(ctx)
		default:
			matches, err = api.Fixtures(ctx)
		}
		return matchesLoadedMsg{tab: tab, matches: matches, err: err}
	}
}

// Update handles tab switching, table navigation and load results.
func (v *Matches) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case matchesLoadedMsg:
		if msg.tab != v.tab {
			return nil // stale load from a previous tab
		}
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.matches = msg.matches
		v.table.SetRows(matchRows(msg.matches))
		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return v.switchTab((v.tab + 2) % 3)
		case "right", "l", "tab":
			return v.switchTab((v.tab + 1) % 3)
		case "up", "k":
			v.table.MoveUp()
		case "down", "j":
			v.table.MoveDown()
		case "g":
			v.table.GotoTop()
		case "G":
			v.table.GotoBottom()
		case "r":
			if !v.loading {
				return v.load()
			}
		}
	}
	return nil
}

func (v *Matches) switchTab(tab matchTab) tea.Cmd {
	if tab == v.tab {
		return nil
	}
	v.tab = tab
	v.matches = nil
	v.table.SetRows(nil)
	return v.load()
}

func matchRows(matches []model.Match) [][]string {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{
			m.KickoffAt.Format("Mon 2 Jan 15:04"),
			m.HomeTeam.Name,
			m.Score(),
			m.AwayTeam.Name,
			m.Venue,
		}
	}
	return rows
}

// View renders the tab row and the match table.
func (v *Matches) View() string {
	out := components.RenderTabs(v.theme, matchTabLabels, int(v.tab)) + "\n\n"

	switch {
	case v.loading && len(v.matches) == 0:
		out += v.theme.LoadingText.Render("Loading matches...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}

	out += "\n\n" + v.theme.FormHint.Render("←/→ tab · ↑/↓ move · r refresh")
	return out
}
