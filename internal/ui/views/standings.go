// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// StandingsAPI is the slice of the API client the league table needs.
type StandingsAPI interface {
	Standings(ctx context.Context) ([]model.Standing, error)
}

type standingsLoadedMsg struct {
	rows []model.Standing
	err  error
}

// =============================================================================
// LEAGUE TABLE VIEW
// =============================================================================

// Standings shows the league table. Rows are re-sorted client-side so the
// ordering holds even when the backend returns them unsorted.
type Standings struct {
	api   StandingsAPI
	theme *styles.Theme

	table   *components.Table
	loading bool
	loaded  bool
	errMsg  string
}

// NewStandings creates the league table view.
func NewStandings(api StandingsAPI, theme *styles.Theme) *Standings {
	cols := []components.Column{
		{Title: "#", Width: 3},
		{Title: "Team", Width: 22},
		{Title: "P", Width: 3},
		{Title: "W", Width: 3},
		{Title: "D", Width: 3},
		{Title: "L", Width: 3},
		{Title: "GF", Width: 4},
		{Title: "GA", Width: 4},
		{Title: "GD", Width: 4},
		{Title: "Pts", Width: 4},
	}
	return &Standings{
		api:   api,
		theme: theme,
		table: components.NewTable(theme, cols),
	}
}

// SetSize updates the layout.
func (v *Standings) SetSize(_, height int) {
	if height > 6 {
		v.table.SetHeight(height - 6)
	}
}

// Init starts the first load.
func (v *Standings) Init() tea.Cmd {
	return v.load()
}

func (v *Standings) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		rows, err := api.Standings(ctx)
		return standingsLoadedMsg{rows: rows, err: err}
	}
}

// Update handles load results and navigation.
func (v *Standings) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case standingsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		model.SortStandings(msg.rows)
		v.table.SetRows(standingRows(msg.rows))
		v.loaded = true
		return nil

	case tea.KeyMsg:
		switch msg.String() {
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

func standingRows(rows []model.Standing) [][]string {
	out := make([][]string, len(rows))
	for i, s := range rows {
		gd := strconv.Itoa(s.GoalDifference())
		if s.GoalDifference() > 0 {
			gd = "+" + gd
		}
		out[i] = []string{
			strconv.Itoa(s.Position),
			s.Team.Name,
			strconv.Itoa(s.Played),
			strconv.Itoa(s.Won),
			strconv.Itoa(s.Drawn),
			strconv.Itoa(s.Lost),
			strconv.Itoa(s.GoalsFor),
			strconv.Itoa(s.GoalsAgainst),
			gd,
			strconv.Itoa(s.Points),
		}
	}
	return out
}

// View renders the league table.
func (v *Standings) View() string {
	out := v.theme.HeaderTitle.Render("League table") + "\n\n"

	switch {
	case v.loading && !v.loaded:
		out += v.theme.LoadingText.Render("Loading table...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}

	out += "\n\n" + v.theme.FormHint.Render("↑/↓ move · r refresh")
	return out
}
