// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"sort"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// StatisticsAPI is the slice of the API client the statistics view needs.
type StatisticsAPI interface {
	Statistics(ctx context.Context) ([]model.PlayerStats, error)
}

type statisticsLoadedMsg struct {
	stats []model.PlayerStats
	err   error
}

// =============================================================================
// STATISTICS VIEW
// =============================================================================

// Statistics shows the season scoring charts, top scorers first.
type Statistics struct {
	api   StatisticsAPI
	theme *styles.Theme

	table   *components.Table
	loading bool
	loaded  bool
	errMsg  string
}

// NewStatistics creates the statistics view.
func NewStatistics(api StatisticsAPI, theme *styles.Theme) *Statistics {
	cols := []components.Column{
		{Title: "Player", Width: 24},
		{Title: "P", Width: 3},
		{Title: "G", Width: 3},
		{Title: "A", Width: 3},
		{Title: "Min", Width: 5},
		{Title: "YC", Width: 3},
		{Title: "RC", Width: 3},
	}
	return &Statistics{
		api:   api,
		theme: theme,
		table: components.NewTable(theme, cols),
	}
}

// SetSize updates the layout.
func (v *Statistics) SetSize(_, height int) {
	if height > 6 {
		v.table.SetHeight(height - 6)
	}
}

// Init starts the first load.
func (v *Statistics) Init() tea.Cmd {
	return v.load()
}

func (v *Statistics) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		stats, err := api.Statistics(ctx)
		return statisticsLoadedMsg{stats: stats, err: err}
	}
}

// Update handles load results and navigation.
func (v *Statistics) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statisticsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		// Goals, then assists, then minutes as the tie-breakers.
		sort.SliceStable(msg.stats, func(i, j int) bool {
			if msg.stats[i].Goals != msg.stats[j].Goals {
				return msg.stats[i].Goals > msg.stats[j].Goals
			}
			if msg.stats[i].Assists != msg.stats[j].Assists {
				return msg.stats[i].Assists > msg.stats[j].Assists
			}
			return msg.stats[i].MinutesPlayed > msg.stats[j].MinutesPlayed
		})
		v.table.SetRows(statRows(msg.stats))
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

func statRows(stats []model.PlayerStats) [][]string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.PlayerName,
			strconv.Itoa(s.MatchesPlayed),
			strconv.Itoa(s.Goals),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.MinutesPlayed),
			strconv.Itoa(s.YellowCards),
			strconv.Itoa(s.RedCards),
		}
	}
	return rows
}

// View renders the scoring charts.
func (v *Statistics) View() string {
	out := v.theme.HeaderTitle.Render("Statistics") + "\n\n"

	switch {
	case v.loading && !v.loaded:
		out += v.theme.LoadingText.Render("Loading statistics...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}

	out += "\n\n" + v.theme.FormHint.Render("↑/↓ move · r refresh")
	return out
}
