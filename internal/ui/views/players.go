// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// RosterAPI is the slice of the API client the roster view needs.
type RosterAPI interface {
	Players(ctx context.Context) ([]model.User, error)
}

type playersLoadedMsg struct {
	players []model.User
	err     error
}

// =============================================================================
// PLAYERS ROSTER VIEW
// =============================================================================

// Players shows the club roster with an incremental name filter.
type Players struct {
	api   RosterAPI
	theme *styles.Theme

	table     *components.Table
	players   []model.User
	filter    textinput.Model
	filtering bool
	loading   bool
	loaded    bool
	errMsg    string
}

// NewPlayers creates the roster view.
func NewPlayers(api RosterAPI, theme *styles.Theme) *Players {
	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.CharLimit = 64

	cols := []components.Column{
		{Title: "Name", Width: 24},
		{Title: "Username", Width: 16},
		{Title: "Team", Width: 18},
		{Title: "Verified", Width: 8},
	}
	return &Players{
		api:    api,
		theme:  theme,
		table:  components.NewTable(theme, cols),
		filter: filter,
	}
}

// SetSize updates the layout.
func (v *Players) SetSize(_, height int) {
	if height > 8 {
		v.table.SetHeight(height - 8)
	}
}

// Init starts the first load.
func (v *Players) Init() tea.Cmd {
	return v.load()
}

// Editing reports whether the filter input has the keyboard.
func (v *Players) Editing() bool {
	return v.filtering
}

func (v *Players) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		players, err := api.Players(ctx)
		return playersLoadedMsg{players: players, err: err}
	}
}

// Update handles load results, the filter input and navigation.
func (v *Players) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case playersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.players = msg.players
		v.loaded = true
		v.applyFilter()
		return nil

	case tea.KeyMsg:
		if v.filtering {
			switch msg.String() {
			case "enter", "esc":
				v.filtering = false
				v.filter.Blur()
				if msg.String() == "esc" {
					v.filter.SetValue("")
					v.applyFilter()
				}
				return nil
			default:
				var cmd tea.Cmd
				v.filter, cmd = v.filter.Update(msg)
				v.applyFilter()
				return cmd
			}
		}

		switch msg.String() {
		case "/":
			v.filtering = true
			return v.filter.Focus()
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

// applyFilter rebuilds the table rows from the current filter text.
func (v *Players) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(v.filter.Value()))
	rows := [][]string{}
	for _, p := range v.players {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.FullName()), needle) &&
			!strings.Contains(strings.ToLower(p.Username), needle) {
			continue
		}
		verified := styles.StatusIndicators.Pending
		if p.IsVerified {
			verified = styles.StatusIndicators.Success
		}
		rows = append(rows, []string{p.FullName(), p.Username, p.TeamName(), verified})
	}
	v.table.SetRows(rows)
}

// View renders the roster.
func (v *Players) View() string {
	out := v.theme.HeaderTitle.Render("Roster") + "\n"
	if v.filtering || v.filter.Value() != "" {
		out += v.theme.FormInputFocused.Render(v.filter.View()) + "\n"
	}
	out += "\n"

	switch {
	case v.loading && !v.loaded:
		out += v.theme.LoadingText.Render("Loading roster...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}

	out += "\n\n" + v.theme.FormHint.Render("/ filter · ↑/↓ move · r refresh")
	return out
}
