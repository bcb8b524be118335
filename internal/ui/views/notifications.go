// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// NotificationAPI is the slice of the API client the notifications panel needs.
type NotificationAPI interface {
	Notifications(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int) error
}

type notificationsLoadedMsg struct {
	items []model.Notification
	err   error
}

type notificationActedMsg struct {
	err error
}

// =============================================================================
// NOTIFICATIONS PANEL
// =============================================================================

// Notifications lists club messages and renders the selected body as
// markdown. Opening a message marks it read on the server.
type Notifications struct {
	api   NotificationAPI
	theme *styles.Theme

	table   *components.Table
	items   []model.Notification
	reading *model.Notification
	body    string // rendered markdown of the open message

	loading bool
	loaded  bool
	errMsg  string
	width   int
}

// NewNotifications creates the notifications panel.
func NewNotifications(api NotificationAPI, theme *styles.Theme) *Notifications {
	cols := []components.Column{
		{Title: "", Width: 4},
		{Title: "Date", Width: 12},
		{Title: "Title", Width: 40},
	}
	return &Notifications{
		api:   api,
		theme: theme,
		table: components.NewTable(theme, cols),
		width: 80,
	}
}

// SetSize updates the layout.
func (v *Notifications) SetSize(width, height int) {
	v.width = width
	if height > 6 {
		v.table.SetHeight(height - 6)
	}
}

// Init starts the first load.
func (v *Notifications) Init() tea.Cmd {
	return v.load()
}

func (v *Notifications) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		items, err := api.Notifications(ctx)
		return notificationsLoadedMsg{items: items, err: err}
	}
}

// Update handles the list, the reading pane and the server actions.
func (v *Notifications) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.items = msg.items
		v.table.SetRows(notificationRows(msg.items))
		v.loaded = true
		return nil

	case notificationActedMsg:
		if msg.err != nil {
			return func() tea.Msg { return ToastMsg{Text: msg.err.Error(), Error: true} }
		}
		return v.load()

	case tea.KeyMsg:
		if v.reading != nil {
			switch msg.String() {
			case "esc", "q", "enter":
				v.reading = nil
				v.body = ""
			}
			return nil
		}

		switch msg.String() {
		case "up", "k":
			v.table.MoveUp()
		case "down", "j":
			v.table.MoveDown()
		case "enter":
			return v.open()
		case "a":
			return v.act(func(ctx context.Context) error { return v.api.MarkAllRead(ctx) })
		case "d":
			if n := v.selected(); n != nil {
				id := n.ID
				return v.act(func(ctx context.Context) error { return v.api.DeleteNotification(ctx, id) })
			}
		case "r":
			if !v.loading {
				return v.load()
			}
		}
	}
	return nil
}

func (v *Notifications) selected() *model.Notification {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.items) {
		return nil
	}
	return &v.items[i]
}

// open renders the selected body and marks it read server-side.
func (v *Notifications) open() tea.Cmd {
	n := v.selected()
	if n == nil {
		return nil
	}
	v.reading = n
	v.body = renderMarkdown(n.Body, v.width-4)

	if n.Read {
		return nil
	}
	n.Read = true
	id := n.ID
	return v.act(func(ctx context.Context) error { return v.api.MarkRead(ctx, id) })
}

func (v *Notifications) act(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return notificationActedMsg{err: fn(ctx)}
	}
}

// renderMarkdown renders a notification body for the terminal, falling back
// to the raw text when glamour cannot cope.
func renderMarkdown(body string, width int) string {
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return body
	}
	out, err := renderer.Render(body)
	if err != nil {
		return body
	}
	return strings.TrimRight(out, "\n")
}

func notificationRows(items []model.Notification) [][]string {
	rows := make([][]string, len(items))
	for i, n := range items {
		marker := ""
		if !n.Read {
			marker = styles.StatusIndicators.Unread
		}
		rows[i] = []string{marker, n.CreatedAt.Format("2 Jan 15:04"), n.Title}
	}
	return rows
}

// View renders the list or the open message.
func (v *Notifications) View() string {
	if v.reading != nil {
		return v.theme.HeaderTitle.Render(v.reading.Title) + "\n\n" +
			v.body + "\n\n" +
			v.theme.FormHint.Render("esc back")
	}

	out := v.theme.HeaderTitle.Render("Notifications") + "\n\n"
	switch {
	case v.loading && !v.loaded:
		out += v.theme.LoadingText.Render("Loading notifications...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}
	out += "\n\n" + v.theme.FormHint.Render("enter read · a mark all read · d delete · r refresh")
	return out
}
