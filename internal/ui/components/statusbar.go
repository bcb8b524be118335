// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
	"github.com/clubdesk/clubdesk-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Shortcut is a single key hint rendered on the right of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: identity and role on the left, unread badge
// and key hints on the right.
type StatusBar struct {
	Identity    *model.User
	UnreadCount int
	Shortcuts   []Shortcut
	Width       int
	theme       *styles.Theme
}

// NewStatusBar creates a status bar for an 80-column terminal until resized.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetIdentity updates the signed-in user shown on the left. Nil means
// signed out.
func (s *StatusBar) SetIdentity(u *model.User) {
	s.Identity = u
}

// SetUnread updates the unread notification count.
func (s *StatusBar) SetUnread(count int) {
	s.UnreadCount = count
}

// View renders the status bar at the current width.
func (s *StatusBar) View() string {
	left := s.renderIdentity()
	right := s.renderRight()

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)

	// Pad the middle; drop the hints before the identity when cramped.
	gap := s.Width - leftWidth - rightWidth - 2
	if gap < 1 {
		right = s.renderUnreadBadge()
		rightWidth = lipgloss.Width(right)
		gap = s.Width - leftWidth - rightWidth - 2
		if gap < 1 {
			gap = 1
		}
	}

	content := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(content)
}

// renderIdentity renders "Name [role] · team" or a signed-out hint.
func (s *StatusBar) renderIdentity() string {
	if s.Identity == nil {
		return s.theme.ShortcutDesc.Render("not signed in")
	}

	u := s.Identity
	name := s.theme.StatusIdentity.Render(util.TruncateWidth(u.FullName(), 24))
	role := s.theme.RoleStyle(string(u.Role)).Render("[" + string(u.Role) + "]")

	parts := []string{name, role}
	if !u.IsVerified {
		parts = append(parts, s.theme.WarningStyle.Render(styles.StatusIndicators.Warning+" unverified"))
	}
	if team := u.TeamName(); team != "" {
		parts = append(parts, s.theme.ShortcutDesc.Render(util.TruncateWidth(team, 18)))
	}
	return strings.Join(parts, " ")
}

// renderRight renders the unread badge plus shortcut hints.
func (s *StatusBar) renderRight() string {
	parts := []string{}
	if badge := s.renderUnreadBadge(); badge != "" {
		parts = append(parts, badge)
	}
	for _, sc := range s.Shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+s.theme.ShortcutDesc.Render(" "+sc.Desc))
	}
	return strings.Join(parts, "  ")
}

// renderUnreadBadge renders the unread notification count, empty when zero.
func (s *StatusBar) renderUnreadBadge() string {
	if s.UnreadCount <= 0 {
		return ""
	}
	label := strconv.Itoa(s.UnreadCount)
	if s.UnreadCount > 99 {
		label = "99+"
	}
	return s.theme.UnreadBadge.Render(styles.StatusIndicators.Unread + " " + label)
}
