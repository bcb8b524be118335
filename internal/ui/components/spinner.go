// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER COMPONENT
// =============================================================================

// Spinner is a loading spinner with an optional message. ASCII frames only,
// so it renders the same over SSH and in minimal terminals.
type Spinner struct {
	spinner spinner.Model
	message string
	theme   *styles.Theme
	active  bool
}

// NewSpinner creates a spinner with the default line animation.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = theme.Spinner

	return Spinner{
		spinner: s,
		message: "Loading",
		theme:   theme,
	}
}

// Start activates the spinner with a message and returns the tick command
// that drives the animation.
func (s *Spinner) Start(message string) tea.Cmd {
	s.active = true
	if message != "" {
		s.message = message
	}
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is currently shown.
func (s *Spinner) Active() bool {
	return s.active
}

// Update advances the animation. Only spinner tick messages are consumed.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner frame and message, or nothing when inactive.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}
	return s.spinner.View() + " " + s.theme.LoadingText.Render(s.message+"...")
}
