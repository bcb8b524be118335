// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// Authenticator is the slice of the session manager the login form needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

// =============================================================================
// LOGIN FORM
// =============================================================================

// Login is the sign-in form. Submission goes through the session manager so
// the token/user pair is persisted and the logged-in event fires; the form
// only renders progress and the server's error message.
type Login struct {
	auth  Authenticator
	theme *styles.Theme

	username textinput.Model
	password textinput.Model
	focus    int // 0=username 1=password 2=submit

	submitting bool
	errMsg     string
	width      int
}

// NewLogin creates the login form with the username field focused.
func NewLogin(auth Authenticator, theme *styles.Theme) *Login {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return &Login{
		auth:     auth,
		theme:    theme,
		username: user,
		password: pass,
		width:    80,
	}
}

// SetSize updates the available width.
func (v *Login) SetSize(width, _ int) {
	v.width = width
}

// Reset clears the form for a fresh sign-in, keeping the username.
func (v *Login) Reset() {
	v.password.SetValue("")
	v.errMsg = ""
	v.submitting = false
	v.setFocus(0)
}

// Update handles key input and the async login result.
func (v *Login) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoginResultMsg:
		v.submitting = false
		if msg.Err != nil {
			// Surfaced verbatim so the member sees what the backend said.
			v.errMsg = msg.Err.Error()
			v.setFocus(1)
		}
		return nil

	case tea.KeyMsg:
		if v.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus((v.focus + 1) % 3)
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + 2) % 3)
			return nil
		case "ctrl+r":
			return func() tea.Msg { return ShowRegisterMsg{} }
		case "enter":
			if v.focus < 2 {
				v.setFocus(v.focus + 1)
				return nil
			}
			return v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	}
	return cmd
}

func (v *Login) setFocus(i int) {
	v.focus = i
	v.username.Blur()
	v.password.Blur()
	switch i {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	}
}

func (v *Login) submit() tea.Cmd {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	if username == "" || password == "" {
		v.errMsg = "username and password are required"
		return nil
	}

	v.submitting = true
	v.errMsg = ""
	auth := v.auth
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return LoginResultMsg{Err: auth.Login(ctx, username, password)}
	}
}

// View renders the form.
func (v *Login) View() string {
	var b strings.Builder

	b.WriteString(v.theme.HeaderTitle.Render("Sign in"))
	b.WriteString("\n\n")

	b.WriteString(v.renderField("Username", v.username, v.focus == 0))
	b.WriteString("\n")
	b.WriteString(v.renderField("Password", v.password, v.focus == 1))
	b.WriteString("\n\n")

	if v.submitting {
		b.WriteString(v.theme.LoadingText.Render("Signing in..."))
	} else if v.focus == 2 {
		b.WriteString(v.theme.ButtonActive.Render("Sign in"))
	} else {
		b.WriteString(v.theme.Button.Render("Sign in"))
	}

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("enter submit · tab next field · ctrl+r register"))
	return b.String()
}

func (v *Login) renderField(label string, input textinput.Model, focused bool) string {
	box := v.theme.FormInput
	if focused {
		box = v.theme.FormInputFocused
	}
	return v.theme.FormLabel.Render(label) + " " + box.Render(input.View())
}
