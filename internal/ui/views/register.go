// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// Registrar is the slice of the session manager the registration form needs.
type Registrar interface {
	Register(ctx context.Context, reg model.Registration) (string, error)
}

// =============================================================================
// REGISTRATION FORM
// =============================================================================

const registerFieldCount = 6 // first, last, username, email, password, confirm

// Register is the account creation form. A successful registration does not
// sign the member in; the backend requires an explicit login afterwards.
type Register struct {
	registrar Registrar
	theme     *styles.Theme

	inputs [registerFieldCount]textinput.Model
	focus  int // field index, registerFieldCount means the submit button

	submitting bool
	errMsg     string
	width      int
}

// NewRegister creates the registration form.
func NewRegister(registrar Registrar, theme *styles.Theme) *Register {
	labels := [registerFieldCount]string{
		"first name", "last name", "username", "email", "password", "confirm password",
	}

	v := &Register{
		registrar: registrar,
		theme:     theme,
		width:     80,
	}
	for i := range v.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 128
		if i >= 4 {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		v.inputs[i] = in
	}
	v.inputs[0].Focus()
	return v
}

// SetSize updates the available width.
func (v *Register) SetSize(width, _ int) {
	v.width = width
}

// Update handles key input and the async registration result.
func (v *Register) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RegisterResultMsg:
		v.submitting = false
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return nil
		}
		// Back to the login form; the confirmation rides along as a toast.
		text := msg.Message
		if text == "" {
			text = "Account created. Sign in once an admin verifies you."
		}
		return tea.Batch(
			func() tea.Msg { return ToastMsg{Text: text} },
			func() tea.Msg { return ShowLoginMsg{} },
		)

	case tea.KeyMsg:
		if v.submitting {
			return nil
		}
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return ShowLoginMsg{} }
		case "tab", "down":
			v.setFocus((v.focus + 1) % (registerFieldCount + 1))
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + registerFieldCount) % (registerFieldCount + 1))
			return nil
		case "enter":
			if v.focus < registerFieldCount {
				v.setFocus(v.focus + 1)
				return nil
			}
			return v.submit()
		}
	}

	if v.focus < registerFieldCount {
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return cmd
	}
	return nil
}

func (v *Register) setFocus(i int) {
	v.focus = i
	for j := range v.inputs {
		v.inputs[j].Blur()
	}
	if i < registerFieldCount {
		v.inputs[i].Focus()
	}
}

func (v *Register) submit() tea.Cmd {
	reg := model.Registration{
		FirstName:            strings.TrimSpace(v.inputs[0].Value()),
		LastName:             strings.TrimSpace(v.inputs[1].Value()),
		Username:             strings.TrimSpace(v.inputs[2].Value()),
		Email:                strings.TrimSpace(v.inputs[3].Value()),
		Password:             v.inputs[4].Value(),
		PasswordConfirmation: v.inputs[5].Value(),
	}

	switch {
	case reg.Username == "" || reg.Email == "" || reg.Password == "":
		v.errMsg = "username, email and password are required"
		return nil
	case reg.Password != reg.PasswordConfirmation:
		v.errMsg = "passwords do not match"
		return nil
	}

	v.submitting = true
	v.errMsg = ""
	registrar := v.registrar
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		message, err := registrar.Register(ctx, reg)
		return RegisterResultMsg{Message: message, Err: err}
	}
}

// View renders the form.
func (v *Register) View() string {
	labels := [registerFieldCount]string{
		"First name", "Last name", "Username", "Email", "Password", "Confirm",
	}

	var b strings.Builder
	b.WriteString(v.theme.HeaderTitle.Render("Join the club"))
	b.WriteString("\n\n")

	for i := range v.inputs {
		box := v.theme.FormInput
		if v.focus == i {
			box = v.theme.FormInputFocused
		}
		b.WriteString(v.theme.FormLabel.Render(labels[i]) + " " + box.Render(v.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.submitting {
		b.WriteString(v.theme.LoadingText.Render("Creating account..."))
	} else if v.focus == registerFieldCount {
		b.WriteString(v.theme.ButtonActive.Render("Create account"))
	} else {
		b.WriteString(v.theme.Button.Render("Create account"))
	}

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("enter submit · tab next field · esc back to sign in"))
	return b.String()
}
