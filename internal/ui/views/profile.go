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

// ProfileAPI is the slice of the API client the profile form needs.
type ProfileAPI interface {
	UpdateProfile(ctx context.Context, patch model.UserPatch) (model.User, error)
}

// ProfileSavedMsg reports a successful profile update. The root model folds
// the patch into the session identity and navigates back to the dashboard.
type ProfileSavedMsg struct {
	User  model.User
	Patch model.UserPatch
}

// ProfileClosedMsg asks the root model to leave the form without saving.
type ProfileClosedMsg struct{}

type profileFailedMsg struct {
	err error
}

// profileFieldCount excludes the submit button position.
const profileFieldCount = 3

// =============================================================================
// PROFILE FORM
// =============================================================================

// Profile edits the signed-in member's own record. Only the fields that
// actually changed go into the patch, mirroring the backend's partial-update
// semantics.
type Profile struct {
	api   ProfileAPI
	theme *styles.Theme

	inputs [profileFieldCount]textinput.Model // first, last, email
	focus  int

	// Values at the last Prefill, used to build the minimal patch.
	origFirst, origLast, origEmail string

	submitting bool
	errMsg     string
	width      int
}

// NewProfile creates the profile form.
func NewProfile(api ProfileAPI, theme *styles.Theme) *Profile {
	v := &Profile{api: api, theme: theme, width: 80}
	for i, placeholder := range []string{"first name", "last name", "email"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 100
		v.inputs[i] = in
	}
	v.setFocus(0)
	return v
}

// SetSize updates the available width.
func (v *Profile) SetSize(width, _ int) {
	v.width = width
}

// Prefill resets the form to the member's current record.
func (v *Profile) Prefill(first, last, email string) {
	v.origFirst, v.origLast, v.origEmail = first, last, email
	v.inputs[0].SetValue(first)
	v.inputs[1].SetValue(last)
	v.inputs[2].SetValue(email)
	v.errMsg = ""
	v.submitting = false
	v.setFocus(0)
}

// Init is a no-op; the root model prefills before navigating here.
func (v *Profile) Init() tea.Cmd {
	return nil
}

// Editing reports that the form always captures text input.
func (v *Profile) Editing() bool {
	return true
}

// Update handles key input and the async save result.
func (v *Profile) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case profileFailedMsg:
		v.submitting = false
		v.errMsg = msg.err.Error()
		return nil

	case tea.KeyMsg:
		if v.submitting {
			return nil
		}
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return ProfileClosedMsg{} }
		case "tab", "down":
			v.setFocus((v.focus + 1) % (profileFieldCount + 1))
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus + profileFieldCount) % (profileFieldCount + 1))
			return nil
		case "enter":
			if v.focus < profileFieldCount {
				v.setFocus(v.focus + 1)
				return nil
			}
			return v.submit()
		}
	}

	if v.focus < profileFieldCount {
		var cmd tea.Cmd
		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		return cmd
	}
	return nil
}

func (v *Profile) setFocus(i int) {
	v.focus = i
	for j := range v.inputs {
		v.inputs[j].Blur()
	}
	if i < profileFieldCount {
		v.inputs[i].Focus()
	}
}

// patch builds the partial update from the fields that differ from the
// prefilled record. A zero patch means nothing changed.
func (v *Profile) patch() model.UserPatch {
	var p model.UserPatch
	if first := strings.TrimSpace(v.inputs[0].Value()); first != v.origFirst {
		p.FirstName = &first
	}
	if last := strings.TrimSpace(v.inputs[1].Value()); last != v.origLast {
		p.LastName = &last
	}
	if email := strings.TrimSpace(v.inputs[2].Value()); email != v.origEmail {
		p.Email = &email
	}
	return p
}

func (v *Profile) submit() tea.Cmd {
	if email := strings.TrimSpace(v.inputs[2].Value()); !strings.Contains(email, "@") {
		v.errMsg = "a valid email is required"
		return nil
	}

	patch := v.patch()
	if patch == (model.UserPatch{}) {
		v.errMsg = "nothing to save"
		return nil
	}

	v.submitting = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		user, err := api.UpdateProfile(ctx, patch)
		if err != nil {
			return profileFailedMsg{err: err}
		}
		return ProfileSavedMsg{User: user, Patch: patch}
	}
}

// View renders the form.
func (v *Profile) View() string {
	var b strings.Builder

	b.WriteString(v.theme.HeaderTitle.Render("My profile"))
	b.WriteString("\n\n")

	for i, label := range []string{"First name", "Last name", "Email"} {
		box := v.theme.FormInput
		if v.focus == i {
			box = v.theme.FormInputFocused
		}
		b.WriteString(v.theme.FormLabel.Render(label) + " " + box.Render(v.inputs[i].View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.submitting {
		b.WriteString(v.theme.LoadingText.Render("Saving..."))
	} else if v.focus == profileFieldCount {
		b.WriteString(v.theme.ButtonActive.Render("Save"))
	} else {
		b.WriteString(v.theme.Button.Render("Save"))
	}

	if v.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("enter save · tab next field · esc back"))
	return b.String()
}
