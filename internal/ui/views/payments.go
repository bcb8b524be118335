// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// PaymentAPI is the slice of the API client the payments view needs.
type PaymentAPI interface {
	MyPayments(ctx context.Context) ([]model.Payment, error)
	UploadPayment(ctx context.Context, filePath string, amount float64, note string) (model.Payment, error)
}

type paymentsLoadedMsg struct {
	payments []model.Payment
	err      error
}

type paymentUploadedMsg struct {
	payment model.Payment
	err     error
}

// =============================================================================
// PAYMENTS VIEW
// =============================================================================

// Payments shows the member's dues history and the receipt upload form. The
// upload posts the receipt file as multipart with a client-side idempotency
// key, so a flaky connection cannot double-submit a payment.
type Payments struct {
	api   PaymentAPI
	theme *styles.Theme

	table   *components.Table
	loading bool
	loaded  bool
	errMsg  string

	// Upload form state
	uploading  bool
	submitting bool
	path       textinput.Model
	amount     textinput.Model
	note       textinput.Model
	focus      int // 0=path 1=amount 2=note 3=submit
	formErr    string
}

// NewPayments creates the payments view in list mode.
func NewPayments(api PaymentAPI, theme *styles.Theme) *Payments {
	path := textinput.New()
	path.Placeholder = "/path/to/receipt.pdf"
	path.CharLimit = 256

	amount := textinput.New()
	amount.Placeholder = "50.00"
	amount.CharLimit = 12

	note := textinput.New()
	note.Placeholder = "optional note"
	note.CharLimit = 140

	cols := []components.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 10},
		{Title: "Note", Width: 28},
	}
	return &Payments{
		api:    api,
		theme:  theme,
		table:  components.NewTable(theme, cols),
		path:   path,
		amount: amount,
		note:   note,
	}
}

// SetSize updates the layout.
func (v *Payments) SetSize(_, height int) {
	if height > 8 {
		v.table.SetHeight(height - 8)
	}
}

// Init starts the first load.
func (v *Payments) Init() tea.Cmd {
	return v.load()
}

// Editing reports whether the upload form has the keyboard.
func (v *Payments) Editing() bool {
	return v.uploading
}

func (v *Payments) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		payments, err := api.MyPayments(ctx)
		return paymentsLoadedMsg{payments: payments, err: err}
	}
}

// Update handles both list and form modes.
func (v *Payments) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case paymentsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.table.SetRows(paymentRows(msg.payments))
		v.loaded = true
		return nil

	case paymentUploadedMsg:
		v.submitting = false
		if msg.err != nil {
			v.formErr = msg.err.Error()
			return nil
		}
		v.closeForm()
		return tea.Batch(
			func() tea.Msg { return ToastMsg{Text: "Receipt submitted for review"} },
			v.load(),
		)

	case tea.KeyMsg:
		if v.uploading {
			return v.updateForm(msg)
		}
		switch msg.String() {
		case "u":
			v.uploading = true
			v.focus = 0
			return v.path.Focus()
		case "up", "k":
			v.table.MoveUp()
		case "down", "j":
			v.table.MoveDown()
		case "r":
			if !v.loading {
				return v.load()
			}
		}
	}
	return nil
}

func (v *Payments) updateForm(msg tea.KeyMsg) tea.Cmd {
	if v.submitting {
		return nil
	}
	switch msg.String() {
	case "esc":
		v.closeForm()
		return nil
	case "tab", "down":
		v.setFocus((v.focus + 1) % 4)
		return nil
	case "shift+tab", "up":
		v.setFocus((v.focus + 3) % 4)
		return nil
	case "enter":
		if v.focus < 3 {
			v.setFocus(v.focus + 1)
			return nil
		}
		return v.submit()
	}

	var cmd tea.Cmd
	switch v.focus {
	case 0:
		v.path, cmd = v.path.Update(msg)
	case 1:
		v.amount, cmd = v.amount.Update(msg)
	case 2:
		v.note, cmd = v.note.Update(msg)
	}
	return cmd
}

func (v *Payments) setFocus(i int) {
	v.focus = i
	v.path.Blur()
	v.amount.Blur()
	v.note.Blur()
	switch i {
	case 0:
		v.path.Focus()
	case 1:
		v.amount.Focus()
	case 2:
		v.note.Focus()
	}
}

func (v *Payments) closeForm() {
	v.uploading = false
	v.submitting = false
	v.formErr = ""
	v.path.SetValue("")
	v.amount.SetValue("")
	v.note.SetValue("")
	v.path.Blur()
	v.amount.Blur()
	v.note.Blur()
}

func (v *Payments) submit() tea.Cmd {
	filePath := strings.TrimSpace(v.path.Value())
	if filePath == "" {
		v.formErr = "receipt path is required"
		return nil
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(v.amount.Value()), 64)
	if err != nil || amount <= 0 {
		v.formErr = "amount must be a positive number"
		return nil
	}
	note := strings.TrimSpace(v.note.Value())

	v.submitting = true
	v.formErr = ""
	api := v.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		payment, err := api.UploadPayment(ctx, filePath, amount, note)
		return paymentUploadedMsg{payment: payment, err: err}
	}
}

func paymentRows(payments []model.Payment) [][]string {
	rows := make([][]string, len(payments))
	for i, p := range payments {
		note := p.Note
		if p.Status == model.PaymentRejected && p.RejectedFor != "" {
			note = p.RejectedFor
		}
		rows[i] = []string{
			p.SubmittedAt.Format("2 Jan 2006"),
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			string(p.Status),
			note,
		}
	}
	return rows
}

// View renders the list or the upload form.
func (v *Payments) View() string {
	if v.uploading {
		return v.viewForm()
	}

	out := v.theme.HeaderTitle.Render("My payments") + "\n\n"
	switch {
	case v.loading && !v.loaded:
		out += v.theme.LoadingText.Render("Loading payments...")
	case v.errMsg != "":
		out += v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.errMsg)
	default:
		out += v.table.View()
	}
	out += "\n\n" + v.theme.FormHint.Render("u upload receipt · ↑/↓ move · r refresh")
	return out
}

func (v *Payments) viewForm() string {
	var b strings.Builder
	b.WriteString(v.theme.HeaderTitle.Render("Upload receipt"))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		input textinput.Model
		idx   int
	}{
		{"Receipt file", v.path, 0},
		{"Amount", v.amount, 1},
		{"Note", v.note, 2},
	}
	for _, f := range fields {
		box := v.theme.FormInput
		if v.focus == f.idx {
			box = v.theme.FormInputFocused
		}
		b.WriteString(v.theme.FormLabel.Render(f.label) + " " + box.Render(f.input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.submitting {
		b.WriteString(v.theme.LoadingText.Render("Uploading..."))
	} else if v.focus == 3 {
		b.WriteString(v.theme.ButtonActive.Render("Submit"))
	} else {
		b.WriteString(v.theme.Button.Render("Submit"))
	}

	if v.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(v.theme.FormError.Render(styles.StatusIndicators.Error + " " + v.formErr))
	}

	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("enter submit · tab next field · esc cancel"))
	return b.String()
}
