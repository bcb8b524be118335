// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// kickoffLayout is how admins type kickoff times into the match form.
const kickoffLayout = "2006-01-02 15:04"

// AdminAPI is the slice of the API client the admin view needs.
type AdminAPI interface {
	AdminDashboard(ctx context.Context) (model.AdminSummary, error)
	Users(ctx context.Context) ([]model.User, error)
	VerifyUser(ctx context.Context, userID int) (model.User, error)
	UnverifyUser(ctx context.Context, userID int) (model.User, error)
	AssignTeam(ctx context.Context, userID, teamID int) (model.User, error)
	RemoveFromTeam(ctx context.Context, userID int) (model.User, error)
	Teams(ctx context.Context) ([]model.Team, error)
	Matches(ctx context.Context) ([]model.Match, error)
	CreateMatch(ctx context.Context, m model.Match) (model.Match, error)
	StartMatch(ctx context.Context, id int) (model.Match, error)
	UpdateScore(ctx context.Context, id, home, away int) (model.Match, error)
	DeleteMatch(ctx context.Context, id int) error
	Statistics(ctx context.Context) ([]model.PlayerStats, error)
	CreateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error)
	UpdateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error)
	DeleteStatistic(ctx context.Context, id int) error
	Payments(ctx context.Context) ([]model.Payment, error)
	VerifyPayment(ctx context.Context, id int) (model.Payment, error)
	RejectPayment(ctx context.Context, id int, reason string) (model.Payment, error)
}

// adminTab indexes the admin tabs.
type adminTab int

const (
	adminOverview adminTab = iota
	adminMembers
	adminMatches
	adminStats
	adminPayments
)

var adminTabLabels = []string{"Overview", "Members", "Matches", "Statistics", "Payments"}

type adminSummaryLoadedMsg struct {
	summary model.AdminSummary
	err     error
}

type adminUsersLoadedMsg struct {
	users []model.User
	teams []model.Team
	err   error
}

type adminMatchesLoadedMsg struct {
	matches []model.Match
	teams   []model.Team
	err     error
}

type adminStatsLoadedMsg struct {
	stats []model.PlayerStats
	err   error
}

type adminPaymentsLoadedMsg struct {
	payments []model.Payment
	err      error
}

type adminActedMsg struct {
	tab adminTab
	err error
}

// =============================================================================
// PROMPT FORM
// =============================================================================

// adminField describes one input of an admin prompt form.
type adminField struct {
	label       string
	placeholder string
	value       string
}

// adminForm is a small modal form rendered under the active table. While it
// is open it owns the keyboard.
type adminForm struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	errMsg string
	// submit validates the trimmed values and returns the command to run.
	submit func(values []string) (tea.Cmd, error)
}

func newAdminForm(title string, submit func([]string) (tea.Cmd, error), fields ...adminField) *adminForm {
	f := &adminForm{title: title, submit: submit}
	for _, fd := range fields {
		in := textinput.New()
		in.Placeholder = fd.placeholder
		in.CharLimit = 64
		in.SetValue(fd.value)
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, in)
	}
	f.inputs[0].Focus()
	return f
}

func (f *adminForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[i].Focus()
}

// =============================================================================
// ADMIN VIEW
// =============================================================================

// Admin is the management surface: club totals, member verification and team
// assignment, match scheduling and scoring, statistic entry, payment review.
// The root model only routes here for role=admin; the backend enforces the
// same gate on every call.
type Admin struct {
	api   AdminAPI
	theme *styles.Theme

	tab      adminTab
	summary  model.AdminSummary
	users    []model.User
	teams    []model.Team
	matches  []model.Match
	stats    []model.PlayerStats
	payments []model.Payment

	memberTable  *components.Table
	matchTable   *components.Table
	statTable    *components.Table
	paymentTable *components.Table

	// Reject-reason prompt state
	rejecting bool
	rejectID  int
	reason    textinput.Model

	// Open prompt form, nil when none.
	form *adminForm

	// Match pending the delete confirmation, 0 when none.
	deleteMatchID int

	loading bool
	errMsg  string
	width   int
}

// NewAdmin creates the admin view on the overview tab.
func NewAdmin(api AdminAPI, theme *styles.Theme) *Admin {
	reason := textinput.New()
	reason.Placeholder = "rejection reason"
	reason.CharLimit = 140

	memberCols := []components.Column{
		{Title: "Name", Width: 22},
		{Title: "Username", Width: 14},
		{Title: "Team", Width: 16},
		{Title: "Verified", Width: 8},
	}
	matchCols := []components.Column{
		{Title: "Kickoff", Width: 13},
		{Title: "Home", Width: 16},
		{Title: "Score", Width: 7},
		{Title: "Away", Width: 16},
		{Title: "Status", Width: 10},
	}
	statCols := []components.Column{
		{Title: "Player", Width: 22},
		{Title: "P", Width: 4},
		{Title: "G", Width: 4},
		{Title: "A", Width: 4},
		{Title: "Min", Width: 6},
	}
	paymentCols := []components.Column{
		{Title: "Date", Width: 12},
		{Title: "Member", Width: 20},
		{Title: "Amount", Width: 10},
		{Title: "Status", Width: 10},
	}
	return &Admin{
		api:          api,
		theme:        theme,
		memberTable:  components.NewTable(theme, memberCols),
		matchTable:   components.NewTable(theme, matchCols),
		statTable:    components.NewTable(theme, statCols),
		paymentTable: components.NewTable(theme, paymentCols),
		reason:       reason,
		width:        80,
	}
}

// SetSize updates the layout.
func (v *Admin) SetSize(width, height int) {
	v.width = width
	if height > 8 {
		v.memberTable.SetHeight(height - 8)
		v.matchTable.SetHeight(height - 8)
		v.statTable.SetHeight(height - 8)
		v.paymentTable.SetHeight(height - 8)
	}
}

// Init loads the overview tab.
func (v *Admin) Init() tea.Cmd {
	return v.load()
}

// Editing reports whether a prompt has the keyboard.
func (v *Admin) Editing() bool {
	return v.rejecting || v.form != nil
}

func (v *Admin) load() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	api := v.api
	switch v.tab {
	case adminMembers:
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			users, err := api.Users(ctx)
			if err != nil {
				return adminUsersLoadedMsg{err: err}
			}
			// The team list only feeds the assign-team hint.
			teams, _ := api.Teams(ctx)
			return adminUsersLoadedMsg{users: users, teams: teams}
		}
	case adminMatches:
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			matches, err := api.Matches(ctx)
			if err != nil {
				return adminMatchesLoadedMsg{err: err}
			}
			teams, _ := api.Teams(ctx)
			return adminMatchesLoadedMsg{matches: matches, teams: teams}
		}
	case adminStats:
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			stats, err := api.Statistics(ctx)
			return adminStatsLoadedMsg{stats: stats, err: err}
		}
	case adminPayments:
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			payments, err := api.Payments(ctx)
			return adminPaymentsLoadedMsg{payments: payments, err: err}
		}
	default:
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			summary, err := api.AdminDashboard(ctx)
			return adminSummaryLoadedMsg{summary: summary, err: err}
		}
	}
}

// Update handles tab switching, table actions and the prompts.
func (v *Admin) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminSummaryLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.summary = msg.summary
		return nil

	case adminUsersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.users = msg.users
		v.teams = msg.teams
		v.memberTable.SetRows(adminUserRows(msg.users))
		return nil

	case adminMatchesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.matches = msg.matches
		v.teams = msg.teams
		v.matchTable.SetRows(adminMatchRows(msg.matches))
		return nil

	case adminStatsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.stats = msg.stats
		v.statTable.SetRows(adminStatRows(msg.stats))
		return nil

	case adminPaymentsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return nil
		}
		v.payments = msg.payments
		v.paymentTable.SetRows(adminPaymentRows(msg.payments))
		return nil

	case adminActedMsg:
		if msg.err != nil {
			return func() tea.Msg { return ToastMsg{Text: msg.err.Error(), Error: true} }
		}
		if msg.tab != v.tab {
			return nil
		}
		return v.load()

	case tea.KeyMsg:
		if v.form != nil {
			return v.updateForm(msg)
		}
		if v.rejecting {
			return v.updateRejectPrompt(msg)
		}
		return v.updateKeys(msg)
	}
	return nil
}

func (v *Admin) updateKeys(msg tea.KeyMsg) tea.Cmd {
	if v.deleteMatchID != 0 {
		id := v.deleteMatchID
		v.deleteMatchID = 0
		if msg.String() == "y" {
			return v.act(func(ctx context.Context) error {
				return v.api.DeleteMatch(ctx, id)
			})
		}
		return nil
	}

	n := adminTab(len(adminTabLabels))
	switch msg.String() {
	case "left", "h":
		return v.switchTab((v.tab + n - 1) % n)
	case "right", "l", "tab":
		return v.switchTab((v.tab + 1) % n)
	case "r":
		if !v.loading {
			return v.load()
		}
		return nil
	}

	switch v.tab {
	case adminMembers:
		return v.updateMemberKeys(msg)
	case adminMatches:
		return v.updateMatchKeys(msg)
	case adminStats:
		return v.updateStatKeys(msg)
	case adminPayments:
		return v.updatePaymentKeys(msg)
	}
	return nil
}

func (v *Admin) updateMemberKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.memberTable.MoveUp()
	case "down", "j":
		v.memberTable.MoveDown()
	case "v":
		if u := v.selectedUser(); u != nil {
			id := u.ID
			return v.act(func(ctx context.Context) error {
				_, err := v.api.VerifyUser(ctx, id)
				return err
			})
		}
	case "u":
		if u := v.selectedUser(); u != nil {
			id := u.ID
			return v.act(func(ctx context.Context) error {
				_, err := v.api.UnverifyUser(ctx, id)
				return err
			})
		}
	case "t":
		if u := v.selectedUser(); u != nil {
			v.openAssignTeamForm(*u)
		}
	case "x":
		if u := v.selectedUser(); u != nil && u.Team != nil {
			id := u.ID
			return v.act(func(ctx context.Context) error {
				_, err := v.api.RemoveFromTeam(ctx, id)
				return err
			})
		}
	}
	return nil
}

func (v *Admin) updateMatchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.matchTable.MoveUp()
	case "down", "j":
		v.matchTable.MoveDown()
	case "n":
		v.openCreateMatchForm()
	case "s":
		if m := v.selectedMatch(); m != nil && m.IsFixture() {
			id := m.ID
			return v.act(func(ctx context.Context) error {
				_, err := v.api.StartMatch(ctx, id)
				return err
			})
		}
	case "e":
		if m := v.selectedMatch(); m != nil && !m.IsFixture() {
			v.openScoreForm(*m)
		}
	case "d":
		if m := v.selectedMatch(); m != nil {
			v.deleteMatchID = m.ID
		}
	}
	return nil
}

func (v *Admin) updateStatKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.statTable.MoveUp()
	case "down", "j":
		v.statTable.MoveDown()
	case "n":
		v.openCreateStatForm()
	case "e":
		v.openEditStatForm()
	case "d":
		v.openDeleteStatForm()
	}
	return nil
}

func (v *Admin) updatePaymentKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.paymentTable.MoveUp()
	case "down", "j":
		v.paymentTable.MoveDown()
	case "v":
		if p := v.selectedPayment(); p != nil {
			id := p.ID
			return v.act(func(ctx context.Context) error {
				_, err := v.api.VerifyPayment(ctx, id)
				return err
			})
		}
	case "x":
		if p := v.selectedPayment(); p != nil {
			v.rejecting = true
			v.rejectID = p.ID
			v.reason.SetValue("")
			return v.reason.Focus()
		}
	}
	return nil
}

func (v *Admin) updateRejectPrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		v.rejecting = false
		v.reason.Blur()
		return nil
	case "enter":
		reason := strings.TrimSpace(v.reason.Value())
		if reason == "" {
			return nil
		}
		v.rejecting = false
		v.reason.Blur()
		id := v.rejectID
		return v.act(func(ctx context.Context) error {
			_, err := v.api.RejectPayment(ctx, id, reason)
			return err
		})
	}
	var cmd tea.Cmd
	v.reason, cmd = v.reason.Update(msg)
	return cmd
}

func (v *Admin) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := v.form
	switch msg.String() {
	case "esc":
		v.form = nil
		return nil
	case "tab", "down":
		f.setFocus((f.focus + 1) % len(f.inputs))
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
		return nil
	case "enter":
		if f.focus < len(f.inputs)-1 {
			f.setFocus(f.focus + 1)
			return nil
		}
		values := make([]string, len(f.inputs))
		for i := range f.inputs {
			values[i] = strings.TrimSpace(f.inputs[i].Value())
		}
		cmd, err := f.submit(values)
		if err != nil {
			f.errMsg = err.Error()
			return nil
		}
		v.form = nil
		return cmd
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// =============================================================================
// PROMPT FORMS
// =============================================================================

func (v *Admin) openAssignTeamForm(u model.User) {
	userID := u.ID
	v.form = newAdminForm("Assign "+u.FullName()+" to a team",
		func(values []string) (tea.Cmd, error) {
			teamID, err := strconv.Atoi(values[0])
			if err != nil || teamID <= 0 {
				return nil, errors.New("team must be a numeric id")
			}
			return v.act(func(ctx context.Context) error {
				_, err := v.api.AssignTeam(ctx, userID, teamID)
				return err
			}), nil
		},
		adminField{label: "Team ID", placeholder: v.teamHint()},
	)
}

func (v *Admin) openCreateMatchForm() {
	v.form = newAdminForm("Schedule match",
		func(values []string) (tea.Cmd, error) {
			home, err1 := strconv.Atoi(values[0])
			away, err2 := strconv.Atoi(values[1])
			if err1 != nil || err2 != nil || home <= 0 || away <= 0 {
				return nil, errors.New("teams must be numeric ids")
			}
			if home == away {
				return nil, errors.New("a team cannot play itself")
			}
			kickoff, err := time.ParseInLocation(kickoffLayout, values[2], time.Local)
			if err != nil {
				return nil, errors.New("kickoff must look like " + kickoffLayout)
			}
			m := model.Match{
				HomeTeam:  model.Team{ID: home},
				AwayTeam:  model.Team{ID: away},
				KickoffAt: kickoff,
				Venue:     values[3],
				Status:    model.MatchScheduled,
			}
			return v.act(func(ctx context.Context) error {
				_, err := v.api.CreateMatch(ctx, m)
				return err
			}), nil
		},
		adminField{label: "Home team ID", placeholder: v.teamHint()},
		adminField{label: "Away team ID", placeholder: v.teamHint()},
		adminField{label: "Kickoff", placeholder: kickoffLayout},
		adminField{label: "Venue", placeholder: "Club Ground"},
	)
}

func (v *Admin) openScoreForm(m model.Match) {
	id := m.ID
	v.form = newAdminForm("Score "+m.HomeTeam.Name+" vs "+m.AwayTeam.Name,
		func(values []string) (tea.Cmd, error) {
			home, away, err := parseScore(values[0])
			if err != nil {
				return nil, err
			}
			return v.act(func(ctx context.Context) error {
				_, err := v.api.UpdateScore(ctx, id, home, away)
				return err
			}), nil
		},
		adminField{
			label:       "Score",
			placeholder: "2-1",
			value:       strconv.Itoa(m.HomeScore) + "-" + strconv.Itoa(m.AwayScore),
		},
	)
}

func (v *Admin) openCreateStatForm() {
	playerID := ""
	if s := v.selectedStat(); s != nil {
		playerID = strconv.Itoa(s.UserID)
	}
	v.form = newAdminForm("Record statistic",
		func(values []string) (tea.Cmd, error) {
			entry, err := parseStatValues(values)
			if err != nil {
				return nil, err
			}
			return v.act(func(ctx context.Context) error {
				_, err := v.api.CreateStatistic(ctx, entry)
				return err
			}), nil
		},
		statFields(playerID)...,
	)
}

func (v *Admin) openEditStatForm() {
	fields := append([]adminField{{label: "Entry ID"}}, statFields("")...)
	v.form = newAdminForm("Edit statistic",
		func(values []string) (tea.Cmd, error) {
			id, err := strconv.Atoi(values[0])
			if err != nil || id <= 0 {
				return nil, errors.New("entry must be a numeric id")
			}
			entry, err := parseStatValues(values[1:])
			if err != nil {
				return nil, err
			}
			entry.ID = id
			return v.act(func(ctx context.Context) error {
				_, err := v.api.UpdateStatistic(ctx, entry)
				return err
			}), nil
		},
		fields...,
	)
}

func (v *Admin) openDeleteStatForm() {
	v.form = newAdminForm("Delete statistic",
		func(values []string) (tea.Cmd, error) {
			id, err := strconv.Atoi(values[0])
			if err != nil || id <= 0 {
				return nil, errors.New("entry must be a numeric id")
			}
			return v.act(func(ctx context.Context) error {
				return v.api.DeleteStatistic(ctx, id)
			}), nil
		},
		adminField{label: "Entry ID"},
	)
}

func statFields(playerID string) []adminField {
	return []adminField{
		{label: "Player ID", value: playerID},
		{label: "Match ID"},
		{label: "Goals", value: "0"},
		{label: "Assists", value: "0"},
		{label: "Minutes", value: "90"},
	}
}

// parseStatValues reads player, match, goals, assists and minutes.
func parseStatValues(values []string) (model.StatEntry, error) {
	player, err1 := strconv.Atoi(values[0])
	match, err2 := strconv.Atoi(values[1])
	if err1 != nil || err2 != nil || player <= 0 || match <= 0 {
		return model.StatEntry{}, errors.New("player and match must be numeric ids")
	}
	nums := make([]int, 3)
	for i, s := range values[2:5] {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return model.StatEntry{}, errors.New("goals, assists and minutes must be non-negative numbers")
		}
		nums[i] = n
	}
	return model.StatEntry{
		UserID:  player,
		MatchID: match,
		Goals:   nums[0],
		Assists: nums[1],
		Minutes: nums[2],
	}, nil
}

func parseScore(s string) (home, away int, err error) {
	h, a, ok := strings.Cut(s, "-")
	if ok {
		home, err = strconv.Atoi(strings.TrimSpace(h))
		if err == nil {
			away, err = strconv.Atoi(strings.TrimSpace(a))
		}
	}
	if !ok || err != nil || home < 0 || away < 0 {
		return 0, 0, errors.New("score must look like 2-1")
	}
	return home, away, nil
}

// teamHint lists the known teams so admins do not have to guess ids.
func (v *Admin) teamHint() string {
	if len(v.teams) == 0 {
		return "team id"
	}
	parts := make([]string, len(v.teams))
	for i, t := range v.teams {
		parts[i] = strconv.Itoa(t.ID) + " " + t.Name
	}
	return strings.Join(parts, " · ")
}

// =============================================================================
// HELPERS
// =============================================================================

func (v *Admin) switchTab(tab adminTab) tea.Cmd {
	if tab == v.tab {
		return nil
	}
	v.tab = tab
	v.errMsg = ""
	v.deleteMatchID = 0
	return v.load()
}

func (v *Admin) act(fn func(ctx context.Context) error) tea.Cmd {
	tab := v.tab
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		return adminActedMsg{tab: tab, err: fn(ctx)}
	}
}

func (v *Admin) selectedUser() *model.User {
	i := v.memberTable.Cursor()
	if i < 0 || i >= len(v.users) {
		return nil
	}
	return &v.users[i]
}

func (v *Admin) selectedMatch() *model.Match {
	i := v.matchTable.Cursor()
	if i < 0 || i >= len(v.matches) {
		return nil
	}
	return &v.matches[i]
}

func (v *Admin) selectedStat() *model.PlayerStats {
	i := v.statTable.Cursor()
	if i < 0 || i >= len(v.stats) {
		return nil
	}
	return &v.stats[i]
}

func (v *Admin) selectedPayment() *model.Payment {
	i := v.paymentTable.Cursor()
	if i < 0 || i >= len(v.payments) {
		return nil
	}
	return &v.payments[i]
}

func adminUserRows(users []model.User) [][]string {
	rows := make([][]string, len(users))
	for i, u := range users {
		verified := styles.StatusIndicators.Pending
		if u.IsVerified {
			verified = styles.StatusIndicators.Success
		}
		rows[i] = []string{u.FullName(), u.Username, u.TeamName(), verified}
	}
	return rows
}

func adminMatchRows(matches []model.Match) [][]string {
	rows := make([][]string, len(matches))
	for i, m := range matches {
		rows[i] = []string{
			m.KickoffAt.Format("2 Jan 15:04"),
			m.HomeTeam.Name,
			m.Score(),
			m.AwayTeam.Name,
			string(m.Status),
		}
	}
	return rows
}

func adminStatRows(stats []model.PlayerStats) [][]string {
	rows := make([][]string, len(stats))
	for i, s := range stats {
		rows[i] = []string{
			s.PlayerName,
			strconv.Itoa(s.MatchesPlayed),
			strconv.Itoa(s.Goals),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.MinutesPlayed),
		}
	}
	return rows
}

func adminPaymentRows(payments []model.Payment) [][]string {
	rows := make([][]string, len(payments))
	for i, p := range payments {
		rows[i] = []string{
			p.SubmittedAt.Format("2 Jan 2006"),
			p.PlayerName,
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			string(p.Status),
		}
	}
	return rows
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the active tab.
func (v *Admin) View() string {
	out := components.RenderTabs(v.theme, adminTabLabels, int(v.tab)) + "\n\n"

	if v.errMsg != "" {
		return out + v.theme.FormError.Render(styles.StatusIndicators.Error+" "+v.errMsg) +
			"\n\n" + v.theme.FormHint.Render("r retry")
	}

	switch v.tab {
	case adminMembers:
		out += v.memberTable.View()
		out += v.viewFooter("v verify · u unverify · t assign team · x remove from team · ↑/↓ move · r refresh")
	case adminMatches:
		out += v.matchTable.View()
		hint := "n new · s start · e score · d delete · ↑/↓ move · r refresh"
		if v.deleteMatchID != 0 {
			hint = "delete " + v.deleteMatchLabel() + "? y confirm · any other key cancels"
		}
		out += v.viewFooter(hint)
	case adminStats:
		out += v.statTable.View()
		out += v.viewFooter("n new entry · e edit entry · d delete entry · ↑/↓ move · r refresh")
	case adminPayments:
		out += v.paymentTable.View()
		if v.rejecting {
			out += "\n\n" + v.theme.FormLabel.Render("Reason") + " " +
				v.theme.FormInputFocused.Render(v.reason.View())
			out += "\n" + v.theme.FormHint.Render("enter reject · esc cancel")
		} else {
			out += v.viewFooter("v verify · x reject · ↑/↓ move · r refresh")
		}
	default:
		out += v.viewOverview()
	}
	return out
}

// viewFooter renders the open form, or the tab's key hint.
func (v *Admin) viewFooter(hint string) string {
	if v.form != nil {
		return "\n\n" + v.viewForm()
	}
	return "\n\n" + v.theme.FormHint.Render(hint)
}

func (v *Admin) viewForm() string {
	f := v.form
	var b strings.Builder
	b.WriteString(v.theme.FormLabel.Render(f.title))
	for i := range f.inputs {
		style := v.theme.FormInput
		if i == f.focus {
			style = v.theme.FormInputFocused
		}
		b.WriteString("\n")
		b.WriteString(v.theme.FormLabel.Render(f.labels[i]) + " " + style.Render(f.inputs[i].View()))
	}
	if f.errMsg != "" {
		b.WriteString("\n" + v.theme.FormError.Render(styles.StatusIndicators.Error+" "+f.errMsg))
	}
	b.WriteString("\n" + v.theme.FormHint.Render("enter next/submit · tab move · esc cancel"))
	return b.String()
}

func (v *Admin) deleteMatchLabel() string {
	for _, m := range v.matches {
		if m.ID == v.deleteMatchID {
			return m.HomeTeam.Name + " vs " + m.AwayTeam.Name
		}
	}
	return "match"
}

func (v *Admin) viewOverview() string {
	if v.loading {
		return v.theme.LoadingText.Render("Loading overview...")
	}
	s := v.summary

	var b strings.Builder
	b.WriteString(v.theme.TableHeader.Render("Club"))
	b.WriteString("\n  ")
	b.WriteString(v.theme.TableRow.Render(strconv.Itoa(s.TotalPlayers) + " players"))
	b.WriteString("\n\n")

	b.WriteString(v.theme.TableHeader.Render("Awaiting review"))
	b.WriteString("\n  ")
	b.WriteString(v.theme.WarningStyle.Render(
		strconv.Itoa(s.PendingVerifications) + " member verifications · " +
			strconv.Itoa(s.PendingPayments) + " payments"))
	b.WriteString("\n\n")

	b.WriteString(v.theme.TableHeader.Render("Upcoming matches"))
	b.WriteString("\n")
	if len(s.UpcomingMatches) == 0 {
		b.WriteString(v.theme.ShortcutDesc.Render("  none scheduled"))
	} else {
		for i, m := range s.UpcomingMatches {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderMatchLine(v.theme, m))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(v.theme.FormHint.Render("←/→ tab · r refresh"))
	return b.String()
}
