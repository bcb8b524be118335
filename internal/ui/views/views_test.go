// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// =============================================================================
// LOGIN
// =============================================================================

type fakeAuth struct {
	loginErr error
	calls    int
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) error {
	f.calls++
	return f.loginErr
}

func TestLogin_RequiresCredentials(t *testing.T) {
	auth := &fakeAuth{}
	v := NewLogin(auth, testTheme())

	// Jump to the submit button and press enter with empty fields.
	v.setFocus(2)
	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("empty form must not submit")
	}
	if auth.calls != 0 {
		t.Error("authenticator should not have been called")
	}
	if !strings.Contains(v.View(), "required") {
		t.Error("validation error should be rendered")
	}
}

func TestLogin_SurfacesServerError(t *testing.T) {
	auth := &fakeAuth{loginErr: errors.New("invalid credentials")}
	v := NewLogin(auth, testTheme())
	v.username.SetValue("akovac")
	v.password.SetValue("pw")
	v.setFocus(2)

	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("filled form should submit")
	}
	result := cmd()
	v.Update(result)

	if auth.calls != 1 {
		t.Fatalf("login calls = %d, want 1", auth.calls)
	}
	if !strings.Contains(v.View(), "invalid credentials") {
		t.Error("server error should be shown verbatim")
	}
	if v.submitting {
		t.Error("form should accept input again after a failure")
	}
}

func TestLogin_IgnoresKeysWhileSubmitting(t *testing.T) {
	auth := &fakeAuth{}
	v := NewLogin(auth, testTheme())
	v.username.SetValue("akovac")
	v.password.SetValue("pw")
	v.setFocus(2)
	v.Update(key("enter")) // now submitting

	if cmd := v.Update(key("enter")); cmd != nil {
		t.Error("a second enter during submission must be ignored")
	}
}

// =============================================================================
// REGISTER
// =============================================================================

type fakeRegistrar struct {
	message string
	err     error
}

func (f *fakeRegistrar) Register(ctx context.Context, reg model.Registration) (string, error) {
	return f.message, f.err
}

func TestRegister_PasswordMismatch(t *testing.T) {
	v := NewRegister(&fakeRegistrar{}, testTheme())
	v.inputs[2].SetValue("akovac")
	v.inputs[3].SetValue("a@club.test")
	v.inputs[4].SetValue("one")
	v.inputs[5].SetValue("two")
	v.setFocus(registerFieldCount)

	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("mismatched passwords must not submit")
	}
	if !strings.Contains(v.View(), "do not match") {
		t.Error("mismatch error should be rendered")
	}
}

func TestRegister_SuccessReturnsToLogin(t *testing.T) {
	v := NewRegister(&fakeRegistrar{message: "check your inbox"}, testTheme())
	v.inputs[2].SetValue("akovac")
	v.inputs[3].SetValue("a@club.test")
	v.inputs[4].SetValue("pw")
	v.inputs[5].SetValue("pw")
	v.setFocus(registerFieldCount)

	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("valid form should submit")
	}
	cmd = v.Update(cmd())
	if cmd == nil {
		t.Fatal("success should produce follow-up messages")
	}

	// The batch carries the toast and the navigation message.
	var sawLogin, sawToast bool
	collect(t, cmd, func(msg tea.Msg) {
		switch m := msg.(type) {
		case ShowLoginMsg:
			sawLogin = true
		case ToastMsg:
			sawToast = true
			if m.Text != "check your inbox" {
				t.Errorf("toast text = %q", m.Text)
			}
		}
	})
	if !sawLogin || !sawToast {
		t.Errorf("sawLogin=%v sawToast=%v, want both", sawLogin, sawToast)
	}
}

// collect runs a command tree (including batches) and hands every produced
// message to fn.
func collect(t *testing.T, cmd tea.Cmd, fn func(tea.Msg)) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			collect(t, c, fn)
		}
		return
	}
	fn(msg)
}

// =============================================================================
// MATCHES
// =============================================================================

type fakeMatchAPI struct {
	fixtures []model.Match
	results  []model.Match
	live     []model.Match
}

func (f *fakeMatchAPI) Fixtures(ctx context.Context) ([]model.Match, error)    { return f.fixtures, nil }
func (f *fakeMatchAPI) Results(ctx context.Context) ([]model.Match, error)     { return f.results, nil }
func (f *fakeMatchAPI) LiveMatches(ctx context.Context) ([]model.Match, error) { return f.live, nil }

func testMatch(home, away string, status model.MatchStatus) model.Match {
	return model.Match{
		HomeTeam:  model.Team{Name: home},
		AwayTeam:  model.Team{Name: away},
		Status:    status,
		KickoffAt: time.Date(2025, 9, 6, 15, 0, 0, 0, time.UTC),
	}
}

func TestMatches_TabSwitchLoadsTab(t *testing.T) {
	api := &fakeMatchAPI{
		fixtures: []model.Match{testMatch("First Team", "Rovers", model.MatchScheduled)},
		results:  []model.Match{testMatch("United", "First Team", model.MatchFinished)},
	}
	v := NewMatches(api, testTheme())

	v.Update(v.Init()())
	if !strings.Contains(v.View(), "Rovers") {
		t.Fatal("fixtures tab should show fixtures")
	}

	cmd := v.Update(key("tab"))
	if cmd == nil {
		t.Fatal("switching tabs should trigger a load")
	}
	v.Update(cmd())
	if !strings.Contains(v.View(), "United") {
		t.Error("results tab should show results")
	}
}

func TestMatches_StaleLoadDiscarded(t *testing.T) {
	api := &fakeMatchAPI{
		fixtures: []model.Match{testMatch("First Team", "Rovers", model.MatchScheduled)},
	}
	v := NewMatches(api, testTheme())

	staleCmd := v.Init()
	v.Update(key("tab")) // now on results before fixtures finished loading

	v.Update(staleCmd())
	if strings.Contains(v.View(), "Rovers") {
		t.Error("a load finishing for a previous tab must be discarded")
	}
}

// =============================================================================
// STANDINGS
// =============================================================================

type fakeStandingsAPI struct {
	rows []model.Standing
}

func (f *fakeStandingsAPI) Standings(ctx context.Context) ([]model.Standing, error) {
	return f.rows, nil
}

func TestStandings_SortsClientSide(t *testing.T) {
	api := &fakeStandingsAPI{rows: []model.Standing{
		{Team: model.Team{Name: "Bottom"}, Points: 1},
		{Team: model.Team{Name: "Top"}, Points: 30},
	}}
	v := NewStandings(api, testTheme())
	v.Update(v.Init()())

	view := v.View()
	if strings.Index(view, "Top") > strings.Index(view, "Bottom") {
		t.Error("rows should be re-sorted by points before rendering")
	}
}

// =============================================================================
// ADMIN
// =============================================================================

type fakeAdminAPI struct {
	users    []model.User
	teams    []model.Team
	matches  []model.Match
	stats    []model.PlayerStats
	payments []model.Payment

	rejected struct {
		id     int
		reason string
	}
	assigned struct {
		userID int
		teamID int
	}
	removedUser  int
	created      *model.Match
	started      int
	scored       struct{ id, home, away int }
	deletedMatch int
	statCreated  *model.StatEntry
	statUpdated  *model.StatEntry
	statDeleted  int
}

func (f *fakeAdminAPI) AdminDashboard(ctx context.Context) (model.AdminSummary, error) {
	return model.AdminSummary{}, nil
}
func (f *fakeAdminAPI) Users(ctx context.Context) ([]model.User, error) { return f.users, nil }
func (f *fakeAdminAPI) VerifyUser(ctx context.Context, id int) (model.User, error) {
	return model.User{}, nil
}
func (f *fakeAdminAPI) UnverifyUser(ctx context.Context, id int) (model.User, error) {
	return model.User{}, nil
}
func (f *fakeAdminAPI) AssignTeam(ctx context.Context, userID, teamID int) (model.User, error) {
	f.assigned.userID = userID
	f.assigned.teamID = teamID
	return model.User{}, nil
}
func (f *fakeAdminAPI) RemoveFromTeam(ctx context.Context, userID int) (model.User, error) {
	f.removedUser = userID
	return model.User{}, nil
}
func (f *fakeAdminAPI) Teams(ctx context.Context) ([]model.Team, error)     { return f.teams, nil }
func (f *fakeAdminAPI) Matches(ctx context.Context) ([]model.Match, error)  { return f.matches, nil }
func (f *fakeAdminAPI) CreateMatch(ctx context.Context, m model.Match) (model.Match, error) {
	f.created = &m
	return m, nil
}
func (f *fakeAdminAPI) StartMatch(ctx context.Context, id int) (model.Match, error) {
	f.started = id
	return model.Match{}, nil
}
func (f *fakeAdminAPI) UpdateScore(ctx context.Context, id, home, away int) (model.Match, error) {
	f.scored.id = id
	f.scored.home = home
	f.scored.away = away
	return model.Match{}, nil
}
func (f *fakeAdminAPI) DeleteMatch(ctx context.Context, id int) error {
	f.deletedMatch = id
	return nil
}
func (f *fakeAdminAPI) Statistics(ctx context.Context) ([]model.PlayerStats, error) {
	return f.stats, nil
}
func (f *fakeAdminAPI) CreateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error) {
	f.statCreated = &e
	return e, nil
}
func (f *fakeAdminAPI) UpdateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error) {
	f.statUpdated = &e
	return e, nil
}
func (f *fakeAdminAPI) DeleteStatistic(ctx context.Context, id int) error {
	f.statDeleted = id
	return nil
}
func (f *fakeAdminAPI) Payments(ctx context.Context) ([]model.Payment, error) {
	return f.payments, nil
}
func (f *fakeAdminAPI) VerifyPayment(ctx context.Context, id int) (model.Payment, error) {
	return model.Payment{}, nil
}
func (f *fakeAdminAPI) RejectPayment(ctx context.Context, id int, reason string) (model.Payment, error) {
	f.rejected.id = id
	f.rejected.reason = reason
	return model.Payment{}, nil
}

func TestAdmin_RejectPaymentNeedsReason(t *testing.T) {
	api := &fakeAdminAPI{payments: []model.Payment{{ID: 42, PlayerName: "Ana Kovac", Amount: 50}}}
	v := NewAdmin(api, testTheme())
	v.tab = adminPayments
	v.Update(v.load()())

	v.Update(key("x")) // open the reject prompt
	if !v.rejecting {
		t.Fatal("x should open the reject prompt")
	}

	// Enter with no reason keeps the prompt open.
	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("empty reason must not submit")
	}

	v.reason.SetValue("wrong amount")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a filled reason should submit")
	}
	cmd() // runs the rejection

	if api.rejected.id != 42 || api.rejected.reason != "wrong amount" {
		t.Errorf("rejected = %+v", api.rejected)
	}
}

func TestAdmin_AssignTeamPromptsForTeam(t *testing.T) {
	api := &fakeAdminAPI{
		users: []model.User{{ID: 7, Username: "akovac"}},
		teams: []model.Team{{ID: 1, Name: "First Team"}, {ID: 2, Name: "Reserves"}},
	}
	v := NewAdmin(api, testTheme())
	v.tab = adminMembers
	v.Update(v.load()())

	v.Update(key("t"))
	if v.form == nil {
		t.Fatal("t should open the assign-team prompt")
	}
	if !v.Editing() {
		t.Error("an open prompt must capture the keyboard")
	}

	v.form.inputs[0].SetValue("first")
	if cmd := v.Update(key("enter")); cmd != nil || v.form == nil {
		t.Fatal("a non-numeric team id must keep the prompt open")
	}

	v.form.inputs[0].SetValue("2")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a numeric team id should submit")
	}
	cmd()
	if api.assigned.userID != 7 || api.assigned.teamID != 2 {
		t.Errorf("assigned = %+v", api.assigned)
	}
}

func TestAdmin_RemoveFromTeamOnlyWhenAssigned(t *testing.T) {
	api := &fakeAdminAPI{users: []model.User{
		{ID: 3, Username: "bnovak"},
		{ID: 4, Username: "akovac", Team: &model.Team{ID: 1, Name: "First Team"}},
	}}
	v := NewAdmin(api, testTheme())
	v.tab = adminMembers
	v.Update(v.load()())

	if cmd := v.Update(key("x")); cmd != nil {
		t.Fatal("removing an unassigned member must be a no-op")
	}

	v.Update(key("j")) // select the assigned member
	cmd := v.Update(key("x"))
	if cmd == nil {
		t.Fatal("x should remove the selected member from their team")
	}
	cmd()
	if api.removedUser != 4 {
		t.Errorf("removed user = %d, want 4", api.removedUser)
	}
}

func TestAdmin_ScheduleMatch(t *testing.T) {
	api := &fakeAdminAPI{}
	v := NewAdmin(api, testTheme())
	v.tab = adminMatches
	v.Update(v.load()())

	v.Update(key("n"))
	if v.form == nil {
		t.Fatal("n should open the schedule form")
	}
	v.form.inputs[0].SetValue("1")
	v.form.inputs[1].SetValue("1")
	v.form.inputs[2].SetValue("2026-03-14 15:00")
	v.form.inputs[3].SetValue("Club Ground")
	v.form.setFocus(3)
	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("a team playing itself must be rejected")
	}

	v.form.inputs[1].SetValue("2")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a valid form should submit")
	}
	cmd()
	if api.created == nil {
		t.Fatal("match was not created")
	}
	if api.created.HomeTeam.ID != 1 || api.created.AwayTeam.ID != 2 || api.created.Venue != "Club Ground" {
		t.Errorf("created = %+v", api.created)
	}
	if api.created.Status != model.MatchScheduled {
		t.Errorf("status = %q, want scheduled", api.created.Status)
	}
}

func TestAdmin_ScoreUpdate(t *testing.T) {
	live := testMatch("First Team", "Rovers", model.MatchLive)
	live.ID = 11
	api := &fakeAdminAPI{matches: []model.Match{live}}
	v := NewAdmin(api, testTheme())
	v.tab = adminMatches
	v.Update(v.load()())

	v.Update(key("e"))
	if v.form == nil {
		t.Fatal("e should open the score prompt for a live match")
	}

	v.form.inputs[0].SetValue("three-1")
	if cmd := v.Update(key("enter")); cmd != nil || v.form == nil {
		t.Fatal("a malformed score must keep the prompt open")
	}

	v.form.inputs[0].SetValue("3-1")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a well-formed score should submit")
	}
	cmd()
	if api.scored.id != 11 || api.scored.home != 3 || api.scored.away != 1 {
		t.Errorf("scored = %+v", api.scored)
	}
}

func TestAdmin_DeleteMatchNeedsConfirmation(t *testing.T) {
	m := testMatch("First Team", "Rovers", model.MatchScheduled)
	m.ID = 5
	api := &fakeAdminAPI{matches: []model.Match{m}}
	v := NewAdmin(api, testTheme())
	v.tab = adminMatches
	v.Update(v.load()())

	v.Update(key("d"))
	if cmd := v.Update(key("q")); cmd != nil {
		t.Fatal("any key but y must cancel the delete")
	}
	if api.deletedMatch != 0 {
		t.Fatal("a cancelled delete must not call the API")
	}

	v.Update(key("d"))
	cmd := v.Update(key("y"))
	if cmd == nil {
		t.Fatal("y should confirm the delete")
	}
	cmd()
	if api.deletedMatch != 5 {
		t.Errorf("deleted match = %d, want 5", api.deletedMatch)
	}
}

func TestAdmin_RecordStatistic(t *testing.T) {
	api := &fakeAdminAPI{stats: []model.PlayerStats{{UserID: 9, PlayerName: "Ana Kovac"}}}
	v := NewAdmin(api, testTheme())
	v.tab = adminStats
	v.Update(v.load()())

	v.Update(key("n"))
	if v.form == nil {
		t.Fatal("n should open the entry form")
	}
	if got := v.form.inputs[0].Value(); got != "9" {
		t.Errorf("player id prefilled = %q, want 9", got)
	}
	v.form.inputs[1].SetValue("4")
	v.form.inputs[2].SetValue("2")
	v.form.inputs[3].SetValue("1")
	v.form.inputs[4].SetValue("88")
	v.form.setFocus(4)
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a filled form should submit")
	}
	cmd()
	if api.statCreated == nil {
		t.Fatal("entry was not created")
	}
	e := *api.statCreated
	if e.UserID != 9 || e.MatchID != 4 || e.Goals != 2 || e.Assists != 1 || e.Minutes != 88 {
		t.Errorf("entry = %+v", e)
	}
}

func TestAdmin_EditStatisticRequiresEntryID(t *testing.T) {
	api := &fakeAdminAPI{}
	v := NewAdmin(api, testTheme())
	v.tab = adminStats
	v.Update(v.load()())

	v.Update(key("e"))
	if v.form == nil {
		t.Fatal("e should open the edit form")
	}
	v.form.inputs[1].SetValue("9")
	v.form.inputs[2].SetValue("4")
	v.form.setFocus(len(v.form.inputs) - 1)
	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("a missing entry id must keep the form open")
	}

	v.form.inputs[0].SetValue("12")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a complete form should submit")
	}
	cmd()
	if api.statUpdated == nil || api.statUpdated.ID != 12 || api.statUpdated.UserID != 9 {
		t.Errorf("updated = %+v", api.statUpdated)
	}
}

func TestAdmin_DeleteStatisticByEntryID(t *testing.T) {
	api := &fakeAdminAPI{}
	v := NewAdmin(api, testTheme())
	v.tab = adminStats
	v.Update(v.load()())

	v.Update(key("d"))
	if v.form == nil {
		t.Fatal("d should open the delete prompt")
	}
	v.form.inputs[0].SetValue("7")
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("an entry id should submit")
	}
	cmd()
	if api.statDeleted != 7 {
		t.Errorf("deleted entry = %d, want 7", api.statDeleted)
	}
}

// =============================================================================
// PROFILE
// =============================================================================

type fakeProfileAPI struct {
	patch model.UserPatch
	err   error
}

func (f *fakeProfileAPI) UpdateProfile(ctx context.Context, patch model.UserPatch) (model.User, error) {
	f.patch = patch
	return model.User{}, f.err
}

func TestProfile_PatchesOnlyChangedFields(t *testing.T) {
	api := &fakeProfileAPI{}
	v := NewProfile(api, testTheme())
	v.Prefill("Ana", "Kovac", "a@club.test")

	v.inputs[2].SetValue("ana@club.test")
	v.setFocus(profileFieldCount)
	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a changed email should submit")
	}
	msg := cmd()

	saved, ok := msg.(ProfileSavedMsg)
	if !ok {
		t.Fatalf("expected ProfileSavedMsg, got %T", msg)
	}
	if saved.Patch.Email == nil || *saved.Patch.Email != "ana@club.test" {
		t.Errorf("patch email = %v", saved.Patch.Email)
	}
	if saved.Patch.FirstName != nil || saved.Patch.LastName != nil {
		t.Error("unchanged fields must stay out of the patch")
	}
}

func TestProfile_NothingToSave(t *testing.T) {
	v := NewProfile(&fakeProfileAPI{}, testTheme())
	v.Prefill("Ana", "Kovac", "a@club.test")
	v.setFocus(profileFieldCount)

	if cmd := v.Update(key("enter")); cmd != nil {
		t.Fatal("an unchanged form must not submit")
	}
	if !strings.Contains(v.View(), "nothing to save") {
		t.Error("the form should say there is nothing to save")
	}
}

func TestProfile_FailureKeepsEditing(t *testing.T) {
	api := &fakeProfileAPI{err: errors.New("email taken")}
	v := NewProfile(api, testTheme())
	v.Prefill("Ana", "Kovac", "a@club.test")
	v.inputs[2].SetValue("b@club.test")
	v.setFocus(profileFieldCount)

	cmd := v.Update(key("enter"))
	if cmd == nil {
		t.Fatal("a changed email should submit")
	}
	v.Update(cmd())

	if !strings.Contains(v.View(), "email taken") {
		t.Error("server error should be shown verbatim")
	}
	if v.submitting {
		t.Error("form should accept input again after a failure")
	}
}
