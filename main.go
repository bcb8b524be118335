// clubdesk - terminal client for the football club membership platform.
//
// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/clubdesk/clubdesk-tui/internal/api"
	"github.com/clubdesk/clubdesk-tui/internal/config"
	"github.com/clubdesk/clubdesk-tui/internal/poll"
	"github.com/clubdesk/clubdesk-tui/internal/session"
	"github.com/clubdesk/clubdesk-tui/internal/storage"
	"github.com/clubdesk/clubdesk-tui/internal/ui/components"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
	"github.com/clubdesk/clubdesk-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Program reference for async sends from the session event sink.
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func sendToProgram(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// =============================================================================
// APPLICATION STATES
// =============================================================================

// appState selects the active view.
type appState int

const (
	stateRestoring appState = iota
	stateLogin
	stateRegister
	stateDashboard
	stateMatches
	stateStandings
	statePlayers
	stateStatistics
	statePayments
	stateNotifications
	stateProfile
	stateAdmin
)

// title returns the header title for a state.
func (s appState) title() string {
	switch s {
	case stateRestoring:
		return "Starting"
	case stateLogin, stateRegister:
		return "Welcome"
	case stateDashboard:
		return "Dashboard"
	case stateMatches:
		return "Matches"
	case stateStandings:
		return "Table"
	case statePlayers:
		return "Roster"
	case stateStatistics:
		return "Statistics"
	case statePayments:
		return "Payments"
	case stateNotifications:
		return "Notifications"
	case stateProfile:
		return "Profile"
	case stateAdmin:
		return "Admin"
	default:
		return ""
	}
}

// =============================================================================
// ROOT MODEL MESSAGES
// =============================================================================

type restoreDoneMsg struct {
	phase session.Phase
}

type sessionEventMsg struct {
	event session.Event
}

type configReloadedMsg struct{}

// =============================================================================
// ROOT MODEL
// =============================================================================

// App is the root Bubble Tea model. It owns routing between views, gates the
// protected ones on the session phase and bridges session events into
// navigation.
type App struct {
	cfg     *config.Config
	theme   *styles.Theme
	manager *session.Manager
	poller  *poll.Poller

	state appState

	login         *views.Login
	register      *views.Register
	dashboard     *views.Dashboard
	matches       *views.Matches
	standings     *views.Standings
	players       *views.Players
	statistics    *views.Statistics
	payments      *views.Payments
	notifications *views.Notifications
	profile       *views.Profile
	admin         *views.Admin

	statusBar *components.StatusBar
	toasts    *components.ToastStack
	spinner   components.Spinner

	width  int
	height int
}

func newApp(cfg *config.Config, theme *styles.Theme, client *api.Client, manager *session.Manager, poller *poll.Poller) *App {
	bar := components.NewStatusBar(theme)
	// Compact mode trades the key hints for room.
	if !cfg.UI.CompactMode {
		bar.Shortcuts = []components.Shortcut{
			{Key: "1-8", Desc: "views"},
			{Key: "^L", Desc: "logout"},
			{Key: "^C", Desc: "quit"},
		}
	}

	return &App{
		cfg:           cfg,
		theme:         theme,
		manager:       manager,
		poller:        poller,
		state:         stateRestoring,
		login:         views.NewLogin(manager, theme),
		register:      views.NewRegister(manager, theme),
		dashboard:     views.NewDashboard(client, theme),
		matches:       views.NewMatches(client, theme),
		standings:     views.NewStandings(client, theme),
		players:       views.NewPlayers(client, theme),
		statistics:    views.NewStatistics(client, theme),
		payments:      views.NewPayments(client, theme),
		notifications: views.NewNotifications(client, theme),
		profile:       views.NewProfile(client, theme),
		admin:         views.NewAdmin(client, theme),
		statusBar:     bar,
		toasts:        components.NewToastStack(),
		spinner:       components.NewSpinner(theme),
		width:         80,
		height:        24,
	}
}

// Init restores the session and starts the notification tick loop.
func (a *App) Init() tea.Cmd {
	manager := a.manager
	restore := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		return restoreDoneMsg{phase: manager.Restore(ctx)}
	}
	cmds := []tea.Cmd{restore, a.spinner.Start("Checking your session")}
	if a.cfg.Notifications.Enabled {
		cmds = append(cmds, a.poller.TickCmd())
	}
	return tea.Batch(cmds...)
}

// authenticated reports whether protected views may be shown.
func (a *App) authenticated() bool {
	return a.manager.Phase() == session.PhaseAuthenticated
}

// Update routes messages between the root concerns and the active view.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The startup spinner only consumes its own tick messages.
	if a.spinner.Active() {
		if cmd := a.spinner.Update(msg); cmd != nil {
			return a, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case restoreDoneMsg:
		a.spinner.Stop()
		if msg.phase == session.PhaseAuthenticated {
			a.statusBar.SetIdentity(a.manager.Identity())
			cmds := []tea.Cmd{a.navigate(stateDashboard)}
			if a.cfg.Notifications.Enabled {
				if refresh := a.poller.RefreshCmd(); refresh != nil {
					cmds = append(cmds, refresh)
				}
			}
			return a, tea.Batch(cmds...)
		}
		a.state = stateLogin
		a.login.Reset()
		return a, nil

	case sessionEventMsg:
		return a.handleSessionEvent(msg.event)

	case poll.TickMsg:
		if a.authenticated() && a.cfg.Notifications.Enabled {
			return a, a.poller.HandleTick()
		}
		return a, a.poller.TickCmd()

	case poll.UnreadMsg:
		a.statusBar.SetUnread(msg.Count)
		return a, nil

	case views.ToastMsg:
		toast := components.NewStatusToast(msg.Text)
		if msg.Error {
			toast = components.NewErrorToast(msg.Text)
		}
		return a, a.toasts.Push(toast)

	case components.ToastExpiredMsg:
		a.toasts.Expire(msg)
		return a, nil

	case views.ShowRegisterMsg:
		a.state = stateRegister
		return a, nil

	case views.ShowLoginMsg:
		a.state = stateLogin
		a.login.Reset()
		return a, nil

	case views.ProfileSavedMsg:
		a.manager.UpdateUser(msg.Patch)
		a.statusBar.SetIdentity(a.manager.Identity())
		return a, tea.Batch(
			a.toasts.Push(components.NewStatusToast("Profile updated")),
			a.navigate(stateDashboard),
		)

	case views.ProfileClosedMsg:
		return a, a.navigate(stateDashboard)

	case views.LoginResultMsg:
		// The view renders the failure; success navigates via the
		// logged-in event.
		return a, a.routeToActive(msg)

	case configReloadedMsg:
		a.cfg = config.Global()
		a.poller.SetInterval(time.Duration(a.cfg.Notifications.PollIntervalSecs) * time.Second)
		return a, a.toasts.Push(components.NewStatusToast("Configuration reloaded"))

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
		return a, a.routeToActive(msg)
	}

	return a, a.routeToActive(msg)
}

// handleGlobalKey processes app-level keys before the active view sees them.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "ctrl+l":
		if a.authenticated() {
			a.manager.Logout()
			return nil, true
		}
	}

	// Digit navigation only applies once signed in and only when the active
	// view is not capturing text input.
	if !a.authenticated() || a.viewEditing() {
		return nil, false
	}

	switch msg.String() {
	case "1":
		return a.navigate(stateDashboard), true
	case "2":
		return a.navigate(stateMatches), true
	case "3":
		return a.navigate(stateStandings), true
	case "4":
		return a.navigate(statePlayers), true
	case "5":
		return a.navigate(stateStatistics), true
	case "6":
		return a.navigate(statePayments), true
	case "7":
		return a.navigate(stateNotifications), true
	case "8":
		return a.navigate(stateProfile), true
	case "0":
		if identity := a.manager.Identity(); identity != nil && identity.IsAdmin() {
			return a.navigate(stateAdmin), true
		}
		return a.toasts.Push(components.NewWarningToast("Admin access required")), true
	}
	return nil, false
}

// viewEditing reports whether the active view currently owns the keyboard
// for text entry.
func (a *App) viewEditing() bool {
	switch a.state {
	case statePayments:
		return a.payments.Editing()
	case statePlayers:
		return a.players.Editing()
	case stateProfile:
		return a.profile.Editing()
	case stateAdmin:
		return a.admin.Editing()
	default:
		return false
	}
}

// navigate switches to a protected view and kicks off its load.
func (a *App) navigate(state appState) tea.Cmd {
	a.state = state
	switch state {
	case stateDashboard:
		return a.dashboard.Init()
	case stateMatches:
		return a.matches.Init()
	case stateStandings:
		return a.standings.Init()
	case statePlayers:
		return a.players.Init()
	case stateStatistics:
		return a.statistics.Init()
	case statePayments:
		return a.payments.Init()
	case stateNotifications:
		return a.notifications.Init()
	case stateProfile:
		if identity := a.manager.Identity(); identity != nil {
			a.profile.Prefill(identity.FirstName, identity.LastName, identity.Email)
		}
		return a.profile.Init()
	case stateAdmin:
		return a.admin.Init()
	default:
		return nil
	}
}

// handleSessionEvent translates session outcomes into navigation.
func (a *App) handleSessionEvent(event session.Event) (tea.Model, tea.Cmd) {
	switch event {
	case session.EventLoggedIn:
		a.statusBar.SetIdentity(a.manager.Identity())
		cmds := []tea.Cmd{a.navigate(stateDashboard)}
		if a.cfg.Notifications.Enabled {
			if refresh := a.poller.RefreshCmd(); refresh != nil {
				cmds = append(cmds, refresh)
			}
		}
		return a, tea.Batch(cmds...)

	case session.EventLoggedOut:
		// Covers explicit logout and the implicit one on a 401.
		a.statusBar.SetIdentity(nil)
		a.statusBar.SetUnread(0)
		a.state = stateLogin
		a.login.Reset()
		return a, nil
	}
	return a, nil
}

// routeToActive forwards a message to the active view only.
func (a *App) routeToActive(msg tea.Msg) tea.Cmd {
	switch a.state {
	case stateLogin:
		return a.login.Update(msg)
	case stateRegister:
		return a.register.Update(msg)
	case stateDashboard:
		return a.dashboard.Update(msg)
	case stateMatches:
		return a.matches.Update(msg)
	case stateStandings:
		return a.standings.Update(msg)
	case statePlayers:
		return a.players.Update(msg)
	case stateStatistics:
		return a.statistics.Update(msg)
	case statePayments:
		return a.payments.Update(msg)
	case stateNotifications:
		return a.notifications.Update(msg)
	case stateProfile:
		return a.profile.Update(msg)
	case stateAdmin:
		return a.admin.Update(msg)
	default:
		return nil
	}
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.statusBar.SetWidth(width)

	body := height - 4 // header, gap, status bar
	for _, v := range []interface{ SetSize(int, int) }{
		a.login, a.register, a.dashboard, a.matches, a.standings,
		a.players, a.statistics, a.payments, a.notifications,
		a.profile, a.admin,
	} {
		v.SetSize(width, body)
	}
}

// View renders the header, the active view, toasts and the status bar.
func (a *App) View() string {
	if a.state == stateRestoring {
		return a.theme.Container.Render(a.spinner.View())
	}

	header := a.theme.Header.Render("clubdesk") + " " +
		a.theme.HeaderSubtitle.Render(a.state.title())

	body := a.routeView()

	out := header + "\n\n" + a.theme.Container.Render(body)
	if a.toasts.Len() > 0 {
		out += "\n\n" + a.toasts.View()
	}
	out += "\n" + a.statusBar.View()
	return out
}

func (a *App) routeView() string {
	switch a.state {
	case stateLogin:
		return a.login.View()
	case stateRegister:
		return a.register.View()
	case stateDashboard:
		return a.dashboard.View()
	case stateMatches:
		return a.matches.View()
	case stateStandings:
		return a.standings.View()
	case statePlayers:
		return a.players.View()
	case stateStatistics:
		return a.statistics.View()
	case statePayments:
		return a.payments.View()
	case stateNotifications:
		return a.notifications.View()
	case stateProfile:
		return a.profile.View()
	case stateAdmin:
		return a.admin.View()
	default:
		return ""
	}
}

// =============================================================================
// STARTUP
// =============================================================================

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			fmt.Printf("clubdesk %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "clubdesk needs an interactive terminal; see 'clubdesk help'")
		os.Exit(1)
	}

	logFile, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	cfg := config.Global()
	styles.ApplyMode(cfg.UI.Theme)
	theme := styles.NewTheme(cfg.UI.Accent)

	dbPath, err := storage.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	kv, err := storage.OpenSQLiteKV(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open local store: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithMaxRetries(cfg.API.MaxRetries)

	manager := session.NewManager(client, kv, func(event session.Event) {
		sendToProgram(sessionEventMsg{event: event})
	})
	client.WithTokenSource(manager.Token)

	// One implicit logout per rejected token; the session manager makes the
	// logout idempotent so repeated 401s are harmless.
	client.OnUnauthorized(func() {
		log.Println("session: token rejected by backend, logging out")
		manager.Logout()
	})

	interval := time.Duration(cfg.Notifications.PollIntervalSecs) * time.Second
	poller := poll.NewPoller(client.UnreadCount, interval)

	app := newApp(cfg, theme, client, manager, poller)
	program := tea.NewProgram(app, tea.WithAltScreen())

	programMu.Lock()
	programRef = program
	programMu.Unlock()

	watcher, err := config.NewWatcher(func() {
		sendToProgram(configReloadedMsg{})
	})
	if err == nil {
		if err := watcher.Watch(); err != nil {
			log.Printf("config: watcher disabled: %v", err)
		}
		defer watcher.Close()
	} else {
		log.Printf("config: watcher unavailable: %v", err)
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to ~/.clubdesk/clubdesk.log so the
// alternate screen stays clean.
func setupLogging() (*os.File, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "clubdesk.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	return f, nil
}

func printUsage() {
	fmt.Println(`clubdesk - terminal client for the club membership platform

Usage:
  clubdesk            start the TUI
  clubdesk version    print version information

Keys (once signed in):
  1-7   dashboard, matches, table, roster, statistics, payments, notifications
  8     edit profile
  0     admin (admins only)
  ctrl+l  sign out
  ctrl+c  quit

Configuration lives in ~/.clubdesk/config.toml; CLUBDESK_* environment
variables override it.`)
}
