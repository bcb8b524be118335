// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/storage"
)

// fakeAuth is a scriptable AuthAPI.
type fakeAuth struct {
	loginFn    func(ctx context.Context, username, password string) (string, model.User, error)
	registerFn func(ctx context.Context, reg model.Registration) (string, error)
	meFn       func(ctx context.Context) (model.User, error)
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (string, model.User, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeAuth) Register(ctx context.Context, reg model.Registration) (string, error) {
	return f.registerFn(ctx, reg)
}

func (f *fakeAuth) Me(ctx context.Context) (model.User, error) {
	return f.meFn(ctx)
}

var testUser = model.User{ID: 1, FirstName: "Ada", Username: "akovac", Role: model.RolePlayer, IsVerified: true}

func okAuth() *fakeAuth {
	return &fakeAuth{
		loginFn: func(ctx context.Context, username, password string) (string, model.User, error) {
			return "tok-1", testUser, nil
		},
		registerFn: func(ctx context.Context, reg model.Registration) (string, error) {
			return "registered", nil
		},
		meFn: func(ctx context.Context) (model.User, error) {
			return testUser, nil
		},
	}
}

func seedSnapshot(t *testing.T, kv storage.KV, token string, u model.User) {
	t.Helper()
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("token", token); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("user", string(data)); err != nil {
		t.Fatal(err)
	}
}

// checkPairing asserts the identity/credential pairing invariant.
func checkPairing(t *testing.T, m *Manager) {
	t.Helper()
	snap := m.Snapshot()
	if (snap.Identity != nil) != (snap.Token != "") {
		t.Fatalf("pairing violated: identity=%v token=%q", snap.Identity, snap.Token)
	}
}

func TestRestore_FreshStart(t *testing.T) {
	kv := storage.NewMemKV()
	m := NewManager(okAuth(), kv, nil)

	if !m.Loading() {
		t.Error("manager should start loading")
	}

	phase := m.Restore(context.Background())

	if phase != PhaseUnauthenticated {
		t.Errorf("phase = %v, want unauthenticated", phase)
	}
	if m.Identity() != nil {
		t.Error("identity should be absent with no persisted data")
	}
	if m.Loading() {
		t.Error("loading should end once restoration resolves")
	}
	checkPairing(t, m)
}

func TestRestore_ValidToken(t *testing.T) {
	kv := storage.NewMemKV()
	// The cached copy is stale: the server's record is authoritative.
	stale := testUser
	stale.FirstName = "Old"
	seedSnapshot(t, kv, "tok-1", stale)

	m := NewManager(okAuth(), kv, nil)
	phase := m.Restore(context.Background())

	if phase != PhaseAuthenticated {
		t.Fatalf("phase = %v, want authenticated", phase)
	}
	id := m.Identity()
	if id == nil || id.FirstName != "Ada" {
		t.Errorf("identity should be the server record, got %+v", id)
	}
	// Persisted copy rewritten to match.
	raw, ok := kv.Get("user")
	if !ok {
		t.Fatal("user key should be persisted")
	}
	var persisted model.User
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.FirstName != "Ada" {
		t.Errorf("persisted identity = %+v, want server record", persisted)
	}
	checkPairing(t, m)
}

func TestRestore_RejectedToken(t *testing.T) {
	kv := storage.NewMemKV()
	seedSnapshot(t, kv, "expired", testUser)

	auth := okAuth()
	auth.meFn = func(ctx context.Context) (model.User, error) {
		return model.User{}, errors.New("unauthorized")
	}

	m := NewManager(auth, kv, nil)
	phase := m.Restore(context.Background())

	if phase != PhaseUnauthenticated {
		t.Fatalf("phase = %v, want unauthenticated", phase)
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("rejected token should be cleared")
	}
	if _, ok := kv.Get("user"); ok {
		t.Error("cached identity should be cleared with the token")
	}
	checkPairing(t, m)
}

func TestRestore_MalformedCachedIdentity(t *testing.T) {
	kv := storage.NewMemKV()
	if err := kv.Set("token", "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("user", "{not json"); err != nil {
		t.Fatal(err)
	}

	meCalled := false
	auth := okAuth()
	auth.meFn = func(ctx context.Context) (model.User, error) {
		meCalled = true
		return testUser, nil
	}

	m := NewManager(auth, kv, nil)
	phase := m.Restore(context.Background())

	if !meCalled {
		t.Error("verification should still run with a malformed cache")
	}
	if phase != PhaseAuthenticated {
		t.Errorf("phase = %v, want authenticated", phase)
	}
	checkPairing(t, m)
}

func TestLogin_Success(t *testing.T) {
	kv := storage.NewMemKV()
	var events []Event
	m := NewManager(okAuth(), kv, func(e Event) { events = append(events, e) })
	m.Restore(context.Background())

	if err := m.Login(context.Background(), "akovac", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if m.Phase() != PhaseAuthenticated {
		t.Errorf("phase = %v", m.Phase())
	}
	if m.Token() != "tok-1" {
		t.Errorf("token = %q", m.Token())
	}
	if len(events) != 1 || events[0] != EventLoggedIn {
		t.Errorf("events = %v, want [EventLoggedIn]", events)
	}
	// Both keys persisted, consistent with the identity.
	tok, _ := kv.Get("token")
	raw, ok := kv.Get("user")
	if tok != "tok-1" || !ok {
		t.Fatalf("persisted pair = (%q, %v)", tok, ok)
	}
	var persisted model.User
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.ID != testUser.ID {
		t.Errorf("persisted identity = %+v", persisted)
	}
	checkPairing(t, m)
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	kv := storage.NewMemKV()
	auth := okAuth()
	auth.loginFn = func(ctx context.Context, username, password string) (string, model.User, error) {
		return "", model.User{}, errors.New("bad credentials")
	}

	var events []Event
	m := NewManager(auth, kv, func(e Event) { events = append(events, e) })
	m.Restore(context.Background())

	err := m.Login(context.Background(), "akovac", "wrong")
	if err == nil || err.Error() != "bad credentials" {
		t.Fatalf("Login = %v, want the server message", err)
	}

	if m.Phase() != PhaseUnauthenticated {
		t.Errorf("phase should return to its prior value, got %v", m.Phase())
	}
	if m.Identity() != nil {
		t.Error("failed login must not set an identity")
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("failed login must not persist anything")
	}
	if len(events) != 0 {
		t.Errorf("failed login should publish no events, got %v", events)
	}
	checkPairing(t, m)
}

func TestLogin_Reentrant(t *testing.T) {
	kv := storage.NewMemKV()
	entered := make(chan struct{})
	release := make(chan struct{})
	auth := okAuth()
	auth.loginFn = func(ctx context.Context, username, password string) (string, model.User, error) {
		close(entered)
		<-release
		return "tok-1", testUser, nil
	}

	m := NewManager(auth, kv, nil)
	m.Restore(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Login(context.Background(), "akovac", "pw") }()

	<-entered

	if err := m.Login(context.Background(), "akovac", "pw"); !errors.Is(err, ErrLoginInFlight) {
		t.Errorf("second login = %v, want ErrLoginInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}
}

func TestRegister_DoesNotTouchSession(t *testing.T) {
	kv := storage.NewMemKV()
	m := NewManager(okAuth(), kv, nil)
	m.Restore(context.Background())

	msg, err := m.Register(context.Background(), model.Registration{Username: "new"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if msg != "registered" {
		t.Errorf("message = %q", msg)
	}
	if m.Phase() != PhaseUnauthenticated || m.Identity() != nil {
		t.Error("registration must not mutate session state")
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("registration must not persist a snapshot")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	kv := storage.NewMemKV()
	seedSnapshot(t, kv, "tok-1", testUser)

	var events []Event
	m := NewManager(okAuth(), kv, func(e Event) { events = append(events, e) })
	m.Restore(context.Background())

	m.Logout()
	firstSnap := m.Snapshot()
	m.Logout()
	secondSnap := m.Snapshot()

	if firstSnap != secondSnap {
		t.Errorf("double logout diverged: %+v vs %+v", firstSnap, secondSnap)
	}
	if m.Phase() != PhaseUnauthenticated {
		t.Errorf("phase = %v", m.Phase())
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("logout should clear the token")
	}
	if _, ok := kv.Get("user"); ok {
		t.Error("logout should clear the cached identity")
	}
	if len(events) != 2 || events[0] != EventLoggedOut || events[1] != EventLoggedOut {
		t.Errorf("events = %v", events)
	}
	checkPairing(t, m)
}

func TestLogout_WinsOverInFlightLogin(t *testing.T) {
	kv := storage.NewMemKV()
	entered := make(chan struct{})
	release := make(chan struct{})
	auth := okAuth()
	auth.loginFn = func(ctx context.Context, username, password string) (string, model.User, error) {
		close(entered)
		<-release
		return "tok-1", testUser, nil
	}

	m := NewManager(auth, kv, nil)
	m.Restore(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Login(context.Background(), "akovac", "pw") }()

	<-entered
	m.Logout()
	close(release)

	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("stale login = %v, want ErrSuperseded", err)
	}

	if m.Phase() != PhaseUnauthenticated {
		t.Errorf("phase = %v, logout must win", m.Phase())
	}
	if m.Identity() != nil || m.Token() != "" {
		t.Error("stale login must not resurrect the session")
	}
	if _, ok := kv.Get("token"); ok {
		t.Error("stale login must not re-persist the snapshot")
	}
	checkPairing(t, m)
}

func TestUpdateUser(t *testing.T) {
	kv := storage.NewMemKV()
	seedSnapshot(t, kv, "tok-1", testUser)
	m := NewManager(okAuth(), kv, nil)
	m.Restore(context.Background())

	verified := true
	m.UpdateUser(model.UserPatch{IsVerified: &verified})

	id := m.Identity()
	if id == nil || !id.IsVerified {
		t.Errorf("identity = %+v, want verified", id)
	}
	if m.Phase() != PhaseAuthenticated {
		t.Error("UpdateUser must not change the phase")
	}
	raw, _ := kv.Get("user")
	var persisted model.User
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatal(err)
	}
	if !persisted.IsVerified {
		t.Error("persisted identity should reflect the update")
	}
	checkPairing(t, m)
}

func TestUpdateUser_NoopWhenUnauthenticated(t *testing.T) {
	kv := storage.NewMemKV()
	m := NewManager(okAuth(), kv, nil)
	m.Restore(context.Background())

	verified := true
	m.UpdateUser(model.UserPatch{IsVerified: &verified})

	if m.Identity() != nil {
		t.Error("UpdateUser on an empty session must be a no-op")
	}
	if _, ok := kv.Get("user"); ok {
		t.Error("no snapshot should be written")
	}
}
