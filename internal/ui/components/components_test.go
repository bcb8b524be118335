// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/clubdesk/clubdesk-tui/internal/model"
	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("")
}

func TestStatusBar_SignedOut(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(80)

	if !strings.Contains(bar.View(), "not signed in") {
		t.Error("signed-out bar should say so")
	}
}

func TestStatusBar_Identity(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(100)
	bar.SetIdentity(&model.User{
		FirstName:  "Ana",
		LastName:   "Kovac",
		Username:   "akovac",
		Role:       model.RolePlayer,
		IsVerified: true,
		Team:       &model.Team{Name: "First Team"},
	})
	bar.SetUnread(3)

	view := bar.View()
	for _, want := range []string{"Ana Kovac", "[player]", "First Team", "3"} {
		if !strings.Contains(view, want) {
			t.Errorf("status bar missing %q in %q", want, view)
		}
	}
}

func TestStatusBar_UnverifiedWarning(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(100)
	bar.SetIdentity(&model.User{Username: "newbie", Role: model.RolePlayer})

	if !strings.Contains(bar.View(), "unverified") {
		t.Error("unverified accounts should be flagged in the bar")
	}
}

func TestStatusBar_UnreadCap(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(100)
	bar.SetUnread(250)

	if !strings.Contains(bar.View(), "99+") {
		t.Error("unread badge should cap at 99+")
	}
}

func TestTable_CursorAndScroll(t *testing.T) {
	tbl := NewTable(testTheme(), []Column{{Title: "Name", Width: 10}})
	tbl.SetHeight(2)

	rows := [][]string{{"one"}, {"two"}, {"three"}, {"four"}}
	tbl.SetRows(rows)

	if tbl.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", tbl.Cursor())
	}

	tbl.GotoBottom()
	if tbl.Cursor() != 3 {
		t.Errorf("cursor after GotoBottom = %d, want 3", tbl.Cursor())
	}
	view := tbl.View()
	if !strings.Contains(view, "four") || strings.Contains(view, "one") {
		t.Errorf("window should follow the cursor, got %q", view)
	}

	tbl.MoveDown()
	if tbl.Cursor() != 3 {
		t.Error("cursor must not move past the last row")
	}

	// Shrinking the data clamps the cursor.
	tbl.SetRows(rows[:2])
	if tbl.Cursor() != 1 {
		t.Errorf("cursor after shrink = %d, want 1", tbl.Cursor())
	}
}

func TestTable_Empty(t *testing.T) {
	tbl := NewTable(testTheme(), []Column{{Title: "Name", Width: 10}})
	if tbl.Cursor() != -1 {
		t.Errorf("empty table cursor = %d, want -1", tbl.Cursor())
	}
	if !strings.Contains(tbl.View(), "nothing to show") {
		t.Error("empty table should render a placeholder")
	}
}

func TestToastStack_PushAndExpire(t *testing.T) {
	stack := NewToastStack()

	toast := NewErrorToast("login failed")
	if cmd := stack.Push(toast); cmd == nil {
		t.Fatal("push should return an expiry command")
	}
	if stack.Len() != 1 {
		t.Fatalf("stack length = %d, want 1", stack.Len())
	}
	if !strings.Contains(stack.View(), "login failed") {
		t.Error("toast message missing from view")
	}

	stack.Expire(ToastExpiredMsg{ID: toast.ID})
	if stack.Len() != 0 {
		t.Error("expired toast should be removed")
	}
	if stack.View() != "" {
		t.Error("empty stack renders nothing")
	}
}

func TestToastStack_CapsVisibleToasts(t *testing.T) {
	stack := NewToastStack()
	for i := 0; i < 5; i++ {
		stack.Push(NewStatusToast("msg"))
	}
	if stack.Len() != maxToasts {
		t.Errorf("stack length = %d, want %d", stack.Len(), maxToasts)
	}
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs(testTheme(), []string{"Fixtures", "Results"}, 1)
	if !strings.Contains(out, "Fixtures") || !strings.Contains(out, "Results") {
		t.Errorf("tab labels missing from %q", out)
	}
}
