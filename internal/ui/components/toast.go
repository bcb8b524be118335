// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clubdesk/clubdesk-tui/internal/ui/styles"
)

// =============================================================================
// TOAST NOTIFICATIONS
// =============================================================================

// ToastKind is the severity of a toast notification.
type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// Error toasts stay longer so the message can actually be read.
const (
	DefaultToastDuration = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

var toastCounter atomic.Int64

// Toast is a non-blocking corner notification that auto-dismisses. Unlike a
// modal, the rest of the UI stays interactive while it is shown.
type Toast struct {
	ID        int64
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ToastExpiredMsg asks the stack to drop a toast by ID.
type ToastExpiredMsg struct {
	ID int64
}

func newToast(message string, kind ToastKind, d time.Duration) Toast {
	return Toast{
		ID:        toastCounter.Add(1),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) Toast {
	return newToast(message, ToastStatus, DefaultToastDuration)
}

// NewSuccessToast creates a success toast.
func NewSuccessToast(message string) Toast {
	return newToast(message, ToastSuccess, DefaultToastDuration)
}

// NewWarningToast creates a warning toast.
func NewWarningToast(message string) Toast {
	return newToast(message, ToastWarning, DefaultToastDuration)
}

// NewErrorToast creates an error toast with the longer dismiss window.
func NewErrorToast(message string) Toast {
	return newToast(message, ToastError, ErrorToastDuration)
}

// ExpireCmd returns the command that fires when this toast should dismiss.
func (t Toast) ExpireCmd() tea.Cmd {
	id := t.ID
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Render draws the toast with its severity indicator.
func (t Toast) Render() string {
	switch t.Kind {
	case ToastError:
		return styles.RenderError(t.Message)
	case ToastWarning:
		return styles.RenderWarning(t.Message)
	case ToastSuccess:
		return styles.RenderSuccess(t.Message)
	default:
		return styles.RenderInfo(t.Message)
	}
}

// =============================================================================
// TOAST STACK
// =============================================================================

// maxToasts caps how many toasts are shown at once; older ones drop first.
const maxToasts = 3

// ToastStack holds the currently visible toasts, newest last.
type ToastStack struct {
	toasts []Toast
}

// NewToastStack creates an empty stack.
func NewToastStack() *ToastStack {
	return &ToastStack{}
}

// Push adds a toast and returns its expiry command.
func (s *ToastStack) Push(t Toast) tea.Cmd {
	s.toasts = append(s.toasts, t)
	if len(s.toasts) > maxToasts {
		s.toasts = s.toasts[len(s.toasts)-maxToasts:]
	}
	return t.ExpireCmd()
}

// Expire removes the toast named by the message, if it is still visible.
func (s *ToastStack) Expire(msg ToastExpiredMsg) {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ID != msg.ID {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
}

// Len returns the number of visible toasts.
func (s *ToastStack) Len() int {
	return len(s.toasts)
}

// View renders the visible toasts, one per line, newest at the bottom.
func (s *ToastStack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}
	out := ""
	for i, t := range s.toasts {
		if i > 0 {
			out += "\n"
		}
		out += t.Render()
	}
	return out
}
