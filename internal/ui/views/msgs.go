// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"time"
)

// =============================================================================
// SHARED MESSAGES
// =============================================================================

// ToastMsg asks the root model to show a toast.
type ToastMsg struct {
	Text  string
	Error bool
}

// ShowRegisterMsg asks the root model to open the registration form.
type ShowRegisterMsg struct{}

// ShowLoginMsg asks the root model to return to the login form.
type ShowLoginMsg struct{}

// LoginResultMsg carries the outcome of a login attempt back to the form.
type LoginResultMsg struct {
	Err error
}

// RegisterResultMsg carries the outcome of a registration attempt.
type RegisterResultMsg struct {
	Message string
	Err     error
}

// requestTimeout bounds every view-triggered API call.
const requestTimeout = 15 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
