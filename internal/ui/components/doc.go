// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the clubdesk TUI:
// the status bar, toast notifications, loading spinner, tab row and the
// generic data table used by the list views.
package components
