// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views holds the Bubble Tea sub-models for each screen: the auth
// forms, the player and admin dashboards, matches, roster, league table,
// statistics, payment upload and the notifications panel. The root model
// owns routing between them; each view only loads and renders its own data.
package views
