// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the REST client for the club platform backend.
//
// A single Client carries the base URL, a pooled HTTP client, and a token
// source; every protected request attaches the bearer token the source
// returns at call time. A cross-cutting OnUnauthorized hook fires when any
// call (except login and register) comes back 401, so the app can drop the
// persisted session and return to the login view in one place.
package api
