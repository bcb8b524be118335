// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the authentication lifecycle: the current identity,
// the bearer token, the restoration state, and the login/register/logout
// operations.
//
// One Manager exists per running app. It is constructed with its
// collaborators injected (an auth API, a key-value store, an event sink) and
// carries no dependency on the UI layer; the root model reacts to the events
// the Manager publishes. The persisted snapshot (token + cached identity) is
// written and cleared strictly as a pair, and the cached identity is only
// ever an optimistic hint until the server confirms the token.
package session
