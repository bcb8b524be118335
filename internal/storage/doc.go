// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local key-value store used for the session
// snapshot and other small client-side state.
//
// Two implementations are provided: SQLiteKV, a durable store backed by a
// single-table SQLite database under ~/.clubdesk/, and MemKV, an in-memory
// store for tests. Callers depend on the KV interface and never on a concrete
// store.
package storage
