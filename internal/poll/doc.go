// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package poll refreshes the unread-notification badge in the background.
//
// A rate limiter sits in front of the fetch so that tick-driven polls and
// user-triggered refreshes together can never hammer the backend. Fetch
// failures are silent; the badge just goes stale until the next cycle.
package poll
