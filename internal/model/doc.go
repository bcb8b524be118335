// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain records exchanged with the club platform API.
//
// All JSON tags follow the backend contract (snake_case). The records here are
// plain data carriers; durable state lives server-side and these types are only
// ever as fresh as the last API response that produced them.
package model
