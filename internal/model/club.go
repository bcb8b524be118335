// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strconv"
	"time"
)

// =============================================================================
// TEAMS
// =============================================================================

// Team is a club team as managed by the admins.
type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Coach       string `json:"coach,omitempty"`
	PlayerCount int    `json:"player_count,omitempty"`
}

// =============================================================================
// MATCHES
// =============================================================================

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
)

// Match is a fixture or result. Scores are only meaningful once the match
// has started.
type Match struct {
	ID        int         `json:"id"`
	HomeTeam  Team        `json:"home_team"`
	AwayTeam  Team        `json:"away_team"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Status    MatchStatus `json:"status"`
	KickoffAt time.Time   `json:"kickoff_at"`
	Venue     string      `json:"venue,omitempty"`
}

// IsFixture reports whether the match is still upcoming.
func (m Match) IsFixture() bool {
	return m.Status == MatchScheduled
}

// IsLive reports whether the match is currently being played.
func (m Match) IsLive() bool {
	return m.Status == MatchLive
}

// Score returns "home-away" for started matches and "vs" for fixtures.
func (m Match) Score() string {
	if m.IsFixture() {
		return "vs"
	}
	return strconv.Itoa(m.HomeScore) + "-" + strconv.Itoa(m.AwayScore)
}

// =============================================================================
// STATISTICS AND STANDINGS
// =============================================================================

// PlayerStats is an aggregated per-player statistics record.
type PlayerStats struct {
	ID            int    `json:"id"`
	UserID        int    `json:"user_id"`
	PlayerName    string `json:"player_name"`
	MatchesPlayed int    `json:"matches_played"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	YellowCards   int    `json:"yellow_cards"`
	RedCards      int    `json:"red_cards"`
	MinutesPlayed int    `json:"minutes_played"`
}

// StatEntry is a single match-specific statistics record, as created and
// edited by admins.
type StatEntry struct {
	ID      int `json:"id"`
	UserID  int `json:"user_id"`
	MatchID int `json:"match_id"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Minutes int `json:"minutes"`
}

// Standing is one row of the league table.
type Standing struct {
	Position     int  `json:"position"`
	Team         Team `json:"team"`
	Played       int  `json:"played"`
	Won          int  `json:"won"`
	Drawn        int  `json:"drawn"`
	Lost         int  `json:"lost"`
	GoalsFor     int  `json:"goals_for"`
	GoalsAgainst int  `json:"goals_against"`
	Points       int  `json:"points"`
}

// GoalDifference returns goals for minus goals against.
func (s Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// SortStandings orders rows by points, then goal difference, then goals
// scored, and renumbers positions. The backend usually returns rows ordered,
// but the table view sorts defensively after client-side edits.
func SortStandings(rows []Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference() != rows[j].GoalDifference() {
			return rows[i].GoalDifference() > rows[j].GoalDifference()
		}
		return rows[i].GoalsFor > rows[j].GoalsFor
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}

// =============================================================================
// PAYMENTS
// =============================================================================

// PaymentStatus is the review state of a dues payment proof.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment is a dues payment proof uploaded by a member.
type Payment struct {
	ID          int           `json:"id"`
	UserID      int           `json:"user_id"`
	PlayerName  string        `json:"player_name,omitempty"`
	Amount      float64       `json:"amount"`
	Note        string        `json:"note,omitempty"`
	Status      PaymentStatus `json:"status"`
	RejectedFor string        `json:"rejected_reason,omitempty"`
	SubmittedAt time.Time     `json:"submitted_at"`
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notification is a message pushed to the member by the club.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"` // markdown
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// DASHBOARDS
// =============================================================================

// DashboardSummary is the player dashboard payload.
type DashboardSummary struct {
	NextMatch     *Match      `json:"next_match,omitempty"`
	RecentResults []Match     `json:"recent_results,omitempty"`
	Stats         PlayerStats `json:"stats"`
	PaymentStatus string      `json:"payment_status,omitempty"`
	UnreadCount   int         `json:"unread_count"`
}

// AdminSummary is the admin dashboard payload.
type AdminSummary struct {
	TotalPlayers         int     `json:"total_players"`
	PendingVerifications int     `json:"pending_verifications"`
	PendingPayments      int     `json:"pending_payments"`
	UpcomingMatches      []Match `json:"upcoming_matches,omitempty"`
}
