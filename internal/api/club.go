// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"strconv"

	"github.com/clubdesk/clubdesk-tui/internal/model"
)

// =============================================================================
// DASHBOARDS
// =============================================================================

// Dashboard returns the player dashboard summary.
func (c *Client) Dashboard(ctx context.Context) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	err := c.get(ctx, "/dashboard", &out)
	return out, err
}

// =============================================================================
// TEAMS
// =============================================================================

// Teams lists all club teams.
func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	err := c.get(ctx, "/teams", &out)
	return out, err
}

// Team returns a single team.
func (c *Client) Team(ctx context.Context, id int) (model.Team, error) {
	var out model.Team
	err := c.get(ctx, "/teams/"+strconv.Itoa(id), &out)
	return out, err
}

// CreateTeam creates a team (admin only).
func (c *Client) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	var out model.Team
	err := c.post(ctx, "/teams", t, &out)
	return out, err
}

// UpdateTeam updates a team (admin only).
func (c *Client) UpdateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	var out model.Team
	err := c.put(ctx, "/teams/"+strconv.Itoa(t.ID), t, &out)
	return out, err
}

// DeleteTeam removes a team (admin only).
func (c *Client) DeleteTeam(ctx context.Context, id int) error {
	return c.delete(ctx, "/teams/"+strconv.Itoa(id))
}

// TeamPlayers lists the members assigned to a team.
func (c *Client) TeamPlayers(ctx context.Context, id int) ([]model.User, error) {
	var out []model.User
	err := c.get(ctx, "/teams/"+strconv.Itoa(id)+"/players", &out)
	return out, err
}

// =============================================================================
// MATCHES
// =============================================================================

// Matches lists all matches.
func (c *Client) Matches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	err := c.get(ctx, "/matches", &out)
	return out, err
}

// Fixtures lists upcoming matches.
func (c *Client) Fixtures(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	err := c.get(ctx, "/matches/fixtures", &out)
	return out, err
}

// Results lists finished matches.
func (c *Client) Results(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	err := c.get(ctx, "/matches/results", &out)
	return out, err
}

// LiveMatches lists matches currently in play.
func (c *Client) LiveMatches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	err := c.get(ctx, "/matches/live", &out)
	return out, err
}

// CreateMatch schedules a match (admin only).
func (c *Client) CreateMatch(ctx context.Context, m model.Match) (model.Match, error) {
	var out model.Match
	err := c.post(ctx, "/matches", m, &out)
	return out, err
}

// StartMatch moves a scheduled match to live (admin only).
func (c *Client) StartMatch(ctx context.Context, id int) (model.Match, error) {
	var out model.Match
	err := c.post(ctx, "/matches/"+strconv.Itoa(id)+"/start", nil, &out)
	return out, err
}

// UpdateMatch updates match details (admin only).
func (c *Client) UpdateMatch(ctx context.Context, m model.Match) (model.Match, error) {
	var out model.Match
	err := c.put(ctx, "/matches/"+strconv.Itoa(m.ID), m, &out)
	return out, err
}

// UpdateScore sets the score of a live or finished match (admin only).
func (c *Client) UpdateScore(ctx context.Context, id, home, away int) (model.Match, error) {
	in := map[string]int{"home_score": home, "away_score": away}
	var out model.Match
	err := c.patch(ctx, "/matches/"+strconv.Itoa(id)+"/score", in, &out)
	return out, err
}

// DeleteMatch removes a match (admin only).
func (c *Client) DeleteMatch(ctx context.Context, id int) error {
	return c.delete(ctx, "/matches/"+strconv.Itoa(id))
}

// =============================================================================
// STATISTICS AND STANDINGS
// =============================================================================

// Statistics lists aggregated per-player statistics.
func (c *Client) Statistics(ctx context.Context) ([]model.PlayerStats, error) {
	var out []model.PlayerStats
	err := c.get(ctx, "/statistics", &out)
	return out, err
}

// PlayerStatistics returns aggregated statistics for one member.
func (c *Client) PlayerStatistics(ctx context.Context, userID int) (model.PlayerStats, error) {
	var out model.PlayerStats
	err := c.get(ctx, "/statistics/players/"+strconv.Itoa(userID), &out)
	return out, err
}

// CreateStatistic records a match statistic entry (admin only).
func (c *Client) CreateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error) {
	var out model.StatEntry
	err := c.post(ctx, "/statistics", e, &out)
	return out, err
}

// UpdateStatistic edits a statistic entry (admin only).
func (c *Client) UpdateStatistic(ctx context.Context, e model.StatEntry) (model.StatEntry, error) {
	var out model.StatEntry
	err := c.put(ctx, "/statistics/"+strconv.Itoa(e.ID), e, &out)
	return out, err
}

// DeleteStatistic removes a statistic entry (admin only).
func (c *Client) DeleteStatistic(ctx context.Context, id int) error {
	return c.delete(ctx, "/statistics/"+strconv.Itoa(id))
}

// Standings returns the league table.
func (c *Client) Standings(ctx context.Context) ([]model.Standing, error) {
	var out []model.Standing
	err := c.get(ctx, "/standings", &out)
	return out, err
}

// =============================================================================
// PLAYERS AND PROFILE
// =============================================================================

// Players lists the club roster.
func (c *Client) Players(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.get(ctx, "/players", &out)
	return out, err
}

// UpdateProfile applies a partial update to the current member's profile and
// returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, patch model.UserPatch) (model.User, error) {
	var out meResponse
	if err := c.patch(ctx, "/profile", patch, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}
