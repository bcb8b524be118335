// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/clubdesk/clubdesk-tui/internal/model"
)

// =============================================================================
// ADMIN ENDPOINTS
// =============================================================================

// AdminDashboard returns the admin dashboard summary.
func (c *Client) AdminDashboard(ctx context.Context) (model.AdminSummary, error) {
	var out model.AdminSummary
	err := c.get(ctx, "/admin/dashboard", &out)
	return out, err
}

// Users lists all accounts, verified or not (admin only).
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.get(ctx, "/admin/users", &out)
	return out, err
}

// VerifyUser marks an account as verified (admin only).
func (c *Client) VerifyUser(ctx context.Context, userID int) (model.User, error) {
	var out model.User
	err := c.post(ctx, "/admin/users/"+strconv.Itoa(userID)+"/verify", nil, &out)
	return out, err
}

// UnverifyUser clears the verified flag on an account (admin only).
func (c *Client) UnverifyUser(ctx context.Context, userID int) (model.User, error) {
	var out model.User
	err := c.post(ctx, "/admin/users/"+strconv.Itoa(userID)+"/unverify", nil, &out)
	return out, err
}

// AssignTeam assigns a member to a team (admin only).
func (c *Client) AssignTeam(ctx context.Context, userID, teamID int) (model.User, error) {
	in := map[string]int{"team_id": teamID}
	var out model.User
	err := c.post(ctx, "/admin/users/"+strconv.Itoa(userID)+"/team", in, &out)
	return out, err
}

// RemoveFromTeam clears a member's team assignment (admin only).
func (c *Client) RemoveFromTeam(ctx context.Context, userID int) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodDelete, "/admin/users/"+strconv.Itoa(userID)+"/team", nil, &out, requestOpts{})
	return out, err
}

// Payments lists submitted dues payments (admin only).
func (c *Client) Payments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	err := c.get(ctx, "/admin/payments", &out)
	return out, err
}

// VerifyPayment accepts a payment proof (admin only).
func (c *Client) VerifyPayment(ctx context.Context, id int) (model.Payment, error) {
	var out model.Payment
	err := c.post(ctx, "/admin/payments/"+strconv.Itoa(id)+"/verify", nil, &out)
	return out, err
}

// RejectPayment rejects a payment proof with a reason (admin only).
func (c *Client) RejectPayment(ctx context.Context, id int, reason string) (model.Payment, error) {
	in := map[string]string{"reason": reason}
	var out model.Payment
	err := c.post(ctx, "/admin/payments/"+strconv.Itoa(id)+"/reject", in, &out)
	return out, err
}
