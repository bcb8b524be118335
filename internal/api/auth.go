// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"

	"github.com/clubdesk/clubdesk-tui/internal/model"
)

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// loginRequest is the credentials payload for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the login envelope. The token and the profile arrive
// together; callers must treat them as a pair.
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// registerResponse is the register envelope. Registration never returns a
// token; accounts log in explicitly afterwards.
type registerResponse struct {
	Message string `json:"message"`
}

// meResponse wraps the profile returned by GET /auth/me.
type meResponse struct {
	User model.User `json:"user"`
}

// Login exchanges credentials for a token and the member profile. A 401 here
// means bad credentials and does not fire the OnUnauthorized hook.
func (c *Client) Login(ctx context.Context, username, password string) (string, model.User, error) {
	var out loginResponse
	in := loginRequest{Username: username, Password: password}
	err := c.do(ctx, http.MethodPost, "/auth/login", in, &out,
		requestOpts{skipAuthHook: true, skipToken: true})
	if err != nil {
		return "", model.User{}, err
	}
	return out.AccessToken, out.User, nil
}

// Register creates a new account and returns the backend's status message.
func (c *Client) Register(ctx context.Context, reg model.Registration) (string, error) {
	var out registerResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", reg, &out,
		requestOpts{skipAuthHook: true, skipToken: true})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// Me returns the profile for the current token. This is the authoritative
// session check used during startup restoration.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var out meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out, requestOpts{}); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

// ResetPassword requests a password reset email for the account.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	in := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", in, nil,
		requestOpts{skipAuthHook: true, skipToken: true})
}
