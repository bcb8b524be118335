// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// ROLES
// =============================================================================

// Role is the access role assigned to an account by the backend.
type Role string

const (
	// RolePlayer is the default role for registered members.
	RolePlayer Role = "player"
	// RoleAdmin grants access to the management views.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one the client knows how to gate on.
func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleAdmin
}

// =============================================================================
// USER
// =============================================================================

// User is the authenticated member profile as returned by the backend.
type User struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"is_verified"`
	TeamID     *int   `json:"team_id,omitempty"`
	Team       *Team  `json:"team,omitempty"`
}

// FullName returns "First Last", falling back to the username when the
// profile has no name set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// IsAdmin reports whether the user may enter the admin views.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TeamName returns the assigned team name, or empty when unassigned.
func (u User) TeamName() string {
	if u.Team == nil {
		return ""
	}
	return u.Team.Name
}

// UserPatch is a partial profile update. Nil fields are left untouched when
// the patch is applied, mirroring the backend's partial-update semantics.
type UserPatch struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
	TeamID     *int    `json:"team_id,omitempty"`
	Team       *Team   `json:"team,omitempty"`
}

// Apply merges the patch into a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.IsVerified != nil {
		u.IsVerified = *p.IsVerified
	}
	if p.TeamID != nil {
		u.TeamID = p.TeamID
	}
	if p.Team != nil {
		u.Team = p.Team
	}
	return u
}

// Registration is the payload for creating a new account. Accounts start
// unverified; the backend requires a separate login after registration.
type Registration struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
