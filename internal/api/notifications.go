// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"strconv"

	"github.com/clubdesk/clubdesk-tui/internal/model"
)

// =============================================================================
// NOTIFICATION ENDPOINTS
// =============================================================================

// unreadCountResponse wraps the unread badge count.
type unreadCountResponse struct {
	Count int `json:"count"`
}

// Notifications lists the member's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var out []model.Notification
	err := c.get(ctx, "/notifications", &out)
	return out, err
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out unreadCountResponse
	if err := c.get(ctx, "/notifications/unread-count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkRead marks one notification as read.
func (c *Client) MarkRead(ctx context.Context, id int) error {
	return c.post(ctx, "/notifications/"+strconv.Itoa(id)+"/read", nil, nil)
}

// MarkAllRead marks every notification as read.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.post(ctx, "/notifications/read-all", nil, nil)
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id int) error {
	return c.delete(ctx, "/notifications/"+strconv.Itoa(id))
}
