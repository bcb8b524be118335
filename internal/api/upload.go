// Copyright (c) 2025 Clubdesk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/clubdesk/clubdesk-tui/internal/model"
)

// maxUploadSize caps payment proof files. The backend enforces its own limit;
// this just fails fast before reading a huge file into memory.
const maxUploadSize = 5 * 1024 * 1024

// UploadPayment submits a dues payment proof: the receipt file plus amount
// and an optional note, as multipart form data. A client-generated
// Idempotency-Key header lets the backend dedupe retried submissions.
func (c *Client) UploadPayment(ctx context.Context, filePath string, amount float64, note string) (model.Payment, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to read receipt: %w", err)
	}
	if info.Size() > maxUploadSize {
		return model.Payment{}, fmt.Errorf("receipt too large: %d bytes (max %d)", info.Size(), maxUploadSize)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to read receipt: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("receipt", filepath.Base(filePath))
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return model.Payment{}, fmt.Errorf("failed to build upload: %w", err)
	}

	if err := writer.WriteField("amount", strconv.FormatFloat(amount, 'f', 2, 64)); err != nil {
		return model.Payment{}, fmt.Errorf("failed to build upload: %w", err)
	}
	if note != "" {
		if err := writer.WriteField("note", note); err != nil {
			return model.Payment{}, fmt.Errorf("failed to build upload: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return model.Payment{}, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", &buf)
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, requestOpts{})
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Idempotency-Key", uuid.NewString())

	var out model.Payment
	if err := c.send(req, &out, requestOpts{}); err != nil {
		return model.Payment{}, err
	}
	return out, nil
}

// MyPayments lists the member's own payment submissions.
func (c *Client) MyPayments(ctx context.Context) ([]model.Payment, error) {
	var out []model.Payment
	err := c.get(ctx, "/payments", &out)
	return out, err
}
