// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// apiKeyHeader is where callers put the shared secret. A key in the
// body is accepted only when the header is absent.
const apiKeyHeader = "X-API-Key"

// maxBodyBytes caps the inbound JSON body.
const maxBodyBytes = 5 << 20 // 5 MB

// Handler is the HTTP face of the webhook.
type Handler struct {
	auth    *Authenticator
	service *Service
}

// NewHandler creates the webhook handler.
func NewHandler(auth *Authenticator, service *Service) *Handler {
	return &Handler{auth: auth, service: service}
}

// errorResponse is the body of every non-201 reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// createdResponse is the body of a successful create.
type createdResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PostID  int64  `json:"post_id"`
	PostURL string `json:"post_url"`
}

// Receive handles POST /api/v1/webhook: authenticate, validate, create.
// A malformed JSON body is treated as an empty payload so it fails
// validation with the usual missing-field error rather than a separate
// parse error, keeping the error surface small for integrators.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload Payload
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		slog.Debug("webhook body not decodable, treating as empty", "error", err)
		payload = Payload{}
	}

	if !h.auth.Allow(r.Header.Get(apiKeyHeader), payload.APIKey) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Code:    "unauthorized",
			Message: "Invalid or missing API key.",
		})
		return
	}

	req, verr := Validate(&payload, h.service.DefaultAuthorID())
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    verr.Code(),
			Message: verr.Message(),
		})
		return
	}

	receipt, err := h.service.Ingest(r.Context(), req)
	if err != nil {
		slog.Error("content creation failed", "title", req.Title, "error", err)
		var serr *StoreError
		msg := "Failed to create the post."
		if errors.As(err, &serr) {
			msg = serr.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:    "post_creation_failed",
			Message: msg,
		})
		return
	}

	slog.Info("content created", "content_id", receipt.ID, "title", req.Title)
	writeJSON(w, http.StatusCreated, createdResponse{
		Success: true,
		Message: "Post created successfully.",
		PostID:  receipt.ID,
		PostURL: receipt.URL,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response failed", "error", err)
	}
}
