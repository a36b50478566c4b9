// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"contentreceiver/internal/models"
)

// AttachmentStore handles sideloaded media metadata in the database.
type AttachmentStore struct {
	db *sql.DB
}

// NewAttachmentStore creates a new AttachmentStore.
func NewAttachmentStore(db *sql.DB) *AttachmentStore {
	return &AttachmentStore{db: db}
}

const attachmentColumns = `id, source_url, object_key, thumb_key, content_type, size_bytes, created_at`

// scanAttachment scans an attachment row.
func scanAttachment(scanner interface{ Scan(...any) error }) (*models.Attachment, error) {
	var a models.Attachment
	err := scanner.Scan(
		&a.ID, &a.SourceURL, &a.ObjectKey, &a.ThumbKey,
		&a.ContentType, &a.SizeBytes, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new attachment record and returns it with the
// generated id.
func (s *AttachmentStore) Create(a *models.Attachment) (*models.Attachment, error) {
	row := s.db.QueryRow(`
		INSERT INTO attachments (source_url, object_key, thumb_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+attachmentColumns,
		a.SourceURL, a.ObjectKey, a.ThumbKey, a.ContentType, a.SizeBytes,
	)
	result, err := scanAttachment(row)
	if err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return result, nil
}

// FindByID retrieves an attachment by id. Returns nil if not found.
func (s *AttachmentStore) FindByID(id int64) (*models.Attachment, error) {
	row := s.db.QueryRow(`SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id)
	a, err := scanAttachment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attachment by id: %w", err)
	}
	return a, nil
}

// Delete removes an attachment record and returns it so the caller can
// clean up the corresponding storage objects.
func (s *AttachmentStore) Delete(id int64) (*models.Attachment, error) {
	row := s.db.QueryRow(`
		DELETE FROM attachments WHERE id = $1
		RETURNING `+attachmentColumns, id)
	a, err := scanAttachment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete attachment: %w", err)
	}
	return a, nil
}
