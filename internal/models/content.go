// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"
)

// ContentType is the kind of content item being created. Feeds almost
// always send posts, but the webhook accepts any type string so custom
// types pass through to the store unchanged.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// ContentStatus represents the publishing state of a content item. The
// webhook accepts the usual CMS status vocabulary and stores unknown
// values as sent.
type ContentStatus string

const (
	ContentStatusPublish ContentStatus = "publish"
	ContentStatusDraft   ContentStatus = "draft"
	ContentStatusPending ContentStatus = "pending"
	ContentStatusPrivate ContentStatus = "private"
	ContentStatusFuture  ContentStatus = "future"
)

// Content is a single ingested content item. IDs are bigserials rather
// than UUIDs because the inbound contract lets callers reference
// categories by numeric id, so integer identifiers are part of the API.
type Content struct {
	ID          int64         `json:"id"`
	Type        ContentType   `json:"type"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Body        string        `json:"body"`
	Excerpt     *string       `json:"excerpt,omitempty"`
	Status      ContentStatus `json:"status"`
	AuthorID    int64         `json:"author_id"`
	CoverID     *int64        `json:"cover_id,omitempty"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// IsPublished returns true if the item is publicly visible.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublish
}
