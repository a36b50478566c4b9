// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentreceiver/internal/models"
	"contentreceiver/internal/slug"
)

// ContentStore handles content item persistence and permalink building.
type ContentStore struct {
	db      *sql.DB
	baseURL string
}

// NewContentStore creates a ContentStore. baseURL is the site prefix for
// permalinks, e.g. "https://news.example.com".
func NewContentStore(db *sql.DB, baseURL string) *ContentStore {
	return &ContentStore{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

const contentColumns = `id, type, title, slug, body, excerpt, status,
	author_id, cover_id, published_at, created_at, updated_at`

// scanContent scans a content row.
func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	var c models.Content
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.Excerpt, &c.Status,
		&c.AuthorID, &c.CoverID, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateItem inserts a new content item and returns it with the
// generated id. A missing slug is generated from the title; colliding
// slugs get a short random suffix rather than failing the insert.
func (s *ContentStore) CreateItem(c *models.Content) (*models.Content, error) {
	if c.Status == models.ContentStatusPublish && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	base := c.Slug
	if base == "" {
		base = slug.Generate(c.Title)
	}
	unique, err := s.uniqueSlug(base)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO content (type, title, slug, body, excerpt, status, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+contentColumns,
		c.Type, c.Title, unique, c.Body, c.Excerpt, c.Status, c.AuthorID, c.PublishedAt,
	)
	result, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// uniqueSlug returns a slug not yet present in the content table,
// suffixing the base with a short random fragment on collision.
func (s *ContentStore) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 0; i < 4; i++ {
		var exists bool
		err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM content WHERE slug = $1)`, candidate).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:8]
	}
	return candidate, nil
}

// FindByID retrieves a content item by id. Returns nil if not found.
func (s *ContentStore) FindByID(id int64) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a content item by slug. Returns nil if not found.
func (s *ContentStore) FindBySlug(sl string) (*models.Content, error) {
	row := s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE slug = $1`, sl)
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// Permalink returns the public URL for a content item.
func (s *ContentStore) Permalink(id int64) (string, error) {
	var sl string
	err := s.db.QueryRow(`SELECT slug FROM content WHERE id = $1`, id).Scan(&sl)
	if err != nil {
		return "", fmt.Errorf("permalink for %d: %w", id, err)
	}
	return s.baseURL + "/" + sl, nil
}

// AssignCategories links a content item to the given category ids.
// Ids are inserted one at a time: an id that does not exist in the
// categories table is skipped with a warning, so one bad reference from
// the caller never discards the valid ones. An error is returned only
// when nothing could be assigned at all.
func (s *ContentStore) AssignCategories(contentID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	var assigned int
	var lastErr error
	for _, catID := range categoryIDs {
		_, err := s.db.Exec(`
			INSERT INTO content_categories (content_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, contentID, catID)
		if err != nil {
			slog.Warn("category assignment skipped", "content_id", contentID, "category_id", catID, "error", err)
			lastErr = err
			continue
		}
		assigned++
	}

	if assigned == 0 && lastErr != nil {
		return fmt.Errorf("assign categories: %w", lastErr)
	}
	return nil
}

// AssignTags links a content item to the named tags, creating any tag
// that does not exist yet. Tag matching is by exact name.
func (s *ContentStore) AssignTags(contentID int64, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}

		var tagID int64
		err := s.db.QueryRow(`
			INSERT INTO tags (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name, slug.Generate(name)).Scan(&tagID)
		if err != nil {
			return fmt.Errorf("upsert tag %q: %w", name, err)
		}

		_, err = s.db.Exec(`
			INSERT INTO content_tags (content_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, contentID, tagID)
		if err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

// Tags returns the tag names linked to a content item, ordered by name.
func (s *ContentStore) Tags(contentID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT t.name FROM tags t
		JOIN content_tags ct ON ct.tag_id = t.id
		WHERE ct.content_id = $1
		ORDER BY t.name
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CategoryIDs returns the category ids linked to a content item.
func (s *ContentStore) CategoryIDs(contentID int64) ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT category_id FROM content_categories
		WHERE content_id = $1
		ORDER BY category_id
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list content categories: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetMeta writes one custom meta key/value pair, replacing any previous
// value for the key.
func (s *ContentStore) SetMeta(contentID int64, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO content_meta (content_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_id, key) DO UPDATE SET value = EXCLUDED.value
	`, contentID, key, value)
	if err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}

// Meta returns all custom meta pairs for a content item.
func (s *ContentStore) Meta(contentID int64) (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM content_meta WHERE content_id = $1`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// BindCoverImage sets the cover attachment for a content item.
// Re-binding replaces the previous cover; an item has at most one.
func (s *ContentStore) BindCoverImage(contentID, attachmentID int64) error {
	_, err := s.db.Exec(`
		UPDATE content SET cover_id = $1, updated_at = NOW() WHERE id = $2
	`, attachmentID, contentID)
	if err != nil {
		return fmt.Errorf("bind cover image: %w", err)
	}
	return nil
}
