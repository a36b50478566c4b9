// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"contentreceiver/internal/models"
)

// ItemStore is the content persistence surface the service needs.
// *store.ContentStore satisfies it.
type ItemStore interface {
	CreateItem(c *models.Content) (*models.Content, error)
	Permalink(id int64) (string, error)
	AssignCategories(contentID int64, categoryIDs []int64) error
	AssignTags(contentID int64, names []string) error
	SetMeta(contentID int64, key, value string) error
	BindCoverImage(contentID, attachmentID int64) error
}

// MediaFetcher sideloads a remote image and returns the stored
// attachment. *MediaAcquirer satisfies it.
type MediaFetcher interface {
	FetchAndStore(ctx context.Context, rawURL string) (*models.Attachment, error)
}

// Receipt is what a successful ingest reports back to the caller.
type Receipt struct {
	ID  int64
	URL string
}

// StageResult records the outcome of one best-effort enrichment stage.
type StageResult struct {
	Stage string
	Err   error
}

// Service orchestrates content creation: one mandatory insert followed
// by best-effort enrichment stages whose failures are logged, never
// surfaced to the caller.
type Service struct {
	items           ItemStore
	resolver        *CategoryResolver
	media           MediaFetcher
	defaultAuthorID int64
}

func NewService(items ItemStore, resolver *CategoryResolver, media MediaFetcher, defaultAuthorID int64) *Service {
	if defaultAuthorID <= 0 {
		defaultAuthorID = 1
	}
	return &Service{
		items:           items,
		resolver:        resolver,
		media:           media,
		defaultAuthorID: defaultAuthorID,
	}
}

// DefaultAuthorID is the author assigned when the payload names none.
func (s *Service) DefaultAuthorID() int64 {
	return s.defaultAuthorID
}

// Ingest creates the content item and runs the enrichment stages. Only
// the initial insert can fail the request; anything after it degrades
// to a warning log so a flaky image host or a bad category never costs
// the caller the post.
func (s *Service) Ingest(ctx context.Context, req *Request) (*Receipt, error) {
	item := &models.Content{
		Type:        models.ContentType(req.Type),
		Title:       req.Title,
		Slug:        req.Slug,
		Body:        req.Body,
		Status:      models.ContentStatus(req.Status),
		AuthorID:    req.AuthorID,
		PublishedAt: req.PublishedAt,
	}
	if req.Excerpt != "" {
		item.Excerpt = &req.Excerpt
	}

	created, err := s.items.CreateItem(item)
	if err != nil {
		return nil, &StoreError{Stage: "create", Err: err}
	}

	for _, r := range s.enrich(ctx, created.ID, req) {
		if r.Err != nil {
			slog.Warn("enrichment stage failed",
				"content_id", created.ID, "stage", r.Stage, "error", r.Err)
		}
	}

	url, err := s.items.Permalink(created.ID)
	if err != nil {
		slog.Warn("permalink lookup failed", "content_id", created.ID, "error", err)
		url = ""
	}

	return &Receipt{ID: created.ID, URL: url}, nil
}

// enrich runs the post-insert stages in a fixed order. Each stage is
// independent; one failing does not stop the next.
func (s *Service) enrich(ctx context.Context, contentID int64, req *Request) []StageResult {
	var results []StageResult

	if len(req.Categories) > 0 {
		ids := s.resolver.Resolve(ctx, req.Categories)
		var err error
		if len(ids) > 0 {
			err = s.items.AssignCategories(contentID, ids)
		}
		results = append(results, StageResult{Stage: "categories", Err: err})
	}

	if len(req.Tags) > 0 {
		results = append(results, StageResult{
			Stage: "tags",
			Err:   s.items.AssignTags(contentID, req.Tags),
		})
	}

	if req.ImageURL != "" {
		results = append(results, StageResult{
			Stage: "featured_image",
			Err:   s.sideloadCover(ctx, contentID, req.ImageURL),
		})
	}

	if len(req.Meta) > 0 {
		results = append(results, StageResult{
			Stage: "meta",
			Err:   s.applyMeta(contentID, req.Meta),
		})
	}

	return results
}

func (s *Service) sideloadCover(ctx context.Context, contentID int64, rawURL string) error {
	if s.media == nil {
		return fmt.Errorf("media storage not configured")
	}
	att, err := s.media.FetchAndStore(ctx, rawURL)
	if err != nil {
		return err
	}
	return s.items.BindCoverImage(contentID, att.ID)
}

// applyMeta writes each key independently in a stable order so a single
// bad row does not block the rest. The first error is reported.
func (s *Service) applyMeta(contentID int64, meta map[string]string) error {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var first error
	for _, k := range keys {
		if err := s.items.SetMeta(contentID, k, meta[k]); err != nil && first == nil {
			first = err
		}
	}
	return first
}
