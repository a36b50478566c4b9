// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"context"
	"log/slog"

	"contentreceiver/internal/cache"
	"contentreceiver/internal/models"
)

// CategoryDirectory is the category lookup surface the resolver needs.
// *store.CategoryStore satisfies it.
type CategoryDirectory interface {
	FindByName(name string) (*models.Category, error)
	Create(name string) (*models.Category, error)
}

// CategoryResolver turns the payload's mixed id/name category list into
// concrete category ids, creating named categories that do not exist
// yet. A Valkey cache fronts the name lookups; it is optional and every
// cache failure degrades to a database hit.
type CategoryResolver struct {
	dir   CategoryDirectory
	cache *cache.CategoryCache
}

func NewCategoryResolver(dir CategoryDirectory, c *cache.CategoryCache) *CategoryResolver {
	return &CategoryResolver{dir: dir, cache: c}
}

// Resolve maps each reference to a category id. Numeric references pass
// through untouched, without an existence check; stale ids are caught
// later at assignment time. Entries that cannot be resolved are skipped
// so one bad category never sinks the rest.
func (r *CategoryResolver) Resolve(ctx context.Context, refs []CategoryRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		if ref.Name == "" {
			if ref.ID > 0 {
				ids = append(ids, ref.ID)
			}
			continue
		}
		id, err := r.resolveName(ctx, ref.Name)
		if err != nil {
			slog.Warn("skipping unresolvable category", "name", ref.Name, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func (r *CategoryResolver) resolveName(ctx context.Context, name string) (int64, error) {
	if id, ok := r.cache.Get(ctx, name); ok {
		return id, nil
	}

	cat, err := r.dir.FindByName(name)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		cat, err = r.dir.Create(name)
		if err != nil {
			// Likely lost a create race; the winner's row is there now.
			if cat, ferr := r.dir.FindByName(name); ferr == nil && cat != nil {
				r.cache.Set(ctx, name, cat.ID)
				return cat.ID, nil
			}
			return 0, err
		}
	}

	r.cache.Set(ctx, name, cat.ID)
	return cat.ID, nil
}
