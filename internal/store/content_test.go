package store

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"contentreceiver/internal/models"
)

func TestContentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-create-item-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	item := &models.Content{
		Type:     models.ContentTypePost,
		Title:    "Test Item",
		Slug:     slug,
		Body:     "<p>Test body</p>",
		Status:   models.ContentStatusDraft,
		AuthorID: 1,
	}

	created, err := s.CreateItem(item)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Title != "Test Item" {
		t.Errorf("title: got %q, want %q", created.Title, "Test Item")
	}
	if created.Status != models.ContentStatusDraft {
		t.Errorf("status: got %q, want %q", created.Status, models.ContentStatusDraft)
	}
	if created.PublishedAt != nil {
		t.Error("expected nil published_at for draft")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Slug != slug {
		t.Errorf("FindByID returned %+v, want slug %q", found, slug)
	}
}

func TestContentStorePublishSetsTimestamp(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-publish-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	created, err := s.CreateItem(&models.Content{
		Type:     models.ContentTypePost,
		Title:    "Published Item",
		Slug:     slug,
		Body:     "<p>body</p>",
		Status:   models.ContentStatusPublish,
		AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.PublishedAt == nil {
		t.Error("expected published_at to be set for publish status")
	}
}

func TestContentStoreSlugGeneration(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	marker := uuid.NewString()[:8]
	title := "Slugless Item " + marker
	t.Cleanup(func() { cleanContent(t, db, "slugless-item-"+marker) })

	created, err := s.CreateItem(&models.Content{
		Type:     models.ContentTypePost,
		Title:    title,
		Body:     "<p>body</p>",
		Status:   models.ContentStatusDraft,
		AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.Slug != "slugless-item-"+marker {
		t.Errorf("slug: got %q, want generated from title", created.Slug)
	}
}

func TestContentStoreSlugCollision(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-collision-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	first, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "First", Slug: slug,
		Body: "<p>a</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("first CreateItem: %v", err)
	}

	second, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "Second", Slug: slug,
		Body: "<p>b</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("second CreateItem: %v", err)
	}

	if second.Slug == first.Slug {
		t.Errorf("expected deduplicated slug, both items got %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, slug+"-") {
		t.Errorf("deduplicated slug %q does not extend base %q", second.Slug, slug)
	}
}

// TestContentStoreNoDedup asserts that two identical payload-level
// creates yield two distinct items. Ingestion has no idempotency key;
// dedup is the caller's job.
func TestContentStoreNoDedup(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-nodedup-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	item := models.Content{
		Type: models.ContentTypePost, Title: "Same Item", Slug: slug,
		Body: "<p>same</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	}

	a, err := s.CreateItem(&item)
	if err != nil {
		t.Fatalf("first CreateItem: %v", err)
	}
	b, err := s.CreateItem(&item)
	if err != nil {
		t.Fatalf("second CreateItem: %v", err)
	}
	if a.ID == b.ID {
		t.Error("identical payloads must create two distinct items")
	}
}

func TestContentStorePermalink(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com/")

	slug := "test-permalink-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	created, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "Permalinked", Slug: slug,
		Body: "<p>x</p>", Status: models.ContentStatusPublish, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	url, err := s.Permalink(created.ID)
	if err != nil {
		t.Fatalf("Permalink: %v", err)
	}
	want := "https://news.example.com/" + slug
	if url != want {
		t.Errorf("Permalink = %q, want %q", url, want)
	}
}

func TestContentStoreAssignCategories(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")
	cats := NewCategoryStore(db)

	slug := "test-assign-cats-" + uuid.NewString()[:8]
	catName := "TestCat " + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanContent(t, db, slug)
		cleanCategories(t, db, catName)
	})

	item, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "Categorized", Slug: slug,
		Body: "<p>x</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	cat, err := cats.Create(catName)
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}

	// One valid id and one that cannot exist. The valid assignment
	// must survive the invalid one.
	if err := s.AssignCategories(item.ID, []int64{cat.ID, 999999999}); err != nil {
		t.Fatalf("AssignCategories: %v", err)
	}

	ids, err := s.CategoryIDs(item.ID)
	if err != nil {
		t.Fatalf("CategoryIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != cat.ID {
		t.Errorf("CategoryIDs = %v, want [%d]", ids, cat.ID)
	}
}

func TestContentStoreAssignTags(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-assign-tags-" + uuid.NewString()[:8]
	tagA := "taga-" + uuid.NewString()[:8]
	tagB := "tagb-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		cleanContent(t, db, slug)
		cleanTags(t, db, tagA, tagB)
	})

	item, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "Tagged", Slug: slug,
		Body: "<p>x</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Assign twice with an overlap — tags are matched-or-created and
	// links deduplicated.
	if err := s.AssignTags(item.ID, []string{tagA, tagB}); err != nil {
		t.Fatalf("first AssignTags: %v", err)
	}
	if err := s.AssignTags(item.ID, []string{tagA}); err != nil {
		t.Fatalf("second AssignTags: %v", err)
	}

	names, err := s.Tags(item.ID)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("Tags = %v, want 2 distinct tags", names)
	}
}

func TestContentStoreMeta(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")

	slug := "test-meta-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanContent(t, db, slug) })

	item, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "With Meta", Slug: slug,
		Body: "<p>x</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := s.SetMeta(item.ID, "fonte", "Portal"); err != nil {
		t.Fatalf("SetMeta: %v", err)
	}
	// Same key again replaces the value.
	if err := s.SetMeta(item.ID, "fonte", "Portal Atualizado"); err != nil {
		t.Fatalf("SetMeta replace: %v", err)
	}

	meta, err := s.Meta(item.ID)
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta["fonte"] != "Portal Atualizado" {
		t.Errorf("meta[fonte] = %q, want replaced value", meta["fonte"])
	}
}

func TestContentStoreBindCoverImage(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db, "https://news.example.com")
	atts := NewAttachmentStore(db)

	slug := "test-cover-" + uuid.NewString()[:8]
	srcA := "https://img.example.com/a-" + uuid.NewString()[:8] + ".jpg"
	srcB := "https://img.example.com/b-" + uuid.NewString()[:8] + ".jpg"
	t.Cleanup(func() {
		cleanContent(t, db, slug)
		cleanAttachments(t, db, srcA, srcB)
	})

	item, err := s.CreateItem(&models.Content{
		Type: models.ContentTypePost, Title: "Covered", Slug: slug,
		Body: "<p>x</p>", Status: models.ContentStatusDraft, AuthorID: 1,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	a, err := atts.Create(&models.Attachment{
		SourceURL: srcA, ObjectKey: "media/test/a.jpg", ContentType: "image/jpeg", SizeBytes: 10,
	})
	if err != nil {
		t.Fatalf("Create attachment: %v", err)
	}
	b, err := atts.Create(&models.Attachment{
		SourceURL: srcB, ObjectKey: "media/test/b.jpg", ContentType: "image/jpeg", SizeBytes: 10,
	})
	if err != nil {
		t.Fatalf("Create attachment: %v", err)
	}

	if err := s.BindCoverImage(item.ID, a.ID); err != nil {
		t.Fatalf("BindCoverImage: %v", err)
	}
	// Re-binding replaces, never stacks.
	if err := s.BindCoverImage(item.ID, b.ID); err != nil {
		t.Fatalf("BindCoverImage replace: %v", err)
	}

	found, err := s.FindByID(item.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.CoverID == nil || *found.CoverID != b.ID {
		t.Errorf("cover id = %v, want %d", found.CoverID, b.ID)
	}
}
