package store

import (
	"testing"

	"github.com/google/uuid"

	"contentreceiver/internal/models"
)

func TestAttachmentStoreCreateFindDelete(t *testing.T) {
	db := testDB(t)
	s := NewAttachmentStore(db)

	src := "https://img.example.com/" + uuid.NewString()[:8] + ".jpg"
	t.Cleanup(func() { cleanAttachments(t, db, src) })

	thumb := "media/test/thumb.jpg"
	created, err := s.Create(&models.Attachment{
		SourceURL:   src,
		ObjectKey:   "media/test/orig.jpg",
		ThumbKey:    &thumb,
		ContentType: "image/jpeg",
		SizeBytes:   2048,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero id")
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.SourceURL != src {
		t.Errorf("FindByID returned %+v, want source %q", found, src)
	}
	if found.ThumbKey == nil || *found.ThumbKey != thumb {
		t.Errorf("thumb key = %v, want %q", found.ThumbKey, thumb)
	}

	deleted, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted == nil || deleted.ObjectKey != "media/test/orig.jpg" {
		t.Errorf("Delete returned %+v, want row for storage cleanup", deleted)
	}

	gone, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}
