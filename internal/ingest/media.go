// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"contentreceiver/internal/imaging"
	"contentreceiver/internal/models"
)

// maxImageBytes caps how much of a remote image we are willing to read.
const maxImageBytes = 20 << 20 // 20 MB

// Uploader is the object storage surface the acquirer needs.
// *storage.Client satisfies it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// AttachmentSink persists attachment metadata. *store.AttachmentStore
// satisfies it.
type AttachmentSink interface {
	Create(a *models.Attachment) (*models.Attachment, error)
}

// MediaAcquirer downloads a remote image, stores the original plus a
// generated thumbnail in object storage, and records the attachment.
type MediaAcquirer struct {
	client  *http.Client
	storage Uploader
	sink    AttachmentSink
}

// NewMediaAcquirer builds an acquirer with its own HTTP client so a
// slow image host cannot hold the webhook open indefinitely.
func NewMediaAcquirer(storage Uploader, sink AttachmentSink, fetchTimeout time.Duration) *MediaAcquirer {
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	return &MediaAcquirer{
		client:  &http.Client{Timeout: fetchTimeout},
		storage: storage,
		sink:    sink,
	}
}

// extByContentType maps the sniffed content type to a file extension
// for the object key. Only these image types are sideloaded.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// FetchAndStore downloads the image at rawURL and returns the stored
// attachment. Content type is sniffed from the bytes, never trusted
// from the response header. Thumbnail generation is best effort; the
// attachment is still created when it fails.
func (m *MediaAcquirer) FetchAndStore(ctx context.Context, rawURL string) (*models.Attachment, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse image url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	if int64(len(data)) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}

	contentType := http.DetectContentType(data)
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %q", contentType)
	}

	now := time.Now()
	base := uuid.New().String()
	key := path.Join("media", now.Format("2006"), now.Format("01"), base+ext)

	if err := m.storage.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	var thumbKey *string
	if thumb, terr := imaging.Generate(data); terr != nil {
		slog.Warn("thumbnail generation failed", "url", rawURL, "error", terr)
	} else {
		tk := path.Join("media", now.Format("2006"), now.Format("01"), base+"_thumb.jpg")
		if uerr := m.storage.Upload(ctx, tk, thumb.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data))); uerr != nil {
			slog.Warn("thumbnail upload failed", "key", tk, "error", uerr)
		} else {
			thumbKey = &tk
		}
	}

	att, err := m.sink.Create(&models.Attachment{
		SourceURL:   truncate(rawURL, 2048),
		ObjectKey:   key,
		ThumbKey:    thumbKey,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	})
	if err != nil {
		return nil, fmt.Errorf("record attachment: %w", err)
	}
	return att, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.ToValidUTF8(s[:max], "")
}
