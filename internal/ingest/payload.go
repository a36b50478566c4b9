// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"contentreceiver/internal/markdown"
	"contentreceiver/internal/sanitize"
	"contentreceiver/internal/slug"
)

// Payload is the raw decoded webhook body. Fields that legitimately
// arrive in more than one JSON shape (numbers as strings, a single
// image URL or a list of them) are declared as any and coerced during
// validation; nothing downstream ever touches the raw payload.
type Payload struct {
	APIKey        string         `json:"api_key"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	Format        string         `json:"format"`
	Excerpt       string         `json:"excerpt"`
	Status        string         `json:"status"`
	PostType      string         `json:"post_type"`
	AuthorID      any            `json:"author_id"`
	Slug          string         `json:"slug"`
	Date          string         `json:"date"`
	Categories    []any          `json:"categories"`
	Tags          []any          `json:"tags"`
	FeaturedImage any            `json:"featured_image"`
	Meta          map[string]any `json:"meta"`
}

// CategoryRef is one entry of the payload's mixed category list: either
// a numeric id (Name empty) or a name to find-or-create.
type CategoryRef struct {
	ID   int64
	Name string
}

// Request is a validated, sanitized content creation request. Only this
// type crosses the boundary into the orchestrator.
type Request struct {
	Title       string
	Body        string
	Excerpt     string
	Status      string
	Type        string
	AuthorID    int64
	Slug        string
	PublishedAt *time.Time
	Categories  []CategoryRef
	Tags        []string
	ImageURL    string
	Meta        map[string]string
}

// dateLayouts are the publish date formats accepted, tried in order.
// The first is what the original upstream feed sends.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Validate checks the payload's required fields and coerces the rest
// into a Request. Requiredness is judged on the raw values, before
// sanitization, so a title that is pure markup still counts as present.
func Validate(p *Payload, defaultAuthorID int64) (*Request, *ValidationError) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(p.Content) == "" {
		return nil, &ValidationError{Field: "content"}
	}

	req := &Request{
		Title:   sanitize.Text(p.Title),
		Body:    sanitizeBody(p.Content, p.Format),
		Excerpt: sanitize.Multiline(p.Excerpt),
		Status:  sanitize.Text(p.Status),
		Type:    sanitize.Text(p.PostType),
		Slug:    slug.Generate(p.Slug),
		Meta:    make(map[string]string, len(p.Meta)),
	}

	if req.Status == "" {
		req.Status = "publish"
	}
	if req.Type == "" {
		req.Type = "post"
	}

	// Unsigned-int coercion: absolute value of the parse, zero on
	// non-numeric input, configured default when absent. Negative ids
	// are silently folded, not rejected — lenient on purpose.
	if p.AuthorID == nil {
		req.AuthorID = defaultAuthorID
	} else {
		req.AuthorID = coerceUint(p.AuthorID)
	}

	if p.Date != "" {
		req.PublishedAt = parseDate(p.Date)
	}

	for _, entry := range p.Categories {
		switch v := entry.(type) {
		case string:
			if name := sanitize.Text(v); name != "" {
				req.Categories = append(req.Categories, CategoryRef{Name: name})
			}
		default:
			if id, ok := asInt64(entry); ok {
				req.Categories = append(req.Categories, CategoryRef{ID: abs(id)})
			}
		}
	}

	for _, entry := range p.Tags {
		if tag := sanitize.Text(stringify(entry)); tag != "" {
			req.Tags = append(req.Tags, tag)
		}
	}

	req.ImageURL = firstImageURL(p.FeaturedImage)

	for k, v := range p.Meta {
		key := sanitize.Key(k)
		if key == "" {
			continue
		}
		req.Meta[key] = sanitize.Text(stringify(v))
	}

	return req, nil
}

// sanitizeBody converts Markdown bodies to HTML when requested, then
// runs the allow-list sanitizer.
func sanitizeBody(content, format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "markdown") {
		html, err := markdown.ToHTML(content)
		if err != nil {
			slog.Warn("markdown conversion failed, treating body as HTML", "error", err)
		} else {
			content = html
		}
	}
	return sanitize.Body(content)
}

// parseDate tries the known publish date layouts. An unparseable date
// is ignored, not rejected — the item publishes with the current time.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	slog.Warn("unparseable publish date ignored", "date", s)
	return nil
}

// coerceUint applies the unsigned-int coercion to a value of unknown
// JSON shape: abs of the integer parse, zero on anything non-numeric.
func coerceUint(v any) int64 {
	if n, ok := asInt64(v); ok {
		return abs(n)
	}
	return 0
}

// asInt64 extracts an integer from the shapes the JSON decoder and
// callers produce: numbers, numeric strings, and whole floats.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// stringify renders a scalar payload value as a string. Non-scalar
// values become empty and are dropped by the callers' sanitizers.
func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

// firstImageURL extracts the featured image URL: a plain string is used
// as-is, a list contributes only its first string element, anything
// else is a no-op.
func firstImageURL(v any) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case []any:
		if len(img) == 0 {
			return ""
		}
		if s, ok := img[0].(string); ok {
			return strings.TrimSpace(s)
		}
		return ""
	default:
		return ""
	}
}
