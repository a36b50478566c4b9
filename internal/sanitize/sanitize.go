// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans untrusted webhook input. Plain-text fields are
// stripped of all markup; content bodies keep an allow-list of common
// publishing tags, mirroring what a CMS editor would accept.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// textPolicy strips every tag — used for titles, excerpts, tags,
	// meta values, and anything else that must be plain text.
	textPolicy = bluemonday.StrictPolicy()

	// bodyPolicy allows the usual publishing markup: headings, lists,
	// tables, links, images, code, and inline formatting.
	bodyPolicy = buildBodyPolicy()

	// controlChars matches C0 control characters except \n and \t.
	controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")

	// whitespaceRun collapses consecutive whitespace into a single space.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

func buildBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("pre", "code", "figure", "blockquote")
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("width", "height", "loading").OnElements("img")
	p.RequireNoFollowOnLinks(false)
	return p
}

// Text removes all markup and control characters from a single-line
// value and collapses internal whitespace. The text analog of a form
// field sanitizer: "<b>Hi</b>\n there" → "Hi there".
func Text(s string) string {
	s = textPolicy.Sanitize(s)
	s = controlChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Multiline removes markup from a value while preserving line breaks.
// Used for excerpts, which may legitimately span paragraphs.
func Multiline(s string) string {
	s = textPolicy.Sanitize(s)
	s = controlChars.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Body sanitizes an HTML content body against the publishing allow-list.
// Scripts, event handlers, and unknown elements are removed; the
// surviving markup is safe to store and render.
func Body(s string) string {
	return strings.TrimSpace(bodyPolicy.Sanitize(s))
}

// Key normalizes a meta key: lowercase, with anything outside
// [a-z0-9_-] removed.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
