package slug

import (
	"strings"
	"testing"
)

// TestGenerate exercises the slug generator across typical feed titles,
// special characters, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "already a slug", input: "my-post", want: "my-post"},
		{name: "single word", input: "Breaking", want: "breaking"},

		// --- Special characters ---
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "ampersand and at sign", input: "Rock & Roll @ the Arena", want: "rock-roll-the-arena"},
		{name: "parentheses", input: "Version (2.0) [Beta]", want: "version-20-beta"},
		{name: "hash and dollar", input: "Issue #42 costs $100", want: "issue-42-costs-100"},

		// --- Unicode ---
		{name: "accents stripped", input: "Economia: inflação e câmbio", want: "economia-inflao-e-cmbio"},

		// --- Whitespace and hyphens ---
		{name: "surrounding spaces", input: "  hello world  ", want: "hello-world"},
		{name: "tab between words", input: "hello\tworld", want: "hello-world"},
		{name: "consecutive spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "hyphen runs collapsed", input: "hello---world", want: "hello-world"},
		{name: "surrounding hyphens trimmed", input: "--hello world--", want: "hello-world"},
		{name: "single hyphen preserved", input: "well-known fact", want: "well-known-fact"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "only numbers", input: "123456", want: "123456"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},

		// --- Realistic feed titles ---
		{name: "news headline", input: "Governo anuncia novo pacote: o que muda?", want: "governo-anuncia-novo-pacote-o-que-muda"},
		{name: "tech headline", input: "How to Deploy Go Apps on Kubernetes (2026 Edition)", want: "how-to-deploy-go-apps-on-kubernetes-2026-edition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	slugs := []string{"hello-world", "my-post-2026", "a", "123"}

	for _, s := range slugs {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

// TestGenerate_LengthCap verifies that very long inputs are truncated
// without leaving a trailing hyphen.
func TestGenerate_LengthCap(t *testing.T) {
	long := strings.Repeat("word ", 100)
	got := Generate(long)
	if len(got) > 200 {
		t.Errorf("slug length = %d, want <= 200", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("slug %q has trailing hyphen after truncation", got)
	}
}
