package markdown

import (
	"strings"
	"testing"
)

func TestToSafeHTML_StripsScriptAndLinkifiesURL(t *testing.T) {
	t.Parallel()

	got := ToSafeHTML(`<script>alert(1)</script> see http://x.com`)

	if strings.Contains(got, "<script") {
		t.Fatalf("script tag not stripped: %q", got)
	}
	if !strings.Contains(got, `<a href="http://x.com"`) {
		t.Fatalf("bare URL not autolinked: %q", got)
	}
}

func TestToSafeHTML_KeepsAllowedInlineTags(t *testing.T) {
	t.Parallel()

	got := ToSafeHTML("some **bold** and `code` text")

	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Fatalf("markdown emphasis missing: %q", got)
	}
	if !strings.Contains(got, "<code>code</code>") {
		t.Fatalf("markdown code span missing: %q", got)
	}
}

func TestToSafeHTML_StripsBlockTags(t *testing.T) {
	t.Parallel()

	got := ToSafeHTML("# heading\n\n<img src=x onerror=alert(1)>")

	if strings.Contains(got, "<h1") || strings.Contains(got, "<img") {
		t.Fatalf("disallowed tags present: %q", got)
	}
	// Heading text itself survives the strip.
	if !strings.Contains(got, "heading") {
		t.Fatalf("inner text lost: %q", got)
	}
}

func TestToSafeHTML_Empty(t *testing.T) {
	t.Parallel()

	if got := ToSafeHTML(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
