// Package markdown renders user-supplied markdown into HTML safe for
// embedding in API responses. The pipeline is: markdown → HTML via
// goldmark (with bare-URL autolinking), then an allow-list sanitizer
// that strips everything except a small set of inline tags.
package markdown

import (
	"bytes"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// rendererInstance is initialized once and reused. The goldmark
// configuration never changes and the Markdown value is safe to share;
// per-call parse state is created inside Convert.
var (
	rendererInstance goldmark.Markdown
	policyInstance   *bluemonday.Policy
	initOnce         sync.Once
)

func setup() {
	rendererInstance = goldmark.New(
		goldmark.WithExtensions(
			// Linkify turns bare URLs like http://example.com into anchors.
			extension.Linkify,
		),
	)

	p := bluemonday.NewPolicy()
	p.AllowElements("a", "abbr", "acronym", "b", "code", "em", "i", "strong")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("title").OnElements("a", "abbr", "acronym")
	p.AllowURLSchemes("http", "https", "mailto")
	policyInstance = p
}

// ToSafeHTML converts markdown source to sanitized HTML. Disallowed
// tags (script, img, headings, ...) are stripped, keeping their inner
// text. An empty input yields an empty string.
func ToSafeHTML(source string) string {
	if source == "" {
		return ""
	}
	initOnce.Do(setup)

	var buf bytes.Buffer
	if err := rendererInstance.Convert([]byte(source), &buf); err != nil {
		// Conversion only fails on writer errors, which bytes.Buffer
		// never produces. Fall back to sanitizing the raw text.
		return policyInstance.Sanitize(source)
	}
	return policyInstance.Sanitize(buf.String())
}
