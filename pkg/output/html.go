package output

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yahsan2/yt-list/pkg/issue"
)

// HTMLRenderer writes a sanitized HTML table built from the markdown table
type HTMLRenderer struct {
	w        io.Writer
	markdown *MarkdownRenderer
	md       goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewHTMLRenderer creates a new HTML renderer
func NewHTMLRenderer(w io.Writer, link LinkFunc) *HTMLRenderer {
	return &HTMLRenderer{
		w:        w,
		markdown: NewMarkdownRenderer(nil, link),
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// RenderTable converts the markdown table to HTML and sanitizes it
func (r *HTMLRenderer) RenderTable(columns []string, records []issue.Record, _ []string) error {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(r.markdown.table(columns, records)), &buf); err != nil {
		return fmt.Errorf("failed to convert table to HTML: %w", err)
	}

	_, err := r.policy.SanitizeReader(&buf).WriteTo(r.w)
	return err
}

// RenderEmpty writes the placeholder paragraph
func (r *HTMLRenderer) RenderEmpty() error {
	_, err := fmt.Fprintf(r.w, "<p>%s</p>\n", html.EscapeString(NothingFound))
	return err
}
