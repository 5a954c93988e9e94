package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yahsan2/yt-list/pkg/issue"
)

// DokuWikiRenderer writes DokuWiki table syntax:
//
//	^ %%ID%% ^ %%Summary%% ^
//	| [[https://yt.example.com/issue/ABC-1|ABC-1]] | %%Fix login%% |
type DokuWikiRenderer struct {
	w    io.Writer
	link LinkFunc
}

// NewDokuWikiRenderer creates a new DokuWiki renderer
func NewDokuWikiRenderer(w io.Writer, link LinkFunc) *DokuWikiRenderer {
	return &DokuWikiRenderer{w: w, link: link}
}

// RenderTable writes the header and data rows
func (r *DokuWikiRenderer) RenderTable(columns []string, records []issue.Record, _ []string) error {
	var b strings.Builder

	b.WriteString("^")
	for _, col := range columns {
		fmt.Fprintf(&b, " %s ^", dokuwikiText(col))
	}
	b.WriteString("\n")

	for _, record := range records {
		b.WriteString("|")
		for _, col := range columns {
			fmt.Fprintf(&b, " %s |", r.cell(col, record))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderEmpty writes the placeholder as a paragraph
func (r *DokuWikiRenderer) RenderEmpty() error {
	_, err := fmt.Fprintf(r.w, "\n%s\n\n", NothingFound)
	return err
}

func (r *DokuWikiRenderer) cell(col string, record issue.Record) string {
	value, ok := record[col]
	if !ok {
		return ""
	}
	if col == issue.IDColumn {
		if url := r.link(value); url != "" {
			return fmt.Sprintf("[[%s|%s]]", url, flatten(value))
		}
	}
	return dokuwikiText(value)
}

// dokuwikiText keeps s out of the DokuWiki parser. Autolinks, smileys and
// typography apply to bare words as well, so every non-empty text is wrapped.
func dokuwikiText(s string) string {
	s = flatten(s)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "%%"):
		return "<nowiki>" + s + "</nowiki>"
	default:
		return "%%" + s + "%%"
	}
}

// MarkdownRenderer writes a GitHub flavored markdown table
type MarkdownRenderer struct {
	w    io.Writer
	link LinkFunc
}

// NewMarkdownRenderer creates a new markdown renderer
func NewMarkdownRenderer(w io.Writer, link LinkFunc) *MarkdownRenderer {
	return &MarkdownRenderer{w: w, link: link}
}

// RenderTable writes the header, the delimiter row and data rows
func (r *MarkdownRenderer) RenderTable(columns []string, records []issue.Record, _ []string) error {
	_, err := io.WriteString(r.w, r.table(columns, records))
	return err
}

// RenderEmpty writes the placeholder as a paragraph
func (r *MarkdownRenderer) RenderEmpty() error {
	_, err := fmt.Fprintln(r.w, NothingFound)
	return err
}

func (r *MarkdownRenderer) table(columns []string, records []issue.Record) string {
	var b strings.Builder

	header := make([]string, len(columns))
	delim := make([]string, len(columns))
	for i, col := range columns {
		header[i] = markdownText(col)
		delim[i] = "---"
	}
	writeMarkdownRow(&b, header)
	writeMarkdownRow(&b, delim)

	for _, record := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = r.cell(col, record)
		}
		writeMarkdownRow(&b, row)
	}

	return b.String()
}

func (r *MarkdownRenderer) cell(col string, record issue.Record) string {
	value, ok := record[col]
	if !ok {
		return ""
	}
	if col == issue.IDColumn {
		if url := r.link(value); url != "" {
			return fmt.Sprintf("[%s](%s)", markdownText(value), url)
		}
	}
	return markdownText(value)
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"&", `\&`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"!", `\!`,
)

// markdownText escapes inline markdown so cells render as literal text
func markdownText(s string) string {
	return markdownEscaper.Replace(flatten(s))
}
