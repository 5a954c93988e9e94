package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/yahsan2/yt-list/pkg/issue"
)

// NothingFound is shown instead of a table when no issue matched
const NothingFound = "Nothing was found."

// FormatType represents the output format type
type FormatType string

const (
	// FormatDokuWiki outputs DokuWiki table markup
	FormatDokuWiki FormatType = "dokuwiki"
	// FormatMarkdown outputs a GitHub flavored markdown table
	FormatMarkdown FormatType = "markdown"
	// FormatHTML outputs a sanitized HTML table
	FormatHTML FormatType = "html"
	// FormatTable outputs a terminal table
	FormatTable FormatType = "table"
	// FormatStyled outputs a bordered terminal table
	FormatStyled FormatType = "styled"
	// FormatJSON outputs the records as JSON
	FormatJSON FormatType = "json"
	// FormatCSV outputs the records as CSV
	FormatCSV FormatType = "csv"
)

// Formats lists every supported format in help order
var Formats = []FormatType{
	FormatDokuWiki,
	FormatMarkdown,
	FormatHTML,
	FormatTable,
	FormatStyled,
	FormatJSON,
	FormatCSV,
}

// ParseFormat resolves a format name, case-insensitively
func ParseFormat(name string) (FormatType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "wiki":
		return FormatDokuWiki, nil
	case "md":
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (available: %s)", name, FormatNames())
}

// FormatNames returns the supported formats as a comma separated list
func FormatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// LinkFunc returns the browser URL of an issue ID
type LinkFunc func(id string) string

// TableRenderer presents a mapped issue result
type TableRenderer interface {
	// RenderTable writes a header row of columns and one row per record.
	// ids holds the issue ID of each record, also when the ID column is
	// not among columns.
	RenderTable(columns []string, records []issue.Record, ids []string) error
	// RenderEmpty writes the NothingFound placeholder
	RenderEmpty() error
}

// Render writes result through r, falling back to the placeholder when
// nothing matched
func Render(r TableRenderer, result *issue.Result) error {
	if result.IsEmpty() {
		return r.RenderEmpty()
	}
	return r.RenderTable(result.Columns, result.Records, result.IssueIDs)
}

// Options configures renderers that need more than a writer and a link
type Options struct {
	// JQ filters JSON output through a jq expression
	JQ string
	// IsTTY enables terminal styling for the table format
	IsTTY bool
	// Width is the terminal width the table format truncates to
	Width int
}

// NewRenderer creates the renderer for format writing to w
func NewRenderer(format FormatType, w io.Writer, link LinkFunc, opts Options) (TableRenderer, error) {
	if link == nil {
		link = func(string) string { return "" }
	}

	switch format {
	case FormatDokuWiki, "":
		return NewDokuWikiRenderer(w, link), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(w, link), nil
	case FormatHTML:
		return NewHTMLRenderer(w, link), nil
	case FormatTable:
		return NewTerminalRenderer(w, link, opts.IsTTY, opts.Width), nil
	case FormatStyled:
		return NewStyledRenderer(w, link), nil
	case FormatJSON:
		return NewJSONRenderer(w, link, opts.JQ), nil
	case FormatCSV:
		return NewCSVRenderer(w, link), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (available: %s)", format, FormatNames())
	}
}

// issueID returns the issue ID of record i, preferring ids over the ID cell
func issueID(ids []string, records []issue.Record, i int) string {
	if i < len(ids) && ids[i] != "" {
		return ids[i]
	}
	return records[i].ID()
}

// flatten replaces line breaks, which no table cell format can hold
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
