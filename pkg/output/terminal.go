package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cli/go-gh/v2/pkg/tableprinter"

	"github.com/yahsan2/yt-list/pkg/issue"
)

// TerminalRenderer writes a column-aligned table. On a terminal the upper-cased
// header is shown and cells are truncated to the width; otherwise rows are tab
// separated and end with the issue URL.
type TerminalRenderer struct {
	w     io.Writer
	link  LinkFunc
	isTTY bool
	width int
}

// NewTerminalRenderer creates a new terminal table renderer
func NewTerminalRenderer(w io.Writer, link LinkFunc, isTTY bool, width int) *TerminalRenderer {
	if width <= 0 {
		width = 80
	}
	return &TerminalRenderer{w: w, link: link, isTTY: isTTY, width: width}
}

// RenderTable writes the rows through a go-gh table printer
func (r *TerminalRenderer) RenderTable(columns []string, records []issue.Record, ids []string) error {
	tp := tableprinter.New(r.w, r.isTTY, r.width)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.ToUpper(col)
	}
	tp.AddHeader(header)

	for i, record := range records {
		for _, col := range columns {
			value := flatten(record[col])
			if col == issue.IDColumn && r.isTTY {
				tp.AddField(value, tableprinter.WithTruncate(nil))
				continue
			}
			tp.AddField(value)
		}
		if !r.isTTY {
			if url := r.link(issueID(ids, records, i)); url != "" {
				tp.AddField(url)
			}
		}
		tp.EndRow()
	}

	return tp.Render()
}

// RenderEmpty writes the placeholder line
func (r *TerminalRenderer) RenderEmpty() error {
	_, err := fmt.Fprintln(r.w, NothingFound)
	return err
}

// StyledRenderer writes a bordered table with a bold header row. The ID
// column shows the issue URL below the ID.
type StyledRenderer struct {
	w      io.Writer
	link   LinkFunc
	header lipgloss.Style
	cell   lipgloss.Style
}

// NewStyledRenderer creates a new styled table renderer
func NewStyledRenderer(w io.Writer, link LinkFunc) *StyledRenderer {
	return &StyledRenderer{
		w:      w,
		link:   link,
		header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// RenderTable writes the bordered table
func (r *StyledRenderer) RenderTable(columns []string, records []issue.Record, _ []string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		}).
		Headers(columns...)

	for _, record := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = flatten(record[col])
			if col == issue.IDColumn {
				if url := r.link(record[col]); url != "" {
					row[i] += "\n" + url
				}
			}
		}
		t.Row(row...)
	}

	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

// RenderEmpty writes the placeholder line
func (r *StyledRenderer) RenderEmpty() error {
	_, err := fmt.Fprintln(r.w, NothingFound)
	return err
}
