package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/cli/go-gh/v2/pkg/jq"

	"github.com/yahsan2/yt-list/pkg/issue"
)

// URLKey is the extra key holding the issue URL in JSON and CSV output
const URLKey = "url"

// JSONRenderer writes the records as a JSON array, optionally filtered by a
// jq expression
type JSONRenderer struct {
	w    io.Writer
	link LinkFunc
	jq   string
}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer(w io.Writer, link LinkFunc, jqExpr string) *JSONRenderer {
	return &JSONRenderer{w: w, link: link, jq: jqExpr}
}

// RenderTable writes one object per record with the columns as keys
func (r *JSONRenderer) RenderTable(columns []string, records []issue.Record, ids []string) error {
	rows := make([]map[string]string, 0, len(records))
	for i, record := range records {
		row := make(map[string]string, len(columns)+1)
		for _, col := range columns {
			if value, ok := record[col]; ok {
				row[col] = value
			}
		}
		if url := r.link(issueID(ids, records, i)); url != "" {
			row[URLKey] = url
		}
		rows = append(rows, row)
	}
	return r.write(rows)
}

// RenderEmpty writes an empty array
func (r *JSONRenderer) RenderEmpty() error {
	return r.write([]map[string]string{})
}

func (r *JSONRenderer) write(v any) error {
	if r.jq == "" {
		encoder := json.NewEncoder(r.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := jq.Evaluate(bytes.NewReader(data), r.w, r.jq); err != nil {
		return fmt.Errorf("failed to apply jq expression: %w", err)
	}
	return nil
}

// CSVRenderer writes the records as CSV. A url column is appended when the
// issue links are known.
type CSVRenderer struct {
	w    io.Writer
	link LinkFunc
}

// NewCSVRenderer creates a new CSV renderer
func NewCSVRenderer(w io.Writer, link LinkFunc) *CSVRenderer {
	return &CSVRenderer{w: w, link: link}
}

// RenderTable writes the header and one line per record
func (r *CSVRenderer) RenderTable(columns []string, records []issue.Record, ids []string) error {
	w := csv.NewWriter(r.w)

	urls := make([]string, len(records))
	withURL := false
	for i := range records {
		urls[i] = r.link(issueID(ids, records, i))
		withURL = withURL || urls[i] != ""
	}

	header := columns
	if withURL {
		header = append(slices.Clone(columns), URLKey)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, record := range records {
		line := make([]string, 0, len(header))
		for _, col := range columns {
			line = append(line, record[col])
		}
		if withURL {
			line = append(line, urls[i])
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// RenderEmpty writes nothing: an empty CSV has no header to show
func (r *CSVRenderer) RenderEmpty() error {
	return nil
}
