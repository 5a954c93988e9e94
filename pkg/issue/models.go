package issue

import (
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// IDColumn is the column that shows the issue ID instead of a field value
const IDColumn = "ID"

// Record is one flattened issue: column name to display string.
// A column missing from the issue has no key.
type Record map[string]string

// ID returns the issue ID of the record, when the ID column was requested
func (r Record) ID() string {
	return r[IDColumn]
}

// Result is the outcome of resolving a filter and a column list
type Result struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`

	// Warnings holds one field_missing error per absent cell
	Warnings []*youtrack.TrackerError `json:"-"`

	// IssueIDs keeps the issue IDs in record order, also when the ID column is not shown
	IssueIDs []string `json:"-"`
}

// IsEmpty reports whether no issue matched
func (r *Result) IsEmpty() bool {
	return r == nil || len(r.Records) == 0
}
