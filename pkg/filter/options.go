package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxResults is the fixed page cap sent with every issue search.
// Searches matching more issues are silently truncated by the tracker.
const MaxResults = 100

// IssueFilter contains the query options for the issue search endpoint
type IssueFilter struct {
	// Query in the tracker's search language, e.g. "project: ABC #Unresolved"
	Query string `json:"filter"`
	Max   int    `json:"max"`
}

// NewIssueFilter creates a new IssueFilter with the fixed result cap
func NewIssueFilter(query string) *IssueFilter {
	return &IssueFilter{
		Query: strings.TrimSpace(query),
		Max:   MaxResults,
	}
}

// IsEmpty reports whether no query was given
func (f *IssueFilter) IsEmpty() bool {
	return f.Query == ""
}

// Params returns the query string parameters for the search request
func (f *IssueFilter) Params() url.Values {
	params := url.Values{}
	params.Set("filter", f.Query)
	params.Set("max", strconv.Itoa(f.Max))
	return params
}
