package init

import (
	"context"
	"sort"

	"github.com/yahsan2/yt-list/pkg/issue"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// IssueSearcher runs an issue search. *youtrack.Client implements it.
type IssueSearcher interface {
	GetIssues(ctx context.Context, filter string) (*youtrack.IssueList, error)
}

// MetadataManager collects what the tracker knows about issue fields
type MetadataManager struct {
	source IssueSearcher
}

// NewMetadataManager creates a new MetadataManager instance
func NewMetadataManager(source IssueSearcher) *MetadataManager {
	return &MetadataManager{
		source: source,
	}
}

// DiscoverFields returns the names usable as columns for the issues matching
// filter: ID first, then every field name seen, sorted.
func (m *MetadataManager) DiscoverFields(ctx context.Context, filter string) ([]string, error) {
	list, err := m.source.GetIssues(ctx, filter)
	if err != nil {
		return nil, NewTrackerError("failed to fetch sample issues", err)
	}

	return FieldNames(list.Issues), nil
}

// FieldNames returns ID followed by the sorted, distinct field names of issues
func FieldNames(issues []youtrack.Issue) []string {
	seen := make(map[string]bool)
	for _, is := range issues {
		for _, f := range is.Fields {
			if f.Name != "" && f.Name != issue.IDColumn {
				seen[f.Name] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return append([]string{issue.IDColumn}, names...)
}
