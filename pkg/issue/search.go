package issue

import (
	"context"
	"strings"

	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// IssueSource fetches issues from the tracker. *youtrack.Client implements it.
type IssueSource interface {
	GetIssues(ctx context.Context, filter string) (*youtrack.IssueList, error)
	GetIssue(ctx context.Context, id string) (*youtrack.Issue, error)
}

// Lister resolves a filter and a column list into renderable records
type Lister struct {
	source IssueSource
	mapper *Mapper
}

// NewLister creates a new Lister
func NewLister(source IssueSource, mapper *Mapper) *Lister {
	return &Lister{
		source: source,
		mapper: mapper,
	}
}

// List fetches the issues matching filter and maps the requested columns
func (l *Lister) List(ctx context.Context, filter string, columns []string) (*Result, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, youtrack.NewValidationError("filter is required", nil)
	}
	columns = CleanColumns(columns)
	if len(columns) == 0 {
		return nil, youtrack.NewValidationError("at least one column is required", nil)
	}

	list, err := l.source.GetIssues(ctx, filter)
	if err != nil {
		return nil, err
	}

	return l.mapper.Map(list.Issues, columns), nil
}

// Get fetches a single issue and maps the requested columns into a one-row result
func (l *Lister) Get(ctx context.Context, id string, columns []string) (*Result, error) {
	columns = CleanColumns(columns)
	if len(columns) == 0 {
		return nil, youtrack.NewValidationError("at least one column is required", nil)
	}

	issue, err := l.source.GetIssue(ctx, id)
	if err != nil {
		return nil, err
	}

	return l.mapper.Map([]youtrack.Issue{*issue}, columns), nil
}

// CleanColumns trims column names and drops empty ones, keeping order
func CleanColumns(columns []string) []string {
	cleaned := make([]string, 0, len(columns))
	for _, col := range columns {
		if col = strings.TrimSpace(col); col != "" {
			cleaned = append(cleaned, col)
		}
	}
	return cleaned
}
