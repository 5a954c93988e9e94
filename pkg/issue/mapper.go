package issue

import (
	"log/slog"
	"strings"
	"time"

	"github.com/yahsan2/yt-list/pkg/utils"
	"github.com/yahsan2/yt-list/pkg/youtrack"
)

// Mapper flattens tracker issues into records for a column list
type Mapper struct {
	// DateFormat is the strftime pattern for millisecond timestamp values
	DateFormat string
	// Location is the timezone dates are shown in. Defaults to UTC.
	Location *time.Location
	Logger   *slog.Logger
}

// NewMapper creates a new mapper
func NewMapper(dateFormat string, loc *time.Location, logger *slog.Logger) *Mapper {
	return &Mapper{
		DateFormat: dateFormat,
		Location:   loc,
		Logger:     logger,
	}
}

// Map builds one record per issue with a cell per requested column.
// Columns missing on an issue are reported as warnings and left out of that
// issue's record; the remaining columns and issues are still mapped.
func (m *Mapper) Map(issues []youtrack.Issue, columns []string) *Result {
	result := &Result{
		Columns: columns,
		Records: make([]Record, 0, len(issues)),
	}

	for i := range issues {
		issue := &issues[i]
		fields := issue.FieldIndex()
		record := make(Record, len(columns))

		for _, col := range columns {
			if col == IDColumn {
				record[col] = issue.ID
				continue
			}

			field, ok := fields[col]
			if !ok {
				warning := youtrack.NewFieldMissingError(col, issue.ID)
				m.log().Warn(warning.Message, "field", col, "issue", issue.ID)
				result.Warnings = append(result.Warnings, warning)
				continue
			}

			record[col] = m.display(field)
		}

		result.Records = append(result.Records, record)
		result.IssueIDs = append(result.IssueIDs, issue.ID)
	}

	return result
}

// display returns the cell text of a field. Multi-value fields are joined.
func (m *Mapper) display(field youtrack.Field) string {
	if len(field.Values) <= 1 {
		return m.displayValue(field.Value(), field.FullName())
	}

	parts := make([]string, 0, len(field.Values))
	for _, v := range field.Values {
		parts = append(parts, m.displayValue(v.Text, v.FullName))
	}
	return strings.Join(parts, ", ")
}

// displayValue prefers a formatted date, then the full name, then the raw value
func (m *Mapper) displayValue(value, fullName string) string {
	if formatted, ok := utils.FormatDateValue(value, m.DateFormat, m.Location); ok {
		return formatted
	}
	if fullName != "" {
		return fullName
	}
	return value
}

func (m *Mapper) log() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}
