package directive

import (
	"fmt"
	"regexp"
	"strings"
)

// Name is the markup keyword of an issue list directive
const Name = "youtrack-list"

// pattern matches a complete directive, as the wiki lexer did
var pattern = regexp.MustCompile(`\{\{` + regexp.QuoteMeta(Name) + `>.*?\}\}`)

// Directive is a parsed {{youtrack-list>FILTER|COL1, COL2}} block
type Directive struct {
	Filter  string
	Columns []string
	// Raw is the matched markup, braces included
	Raw string
}

// ParseError is returned for markup that is not a usable directive
type ParseError struct {
	Markup string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s directive %q: %s", Name, e.Markup, e.Reason)
}

// Parse parses a single directive such as {{youtrack-list>project: X|ID, Summary}}.
// Everything up to the first '>' is the directive name. The rest is split on
// the first '|' into the filter and a comma separated column list.
func Parse(markup string) (*Directive, error) {
	body := strings.TrimSuffix(strings.TrimSpace(markup), "}}")

	_, rest, found := strings.Cut(body, ">")
	if !found {
		return nil, &ParseError{Markup: markup, Reason: "missing '>'"}
	}

	d, reason := parseBody(rest)
	if reason != "" {
		return nil, &ParseError{Markup: markup, Reason: reason}
	}
	d.Raw = markup
	return d, nil
}

// ParseBody parses the FILTER|COL1, COL2 part of a directive
func ParseBody(body string) (*Directive, error) {
	d, reason := parseBody(body)
	if reason != "" {
		return nil, &ParseError{Markup: body, Reason: reason}
	}
	d.Raw = body
	return d, nil
}

// parseBody returns the directive, or the reason it is invalid
func parseBody(body string) (*Directive, string) {
	filter, cols, found := strings.Cut(body, "|")
	if !found {
		return nil, "missing '|' between filter and columns"
	}

	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, "filter is empty"
	}
	if strings.TrimSpace(cols) == "" {
		return nil, "column list is empty"
	}

	columns := strings.Split(cols, ",")
	for i := range columns {
		columns[i] = strings.TrimSpace(columns[i])
	}

	return &Directive{Filter: filter, Columns: columns}, ""
}

// Find returns the byte offsets of every directive in doc
func Find(doc string) [][]int {
	return pattern.FindAllStringIndex(doc, -1)
}
