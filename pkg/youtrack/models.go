package youtrack

import (
	"encoding/xml"
	"strings"
)

// IssueList represents the <issues> document returned by the issue search endpoint
type IssueList struct {
	XMLName xml.Name `xml:"issues"`
	Issues  []Issue  `xml:"issue"`
}

// Issue represents a single tracker issue in the legacy REST XML format:
//
//	<issue id="ABC-1">
//	  <field name="summary"><value>Fix login</value></field>
//	  <field name="Assignee"><value fullName="Jane Doe">jdoe</value></field>
//	</issue>
type Issue struct {
	XMLName xml.Name `xml:"issue"`
	ID      string   `xml:"id,attr"`
	Fields  []Field  `xml:"field"`
}

// Field represents a named issue attribute
type Field struct {
	Name   string  `xml:"name,attr"`
	Values []Value `xml:"value"`
}

// Value represents one value of a field. Fields pointing at users or other
// entities carry a human readable fullName next to the raw value.
type Value struct {
	Text     string `xml:",chardata"`
	FullName string `xml:"fullName,attr"`
}

// Value returns the text of the first value, or "" when the field has none
func (f Field) Value() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0].Text
}

// FullName returns the fullName of the first value, or ""
func (f Field) FullName() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0].FullName
}

// FieldIndex returns the issue's fields keyed by name. When a name repeats,
// the first field wins.
func (i *Issue) FieldIndex() map[string]Field {
	index := make(map[string]Field, len(i.Fields))
	for _, f := range i.Fields {
		if _, exists := index[f.Name]; !exists {
			index[f.Name] = f
		}
	}
	return index
}

// ParseIssue parses a single <issue> document
func ParseIssue(data []byte) (*Issue, error) {
	if len(data) == 0 {
		return nil, NewParseError("empty issue response", nil)
	}

	var issue Issue
	if err := xml.Unmarshal(data, &issue); err != nil {
		return nil, NewParseError("failed to parse issue response", err)
	}
	return &issue, nil
}

// ParseIssueList parses an <issues> document
func ParseIssueList(data []byte) (*IssueList, error) {
	if len(data) == 0 {
		return nil, NewParseError("empty issue list response", nil)
	}

	var list IssueList
	if err := xml.Unmarshal(data, &list); err != nil {
		return nil, NewParseError("failed to parse issue list response", err)
	}
	return &list, nil
}

// loginResponse matches any root element and keeps its text, e.g. <login>ok</login>
type loginResponse struct {
	Text string `xml:",chardata"`
}

// parseLoginResponse returns the text content of the login response root element
func parseLoginResponse(data []byte) (string, error) {
	if len(data) == 0 {
		return "", NewParseError("empty login response", nil)
	}

	var resp loginResponse
	if err := xml.Unmarshal(data, &resp); err != nil {
		return "", NewParseError("failed to parse login response", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
