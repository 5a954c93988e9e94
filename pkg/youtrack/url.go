package youtrack

import (
	"fmt"
	"net/url"
)

// IssueURL returns the canonical browser URL of an issue, or "" for an empty id
func (c *Client) IssueURL(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("%s/issue/%s", c.baseURL, id)
}

// IssuesURL returns the browser URL of the issue search for filter
func (c *Client) IssuesURL(filter string) string {
	if filter == "" {
		return c.baseURL + "/issues"
	}
	return fmt.Sprintf("%s/issues?q=%s", c.baseURL, url.QueryEscape(filter))
}
