package cmd

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yahsan2/yt-list/pkg/config"
)

const trackerIssuesXML = `<issues>
  <issue id="ABC-1">
    <field name="summary"><value>Fix login</value></field>
    <field name="Assignee"><value fullName="Jane Doe">jdoe</value></field>
    <field name="created"><value>1700000000000</value></field>
  </issue>
  <issue id="ABC-2">
    <field name="summary"><value>Add logout</value></field>
    <field name="created"><value>1700086400000</value></field>
  </issue>
</issues>`

const trackerIssueXML = `<issue id="ABC-1">
  <field name="summary"><value>Fix login</value></field>
  <field name="State"><value>Open</value></field>
</issue>`

// newTestTracker serves the legacy REST endpoints for user wiki/secret.
// Only "project: ABC" matches any issues.
func newTestTracker(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/user/login" {
			_ = r.ParseForm()
			if r.PostForm.Get("login") != "wiki" || r.PostForm.Get("password") != "secret" {
				io.WriteString(w, "<error>Incorrect login or password.</error>")
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "abc", Path: "/"})
			io.WriteString(w, "<login>ok</login>")
			return
		}

		if c, err := r.Cookie("JSESSIONID"); err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, "<error>You are not logged in.</error>")
			return
		}

		switch r.URL.Path {
		case "/rest/issue/":
			if r.URL.Query().Get("filter") == "project: ABC" {
				io.WriteString(w, trackerIssuesXML)
				return
			}
			io.WriteString(w, "<issues/>")
		case "/rest/issue/ABC-1":
			io.WriteString(w, trackerIssueXML)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, "<error>Issue not found.</error>")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(trackerURL string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.URL = trackerURL + "/"
	cfg.User = "wiki"
	cfg.Password = "secret"
	cfg.Timeouts.Connect = 5 * time.Second
	cfg.Timeouts.Read = 5 * time.Second
	return cfg
}

func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, cfg.Save(path))
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// issueURL is the link the renderers produce for id on srv
func issueURL(srv *httptest.Server, id string) string {
	return srv.URL + "/issue/" + url.PathEscape(id)
}
