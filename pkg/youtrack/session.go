package youtrack

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
)

const cookieFilePattern = "yt-cookie-*"

// Session is the authenticated context between a Login and its Logout.
// Cookies live in an in-memory jar and are mirrored to a private temp file
// in Netscape cookie format, the same layout curl uses for its cookie jar.
type Session struct {
	path string
	jar  *cookiejar.Jar
}

// newSession creates a fresh cookie store backed by a new temp file
func newSession(dir string) (*Session, error) {
	f, err := os.CreateTemp(dir, cookieFilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to create cookie file: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Session{path: f.Name(), jar: jar}, nil
}

// Path returns the location of the session cookie file
func (s *Session) Path() string {
	return s.path
}

// Cookies returns the session cookies that would be sent to u
func (s *Session) Cookies(u *url.URL) []*http.Cookie {
	return s.jar.Cookies(u)
}

// save writes the cookies for u to the session file
func (s *Session) save(u *url.URL) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open cookie file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Netscape HTTP Cookie File")

	secure := "FALSE"
	if u.Scheme == "https" {
		secure = "TRUE"
	}
	for _, c := range s.jar.Cookies(u) {
		// The jar does not expose domain, path or expiry; session scope is enough here
		fmt.Fprintf(w, "%s\tFALSE\t/\t%s\t0\t%s\t%s\n", u.Hostname(), secure, c.Name, c.Value)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return f.Close()
}

// close deletes the cookie file
func (s *Session) close() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
