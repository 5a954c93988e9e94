package youtrack

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yahsan2/yt-list/pkg/config"
	"github.com/yahsan2/yt-list/pkg/filter"
)

const (
	loginEndpoint = "/rest/user/login"
	issueEndpoint = "/rest/issue/"

	// loginOK is the text of a successful login response: <login>ok</login>
	loginOK = "ok"

	defaultTimeout = time.Second
)

// Options holds configuration for creating a Client
type Options struct {
	// BaseURL is the tracker root. A trailing slash is stripped.
	BaseURL  string
	User     string
	Password string

	// ConnectTimeout bounds dialing, ReadTimeout bounds the whole request.
	// Both default to one second.
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// HTTPClient replaces the client built from the timeouts
	HTTPClient *http.Client

	// CookieDir is where session cookie files are created. Defaults to os.TempDir().
	CookieDir string

	// Logger receives user-visible messages. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client performs authenticated calls against the YouTrack legacy REST API.
// It holds no session state; every Session is created by Login and passed
// explicitly to Request.
type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	cookieDir  string
	logger     *slog.Logger
}

// NewClient creates a new tracker client
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		connectTimeout := opts.ConnectTimeout
		if connectTimeout <= 0 {
			connectTimeout = defaultTimeout
		}
		readTimeout := opts.ReadTimeout
		if readTimeout <= 0 {
			readTimeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout: readTimeout,
			Transport: &http.Transport{
				Proxy:       http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		}
		logger.Debug("youtrack client timeouts", "connect", connectTimeout, "read", readTimeout)
	}

	return &Client{
		baseURL:    config.NormalizeBaseURL(opts.BaseURL),
		user:       opts.User,
		password:   opts.Password,
		httpClient: httpClient,
		cookieDir:  opts.CookieDir,
		logger:     logger,
	}
}

// NewClientFromConfig creates a client from the loaded configuration
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	return NewClient(Options{
		BaseURL:        cfg.URL,
		User:           cfg.User,
		Password:       cfg.Password,
		ConnectTimeout: cfg.Timeouts.Connect,
		ReadTimeout:    cfg.Timeouts.Read,
		Logger:         logger,
	})
}

// BaseURL returns the tracker URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends a request to the REST API and returns the raw body, or nil
// when the response has no content.
//
// POST sends params as a form body. PUT sends an empty body and drops params.
// Every other method appends params as a query string.
func (c *Client) Request(ctx context.Context, session *Session, method, endpoint string, params url.Values) ([]byte, error) {
	if c.httpClient == nil {
		c.log().Error("No HTTP client available for the YouTrack client")
		return nil, NewTransportError("no HTTP client available", nil)
	}

	target := c.baseURL + endpoint

	var body io.Reader
	contentType := ""
	switch method {
	case http.MethodPost:
		if len(params) > 0 {
			body = strings.NewReader(params.Encode())
			contentType = "application/x-www-form-urlencoded"
		}
	case http.MethodPut:
		// PUT has never carried params
	default:
		if len(params) > 0 {
			target = target + "?" + params.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewTransportError("failed to build request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/xml")

	if session != nil {
		for _, cookie := range session.Cookies(req.URL) {
			req.AddCookie(cookie)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log().Error("YouTrack request failed", "method", method, "endpoint", endpoint, "error", err)
		return nil, NewTransportError("request to "+endpoint+" failed", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log().Error("YouTrack response could not be read", "endpoint", endpoint, "error", err)
		return nil, NewTransportError("failed to read response from "+endpoint, err)
	}
	c.log().Debug("youtrack response", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "bytes", len(content))

	if session != nil {
		session.jar.SetCookies(req.URL, resp.Cookies())
		if err := session.save(req.URL); err != nil {
			return nil, NewTransportError("failed to store session cookies", err)
		}
	}

	if len(content) == 0 {
		return nil, nil
	}
	return content, nil
}

// Login authenticates with the configured credentials and returns a new
// session. Missing url, user or password fails without a network call.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	if c.baseURL == "" {
		c.log().Error("YouTrack URL is not defined.")
	}
	if c.user == "" || c.password == "" || c.baseURL == "" {
		return nil, NewConfigurationError("url, user and password must be configured", nil)
	}

	session, err := newSession(c.cookieDir)
	if err != nil {
		return nil, NewTransportError("failed to create session cookie store", err)
	}

	params := url.Values{}
	params.Set("login", c.user)
	params.Set("password", c.password)

	content, err := c.Request(ctx, session, http.MethodPost, loginEndpoint, params)
	if err != nil {
		return nil, c.abandon(session, err)
	}

	text, err := parseLoginResponse(content)
	if err != nil || text != loginOK {
		c.log().Error("Login data not correct, or REST login is not enabled.", "url", c.baseURL, "user", c.user)
		return nil, c.abandon(session, NewAuthError("login rejected by "+c.baseURL, err))
	}

	return session, nil
}

// Logout ends a session by deleting its cookie file. Failing to delete it
// returns a fatal session error: the file still holds a valid login.
func (c *Client) Logout(session *Session) error {
	if session == nil {
		return nil
	}
	if err := session.close(); err != nil {
		c.log().Error("Can't remove session cookie file", "path", session.Path(), "error", err)
		return NewSessionError(session.Path(), err)
	}
	return nil
}

// abandon logs out of a session after a failed login. A cleanup failure
// takes precedence over the login error.
func (c *Client) abandon(session *Session, cause error) error {
	if err := c.Logout(session); err != nil {
		return err
	}
	return cause
}

// withSession runs fn between Login and Logout. Logout happens on every
// path once Login succeeded, and its failure replaces fn's result.
func (c *Client) withSession(ctx context.Context, fn func(*Session) error) (err error) {
	session, err := c.Login(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if logoutErr := c.Logout(session); logoutErr != nil {
			err = logoutErr
		}
	}()
	return fn(session)
}

// GetIssue fetches a single issue by ID
func (c *Client) GetIssue(ctx context.Context, id string) (*Issue, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NewValidationError("issue id is required", nil)
	}

	var content []byte
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		content, err = c.Request(ctx, session, http.MethodGet, issueEndpoint+url.PathEscape(id), nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ParseIssue(content)
}

// GetIssues fetches the issues matching a filter in the tracker's query
// language. At most filter.MaxResults issues are returned.
func (c *Client) GetIssues(ctx context.Context, query string) (*IssueList, error) {
	f := filter.NewIssueFilter(query)
	if f.IsEmpty() {
		return nil, NewValidationError("filter is required", nil)
	}

	var content []byte
	err := c.withSession(ctx, func(session *Session) error {
		var err error
		content, err = c.Request(ctx, session, http.MethodGet, issueEndpoint, f.Params())
		return err
	})
	if err != nil {
		return nil, err
	}

	return ParseIssueList(content)
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
