// Package client provides an HTTP client for the comment site's endpoints.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/evcraddock/delc/internal/comment"
	"github.com/evcraddock/delc/internal/logging"
)

// SessionCookieName is the cookie the server keeps its session in.
const SessionCookieName = "session"

const defaultTimeout = 30 * time.Second

var (
	// ErrStatus is returned when the server answers with a non-2xx status.
	ErrStatus = errors.New("unexpected status")
	// ErrNotLoggedIn is returned when the server redirects to its login page.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrLoginFailed is returned when the login form is rejected.
	ErrLoginFailed = errors.New("login rejected")
)

// Client is an HTTP client for the comment site.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithSession seeds the cookie jar with a previously saved session cookie.
func WithSession(value string) Option {
	return func(c *Client) {
		if value == "" {
			return
		}
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
			Name:  SessionCookieName,
			Value: value,
			Path:  "/",
		}})
	}
}

// WithTimeout overrides the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport sets the underlying round tripper. Requests are still logged.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = logging.NewTransport(rt)
	}
}

// New creates a new client for the site at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:       defaultTimeout,
			Jar:           jar,
			Transport:     logging.NewTransport(nil),
			CheckRedirect: checkRedirect,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// checkRedirect stops at the login page instead of fetching it.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if req.URL.Path == "/login" {
		return ErrNotLoggedIn
	}
	return nil
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CloseIdleConnections closes keep-alive connections that are not in use.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// SessionCookie returns the current session cookie value, if any.
func (c *Client) SessionCookie() string {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// DeleteComment sends POST /delete_comment/{id} and decodes the outcome.
// One request is made; there is no retry.
func (c *Client) DeleteComment(ctx context.Context, id comment.ID) (*comment.Outcome, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/delete_comment/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out comment.Outcome
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding delete outcome: %w", err)
	}
	return &out, nil
}

// FetchPage returns the HTML of the page at path (which may carry a query).
func (c *Client) FetchPage(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// Login submits the user login form and keeps the session cookie.
func (c *Client) Login(ctx context.Context, userID, password string) error {
	form := url.Values{
		"role":     {"user"},
		"username": {userID},
		"password": {password},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if errors.Is(err, ErrNotLoggedIn) {
		return ErrLoginFailed
	}
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	// A successful login redirects away; a rejected one re-renders the form.
	if resp.Request.URL.Path == "/login" {
		return ErrLoginFailed
	}
	if c.SessionCookie() == "" {
		return fmt.Errorf("%w: no session cookie set", ErrLoginFailed)
	}
	return nil
}

// Logout ends the server session and forgets the session cookie.
func (c *Client) Logout(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/logout", nil)
	if err != nil {
		return err
	}
	if _, err := c.do(req); err != nil && !errors.Is(err, ErrNotLoggedIn) {
		return err
	}
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{
		Name:   SessionCookieName,
		Path:   "/",
		MaxAge: -1,
	}})
	return nil
}

// PostComment adds a comment to a movie.
func (c *Client) PostComment(ctx context.Context, movieID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment text is required")
	}
	form := url.Values{
		"movie_id": {strconv.FormatInt(movieID, 10)},
		"content":  {content},
	}
	req, err := c.newRequest(ctx, http.MethodPost, CommentsPath(movieID), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	_, err = c.do(req)
	return err
}

// CommentsPath returns the path of a movie's comment page.
func CommentsPath(movieID int64) string {
	return "/comments?movie_id=" + strconv.FormatInt(movieID, 10)
}

// newRequest builds a request for path relative to the base URL.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", path, err)
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + ref.Path
	u.RawPath = ""
	if ref.RawPath != "" {
		u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + ref.RawPath
	}
	u.RawQuery = ref.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return req, nil
}

// do executes a request and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	return respBody, nil
}

func closeBody(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		slog.Warn("closing response body", "error", cerr)
	}
}
