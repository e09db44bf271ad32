package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aatumaykin/giscleanup/internal/logger"
)

const (
	// restPath is the root of the portal sharing REST API
	restPath = "/sharing/rest"
	// DefaultRequestTimeout is the default timeout for portal requests
	DefaultRequestTimeout = 30 * time.Second
	// tokenExpirationMinutes is the requested lifetime for generated tokens
	tokenExpirationMinutes = 60
)

// ClientConfig contains configuration for the live portal client.
type ClientConfig struct {
	URL            string // portal base URL, e.g. https://www.arcgis.com
	Username       string // username for generateToken
	Password       string // password for generateToken
	Token          string // pre-issued token, skips generateToken when set
	TimeoutSeconds int    // timeout for HTTP requests in seconds
}

// Client implements the Portal interface against the sharing REST API.
type Client struct {
	client  *http.Client
	config  ClientConfig
	baseURL string
	token   string
	logger  *logger.Logger
}

// NewClient creates a portal client. Call Connect before any other method
// unless a pre-issued token was configured.
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		config:  cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		logger:  log,
	}
}

// BaseURL returns the portal base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// apiError is the JSON error envelope the portal embeds in 200 responses.
type apiError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

func (e *apiError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("portal error: code=%d, message=%s, details=%s", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("portal error: code=%d, message=%s", e.Code, e.Message)
}

// httpError represents a non-200 HTTP response from the portal.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP error: status=%d, body=%s", e.StatusCode, e.Body)
}

type tokenResponse struct {
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}

// Connect acquires a session token via generateToken. It is a no-op when a
// pre-issued token is already present.
func (c *Client) Connect(ctx context.Context) error {
	if c.token != "" {
		return nil
	}

	params := url.Values{}
	params.Set("username", c.config.Username)
	params.Set("password", c.config.Password)
	params.Set("referer", c.baseURL)
	params.Set("expiration", strconv.Itoa(tokenExpirationMinutes))

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/generateToken", params, &resp); err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("failed to generate token: empty token in response")
	}

	c.token = resp.Token
	c.logger.Debug("portal token acquired",
		logger.Field{Key: "expires", Value: resp.Expires})

	return nil
}

type selfResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Self returns the organization and acting user of the session.
func (c *Client) Self(ctx context.Context) (Session, error) {
	var resp selfResponse
	if err := c.do(ctx, http.MethodGet, "/portals/self", url.Values{}, &resp); err != nil {
		return Session{}, fmt.Errorf("failed to fetch portal self: %w", err)
	}

	username := resp.User.Username
	if username == "" {
		username = c.config.Username
	}

	return Session{
		Org:      Org{ID: resp.ID, Name: resp.Name},
		Username: username,
	}, nil
}

type userSearchResponse struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Num     int    `json:"num"`
	Results []User `json:"results"`
}

// SearchUsers returns up to opts.Max user accounts.
func (c *Client) SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]User, error) {
	params := url.Values{}
	params.Set("q", "*")
	params.Set("num", strconv.Itoa(opts.Max))
	if opts.SortField != "" {
		params.Set("sortField", opts.SortField)
	}
	if opts.SortOrder != "" {
		params.Set("sortOrder", opts.SortOrder)
	}

	var resp userSearchResponse
	if err := c.do(ctx, http.MethodGet, "/community/users", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	c.logger.Debug("user search completed",
		logger.Field{Key: "total", Value: resp.Total},
		logger.Field{Key: "returned", Value: len(resp.Results)})

	return resp.Results, nil
}

type itemSearchResponse struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Num     int    `json:"num"`
	Results []Item `json:"results"`
}

// SearchItems returns up to opts.Max items owned by opts.Owner in the
// organization. The owner is validated before being interpolated into the
// search query.
func (c *Client) SearchItems(ctx context.Context, opts SearchItemsOptions) ([]Item, error) {
	query, err := BuildOwnerQuery(opts.Owner, opts.OrgID)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(opts.Max))

	var resp itemSearchResponse
	if err := c.do(ctx, http.MethodGet, "/search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search items for %s: %w", opts.Owner, err)
	}

	return resp.Results, nil
}

type deleteResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"itemId"`
}

// DeleteItem deletes a single item by owner and id.
func (c *Client) DeleteItem(ctx context.Context, owner, id string) error {
	path := fmt.Sprintf("/content/users/%s/items/%s/delete", url.PathEscape(owner), url.PathEscape(id))

	var resp deleteResponse
	if err := c.do(ctx, http.MethodPost, path, url.Values{}, &resp); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	if !resp.Success {
		return fmt.Errorf("failed to delete item %s: portal reported no success", id)
	}

	return nil
}

// do executes one request against the sharing REST API and decodes the JSON
// response into out. The portal reports most failures through an error
// envelope in a 200 response, so both paths are checked.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	params.Set("f", "json")
	if c.token != "" && path != "/generateToken" {
		params.Set("token", c.token)
	}

	endpoint := c.baseURL + restPath + path

	var httpReq *http.Request
	var err error
	switch method {
	case http.MethodGet:
		httpReq, err = http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), nil)
	default:
		httpReq, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
		if httpReq != nil {
			httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return &httpError{StatusCode: httpResp.StatusCode, Body: string(body)}
	}

	var envelope struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Error != nil {
		return envelope.Error
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
