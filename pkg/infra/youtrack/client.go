package youtrack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds a single user lookup
const DefaultTimeout = 2 * time.Second

const userFields = "id,login,fullName,email"

type config struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// Option is a functional option for the YouTrack client
type Option func(*config)

// WithTimeout sets the lookup timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport sets the base transport under the token transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

type apiUser struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// NewClient creates a UserDirectory backed by the YouTrack REST API. token
// is a permanent token sent as bearer credential.
func NewClient(baseURL, token string, opts ...Option) (interfaces.UserDirectory, error) {
	if baseURL == "" {
		return nil, goerr.New("youtrack base url is required")
	}
	if token == "" {
		return nil, goerr.New("youtrack token is required")
	}

	cfg := &config{
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})

	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.timeout,
			Transport: &oauth2.Transport{Source: ts, Base: cfg.transport},
		},
	}, nil
}

// FindByLogin looks a user up by exact login. Any failure is reported as
// not found.
func (c *client) FindByLogin(ctx context.Context, login string) (*model.User, bool) {
	user, err := c.findByLogin(ctx, login)
	if err != nil {
		ctxlog.From(ctx).Debug("YouTrack user lookup failed", "login", login, "error", err)
		return nil, false
	}
	if user == nil {
		return nil, false
	}
	return user, true
}

func (c *client) findByLogin(ctx context.Context, login string) (*model.User, error) {
	query := url.Values{}
	query.Set("fields", userFields)
	query.Set("query", login)
	query.Set("$top", "20")
	endpoint := c.baseURL + "/api/users?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request users", goerr.V("url", endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status code", goerr.V("status", resp.StatusCode), goerr.V("url", endpoint))
	}

	var users []apiUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, goerr.Wrap(err, "failed to decode users response")
	}

	for _, u := range users {
		if u.Login == login {
			return &model.User{
				ID:       u.ID,
				Login:    u.Login,
				FullName: u.FullName,
				Email:    u.Email,
			}, nil
		}
	}
	return nil, nil
}
