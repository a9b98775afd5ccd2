package github

import (
	"fmt"
	"net/http"
	"time"

	"github.com/databricks/databricks-sdk-go/httpclient"
)

const defaultAPI = "https://api.github.com"

type Config struct {
	TokenSource

	// BaseURL overrides https://api.github.com in tests.
	BaseURL string

	RetryTimeout       time.Duration
	HTTPTimeout        time.Duration
	InsecureSkipVerify bool
	DebugHeaders       bool
	RateLimitPerSecond int

	Transport http.RoundTripper
}

func (cfg *Config) baseURL() string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return defaultAPI
}

type Client struct {
	api *httpclient.ApiClient
	cfg *Config
}

func NewClient(cfg *Config) *Client {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	return &Client{
		api: httpclient.NewApiClient(httpclient.ClientConfig{
			Visitors: []httpclient.RequestVisitor{func(r *http.Request) error {
				token, err := cfg.Token()
				if err != nil {
					return fmt.Errorf("token: %w", err)
				}
				if token.AccessToken != "" {
					r.Header.Set("Authorization", fmt.Sprintf("%s %s", token.TokenType, token.AccessToken))
				}
				return nil
			}},
			RetryTimeout:       cfg.RetryTimeout,
			HTTPTimeout:        cfg.HTTPTimeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			DebugHeaders:       cfg.DebugHeaders,
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			Transport:          cfg.Transport,
		}),
		cfg: cfg,
	}
}

// Authenticated reports whether the client can present a bearer token.
// The insights service uses this to short-circuit to its empty result
// instead of burning anonymous rate limit on a query that requires auth.
func (c *Client) Authenticated() bool {
	token, err := c.cfg.Token()
	if err != nil {
		return false
	}
	return token.AccessToken != ""
}
