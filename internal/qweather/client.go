package qweather

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/daniyyer/kindle-dash/internal/config"
)

const requestTimeout = 10 * time.Second

// Client issues authenticated requests against the QWeather API.
//
// Two auth modes exist. The signed-token mode (preferred) talks to a single
// configured host and attaches a freshly issued EdDSA bearer token to every
// request. The legacy mode carries a static API key as a query parameter and
// keeps a list of alternate hostnames that fallback chains try in order.
type Client struct {
	http     *resty.Client
	baseURLs []string
	tokens   *TokenSource
	apiKey   string
}

// NewClient builds a client from configuration. A configured private key
// selects token auth; otherwise the static key mode is used. A malformed
// private key fails here with a CredentialError and is never retried.
func NewClient(cfg *config.Config) (*Client, error) {
	httpClient := resty.New().
		SetTimeout(requestTimeout).
		SetHeader("Accept", "application/json")

	c := &Client{http: httpClient}

	if cfg.QWeatherPrivateKey != "" {
		tokens, err := NewTokenSource(cfg.QWeatherProjectID, cfg.QWeatherKeyID, cfg.QWeatherPrivateKey)
		if err != nil {
			return nil, err
		}
		c.tokens = tokens
		c.baseURLs = []string{"https://" + cfg.QWeatherAPIHost}
		return c, nil
	}

	c.apiKey = cfg.QWeatherAPIKey
	for _, host := range cfg.QWeatherLegacyHosts {
		c.baseURLs = append(c.baseURLs, "https://"+host)
	}
	return c, nil
}

// get issues an authenticated GET for path (relative to one base URL) with
// the given query parameters. Token auth issues a fresh token per call;
// validity is 15 minutes so reuse would be safe, but a fresh signature keeps
// the call path stateless.
func (c *Client) get(ctx context.Context, baseURL, path string, query map[string]string) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)

	if query != nil {
		req.SetQueryParams(query)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(time.Now())
		if err != nil {
			return nil, err
		}
		req.SetAuthToken(token)
	} else {
		req.SetQueryParam("key", c.apiKey)
	}

	return req.Get(baseURL + path)
}
