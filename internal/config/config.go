package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// FeedSource describes one configured news feed.
type FeedSource struct {
	URL   string
	Label string // optional category tag prepended to titles, e.g. "国际"
	Count int    // max entries taken from this feed
}

// Config holds all configuration for the dashboard service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8080"`

	// QWeather API host (dev or paid tier)
	QWeatherAPIHost string `env:"QWEATHER_API_HOST,default=devapi.qweather.com"`

	// QWeather JWT authentication (recommended)
	QWeatherProjectID  string `env:"QWEATHER_PROJECT_ID"`
	QWeatherKeyID      string `env:"QWEATHER_KEY_ID"`
	QWeatherPrivateKey string `env:"QWEATHER_PRIVATE_KEY"`

	// Legacy static key authentication, tried against each host in order.
	// Used only when no private key is configured.
	QWeatherAPIKey      string   `env:"QWEATHER_API_KEY"`
	QWeatherLegacyHosts []string `env:"QWEATHER_LEGACY_HOSTS"`

	// Location is "longitude,latitude" or a QWeather city ID
	Location     string `env:"LOCATION"`
	LocationName string `env:"LOCATION_NAME,default=太仓"`
	ForecastDays int    `env:"FORECAST_DAYS,default=3"`

	// News feed configuration
	NewsDomesticURL      string   `env:"NEWS_RSS_DOMESTIC,default=https://www.chinanews.com.cn/rss/importnews.xml"`
	NewsDomesticCount    int      `env:"NEWS_COUNT_DOMESTIC,default=5"`
	NewsInternational    []string `env:"NEWS_RSS_INTERNATIONAL,delimiter=;"`
	NewsCountPerCategory int      `env:"NEWS_COUNT_PER_CATEGORY,default=2"`

	// Screen geometry and panel constraints (Kindle 4/5 NT)
	ScreenWidth  int     `env:"SCREEN_WIDTH,default=800"`
	ScreenHeight int     `env:"SCREEN_HEIGHT,default=600"`
	GrayLevels   int     `env:"GRAY_LEVELS,default=16"`
	Contrast     float64 `env:"CONTRAST,default=1.2"`

	// Output sink: GCS when a bucket is configured, local file otherwise
	GCSBucket    string `env:"GCS_BUCKET"`
	GCSObjectKey string `env:"GCS_OBJECT_KEY,default=dashboard.png"`
	LocalDir     string `env:"LOCAL_OUTPUT_DIR,default=static"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Defaults that contain commas live here: envconfig tag options are
// comma-separated, so they cannot be expressed as tag defaults.
var (
	defaultLocation    = "121.1462,31.4622" // Taicang
	defaultLegacyHosts = []string{"devapi.qweather.com", "api.qweather.com"}

	// defaultInternationalFeeds is used when NEWS_RSS_INTERNATIONAL is
	// unset. Each entry is "label|url".
	defaultInternationalFeeds = []string{
		"国际|https://news.google.com/rss/search?q=site:reuters.com+world",
		"财经|https://news.google.com/rss/search?q=site:reuters.com+markets",
		"科技|https://news.google.com/rss/search?q=site:reuters.com+technology",
	}
)

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Location == "" {
		cfg.Location = defaultLocation
	}
	if len(cfg.QWeatherLegacyHosts) == 0 {
		cfg.QWeatherLegacyHosts = defaultLegacyHosts
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that at least one QWeather auth mode is usable
func (c *Config) Validate() error {
	if c.QWeatherPrivateKey == "" && c.QWeatherAPIKey == "" {
		return fmt.Errorf("no QWeather credentials: set QWEATHER_PRIVATE_KEY (with project and key IDs) or QWEATHER_API_KEY")
	}
	if c.QWeatherPrivateKey != "" && (c.QWeatherProjectID == "" || c.QWeatherKeyID == "") {
		return fmt.Errorf("QWEATHER_PRIVATE_KEY requires QWEATHER_PROJECT_ID and QWEATHER_KEY_ID")
	}
	return nil
}

// RemoteSink reports whether object-storage credentials are configured
func (c *Config) RemoteSink() bool {
	return c.GCSBucket != ""
}

// DomesticFeeds returns the configured domestic feed sources
func (c *Config) DomesticFeeds() []FeedSource {
	return []FeedSource{{
		URL:   c.NewsDomesticURL,
		Count: c.NewsDomesticCount,
	}}
}

// InternationalFeeds returns the configured international feed sources
// in configuration order. Entries are "label|url"; a missing label is allowed.
func (c *Config) InternationalFeeds() []FeedSource {
	raw := c.NewsInternational
	if len(raw) == 0 {
		raw = defaultInternationalFeeds
	}

	var feeds []FeedSource
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		label, url, found := strings.Cut(entry, "|")
		if !found {
			label, url = "", entry
		}
		feeds = append(feeds, FeedSource{
			URL:   url,
			Label: label,
			Count: c.NewsCountPerCategory,
		})
	}
	return feeds
}
