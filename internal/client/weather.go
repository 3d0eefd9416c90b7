package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskhub/internal/cache"
)

const (
	weatherCacheKeyPrefix = "weather:"
	weatherCacheTTL       = time.Hour
	weatherTimeout        = 5 * time.Second
)

// WeatherClient yields today's weather condition as a plain string.
type WeatherClient interface {
	Today(ctx context.Context) (string, error)
}

// weatherDate is one entry of the external weather feed.
type weatherDate struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

type weatherClient struct {
	url        string
	httpClient *http.Client
	cache      *cache.Client
	now        func() time.Time
}

// NewWeatherClient creates a client for the external weather feed. The
// feed returns one condition per calendar date; today's entry is cached
// so repeated todo creations do not refetch it.
func NewWeatherClient(url string, cacheClient *cache.Client) WeatherClient {
	return &weatherClient{
		url:        url,
		httpClient: &http.Client{Timeout: weatherTimeout},
		cache:      cacheClient,
		now:        time.Now,
	}
}

// Today fetches the weather condition for the current date.
func (c *weatherClient) Today(ctx context.Context) (string, error) {
	today := c.now().Format("01-02")
	key := weatherCacheKeyPrefix + today

	if data, _ := c.cache.Get(ctx, key); data != nil {
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather feed returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read weather response: %w", err)
	}

	var dates []weatherDate
	if err := json.Unmarshal(body, &dates); err != nil {
		return "", fmt.Errorf("parse weather response: %w", err)
	}
	if len(dates) == 0 {
		return "", fmt.Errorf("weather feed returned no data")
	}

	for _, d := range dates {
		if d.Date == today {
			_ = c.cache.Set(ctx, key, []byte(d.Weather), weatherCacheTTL)
			return d.Weather, nil
		}
	}

	return "", fmt.Errorf("no weather data for today (%s)", today)
}
