package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

type API interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (*Observation, error)
}

type client struct {
	http        *resty.Client
	apiKey      string
	maxRetries  int
	backoffBase time.Duration
	sleep       func(time.Duration)
}

type Option func(*client)

// WithSleep replaces the delay between retry attempts, so tests can observe
// the backoff schedule without real elapsed time.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *client) {
		c.sleep = sleep
	}
}

func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int, backoffBase time.Duration, opts ...Option) API {
	c := &client{
		http:        resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		apiKey:      apiKey,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
		sleep:       time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CurrentWeather fetches one observation, retrying transport failures,
// timeouts and non-2xx responses. The wait before attempt n+1 is
// backoffBase * n, so the delays grow linearly.
func (c *client) CurrentWeather(ctx context.Context, lat, lon float64) (*Observation, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		obs, err := c.fetch(ctx, lat, lon)
		if err == nil {
			return obs, nil
		}

		lastErr = err
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_retries", c.maxRetries).
			Msg("Current Weather request failed")

		if attempt < c.maxRetries {
			c.sleep(c.backoffBase * time.Duration(attempt))
		}
	}

	log.Error().Float64("lat", lat).Float64("lon", lon).Msg("Max retries reached")
	return nil, fmt.Errorf("current weather request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *client) fetch(ctx context.Context, lat, lon float64) (*Observation, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
			"appid": c.apiKey,
			"units": "metric",
		}).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("request current weather: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var obs Observation
	if err := json.Unmarshal(resp.Body(), &obs); err != nil {
		return nil, fmt.Errorf("decode current weather response: %w", err)
	}

	return &obs, nil
}
