package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lightpath/internal/domain"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Snapshot is the subset of OpenWeather's current-conditions response
// the trip scheduler cares about.
type Snapshot struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Humidity     int     `json:"humidity"`
	Description  string  `json:"description"`
	WindSpeed    float64 `json:"wind_speed"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Current fetches conditions for a city. All failures come back as
// UpstreamError so callers can degrade instead of propagating.
func (c *Client) Current(ctx context.Context, city string) (*Snapshot, error) {
	endpoint := fmt.Sprintf("%s/weather?%s", c.BaseURL, url.Values{
		"q":     {city},
		"appid": {c.APIKey},
		"units": {"metric"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.UpstreamError{Service: "weather", Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Service: "weather", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.UpstreamError{Service: "weather", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var payload struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.UpstreamError{Service: "weather", Err: err}
	}

	snap := &Snapshot{
		City:         payload.Name,
		TemperatureC: payload.Main.Temp,
		FeelsLikeC:   payload.Main.FeelsLike,
		Humidity:     payload.Main.Humidity,
		WindSpeed:    payload.Wind.Speed,
	}
	if len(payload.Weather) > 0 {
		snap.Description = payload.Weather[0].Description
	}
	return snap, nil
}
