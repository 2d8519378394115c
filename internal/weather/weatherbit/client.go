// Package weatherbit implements weather.Provider on the Weatherbit v2.0 API.
package weatherbit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/provider/resilience"
	"github.com/paddlespot/paddlespot/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "weatherbit"

	// DefaultBaseURL is the Weatherbit API base URL.
	DefaultBaseURL = "https://api.weatherbit.io/v2.0"

	// DefaultLanguage is the language of condition descriptions.
	DefaultLanguage = "fr"

	// defaultVisibilityKm is used when a forecast day omits visibility.
	defaultVisibilityKm = 10

	msToKmh = 3.6
)

// ClientConfig holds configuration for the Weatherbit client.
type ClientConfig struct {
	// APIKey is the Weatherbit API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Language for descriptions (default: fr).
	Language string

	// HTTPClient is the resilient client to use. Defaults to one named "weatherbit".
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Weatherbit API client.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Weatherbit client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		language:   language,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetCurrentWeather fetches current conditions for a location.
func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (*weather.Observation, error) {
	var resp currentResponse
	if err := c.get(ctx, "/current", lat, lon, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", weather.ErrUpstreamRejected, resp.Error)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty current data", weather.ErrUpstreamRejected)
	}

	cur := resp.Data[0]
	obs := toObservation(lat, lon, cur.reading)
	obs.FeelsLike = cur.AppTemp
	if cur.TS > 0 {
		obs.ObservedAt = time.Unix(cur.TS, 0)
	}
	return obs, nil
}

// GetForecast fetches the daily forecast for the next days.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64) ([]weather.DayForecast, error) {
	extra := url.Values{"days": {strconv.Itoa(weather.ForecastDays)}}

	var resp forecastResponse
	if err := c.get(ctx, "/forecast/daily", lat, lon, extra, &resp); err != nil {
		return nil, err
	}

	if resp.Error != "" {
		return nil, fmt.Errorf("%w: %s", weather.ErrUpstreamRejected, resp.Error)
	}

	days := make([]weather.DayForecast, 0, len(resp.Data))
	for _, d := range resp.Data {
		date, err := time.Parse("2006-01-02", d.Datetime)
		if err != nil {
			c.logger.Warn().Str("datetime", d.Datetime).Msg("skipping forecast day with bad date")
			continue
		}

		if d.Vis == 0 {
			d.Vis = defaultVisibilityKm
		}
		obs := toObservation(lat, lon, d.reading)
		obs.FeelsLike = d.AppMaxTemp
		obs.ObservedAt = date

		days = append(days, weather.DayForecast{Date: date, Weather: *obs})
	}

	return days, nil
}

func (c *Client) get(ctx context.Context, path string, lat, lon float64, extra url.Values, out any) error {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("key", c.apiKey)
	q.Set("lang", c.language)
	for k, v := range extra {
		q[k] = v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", weather.ErrUpstreamRejected, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func toObservation(lat, lon float64, r reading) *weather.Observation {
	windKmh := r.WindSpd * msToKmh
	wave := weather.EstimateWaveHeight(windKmh)

	return &weather.Observation{
		Lat:            lat,
		Lon:            lon,
		Temperature:    r.Temp,
		Humidity:       r.RH,
		WindSpeed:      windKmh,
		WindDirection:  r.WindCdir,
		Visibility:     r.Vis,
		WaveHeight:     wave,
		UVIndex:        r.UV,
		Condition:      weather.ConditionFromCode(r.Weather.Code),
		Description:    r.Weather.Description,
		Recommendation: weather.RecommendationFor(windKmh, wave, r.Weather.Code),
		FetchedAt:      time.Now(),
	}
}

// Weatherbit API response structures.

type reading struct {
	Temp     float64 `json:"temp"`
	RH       float64 `json:"rh"`
	WindSpd  float64 `json:"wind_spd"` // m/s
	WindCdir string  `json:"wind_cdir"`
	Vis      float64 `json:"vis"`
	UV       float64 `json:"uv"`
	Weather  struct {
		Code        int    `json:"code"`
		Description string `json:"description"`
	} `json:"weather"`
}

type currentResponse struct {
	Error string `json:"error"`
	Data  []struct {
		reading
		AppTemp float64 `json:"app_temp"`
		TS      int64   `json:"ts"`
	} `json:"data"`
}

type forecastResponse struct {
	Error string `json:"error"`
	Data  []struct {
		reading
		Datetime   string  `json:"datetime"`
		AppMaxTemp float64 `json:"app_max_temp"`
	} `json:"data"`
}

var _ weather.Provider = (*Client)(nil)
