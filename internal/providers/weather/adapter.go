// internal/providers/weather/adapter.go
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"neelakshi-ai/internal/common/database"
	apperrors "neelakshi-ai/internal/common/errors"
	httpclient "neelakshi-ai/internal/common/http"
	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/models"
)

const ProviderName = "weather"

type Adapter struct {
	config *Config
	client *httpclient.Client
	cache  *database.ResultCache
	logger logger.Logger
}

func NewAdapter(config *Config, cache *database.ResultCache, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: httpclient.NewClient(config.Timeout),
		cache:  cache,
		logger: log.With(map[string]interface{}{
			"provider": ProviderName,
		}),
	}
}

func (a *Adapter) Name() string { return ProviderName }

// Fetch resolves place to coordinates and returns its current conditions.
// Both sub-calls share one timeout.
func (a *Adapter) Fetch(ctx context.Context, place string) models.ProviderResult {
	place = strings.TrimSpace(place)
	if place == "" {
		return models.Failure(ProviderName, apperrors.NewNotFoundError(ProviderName, "empty place name"))
	}

	var cached models.WeatherReport
	if a.cache.Lookup(ctx, ProviderName, place, &cached) {
		return models.Success(ProviderName, &cached)
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	report, err := a.execute(ctx, place)
	if err != nil {
		a.logger.Warn("weather fetch failed", map[string]interface{}{
			"place": place,
			"error": err.Error(),
		})
		return models.Failure(ProviderName, err)
	}

	a.cache.Store(ctx, ProviderName, place, report, a.config.CacheTTL)
	a.logger.Info("weather fetched", map[string]interface{}{
		"place":       report.Place,
		"temperature": report.Temperature,
	})
	return models.Success(ProviderName, report)
}

func (a *Adapter) execute(ctx context.Context, place string) (*models.WeatherReport, error) {
	var geo geocodeResponse
	if err := a.client.GetJSON(ctx, a.buildGeocodeURL(place), &geo); err != nil {
		return nil, classify(ctx, "geocode", err)
	}
	if len(geo.Results) == 0 {
		return nil, apperrors.NewNotFoundError(ProviderName, fmt.Sprintf("no geocoding result for %q", place))
	}
	hit := geo.Results[0]

	var forecast forecastResponse
	if err := a.client.GetJSON(ctx, a.buildForecastURL(hit.Latitude, hit.Longitude), &forecast); err != nil {
		return nil, classify(ctx, "forecast", err)
	}
	if forecast.CurrentWeather == nil {
		return nil, apperrors.NewUpstreamError(ProviderName, errors.New("forecast response has no current_weather"))
	}

	name := hit.Name
	if name == "" {
		name = place
	}

	return &models.WeatherReport{
		Place:       name,
		Latitude:    hit.Latitude,
		Longitude:   hit.Longitude,
		Temperature: forecast.CurrentWeather.Temperature,
		WindSpeed:   forecast.CurrentWeather.WindSpeed,
	}, nil
}

func classify(ctx context.Context, step string, err error) error {
	if ctx.Err() == context.DeadlineExceeded || apperrors.IsTimeout(err) {
		return apperrors.NewTimeoutError(ProviderName, err)
	}
	return apperrors.NewUpstreamError(ProviderName, fmt.Errorf("%s: %w", step, err))
}

func (a *Adapter) buildGeocodeURL(place string) string {
	params := url.Values{}
	params.Add("name", place)
	params.Add("count", "1")
	params.Add("format", "json")
	return a.config.GeocodeURL + "?" + params.Encode()
}

func (a *Adapter) buildForecastURL(lat, lon float64) string {
	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Add("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Add("current_weather", "true")
	return a.config.ForecastURL + "?" + params.Encode()
}
