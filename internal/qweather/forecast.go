package qweather

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/daniyyer/kindle-dash/internal/models"
)

// fetchMinutely fetches the near-term precipitation summary. Optional:
// any failure yields nil.
func (f *Fetcher) fetchMinutely(ctx context.Context) *models.MinutelyRain {
	var chain []attempt[*models.MinutelyRain]
	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[*models.MinutelyRain]{
			Name: "minutely-5m",
			Call: func(ctx context.Context) (*models.MinutelyRain, error) {
				resp, err := f.client.get(ctx, base, "/v7/minutely/5m", map[string]string{"location": f.location})
				if err != nil {
					return nil, err
				}

				var data models.QWeatherMinutelyResponse
				if err := json.Unmarshal(resp.Body(), &data); err != nil {
					return nil, fmt.Errorf("decode: %w", err)
				}
				if data.Code != "200" {
					return nil, fmt.Errorf("body code %s", data.Code)
				}

				summary := data.Summary
				if summary == "" {
					summary = "未来2小时天气情况未知"
				}
				return &models.MinutelyRain{Summary: summary}, nil
			},
		})
	}

	rain, err := tryChain(ctx, chain)
	if err != nil {
		f.log.Debug("minutely precipitation unavailable", map[string]interface{}{"reason": err.Error()})
		return nil
	}
	return rain
}

// fetchDaily fetches the multi-day forecast. Any failure yields an empty
// list. Dates are reduced to MM-DD by dropping the leading year segment.
func (f *Fetcher) fetchDaily(ctx context.Context) []models.DailyForecast {
	path := fmt.Sprintf("/v7/weather/%dd", f.days)

	var chain []attempt[[]models.DailyForecast]
	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[[]models.DailyForecast]{
			Name: "daily-forecast",
			Call: func(ctx context.Context) ([]models.DailyForecast, error) {
				resp, err := f.client.get(ctx, base, path, map[string]string{"location": f.location})
				if err != nil {
					return nil, err
				}

				var data models.QWeatherDailyResponse
				if err := json.Unmarshal(resp.Body(), &data); err != nil {
					return nil, fmt.Errorf("decode: %w", err)
				}
				if data.Code != "200" {
					return nil, fmt.Errorf("body code %s", data.Code)
				}

				forecasts := make([]models.DailyForecast, 0, len(data.Daily))
				for _, day := range data.Daily {
					forecasts = append(forecasts, models.DailyForecast{
						Date:    shortDate(day.FxDate),
						TextDay: day.TextDay,
						IconDay: day.IconDay,
						TempMin: day.TempMin,
						TempMax: day.TempMax,
					})
				}
				return forecasts, nil
			},
		})
	}

	daily, err := tryChain(ctx, chain)
	if err != nil {
		f.log.Warn("daily forecast unavailable", map[string]interface{}{"reason": err.Error()})
		return nil
	}
	return daily
}

// shortDate reduces "2026-01-20" to "01-20".
func shortDate(fxDate string) string {
	if len(fxDate) > 5 {
		return fxDate[5:]
	}
	return fxDate
}
