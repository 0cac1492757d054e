package qweather

import (
	"context"

	"github.com/daniyyer/kindle-dash/internal/config"
	"github.com/daniyyer/kindle-dash/internal/logger"
	"github.com/daniyyer/kindle-dash/internal/models"
)

// Fetcher aggregates the four QWeather sub-fetches into one snapshot.
type Fetcher struct {
	client       *Client
	location     string
	locationName string
	days         int
	log          *logger.Logger
}

// NewFetcher creates a weather fetcher bound to the configured location.
func NewFetcher(client *Client, cfg *config.Config) *Fetcher {
	days := cfg.ForecastDays
	if days <= 0 {
		days = 3
	}
	return &Fetcher{
		client:       client,
		location:     cfg.Location,
		locationName: cfg.LocationName,
		days:         days,
		log:          logger.WithComponent("weather"),
	}
}

// FetchWeather runs the four sub-fetches concurrently and assembles whatever
// subset succeeded. It never fails: current conditions degrade to sentinel
// text, air quality and precipitation to absence, the forecast to an empty
// list, so the dashboard always has something to render.
func (f *Fetcher) FetchWeather(ctx context.Context) *models.WeatherSnapshot {
	f.log.Info("fetching weather data", map[string]interface{}{"location": f.location})

	currentCh := make(chan models.CurrentConditions, 1)
	airCh := make(chan *models.AirQuality, 1)
	minutelyCh := make(chan *models.MinutelyRain, 1)
	dailyCh := make(chan []models.DailyForecast, 1)

	go func() { currentCh <- f.fetchCurrent(ctx) }()
	go func() { airCh <- f.fetchAir(ctx) }()
	go func() { minutelyCh <- f.fetchMinutely(ctx) }()
	go func() { dailyCh <- f.fetchDaily(ctx) }()

	snapshot := &models.WeatherSnapshot{LocationName: f.locationName}

	for completed := 0; completed < 4; completed++ {
		select {
		case current := <-currentCh:
			snapshot.Current = current
		case air := <-airCh:
			snapshot.Air = air
		case minutely := <-minutelyCh:
			snapshot.Minutely = minutely
		case daily := <-dailyCh:
			snapshot.Daily = daily
		}
	}

	f.log.Info("weather snapshot assembled", map[string]interface{}{
		"air":      snapshot.Air != nil,
		"minutely": snapshot.Minutely != nil,
		"daily":    len(snapshot.Daily),
	})
	return snapshot
}
