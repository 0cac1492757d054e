package qweather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/daniyyer/kindle-dash/internal/models"
)

// cnStandardCode selects the Chinese national AQI standard from the v1
// airquality index list.
const cnStandardCode = "cn-mee"

// splitCoordinate splits a "longitude,latitude" location string and rounds
// both parts to two decimals, the resolution the v1 airquality endpoint is
// keyed by. A city ID or any other non-coordinate string reports ok=false.
func splitCoordinate(location string) (lat, lon string, ok bool) {
	lonPart, latPart, found := strings.Cut(location, ",")
	if !found {
		return "", "", false
	}

	lonVal, errLon := strconv.ParseFloat(strings.TrimSpace(lonPart), 64)
	latVal, errLat := strconv.ParseFloat(strings.TrimSpace(latPart), 64)
	if errLon != nil || errLat != nil {
		return "", "", false
	}

	return fmt.Sprintf("%.2f", latVal), fmt.Sprintf("%.2f", lonVal), true
}

// fetchAir fetches air quality. The high-resolution v1 endpoint is keyed by
// rounded lat/lon and only applies to coordinate locations; the legacy v7
// endpoint takes the location string as-is. Exhausting the chain yields nil:
// air quality is optional in the snapshot, not a sentinel.
func (f *Fetcher) fetchAir(ctx context.Context) *models.AirQuality {
	lat, lon, coordOK := splitCoordinate(f.location)

	var chain []attempt[*models.AirQuality]

	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[*models.AirQuality]{
			Name: "airquality-v1",
			When: func() bool { return coordOK },
			Call: func(ctx context.Context) (*models.AirQuality, error) {
				return f.airV1(ctx, base, lat, lon)
			},
		})
	}
	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[*models.AirQuality]{
			Name: "air-now-v7",
			Call: func(ctx context.Context) (*models.AirQuality, error) {
				return f.airV7(ctx, base)
			},
		})
	}

	air, err := tryChain(ctx, chain)
	if err != nil {
		f.log.Debug("air quality unavailable", map[string]interface{}{"reason": err.Error()})
		return nil
	}
	return air
}

func (f *Fetcher) airV1(ctx context.Context, baseURL, lat, lon string) (*models.AirQuality, error) {
	// This endpoint lives outside the /v7 prefix.
	path := fmt.Sprintf("/airquality/v1/current/%s/%s", lat, lon)
	resp, err := f.client.get(ctx, baseURL, path, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	var data models.QWeatherAirV1Response
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	index, found := models.QWeatherAirIndex{}, false
	for _, idx := range data.Indexes {
		if idx.Code == cnStandardCode {
			index, found = idx, true
			break
		}
	}
	if !found && len(data.Indexes) > 0 {
		index = data.Indexes[0]
	}

	aqi := index.AQI.String()
	if aqi == "" {
		aqi = "N/A"
	}
	return &models.AirQuality{AQI: aqi, Category: index.Category}, nil
}

func (f *Fetcher) airV7(ctx context.Context, baseURL string) (*models.AirQuality, error) {
	resp, err := f.client.get(ctx, baseURL, "/v7/air/now", map[string]string{"location": f.location})
	if err != nil {
		return nil, err
	}

	var data models.QWeatherAirV7Response
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data.Code != "200" {
		return nil, fmt.Errorf("body code %s", data.Code)
	}

	aqi := data.Now.AQI
	if aqi == "" {
		aqi = "N/A"
	}
	return &models.AirQuality{AQI: aqi, Category: data.Now.Category}, nil
}
