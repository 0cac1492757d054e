package qweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/daniyyer/kindle-dash/internal/models"
)

// beijingZone is the fixed display timezone. Observation times arrive in an
// arbitrary offset and must come out as Beijing wall-clock regardless of the
// host timezone.
var beijingZone = time.FixedZone("CST", 8*60*60)

// obsTime values come without seconds, e.g. "2024-01-20T02:00+00:00".
const obsTimeLayout = "2006-01-02T15:04Z07:00"

// sentinelConditions stands in for a failed current-conditions fetch. The
// dashboard layout requires printable strings here, so failure degrades to
// fixed text instead of an absent record.
func sentinelConditions() models.CurrentConditions {
	return models.CurrentConditions{
		Temp:      "N/A",
		FeelsLike: "N/A",
		Text:      "Error",
		Icon:      "999",
		WindDir:   "",
		WindScale: "",
		ObsTime:   "N/A",
	}
}

// fetchCurrent fetches realtime conditions. The grid endpoint is preferred;
// a "403"/"404" body code routes to the coarser point endpoint. Any other
// failure mode degrades to the sentinel record.
func (f *Fetcher) fetchCurrent(ctx context.Context) models.CurrentConditions {
	var chain []attempt[models.CurrentConditions]

	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[models.CurrentConditions]{
			Name: "grid-weather",
			Call: func(ctx context.Context) (models.CurrentConditions, error) {
				return f.currentFrom(ctx, base, "/v7/grid-weather/now", true)
			},
		})
	}
	for _, base := range f.client.baseURLs {
		base := base
		chain = append(chain, attempt[models.CurrentConditions]{
			Name: "weather-now",
			Call: func(ctx context.Context) (models.CurrentConditions, error) {
				return f.currentFrom(ctx, base, "/v7/weather/now", false)
			},
		})
	}

	current, err := tryChain(ctx, chain)
	if err != nil {
		f.log.Warn("current conditions degraded to sentinel", map[string]interface{}{"reason": err.Error()})
		return sentinelConditions()
	}
	return current
}

// errCoarseFallback signals that the grid endpoint rejected the location and
// the point endpoint should be tried.
var errCoarseFallback = errors.New("grid endpoint rejected location")

func (f *Fetcher) currentFrom(ctx context.Context, baseURL, path string, gridLevel bool) (models.CurrentConditions, error) {
	resp, err := f.client.get(ctx, baseURL, path, map[string]string{"location": f.location})
	if err != nil {
		return models.CurrentConditions{}, err
	}

	var data models.QWeatherNowResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("decode: %w", err)
	}

	if gridLevel && (data.Code == "403" || data.Code == "404") {
		return models.CurrentConditions{}, errCoarseFallback
	}

	// A non-success body code or a structurally empty observation is not
	// worth another endpoint; degrade to the sentinel right here.
	if data.Code != "200" || data.Now.Temp == "" || data.Now.Text == "" {
		return sentinelConditions(), nil
	}

	return models.CurrentConditions{
		Temp:      data.Now.Temp,
		FeelsLike: data.Now.FeelsLike,
		Text:      data.Now.Text,
		Icon:      data.Now.Icon,
		WindDir:   data.Now.WindDir,
		WindScale: data.Now.WindScale,
		ObsTime:   formatObsTime(data.Now.ObsTime),
	}, nil
}

// formatObsTime converts an ISO-8601 observation time to HH:MM Beijing time.
// Unparseable input degrades to a raw substring extraction, then to the
// localized unknown label.
func formatObsTime(raw string) string {
	if raw == "" {
		return "未知"
	}

	for _, layout := range []string{obsTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(beijingZone).Format("15:04")
		}
	}

	if len(raw) >= 16 {
		return raw[11:16]
	}
	return "未知"
}
