package models

import "encoding/json"

// QWeather wire formats. The v7 endpoints wrap everything in a body with a
// string status code ("200" on success); the newer airquality v1 endpoint
// uses plain HTTP status codes instead.

// QWeatherNowResponse is the /v7/grid-weather/now and /v7/weather/now body
type QWeatherNowResponse struct {
	Code string      `json:"code"`
	Now  QWeatherNow `json:"now"`
}

// QWeatherNow is the realtime observation block
type QWeatherNow struct {
	ObsTime   string `json:"obsTime"`
	Temp      string `json:"temp"`
	FeelsLike string `json:"feelsLike"`
	Icon      string `json:"icon"`
	Text      string `json:"text"`
	WindDir   string `json:"windDir"`
	WindScale string `json:"windScale"`
}

// QWeatherAirV1Response is the /airquality/v1/current/{lat}/{lon} body
type QWeatherAirV1Response struct {
	Indexes []QWeatherAirIndex `json:"indexes"`
}

// QWeatherAirIndex is one AQI index entry; Code identifies the national
// standard the index is computed against (e.g. "cn-mee", "us-epa").
type QWeatherAirIndex struct {
	Code     string      `json:"code"`
	AQI      json.Number `json:"aqi"`
	Category string      `json:"category"`
}

// QWeatherAirV7Response is the legacy /v7/air/now body
type QWeatherAirV7Response struct {
	Code string `json:"code"`
	Now  struct {
		AQI      string `json:"aqi"`
		Category string `json:"category"`
	} `json:"now"`
}

// QWeatherMinutelyResponse is the /v7/minutely/5m body
type QWeatherMinutelyResponse struct {
	Code    string `json:"code"`
	Summary string `json:"summary"`
}

// QWeatherDailyResponse is the /v7/weather/{n}d body
type QWeatherDailyResponse struct {
	Code  string          `json:"code"`
	Daily []QWeatherDaily `json:"daily"`
}

// QWeatherDaily is one forecast day
type QWeatherDaily struct {
	FxDate  string `json:"fxDate"`
	TextDay string `json:"textDay"`
	IconDay string `json:"iconDay"`
	TempMin string `json:"tempMin"`
	TempMax string `json:"tempMax"`
}
