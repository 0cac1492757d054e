package models

// CurrentConditions holds the realtime observation for the dashboard header.
// All fields are display-ready strings; a failed fetch yields sentinel values
// ("N/A"/"Error"), never empty structs, so the template can always print them.
type CurrentConditions struct {
	Temp      string // 温度 (°C)
	FeelsLike string // 体感温度 (°C)
	Text      string // 天气状况文字 (晴/多云/雨...)
	Icon      string // 天气图标代码
	WindDir   string // 风向 (东北风)
	WindScale string // 风力等级 (3级)
	ObsTime   string // 观测时间, HH:MM in Beijing time
}

// AirQuality holds the AQI reading. Optional: nil when the provider has no
// coverage for the location or the fetch failed.
type AirQuality struct {
	AQI      string // AQI 指数
	Category string // 空气质量类别 (优/良/轻度污染...)
}

// MinutelyRain is the near-term precipitation summary. Optional like AirQuality.
type MinutelyRain struct {
	Summary string // 预报摘要 (未来2小时无降水...)
}

// DailyForecast is one day of the multi-day forecast.
type DailyForecast struct {
	Date    string // MM-DD, year dropped
	TextDay string // 白天天气
	IconDay string // 白天图标
	TempMin string // 最低温度
	TempMax string // 最高温度
}

// WeatherSnapshot is the merged weather state for one pipeline run.
// Current and Daily degrade to sentinel/empty values on upstream failure;
// Air and Minutely are truly optional and stay nil when unavailable.
type WeatherSnapshot struct {
	LocationName string // 地理位置显示名称, independent of the query coordinate
	Current      CurrentConditions
	Air          *AirQuality
	Minutely     *MinutelyRain
	Daily        []DailyForecast
}
