package qweather

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"

	"github.com/daniyyer/kindle-dash/internal/logger"
)

func testFetcher(location string, baseURLs ...string) *Fetcher {
	return &Fetcher{
		client: &Client{
			http:     resty.New(),
			baseURLs: baseURLs,
			apiKey:   "test-key",
		},
		location:     location,
		locationName: "太仓",
		days:         3,
		log:          logger.New(logger.Config{Level: logger.FATAL, Output: io.Discard}),
	}
}

func TestFetchCurrentSentinelOnMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"invalid JSON":    `{"code": "200", "now": `,
		"missing fields":  `{"code": "200", "now": {}}`,
		"error body code": `{"code": "500"}`,
		"empty body":      ``,
	}

	for name, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		fetcher := testFetcher("121.1462,31.4622", srv.URL)
		current := fetcher.fetchCurrent(context.Background())

		if current.Temp != "N/A" || current.Text != "Error" || current.Icon != "999" {
			t.Errorf("%s: expected sentinel conditions, got %+v", name, current)
		}
		srv.Close()
	}
}

func TestFetchCurrentSentinelOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	fetcher := testFetcher("121.1462,31.4622", srv.URL)
	current := fetcher.fetchCurrent(context.Background())
	if current.Temp != "N/A" || current.Text != "Error" {
		t.Errorf("Expected sentinel conditions on transport error, got %+v", current)
	}
}

func TestFetchCurrentGridToPointFallback(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/v7/grid-weather/now":
			w.Write([]byte(`{"code": "404"}`))
		case "/v7/weather/now":
			w.Write([]byte(`{"code": "200", "now": {"obsTime": "2026-01-20T02:00+00:00", "temp": "5", "feelsLike": "3", "icon": "100", "text": "晴", "windDir": "东北风", "windScale": "3"}}`))
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	fetcher := testFetcher("121.1462,31.4622", srv.URL)
	current := fetcher.fetchCurrent(context.Background())

	if len(paths) != 2 || paths[0] != "/v7/grid-weather/now" || paths[1] != "/v7/weather/now" {
		t.Errorf("Expected grid then point attempts, got %v", paths)
	}
	if current.Temp != "5" || current.Text != "晴" {
		t.Errorf("Expected point-endpoint conditions, got %+v", current)
	}
	// 02:00 UTC is 10:00 Beijing time
	if current.ObsTime != "10:00" {
		t.Errorf("Expected observation time 10:00, got %q", current.ObsTime)
	}
}

func TestFetchCurrentGridServerErrorDoesNotFallBack(t *testing.T) {
	var pointCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/grid-weather/now":
			w.Write([]byte(`{"code": "500"}`))
		case "/v7/weather/now":
			pointCalled = true
		}
	}))
	defer srv.Close()

	fetcher := testFetcher("121.1462,31.4622", srv.URL)
	current := fetcher.fetchCurrent(context.Background())

	if pointCalled {
		t.Error("Point endpoint should only be tried on grid 403/404")
	}
	if current.Text != "Error" {
		t.Errorf("Expected sentinel on grid server error, got %+v", current)
	}
}

func TestFetchAirCoordinateRouting(t *testing.T) {
	var v1Path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/airquality/v1/current/39.92/116.41" {
			v1Path = r.URL.Path
			w.Write([]byte(`{"indexes": [{"code": "us-epa", "aqi": 40, "category": "Good"}, {"code": "cn-mee", "aqi": 52, "category": "良"}]}`))
			return
		}
		t.Errorf("Unexpected path %s", r.URL.Path)
	}))
	defer srv.Close()

	fetcher := testFetcher("116.41,39.92", srv.URL)
	air := fetcher.fetchAir(context.Background())

	if v1Path == "" {
		t.Fatal("Coordinate location should route to the v1 endpoint with lat/lon")
	}
	if air == nil {
		t.Fatal("Expected air quality result")
	}
	if air.AQI != "52" || air.Category != "良" {
		t.Errorf("Expected cn-mee index selected, got %+v", air)
	}
}

func TestFetchAirCityIDRoutesToLegacyEndpoint(t *testing.T) {
	var v7Hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/air/now":
			v7Hit = true
			if loc := r.URL.Query().Get("location"); loc != "101010100" {
				t.Errorf("Expected original location string, got %q", loc)
			}
			w.Write([]byte(`{"code": "200", "now": {"aqi": "75", "category": "良"}}`))
		default:
			t.Errorf("City ID should not hit %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	fetcher := testFetcher("101010100", srv.URL)
	air := fetcher.fetchAir(context.Background())

	if !v7Hit {
		t.Fatal("Expected legacy v7 endpoint for non-coordinate location")
	}
	if air == nil || air.AQI != "75" {
		t.Errorf("Expected legacy air result, got %+v", air)
	}
}

func TestFetchAirFirstIndexWhenNoCNStandard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"indexes": [{"code": "us-epa", "aqi": 40, "category": "Good"}]}`))
	}))
	defer srv.Close()

	fetcher := testFetcher("116.41,39.92", srv.URL)
	air := fetcher.fetchAir(context.Background())
	if air == nil || air.AQI != "40" || air.Category != "Good" {
		t.Errorf("Expected first index as fallback, got %+v", air)
	}
}

func TestFetchAirAbsentOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v7/air/now" {
			w.Write([]byte(`{"code": "402"}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fetcher := testFetcher("116.41,39.92", srv.URL)
	if air := fetcher.fetchAir(context.Background()); air != nil {
		t.Errorf("Expected absent air quality when both endpoints fail, got %+v", air)
	}
}

func TestFetchWeatherDegradedScenario(t *testing.T) {
	// Current conditions succeed, air and precipitation are down, forecast
	// returns three days. The snapshot must carry whatever subset succeeded.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/grid-weather/now":
			w.Write([]byte(`{"code": "200", "now": {"obsTime": "2026-01-20T08:35+08:00", "temp": "2", "feelsLike": "-1", "icon": "104", "text": "阴", "windDir": "北风", "windScale": "2"}}`))
		case "/airquality/v1/current/31.46/121.15":
			w.WriteHeader(http.StatusInternalServerError)
		case "/v7/air/now":
			w.Write([]byte(`{"code": "500"}`))
		case "/v7/minutely/5m":
			w.Write([]byte(`{"code": "404"}`))
		case "/v7/weather/3d":
			w.Write([]byte(`{"code": "200", "daily": [
				{"fxDate": "2026-01-20", "textDay": "阴", "iconDay": "104", "tempMin": "-2", "tempMax": "4"},
				{"fxDate": "2026-01-21", "textDay": "晴", "iconDay": "100", "tempMin": "-3", "tempMax": "5"},
				{"fxDate": "2026-01-22", "textDay": "多云", "iconDay": "101", "tempMin": "0", "tempMax": "7"}
			]}`))
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	fetcher := testFetcher("121.1462,31.4622", srv.URL)
	snapshot := fetcher.FetchWeather(context.Background())

	if snapshot.LocationName != "太仓" {
		t.Errorf("Expected location name 太仓, got %q", snapshot.LocationName)
	}
	if snapshot.Current.Temp != "2" || snapshot.Current.ObsTime != "08:35" {
		t.Errorf("Unexpected current conditions: %+v", snapshot.Current)
	}
	if snapshot.Air != nil {
		t.Errorf("Air quality should be absent, got %+v", snapshot.Air)
	}
	if snapshot.Minutely != nil {
		t.Errorf("Minutely precipitation should be absent, got %+v", snapshot.Minutely)
	}
	if len(snapshot.Daily) != 3 {
		t.Fatalf("Expected 3 forecast days, got %d", len(snapshot.Daily))
	}
	wantDates := []string{"01-20", "01-21", "01-22"}
	for i, day := range snapshot.Daily {
		if day.Date != wantDates[i] {
			t.Errorf("Day %d: expected date %q, got %q", i, wantDates[i], day.Date)
		}
	}
}

func TestLegacyDualHostFallback(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	alive := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("Expected legacy key query param, got %q", key)
		}
		w.Write([]byte(`{"code": "200", "summary": "未来2小时无降水"}`))
	}))
	defer alive.Close()

	fetcher := testFetcher("121.1462,31.4622", dead.URL, alive.URL)
	rain := fetcher.fetchMinutely(context.Background())
	if rain == nil || rain.Summary != "未来2小时无降水" {
		t.Errorf("Expected result from second host, got %+v", rain)
	}
}

func TestSplitCoordinate(t *testing.T) {
	lat, lon, ok := splitCoordinate("116.41,39.92")
	if !ok || lat != "39.92" || lon != "116.41" {
		t.Errorf("splitCoordinate(116.41,39.92) = %q, %q, %v", lat, lon, ok)
	}

	lat, lon, ok = splitCoordinate("121.1462,31.4622")
	if !ok || lat != "31.46" || lon != "121.15" {
		t.Errorf("Expected 2-decimal rounding, got lat=%q lon=%q", lat, lon)
	}

	if _, _, ok := splitCoordinate("101010100"); ok {
		t.Error("City ID should not parse as a coordinate")
	}
	if _, _, ok := splitCoordinate("abc,def"); ok {
		t.Error("Non-numeric pair should not parse as a coordinate")
	}
}

func TestFormatObsTime(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2026-01-20T02:00+00:00", "10:00"},
		{"2026-01-20T16:35+08:00", "16:35"},
		{"2026-01-20T02:00:00Z", "10:00"},
		{"2026-01-20 16:35 nonsense", "16:35"}, // raw substring degradation
		{"garbled", "未知"},
		{"", "未知"},
	}
	for _, tc := range cases {
		if got := formatObsTime(tc.in); got != tc.want {
			t.Errorf("formatObsTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
