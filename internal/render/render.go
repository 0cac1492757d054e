package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/daniyyer/kindle-dash/internal/models"
)

//go:embed templates/dashboard.html
var dashboardTemplate string

// beijingZone fixes the civil timezone the display labels are computed in,
// independent of the host's local timezone.
var beijingZone = time.FixedZone("CST", 8*60*60)

// weekdayNames is the fixed Monday-first localized weekday table.
var weekdayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// Document is the rendered markup plus the display-context labels it was
// produced with.
type Document struct {
	HTML       string
	DateStr    string // e.g. 2026年1月20日 周二
	UpdateTime string // HH:MM
}

// Renderer binds snapshots into the dashboard markup.
type Renderer struct {
	tmpl *template.Template
}

type templateData struct {
	DateStr      string
	UpdateTime   string
	Weather      *models.WeatherSnapshot
	WeatherEmoji string
	News         *models.NewsSnapshot
}

// NewRenderer parses the embedded template. An unparseable template is a
// startup configuration error; rendering itself has no failure mode.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("dashboard").Funcs(template.FuncMap{
		"emoji": WeatherEmoji,
	}).Parse(dashboardTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render binds the snapshots and display labels into the dashboard document.
func (r *Renderer) Render(weather *models.WeatherSnapshot, news *models.NewsSnapshot, now time.Time) (*Document, error) {
	local := now.In(beijingZone)

	data := templateData{
		DateStr:      formatDate(local),
		UpdateTime:   local.Format("15:04"),
		Weather:      weather,
		WeatherEmoji: WeatherEmoji(weather.Current.Icon),
		News:         news,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}

	return &Document{
		HTML:       buf.String(),
		DateStr:    data.DateStr,
		UpdateTime: data.UpdateTime,
	}, nil
}

// formatDate builds the long-form localized date label, weekday included.
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日 %s", t.Year(), int(t.Month()), t.Day(), WeekdayName(t))
}

// WeekdayName maps a time to the fixed localized weekday table. Pure: no
// host locale involved.
func WeekdayName(t time.Time) string {
	// time.Weekday is Sunday-first; the table is Monday-first
	return weekdayNames[(int(t.Weekday())+6)%7]
}
