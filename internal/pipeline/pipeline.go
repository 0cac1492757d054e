package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/daniyyer/kindle-dash/internal/logger"
	"github.com/daniyyer/kindle-dash/internal/models"
	"github.com/daniyyer/kindle-dash/internal/render"
	"github.com/daniyyer/kindle-dash/internal/storage"
)

// WeatherFetcher produces the merged weather snapshot for one run.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context) *models.WeatherSnapshot
}

// NewsFetcher produces the aggregated news snapshot for one run.
type NewsFetcher interface {
	FetchNews(ctx context.Context) *models.NewsSnapshot
}

// Renderer binds the snapshots into the dashboard document.
type Renderer interface {
	Render(weather *models.WeatherSnapshot, news *models.NewsSnapshot, now time.Time) (*render.Document, error)
}

// Rasterizer turns the document into the final panel-ready PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// Pipeline sequences one dashboard run: acquire, render, rasterize, store.
//
// Data acquisition never fails the run; the fetchers absorb upstream
// failures into sentinel/placeholder data. Only rasterization and sink
// writes surface as run failures.
type Pipeline struct {
	weather    WeatherFetcher
	news       NewsFetcher
	renderer   Renderer
	rasterizer Rasterizer
	sink       storage.Client
	fallback   storage.Client // tried once when the primary sink write fails
	objectKey  string
	log        *logger.Logger
}

// New assembles a pipeline. fallback may be nil when the primary sink is
// already local.
func New(weather WeatherFetcher, news NewsFetcher, renderer Renderer, rasterizer Rasterizer,
	sink storage.Client, fallback storage.Client, objectKey string) *Pipeline {
	return &Pipeline{
		weather:    weather,
		news:       news,
		renderer:   renderer,
		rasterizer: rasterizer,
		sink:       sink,
		fallback:   fallback,
		objectKey:  objectKey,
		log:        logger.WithComponent("pipeline"),
	}
}

// Run executes one full pipeline pass and returns the stored PNG bytes.
func (p *Pipeline) Run(ctx context.Context, now time.Time) ([]byte, error) {
	started := time.Now()

	doc, err := p.renderDashboard(ctx, now)
	if err != nil {
		return nil, err
	}

	pngBytes, err := p.rasterizer.Rasterize(ctx, doc.HTML)
	if err != nil {
		return nil, err
	}

	if err := p.store(ctx, pngBytes); err != nil {
		return nil, err
	}

	p.log.Info("run complete", map[string]interface{}{
		"bytes":   len(pngBytes),
		"elapsed": time.Since(started).String(),
	})
	return pngBytes, nil
}

// RenderHTML produces the dashboard markup without rasterizing, for preview.
func (p *Pipeline) RenderHTML(ctx context.Context, now time.Time) (string, error) {
	doc, err := p.renderDashboard(ctx, now)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// renderDashboard fetches weather and news concurrently and binds them.
// Neither fetch can fail; both degrade internally.
func (p *Pipeline) renderDashboard(ctx context.Context, now time.Time) (*render.Document, error) {
	var (
		weather *models.WeatherSnapshot
		news    *models.NewsSnapshot
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		weather = p.weather.FetchWeather(ctx)
	}()
	go func() {
		defer wg.Done()
		news = p.news.FetchNews(ctx)
	}()
	wg.Wait()

	return p.renderer.Render(weather, news, now)
}

// store hands the artifact to the configured sink, falling back to the
// alternate sink once on write failure.
func (p *Pipeline) store(ctx context.Context, data []byte) error {
	err := p.sink.Store(ctx, p.objectKey, data, "image/png")
	if err == nil {
		return nil
	}

	if p.fallback == nil {
		return err
	}

	p.log.Warn("primary sink write failed, trying fallback", map[string]interface{}{
		"sink":  p.sink.Name(),
		"error": err.Error(),
	})
	if fbErr := p.fallback.Store(ctx, p.objectKey, data, "image/png"); fbErr != nil {
		return err
	}
	return nil
}
