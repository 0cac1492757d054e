package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/daniyyer/kindle-dash/internal/config"
	"github.com/daniyyer/kindle-dash/internal/logger"
)

// RasterizationError reports that the rendering engine could not produce a
// screenshot. Fatal for the run: there is no degraded image to fall back to.
type RasterizationError struct {
	Stage string
	Err   error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("rasterization failed at %s: %v", e.Stage, e.Err)
}

func (e *RasterizationError) Unwrap() error {
	return e.Err
}

const (
	// fontGracePeriod gives web fonts time to load after the page settles.
	fontGracePeriod = 500 * time.Millisecond
	// engineTimeout bounds one full launch-load-capture cycle.
	engineTimeout = 30 * time.Second
)

// Rasterizer drives a headless browser to turn the dashboard document into
// a grayscale PNG matching the panel hardware.
type Rasterizer struct {
	width    int
	height   int
	contrast float64
	levels   int
	log      *logger.Logger
}

// New creates a rasterizer for the configured panel geometry. A level count
// outside the addressable range falls back to 16.
func New(cfg *config.Config) *Rasterizer {
	levels := cfg.GrayLevels
	if levels < 2 || levels > 256 {
		levels = 16
	}
	return &Rasterizer{
		width:    cfg.ScreenWidth,
		height:   cfg.ScreenHeight,
		contrast: cfg.Contrast,
		levels:   levels,
		log:      logger.WithComponent("raster"),
	}
}

// Rasterize captures the document at the panel's exact viewport and
// post-processes the screenshot into the quantized grayscale PNG the panel
// can display.
func (r *Rasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	shot, err := r.screenshot(ctx, html)
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, &RasterizationError{Stage: "decode", Err: err}
	}

	gray := ToGrayscale(img)
	if r.contrast > 0 && r.contrast != 1 {
		AdjustContrast(gray, r.contrast)
	}
	Quantize(gray, r.levels)

	var out bytes.Buffer
	if err := png.Encode(&out, gray); err != nil {
		return nil, &RasterizationError{Stage: "encode", Err: err}
	}

	r.log.Info("raster produced", map[string]interface{}{
		"width":  r.width,
		"height": r.height,
		"levels": r.levels,
		"bytes":  out.Len(),
	})
	return out.Bytes(), nil
}

// screenshot owns one browser session for exactly one page load and one
// capture. Every exit path releases the session; leaking browser processes
// across runs exhausts the host.
func (r *Rasterizer) screenshot(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, engineTimeout)
	defer cancelRun()

	// Navigating a data: URL blocks until the page load settles.
	url := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(r.width), int64(r.height)),
		chromedp.Navigate(url),
		chromedp.Sleep(fontGracePeriod),
		chromedp.CaptureScreenshot(&buf),
	)
	if err != nil {
		return nil, &RasterizationError{Stage: "screenshot", Err: err}
	}
	return buf, nil
}
