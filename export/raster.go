package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/lixenwraith/nri-constellation/render"
)

// JPEGQuality is the re-encode quality for jpg output
const JPEGQuality = 90

// DefaultTimeout bounds one headless browser run
const DefaultTimeout = 30 * time.Second

// ErrFormat reports an unsupported output format
var ErrFormat = errors.New("unsupported export format")

// Rasterizer turns an SVG document into PNG bytes
type Rasterizer func(ctx context.Context, svg []byte) ([]byte, error)

// Chrome renders svg in a headless browser and screenshots the root element
func Chrome(ctx context.Context, svg []byte) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		browserCtx, cancel = context.WithTimeout(browserCtx, DefaultTimeout)
		defer cancel()
	}

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp: %w", err)
	}
	if len(shot) == 0 {
		return nil, errors.New("chromedp: empty screenshot")
	}
	return shot, nil
}

// Encode writes a PNG screenshot as format: png is copied, jpg is re-encoded
func Encode(pngData []byte, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "png":
		if _, err := w.Write(pngData); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
	case "jpg", "jpeg":
		img, err := png.Decode(bytes.NewReader(pngData))
		if err != nil {
			return fmt.Errorf("decode screenshot: %w", err)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return nil
}

// Exporter writes canvases in any of Formats
type Exporter struct {
	Raster Rasterizer
}

// New returns an exporter backed by headless Chrome
func New() *Exporter {
	return &Exporter{Raster: Chrome}
}

// Write renders c as format into w
func (e *Exporter) Write(ctx context.Context, c *render.Canvas, format string, w io.Writer) error {
	if !ValidFormat(format) {
		return fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if strings.EqualFold(format, "svg") {
		return SVG(c, w)
	}

	var svg bytes.Buffer
	if err := SVG(c, &svg); err != nil {
		return fmt.Errorf("build svg: %w", err)
	}
	raster := e.Raster
	if raster == nil {
		raster = Chrome
	}
	shot, err := raster(ctx, svg.Bytes())
	if err != nil {
		return err
	}
	return Encode(shot, format, w)
}

// WriteFile renders c to path, creating parent directories
func (e *Exporter) WriteFile(ctx context.Context, c *render.Canvas, format, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	var buf bytes.Buffer
	if err := e.Write(ctx, c, format, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	log.Printf("export: wrote %s (%d bytes)", path, buf.Len())
	return nil
}
