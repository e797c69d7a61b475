package export

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sadopc/gantt/internal/element"
)

const (
	DefaultFilename   = "gantt.png"
	DefaultBackground = "#ffffff"
	MaxScale          = 2.0
)

var ErrNoImage = errors.New("strategy produced no image")

// Window is the host the pipeline captures from: the document that styles
// and lays out elements, and the display's device pixel ratio.
type Window struct {
	Document         *element.Document
	DevicePixelRatio float64
}

// Request is what a strategy rasterizes. Width and Height are CSS pixels;
// the output image is Width×Scale by Height×Scale, rounded up.
type Request struct {
	Element    *element.Node
	Document   *element.Document
	Width      int
	Height     int
	Scale      float64
	Background color.NRGBA
}

// OutputSize returns the pixel dimensions of the image a strategy produces.
func (r Request) OutputSize() (int, int) {
	return int(math.Ceil(float64(r.Width) * r.Scale)), int(math.Ceil(float64(r.Height) * r.Scale))
}

// Strategy turns an element into PNG bytes. An empty result counts as a
// failure.
type Strategy interface {
	Name() string
	Rasterize(ctx context.Context, req Request) ([]byte, error)
}

// Outcome reports what an Export call did. Export never fails loudly; the
// outcome is for logs, status lines and tests.
type Outcome struct {
	ID        string
	Delivered bool
	Busy      bool
	Strategy  string
	Path      string
	Width     int
	Height    int
	Scale     float64
	Bytes     int
}

// Pipeline captures elements into PNG files.
type Pipeline struct {
	Window     *Window
	Strategies []Strategy
	Downloader Downloader
	// MaxScale caps the device pixel ratio. Zero means 2.
	MaxScale float64
	// Background is used when the body background is transparent.
	Background string

	busy atomic.Bool
}

// NewPipeline returns a pipeline with the default strategy chain: the gg
// rasterizer, then the SVG foreignObject fallback.
func NewPipeline(win *Window, dl Downloader) *Pipeline {
	return &Pipeline{
		Window:     win,
		Strategies: DefaultStrategies(),
		Downloader: dl,
	}
}

func DefaultStrategies() []Strategy {
	return []Strategy{NewGGRasterizer(), SVGRasterizer{}}
}

// Export measures el, rasterizes it with the first strategy that succeeds
// and hands the PNG to the downloader. Missing capabilities, a zero-size
// element or failing strategies all end quietly with nothing delivered.
// Overlapping calls on one pipeline return at once with Busy set.
func (p *Pipeline) Export(ctx context.Context, el *element.Node, filename string) Outcome {
	if !p.busy.CompareAndSwap(false, true) {
		logger().Warn("export already in progress", "filename", filename)
		return Outcome{Busy: true}
	}
	defer p.busy.Store(false)

	if filename == "" {
		filename = DefaultFilename
	}
	out := Outcome{ID: uuid.NewString()}
	log := logger().With("export_id", out.ID, "filename", filename)

	if p.Window == nil || p.Window.Document == nil || el == nil {
		log.Debug("nothing to capture")
		return out
	}

	req := p.measure(el)
	out.Width, out.Height, out.Scale = req.Width, req.Height, req.Scale
	if req.Width == 0 || req.Height == 0 {
		log.Info("element has no size, skipping export")
		return out
	}

	blob, name := p.rasterize(ctx, req, log)
	if blob == nil {
		log.Warn("no strategy produced an image")
		return out
	}
	out.Strategy = name
	out.Bytes = len(blob)

	if p.Downloader == nil {
		log.Debug("no downloader configured")
		return out
	}
	path, err := p.Downloader.Download(ctx, filename, blob)
	if err != nil {
		log.Error("deliver png", "err", err)
		return out
	}
	out.Delivered = true
	out.Path = path
	log.Info("exported png",
		"strategy", name, "path", path,
		"width", req.Width, "height", req.Height, "scale", req.Scale, "bytes", len(blob))
	return out
}

func (p *Pipeline) measure(el *element.Node) Request {
	doc := p.Window.Document
	w, h := doc.ScrollSize(el)
	box := doc.BoundingBox(el)
	if w <= 0 {
		w = box.W
	}
	if h <= 0 {
		h = box.H
	}

	return Request{
		Element:    el,
		Document:   doc,
		Width:      ceilPx(w),
		Height:     ceilPx(h),
		Scale:      p.scale(),
		Background: p.background(doc),
	}
}

func ceilPx(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v))
}

func (p *Pipeline) scale() float64 {
	maxScale := p.MaxScale
	if maxScale <= 0 {
		maxScale = MaxScale
	}
	ratio := p.Window.DevicePixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return math.Min(maxScale, ratio)
}

// background resolves the body's computed background, falling back to the
// configured default and then to white.
func (p *Pipeline) background(doc *element.Document) color.NRGBA {
	if body := doc.Body(); body != nil {
		css := doc.ComputedStyle(body)["background-color"]
		if !element.Transparent(css) {
			c, _ := element.ParseColor(css)
			return c
		}
	}
	if c, ok := element.ParseColor(p.Background); ok && c.A > 0 {
		return c
	}
	c, _ := element.ParseColor(DefaultBackground)
	return c
}

func (p *Pipeline) rasterize(ctx context.Context, req Request, log *slog.Logger) ([]byte, string) {
	for _, s := range p.Strategies {
		if err := ctx.Err(); err != nil {
			log.Warn("export cancelled", "err", err)
			return nil, ""
		}
		blob, err := tryRasterize(ctx, s, req)
		if err == nil && len(blob) == 0 {
			err = ErrNoImage
		}
		if err != nil {
			log.Warn("rasterize failed, trying next strategy", "strategy", s.Name(), "err", err)
			continue
		}
		log.Debug("rasterized", "strategy", s.Name(), "bytes", len(blob))
		return blob, s.Name()
	}
	return nil, ""
}

// tryRasterize runs one strategy, turning a panic into an error so the next
// strategy still gets its turn.
func tryRasterize(ctx context.Context, s Strategy, req Request) (blob []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			blob, err = nil, fmt.Errorf("%s panicked: %v", s.Name(), r)
		}
	}()
	return s.Rasterize(ctx, req)
}
