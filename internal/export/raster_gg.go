package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/sadopc/gantt/internal/element"
)

// GGRasterizer paints the element tree directly from its computed styles
// with gg: rounded backgrounds, borders and TrueType text in Go Regular and
// Go Bold.
type GGRasterizer struct {
	once    sync.Once
	regular *text.FontSource
	bold    *text.FontSource
	err     error
}

func NewGGRasterizer() *GGRasterizer { return &GGRasterizer{} }

func (*GGRasterizer) Name() string { return "gg" }

func (r *GGRasterizer) fonts() error {
	r.once.Do(func() {
		r.regular, r.err = text.NewFontSource(goregular.TTF)
		if r.err != nil {
			r.err = fmt.Errorf("load go regular: %w", r.err)
			return
		}
		r.bold, r.err = text.NewFontSource(gobold.TTF)
		if r.err != nil {
			r.err = fmt.Errorf("load go bold: %w", r.err)
		}
	})
	return r.err
}

type faceKey struct {
	bold bool
	size float64
}

func (r *GGRasterizer) Rasterize(_ context.Context, req Request) ([]byte, error) {
	if err := r.fonts(); err != nil {
		return nil, err
	}
	w, h := req.OutputSize()
	if w <= 0 || h <= 0 {
		return nil, ErrNoImage
	}

	snap, layout := req.Document.Tree(req.Element)
	origin := layout[req.Element]
	s := req.Scale
	faces := map[faceKey]text.Face{}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.FromColor(req.Background))

	var paintErr error
	req.Element.Walk(func(n *element.Node) bool {
		if paintErr != nil {
			return false
		}
		st := snap[n]
		if st["display"] == "none" {
			return false
		}
		box := layout[n]
		x, y := (box.X-origin.X)*s, (box.Y-origin.Y)*s
		bw, bh := box.W*s, box.H*s
		if n == req.Element {
			// The captured element is laid out at its full extent.
			bw, bh = float64(req.Width)*s, float64(req.Height)*s
		}
		radius := st.Px("border-radius") * s

		if c, ok := element.ParseColor(st["background-color"]); ok && c.A > 0 && bw > 0 && bh > 0 {
			dc.SetColor(c)
			shape(dc, x, y, bw, bh, radius)
			if err := dc.Fill(); err != nil {
				paintErr = fmt.Errorf("fill %s: %w", n.Tag, err)
				return false
			}
		}

		if lw := st.Px("border-width"); lw > 0 && bw > 0 && bh > 0 {
			if c, ok := element.ParseColor(st["border-color"]); ok && c.A > 0 {
				dc.SetColor(c)
				dc.SetLineWidth(lw * s)
				half := lw * s / 2
				shape(dc, x+half, y+half, bw-2*half, bh-2*half, radius)
				if err := dc.Stroke(); err != nil {
					paintErr = fmt.Errorf("stroke %s: %w", n.Tag, err)
					return false
				}
			}
		}

		if n.Text != "" {
			key := faceKey{bold: fontWeight(st) >= 600, size: fontSize(st) * s}
			face, ok := faces[key]
			if !ok {
				src := r.regular
				if key.bold {
					src = r.bold
				}
				face = src.Face(key.size)
				faces[key] = face
			}
			dc.SetFont(face)
			if c, ok := element.ParseColor(st["color"]); ok {
				dc.SetColor(c)
			}

			m := face.Metrics()
			tx := x + st.Px("padding-left")*s
			if st["text-align"] == "center" {
				tw, _ := dc.MeasureString(n.Text)
				tx = x + (bw-tw)/2
			}
			baseline := y + m.Ascent
			if bh > 0 {
				baseline = y + (bh+m.Ascent-m.Descent)/2
			}
			dc.DrawString(n.Text, tx, baseline)
		}
		return true
	})
	if paintErr != nil {
		return nil, paintErr
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func shape(dc *gg.Context, x, y, w, h, radius float64) {
	if radius > 0 {
		dc.DrawRoundedRectangle(x, y, w, h, radius)
		return
	}
	dc.DrawRectangle(x, y, w, h)
}

func fontSize(st element.Style) float64 {
	if v := st.Px("font-size"); v > 0 {
		return v
	}
	return 16
}

func fontWeight(st element.Style) int {
	switch st["font-weight"] {
	case "bold", "bolder":
		return 700
	}
	w, err := strconv.Atoi(st["font-weight"])
	if err != nil {
		return 400
	}
	return w
}
