package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sadopc/gantt/internal/element"
)

// SVGRasterizer is the fallback strategy. It inlines every computed style
// into a clone, wraps the clone in an SVG foreignObject, round-trips it
// through a data URI and paints the decoded tree onto a canvas.
type SVGRasterizer struct{}

func (SVGRasterizer) Name() string { return "svg" }

func (SVGRasterizer) Rasterize(_ context.Context, req Request) ([]byte, error) {
	cw, ch := req.OutputSize()
	if cw <= 0 || ch <= 0 {
		return nil, ErrNoImage
	}

	snap, _ := req.Document.Tree(req.Element)
	clone := element.InlineStyles(req.Element, snap)
	clone.Style["left"] = "0px"
	clone.Style["top"] = "0px"
	clone.Style["width"] = element.Px(float64(req.Width))
	clone.Style["height"] = element.Px(float64(req.Height))

	svg, err := element.EncodeSVG(clone, float64(req.Width), float64(req.Height))
	if err != nil {
		return nil, err
	}
	src, err := loadImage(element.DataURI(svg))
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(req.Background), image.Point{}, draw.Src)
	dst := image.Rect(0, 0,
		int(math.Round(float64(src.Bounds().Dx())*req.Scale)),
		int(math.Round(float64(src.Bounds().Dy())*req.Scale)))
	draw.CatmullRom.Scale(canvas, dst, src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// loadImage decodes an SVG data URI and paints it at its natural size onto
// a transparent image.
func loadImage(uri string) (*image.RGBA, error) {
	mediaType, data, err := element.ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	if mediaType != "image/svg+xml" {
		return nil, fmt.Errorf("load image: unsupported media type %q", mediaType)
	}
	doc, err := element.DecodeSVG(data)
	if err != nil {
		return nil, err
	}
	w, h := ceilPx(doc.Width), ceilPx(doc.Height)
	if w == 0 || h == 0 {
		return nil, ErrNoImage
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	snap := element.NewSheet().Snapshot(doc.Content)
	layout := element.ComputeLayout(doc.Content, snap)
	doc.Content.Walk(func(n *element.Node) bool {
		st := snap[n]
		if st["display"] == "none" {
			return false
		}
		paintNode(img, n, st, layout[n])
		return true
	})
	return img, nil
}

func paintNode(img *image.RGBA, n *element.Node, st element.Style, box element.Rect) {
	r := image.Rect(
		int(math.Floor(box.X)), int(math.Floor(box.Y)),
		int(math.Ceil(box.Right())), int(math.Ceil(box.Bottom())),
	)
	if !r.Empty() {
		if c, ok := element.ParseColor(st["background-color"]); ok && c.A > 0 {
			mask := roundedMask{r: r, radius: st.Px("border-radius")}
			draw.DrawMask(img, r, image.NewUniform(c), image.Point{}, mask, r.Min, draw.Over)
		}
		if bw := int(math.Round(st.Px("border-width"))); bw > 0 {
			if c, ok := element.ParseColor(st["border-color"]); ok && c.A > 0 {
				strokeRect(img, r, bw, c)
			}
		}
	}

	if n.Text == "" {
		return
	}
	c, ok := element.ParseColor(st["color"])
	if !ok {
		c = color.NRGBA{A: 0xff}
	}
	face := basicfont.Face7x13
	m := face.Metrics()
	ascent, descent := m.Ascent.Round(), m.Descent.Round()
	baseline := r.Min.Y + ascent
	if r.Dy() > 0 {
		baseline = r.Min.Y + (r.Dy()+ascent-descent)/2
	}
	x := r.Min.X + int(math.Round(st.Px("padding-left")))
	if st["text-align"] == "center" {
		x = r.Min.X + (r.Dx()-font.MeasureString(face, n.Text).Round())/2
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(n.Text)
}

func strokeRect(img *image.RGBA, r image.Rectangle, width int, c color.NRGBA) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		{Min: r.Min, Max: image.Pt(r.Max.X, r.Min.Y+width)},
		{Min: image.Pt(r.Min.X, r.Max.Y-width), Max: r.Max},
		{Min: image.Pt(r.Min.X, r.Min.Y+width), Max: image.Pt(r.Min.X+width, r.Max.Y-width)},
		{Min: image.Pt(r.Max.X-width, r.Min.Y+width), Max: image.Pt(r.Max.X, r.Max.Y-width)},
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(r), src, image.Point{}, draw.Over)
	}
}

// roundedMask is an alpha mask covering r with its corners cut to radius.
type roundedMask struct {
	r      image.Rectangle
	radius float64
}

func (m roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m roundedMask) Bounds() image.Rectangle { return m.r }

func (m roundedMask) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.r) {
		return color.Alpha{}
	}
	rad := math.Min(m.radius, math.Min(float64(m.r.Dx()), float64(m.r.Dy()))/2)
	if rad <= 0 {
		return color.Alpha{A: 0xff}
	}
	px, py := float64(x)+0.5, float64(y)+0.5
	cx := math.Max(float64(m.r.Min.X)+rad, math.Min(px, float64(m.r.Max.X)-rad))
	cy := math.Max(float64(m.r.Min.Y)+rad, math.Min(py, float64(m.r.Max.Y)-rad))
	if math.Hypot(px-cx, py-cy) > rad {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xff}
}
