package element

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() (*Document, *Node, *Node) {
	body := New("body", WithStyle("background-color: #0f172a; color: #e2e8f0; width: 200px; height: 100px"))
	grid := New("div", WithClass("grid"), WithStyle("left: 10px; top: 5px; width: 100px; height: 50px; overflow: hidden"))
	bar := New("div", WithClass("bar"), WithID("bar-1"), WithStyle("left: 80px; top: 40px; width: 60px; height: 20px"), WithText("Design"))
	body.Append(grid.Append(bar))

	sheet := NewSheet().
		Add("*", "font-size: 12px").
		Add("div", "border-radius: 2px").
		Add(".bar", "background-color: #6366f1; border-radius: 4px").
		Add("#bar-1", "border-radius: 6px")
	return NewDocument(body, sheet), grid, bar
}

func TestParseStyle(t *testing.T) {
	s := ParseStyle(" Width : 10px;color:red;; bogus ; height: ")
	assert.Equal(t, Style{"width": "10px", "color": "red"}, s)
	assert.Equal(t, "color: red; width: 10px", s.String())
	assert.Equal(t, 10.0, s.Px("width"))
	assert.Equal(t, 0.0, s.Px("color"))
	assert.Equal(t, 0.0, Style{"width": "auto"}.Px("width"))
	assert.Equal(t, 3.5, Style{"width": "3.5"}.Px("width"))
}

func TestCloneIsDeepAndDetached(t *testing.T) {
	_, grid, bar := sampleDoc()
	c := grid.Clone()

	require.Nil(t, c.Parent())
	require.Len(t, c.Children, 1)
	assert.Same(t, c, c.Children[0].Parent())
	assert.NotSame(t, bar, c.Children[0])

	c.Children[0].Style["width"] = "1px"
	c.Children[0].Classes[0] = "changed"
	assert.Equal(t, "60px", bar.Style["width"])
	assert.True(t, bar.HasClass("bar"))
}

func TestFind(t *testing.T) {
	doc, grid, bar := sampleDoc()
	assert.Same(t, grid, doc.Root.Find("grid"))
	assert.Same(t, bar, doc.Root.Find("bar"))
	assert.Nil(t, doc.Root.Find("missing"))
	assert.Len(t, doc.Root.FindAll("bar"), 1)
	assert.Equal(t, 3, doc.Root.Len())
	assert.Same(t, doc.Root, bar.Root())
}

func TestCascade(t *testing.T) {
	doc, grid, bar := sampleDoc()

	st := doc.ComputedStyle(bar)
	assert.Equal(t, "6px", st["border-radius"], "id beats class beats tag")
	assert.Equal(t, "#6366f1", st["background-color"])
	assert.Equal(t, "#e2e8f0", st["color"], "color inherits from body")
	assert.Equal(t, "12px", st["font-size"], "universal rule beats inheritance")
	assert.Equal(t, "60px", st["width"], "inline style wins")

	gs := doc.ComputedStyle(grid)
	assert.Equal(t, "transparent", gs["background-color"], "background does not inherit")
	assert.Equal(t, "2px", gs["border-radius"])
}

func TestSnapshotCarriesKnownProperties(t *testing.T) {
	doc, _, _ := sampleDoc()
	snap := doc.Snapshot()
	require.Len(t, snap, 3)
	for n, st := range snap {
		for _, p := range KnownProperties {
			assert.Contains(t, st, p.Name, "node %s", n.Tag)
		}
	}
}

func TestLayout(t *testing.T) {
	doc, grid, bar := sampleDoc()

	assert.Equal(t, Rect{X: 10, Y: 5, W: 100, H: 50}, doc.BoundingBox(grid))
	assert.Equal(t, Rect{X: 90, Y: 45, W: 60, H: 20}, doc.BoundingBox(bar))

	w, h := doc.ScrollSize(grid)
	assert.Equal(t, 140.0, w, "scroll extent includes overflow")
	assert.Equal(t, 60.0, h)

	w, h = doc.ScrollSize(bar)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestInlineStyles(t *testing.T) {
	doc, grid, bar := sampleDoc()
	before := grid.Style.String()

	clone := InlineStyles(grid, doc.Snapshot())

	assert.Equal(t, before, grid.Style.String(), "original untouched")
	assert.Len(t, bar.Style, 4)
	for _, p := range KnownProperties {
		assert.Contains(t, clone.Style, p.Name)
		assert.Contains(t, clone.Children[0].Style, p.Name)
	}
	assert.Equal(t, "#6366f1", clone.Children[0].Style["background-color"])
	assert.Equal(t, "#e2e8f0", clone.Children[0].Style["color"])

	// A clone rendered without any sheet keeps the looks.
	plain := NewSheet().Snapshot(clone)
	assert.Equal(t, "6px", plain[clone.Children[0]]["border-radius"])
}

func TestSVGRoundTrip(t *testing.T) {
	doc, grid, _ := sampleDoc()
	inlined := InlineStyles(grid, doc.Snapshot())
	inlined.Children[0].Text = `A & B <x>`

	data, err := EncodeSVG(inlined, 140, 60)
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.HasPrefix(s, `<svg xmlns="http://www.w3.org/2000/svg" width="140" height="60">`), s)
	assert.Contains(t, s, "<foreignObject")
	assert.Contains(t, s, `xmlns="http://www.w3.org/1999/xhtml"`)

	img, err := DecodeSVG(data)
	require.NoError(t, err)
	assert.Equal(t, 140.0, img.Width)
	assert.Equal(t, 60.0, img.Height)
	assert.Equal(t, "140px", img.Content.Style["width"])
	require.Len(t, img.Content.Children, 1)

	got := img.Content.Children[0]
	assert.Equal(t, "div", got.Tag)
	assert.Equal(t, []string{"grid"}, got.Classes)
	assert.Equal(t, inlined.Style, got.Style)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "bar-1", got.Children[0].ID)
	assert.Equal(t, `A & B <x>`, got.Children[0].Text)
	assert.Equal(t, inlined.Children[0].Style, got.Children[0].Style)
}

func TestDecodeSVGErrors(t *testing.T) {
	_, err := DecodeSVG([]byte(`<html></html>`))
	assert.ErrorIs(t, err, ErrNotSVG)

	_, err = DecodeSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`))
	assert.ErrorIs(t, err, ErrNoContent)

	_, err = DecodeSVG([]byte(`<svg><foreignObject>`))
	assert.Error(t, err)

	_, err = DecodeSVG(nil)
	assert.ErrorIs(t, err, ErrNotSVG)
}

func TestDataURI(t *testing.T) {
	svg := []byte(`<svg width="1"><foreignObject>50% #1 & more</foreignObject></svg>`)
	uri := DataURI(svg)
	assert.True(t, strings.HasPrefix(uri, SVGDataPrefix))
	assert.NotContains(t, uri[len(SVGDataPrefix):], " ")
	assert.NotContains(t, uri[len(SVGDataPrefix):], "#")

	mt, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mt)
	assert.Equal(t, svg, data)

	mt, data, err = ParseDataURI("data:;base64,aGk=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mt)
	assert.Equal(t, []byte("hi"), data)

	_, _, err = ParseDataURI("http://example.com")
	assert.ErrorIs(t, err, ErrNotDataURI)
	_, _, err = ParseDataURI("data:image/png")
	assert.ErrorIs(t, err, ErrNotDataURI)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#6366f1", color.NRGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}, true},
		{"#FFF", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, true},
		{"rgba(0,0,0,0)", color.NRGBA{}, true},
		{"rgba(10,20,30,0.5)", color.NRGBA{R: 10, G: 20, B: 30, A: 128}, true},
		{"transparent", color.NRGBA{}, true},
		{"White", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true},
		{"#12", color.NRGBA{}, false},
		{"rgb(300,0,0)", color.NRGBA{}, false},
		{"chartreuse", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.True(t, Transparent("rgba(0, 0, 0, 0)"))
	assert.True(t, Transparent(""))
	assert.False(t, Transparent("#fff"))
}
