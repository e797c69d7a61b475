package element

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xhtmlNamespace = "http://www.w3.org/1999/xhtml"

	// SVGDataPrefix starts every URI produced by DataURI.
	SVGDataPrefix = "data:image/svg+xml;charset=utf-8,"
)

var (
	ErrNotSVG     = errors.New("not an svg document")
	ErrNoContent  = errors.New("svg has no foreignObject content")
	ErrNotDataURI = errors.New("not a data uri")
)

// SVGImage is a decoded foreignObject document. Content is the XHTML wrapper
// whose children are the embedded element tree.
type SVGImage struct {
	Width   float64
	Height  float64
	Content *Node
}

func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EncodeSVG wraps n in an <svg><foreignObject> document of w by h pixels.
// The tree is written under an XHTML <div> sized to the same dimensions.
func EncodeSVG(n *Node, w, h float64) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	svg := xml.StartElement{
		Name: xml.Name{Space: svgNamespace, Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "width"}, Value: formatDim(w)},
			{Name: xml.Name{Local: "height"}, Value: formatDim(h)},
		},
	}
	fo := xml.StartElement{
		Name: xml.Name{Local: "foreignObject"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: "0"},
			{Name: xml.Name{Local: "y"}, Value: "0"},
			{Name: xml.Name{Local: "width"}, Value: "100%"},
			{Name: xml.Name{Local: "height"}, Value: "100%"},
		},
	}
	wrapStyle := Style{"width": Px(w), "height": Px(h)}
	wrap := xml.StartElement{
		Name: xml.Name{Space: xhtmlNamespace, Local: "div"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "style"}, Value: wrapStyle.String()}},
	}

	for _, start := range []xml.StartElement{svg, fo, wrap} {
		if err := enc.EncodeToken(start); err != nil {
			return nil, fmt.Errorf("encode svg: %w", err)
		}
	}
	if err := encodeNode(enc, n); err != nil {
		return nil, fmt.Errorf("encode svg: %w", err)
	}
	for _, start := range []xml.StartElement{wrap, fo, svg} {
		if err := enc.EncodeToken(start.End()); err != nil {
			return nil, fmt.Errorf("encode svg: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("encode svg: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeNode(enc *xml.Encoder, n *Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	if n.ID != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: n.ID})
	}
	if len(n.Classes) > 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "class"}, Value: strings.Join(n.Classes, " ")})
	}
	if len(n.Style) > 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "style"}, Value: n.Style.String()})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := encodeNode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// DecodeSVG parses a document produced by EncodeSVG back into a tree.
// Elements outside the foreignObject are ignored.
func DecodeSVG(data []byte) (*SVGImage, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var (
		img   *SVGImage
		stack []*Node
		inFO  bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case img == nil:
				if t.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root is <%s>", ErrNotSVG, t.Name.Local)
				}
				img = &SVGImage{
					Width:  attrFloat(t, "width"),
					Height: attrFloat(t, "height"),
				}
			case !inFO:
				if t.Name.Local == "foreignObject" {
					inFO = true
				} else if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("decode svg: %w", err)
				}
			default:
				n := nodeFromStart(t)
				switch {
				case len(stack) > 0:
					stack[len(stack)-1].Append(n)
				case img.Content == nil:
					img.Content = n
				}
				stack = append(stack, n)
			}
		case xml.EndElement:
			if inFO && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else if t.Name.Local == "foreignObject" {
				inFO = false
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if img == nil {
		return nil, ErrNotSVG
	}
	if img.Content == nil {
		return nil, ErrNoContent
	}
	return img, nil
}

func nodeFromStart(t xml.StartElement) *Node {
	n := New(t.Name.Local)
	for _, a := range t.Attr {
		switch a.Name.Local {
		case "id":
			n.ID = a.Value
		case "class":
			n.Classes = strings.Fields(a.Value)
		case "style":
			n.Style = ParseStyle(a.Value)
		}
	}
	return n
}

func attrFloat(t xml.StartElement, name string) float64 {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			f, _ := strconv.ParseFloat(strings.TrimSuffix(a.Value, "px"), 64)
			return f
		}
	}
	return 0
}

// DataURI percent-encodes an SVG document into a data URI.
func DataURI(svg []byte) string {
	return SVGDataPrefix + url.PathEscape(string(svg))
}

// ParseDataURI splits a data URI into its media type and decoded payload.
// Both percent-encoded and base64 payloads are accepted.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrNotDataURI)
	}

	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("decode base64 payload: %w", err)
		}
		return mediaType, data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("unescape payload: %w", err)
	}
	return mediaType, []byte(s), nil
}
