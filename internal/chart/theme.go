package chart

// Brand colors shared by both palettes.
const (
	Brand     = "#6366f1"
	BrandDark = "#4f46e5"
)

// Palette is the set of colors a chart is painted with.
type Palette struct {
	Name       string
	Background string
	Surface    string
	Border     string
	Header     string
	Text       string
	Muted      string
	Gridline   string
	Bar        string
	BarEdge    string
	BarText    string
	Link       string
}

var Light = Palette{
	Name:       "light",
	Background: "#f8fafc",
	Surface:    "#ffffff",
	Border:     "#e2e8f0",
	Header:     "#f1f5f9",
	Text:       "#0f172a",
	Muted:      "#64748b",
	Gridline:   "#e2e8f0",
	Bar:        Brand,
	BarEdge:    BrandDark,
	BarText:    "#ffffff",
	Link:       "#94a3b8",
}

var Dark = Palette{
	Name:       "dark",
	Background: "#0f172a",
	Surface:    "#1e293b",
	Border:     "#334155",
	Header:     "#0f172a",
	Text:       "#e2e8f0",
	Muted:      "#94a3b8",
	Gridline:   "#334155",
	Bar:        Brand,
	BarEdge:    BrandDark,
	BarText:    "#ffffff",
	Link:       "#64748b",
}

// PaletteFor returns Dark when dark is set, Light otherwise.
func PaletteFor(dark bool) Palette {
	if dark {
		return Dark
	}
	return Light
}
