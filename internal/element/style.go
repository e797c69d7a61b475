package element

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Style maps CSS property names to their textual values.
type Style map[string]string

// ParseStyle reads a declaration list such as "width: 10px; color: red".
// Malformed declarations are skipped.
func ParseStyle(css string) Style {
	s := Style{}
	for decl := range strings.SplitSeq(css, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		s[prop] = value
	}
	return s
}

// String renders the declarations sorted by property name.
func (s Style) String() string {
	keys := slices.Sorted(maps.Keys(s))
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(s[k])
	}
	return b.String()
}

// Px returns the numeric value of a length such as "12px" or "12". Other
// units and keywords read as 0.
func (s Style) Px(prop string) float64 {
	v := strings.TrimSpace(s[prop])
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func (s Style) Clone() Style {
	if s == nil {
		return Style{}
	}
	return maps.Clone(s)
}

// Merge copies every declaration of o into s, overwriting.
func (s Style) Merge(o Style) {
	maps.Copy(s, o)
}

// Px formats a length for a Style value.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
