package export

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStrategy = errors.New("unknown export strategy")

// StrategiesFor maps a configured name to a strategy chain: "auto" (or
// empty) is gg with the SVG fallback, "gg" and "svg" pin a single strategy.
func StrategiesFor(name string) ([]Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return DefaultStrategies(), nil
	case "gg":
		return []Strategy{NewGGRasterizer()}, nil
	case "svg":
		return []Strategy{SVGRasterizer{}}, nil
	}
	return nil, fmt.Errorf("%w: %q (want auto, gg or svg)", ErrUnknownStrategy, name)
}
