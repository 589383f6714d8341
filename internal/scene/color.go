package scene

import (
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Fallback colors used when a style color cannot be resolved
var (
	FallbackBackground = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	FallbackForeground = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// ResolveColor parses a CSS color in one of the forms #rgb, #rrggbb, rgb()
// or rgba(). Anything else, including other color models, yields fallback.
func ResolveColor(value string, fallback color.RGBA) color.RGBA {
	s := strings.ToLower(strings.TrimSpace(value))
	if !supportedForm(s) {
		return fallback
	}

	c, err := csscolorparser.Parse(s)
	if err != nil {
		return fallback
	}

	r, g, b, a := c.RGBA255()
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: a}).(color.RGBA)
}

func supportedForm(s string) bool {
	switch {
	case strings.HasPrefix(s, "#"):
		return len(s) == 4 || len(s) == 7
	case strings.HasPrefix(s, "rgba("), strings.HasPrefix(s, "rgb("):
		return strings.HasSuffix(s, ")")
	}
	return false
}
