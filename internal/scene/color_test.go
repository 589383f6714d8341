package scene

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		value string
		want  color.RGBA
	}{
		{"#3B82F6", color.RGBA{0x3b, 0x82, 0xf6, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{" rgb(16, 185, 129) ", color.RGBA{16, 185, 129, 0xff}},
		{"rgb(100% 0% 0%)", color.RGBA{0xff, 0, 0, 0xff}},
		{"rgba(0, 0, 0, 0)", color.RGBA{0, 0, 0, 0}},
		{"rgba(255 255 255 / 50%)", color.RGBA{128, 128, 128, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColor(tt.value, FallbackForeground))
		})
	}
}

func TestResolveColorFallback(t *testing.T) {
	for _, value := range []string{
		"oklch(0.967 0.003 264.542)",
		"white",
		"hsl(0 0% 100%)",
		"#12345",
		"#3b82f680",
		"#fff8",
		"transparent",
		"#ggg",
		"rgb(1, 2)",
		"",
	} {
		assert.Equal(t, FallbackBackground, ResolveColor(value, FallbackBackground), value)
		assert.Equal(t, FallbackForeground, ResolveColor(value, FallbackForeground), value)
	}
}
