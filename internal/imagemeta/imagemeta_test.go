package imagemeta

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspectPNG(t *testing.T) {
	info, err := Inspect(bytes.NewReader(encodePNG(t, 32, 16)), ".png")
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 32, Height: 16, Format: "png"}, info)
	assert.Equal(t, "32x16 png", info.String())
}

func TestInspectBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 4))))

	info, err := Inspect(&buf, ".bmp")
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 8, Height: 4, Format: "bmp"}, info)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect(strings.NewReader("not an image"), ".png")
	assert.Error(t, err)
}

func TestInspectSVG(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Info
	}{
		{
			name: "width and height",
			doc:  `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="48px"></svg>`,
			want: Info{Width: 24, Height: 48, Format: "svg"},
		},
		{
			name: "viewBox fallback",
			doc:  `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 32"><path d="M0 0"/></svg>`,
			want: Info{Width: 64, Height: 32, Format: "svg"},
		},
		{
			name: "relative units use viewBox",
			doc:  `<svg width="100%" height="100%" viewBox="0,0,16,16"></svg>`,
			want: Info{Width: 16, Height: 16, Format: "svg"},
		},
		{
			name: "no size information",
			doc:  `<svg></svg>`,
			want: Info{Format: "svg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect(strings.NewReader(tt.doc), ".svg")
			require.NoError(t, err)
			assert.Equal(t, tt.want, info)
		})
	}
}

func TestInspectSVGWithoutRoot(t *testing.T) {
	_, err := Inspect(strings.NewReader("<html><body>nothing</body></html>"), ".SVG")
	assert.ErrorIs(t, err, ErrNoSVG)
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"24", 24, true},
		{" 24px ", 24, true},
		{"23.6", 24, true},
		{"1em", 0, false},
		{"-4", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseLength(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
