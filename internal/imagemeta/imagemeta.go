// Package imagemeta reads the pixel dimensions of image resources without
// decoding full images.
package imagemeta

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoSVG is returned when an .svg resource has no <svg> element.
var ErrNoSVG = errors.New("no svg element")

// Info describes one image variant.
type Info struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Format string `json:"format" yaml:"format"`
}

func (i Info) String() string {
	if i.Width == 0 && i.Height == 0 {
		return i.Format
	}
	return fmt.Sprintf("%dx%d %s", i.Width, i.Height, i.Format)
}

// Inspect reads the header of r. ext selects the SVG reader for ".svg";
// every other extension goes through the registered raster decoders.
func Inspect(r io.Reader, ext string) (Info, error) {
	if strings.EqualFold(ext, ".svg") {
		return inspectSVG(r)
	}

	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode image header: %w", err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

func inspectSVG(r io.Reader) (Info, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Info{}, fmt.Errorf("parse svg: %w", err)
	}

	root := doc.Find("svg").First()
	if root.Length() == 0 {
		return Info{}, ErrNoSVG
	}

	info := Info{Format: "svg"}
	w, wok := parseLength(root.AttrOr("width", ""))
	h, hok := parseLength(root.AttrOr("height", ""))
	if wok && hok {
		info.Width, info.Height = w, h
		return info, nil
	}

	viewBox, ok := root.Attr("viewBox")
	if !ok {
		viewBox = root.AttrOr("viewbox", "")
	}
	if vw, vh, ok := parseViewBox(viewBox); ok {
		info.Width, info.Height = vw, vh
	}
	return info, nil
}

// parseLength accepts unitless and px lengths; relative units are rejected.
func parseLength(s string) (int, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

func parseViewBox(s string) (int, int, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
	if len(fields) != 4 {
		return 0, 0, false
	}
	w, wok := parseLength(fields[2])
	h, hok := parseLength(fields[3])
	if !wok || !hok {
		return 0, 0, false
	}
	return w, h, true
}
