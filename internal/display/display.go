// Package display renders index records as aligned terminal tables.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goiconindex/internal/browser"
	"github.com/dbsmedya/goiconindex/internal/index"
)

// maxPathWidth truncates long representative paths in tables.
const maxPathWidth = 72

// Printer writes formatted output, optionally colored.
type Printer struct {
	w        io.Writer
	useColor bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	return &Printer{w: w, useColor: useColor}
}

func (p *Printer) style(s color.Style, text string) string {
	if !p.useColor {
		return text
	}
	return s.Sprint(text)
}

// Header prints a title framed by "=" rules.
func (p *Printer) Header(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	rule := strings.Repeat("=", runewidth.StringWidth(title)+4)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "  %s\n", p.style(color.Style{color.FgCyan, color.OpBold}, title))
	fmt.Fprintln(p.w, rule)
}

// Section prints a bracketed section title with an underline.
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.w, "[%s]\n", p.style(color.Style{color.OpBold}, title))
	fmt.Fprintln(p.w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// Records prints one row per record: name, extension, sizes and path.
func (p *Printer) Records(records []*index.Record) {
	headers := []string{"NAME", "EXT", "SIZES", "PATH"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			index.BaseName(r.Name),
			r.Extension,
			SizesLabel(r),
			runewidth.Truncate(r.RepresentativePath, maxPathWidth, "…"),
		})
	}
	p.table(headers, rows)
}

// Variants prints the size variants of one record with their image headers.
func (p *Printer) Variants(rec *index.Record, variants []browser.Variant) {
	p.Header("%s", rec.Name)
	fmt.Fprintf(p.w, "  Extension:      %s\n", rec.Extension)
	fmt.Fprintf(p.w, "  Representative: %s\n", rec.RepresentativePath)
	fmt.Fprintf(p.w, "  Sizes:          %s\n\n", SizesLabel(rec))

	rows := make([][]string, 0, len(variants))
	for _, v := range variants {
		suffix := v.Suffix
		if suffix == "" {
			suffix = "(base)"
		}
		info := v.Info.String()
		if v.Err != nil {
			info = p.style(color.Style{color.FgRed}, "error: "+v.Err.Error())
		}
		rows = append(rows, []string{suffix, info, v.Path})
	}
	p.table([]string{"SUFFIX", "IMAGE", "PATH"}, rows)
}

// Summary prints record and path totals.
func (p *Printer) Summary(records, paths int) {
	fmt.Fprintf(p.w, "\nTotal: %d record(s) from %d path(s)\n", records, paths)
}

func (p *Printer) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = p.style(color.Style{color.OpBold}, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " "))

	for _, row := range rows {
		for i, cell := range row {
			cells[i] = pad(cell, widths[i], i == len(row)-1)
		}
		fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// pad right-fills s to width display columns; the last column is left as is.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if gap := width - visibleWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func visibleWidth(s string) int {
	return runewidth.StringWidth(color.ClearCode(s))
}

// SizesLabel lists a record's variants as "base, 16, 32".
func SizesLabel(r *index.Record) string {
	var parts []string
	if r.HasBase() {
		parts = append(parts, "base")
	}
	for _, n := range r.Sizes() {
		parts = append(parts, strconv.Itoa(n))
	}
	parts = append(parts, r.OversizedSizes()...)
	return strings.Join(parts, ", ")
}
