package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterByText(t *testing.T) {
	idx := build("ui/SaveAs_16.png", "ui/save.svg", "ui/open.png", "savings/bank.png")

	got := names(idx.Filter(Query{Text: "SAVE"}))
	assert.Equal(t, []string{"ui/SaveAs", "ui/save"}, got, "directory names are not searched")
}

func TestFilterByExtension(t *testing.T) {
	idx := build("a_16.png", "a.svg", "b.png", "c.svg")

	assert.Equal(t, []string{"a", "c"}, names(idx.Filter(Query{Extensions: []string{".svg"}})))
	assert.Equal(t, []string{"a", "b"}, names(idx.Filter(Query{Extensions: []string{".png"}})))
}

func TestFilterCombined(t *testing.T) {
	idx := build("gear_16.png", "gear.svg", "gears.png")

	got := names(idx.Filter(Query{Text: "gear", Extensions: []string{".svg"}}))
	assert.Equal(t, []string{"gear"}, got)
}

func TestFilterZeroQueryMatchesAll(t *testing.T) {
	idx := build("a.png", "b.png")

	q := Query{Text: "  "}
	assert.True(t, q.IsZero())
	assert.Len(t, idx.Filter(q), 2)
	assert.False(t, Query{Extensions: []string{".png"}}.IsZero())
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "save", BaseName(":/icons/save"))
	assert.Equal(t, "save", BaseName(`C:\icons\save`))
	assert.Equal(t, "", BaseName("icons/"))
	assert.Equal(t, "plain", BaseName("plain"))
}
