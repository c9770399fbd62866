// Package index groups size variants of the same logical image into records.
//
// A resource path such as "icons/save_32.png" is split into the stem
// "icons/save_32" and the extension ".png". A trailing "_<digits>" or
// "-<digits>" token on the stem is a size suffix: every path whose stem
// reduces to the same name is folded into one Record that lists the
// suffixes observed, with "" standing for the unsuffixed base variant.
package index

import (
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// sizeSuffixPattern isolates a trailing [_-]<digits> token. The greedy first
// group leaves only the last token to the second.
var sizeSuffixPattern = regexp.MustCompile(`^(.*)([_-][0-9]+)$`)

// Record is one logical image and all size variants found for it.
type Record struct {
	Name               string   `json:"name" yaml:"name"`
	Extension          string   `json:"extension" yaml:"extension"`
	RepresentativePath string   `json:"representative_path" yaml:"representative_path"`
	SizeSuffixes       []string `json:"size_suffixes" yaml:"size_suffixes"`
	Paths              []string `json:"paths" yaml:"paths"` // original path per suffix, same order

	// source is the original path that supplied RepresentativePath and Extension.
	source string
}

// Sizes returns the distinct numeric sizes of the suffixed variants, ascending.
func (r *Record) Sizes() []int {
	sizes := make([]int, 0, len(r.SizeSuffixes))
	for _, s := range r.SizeSuffixes {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			// digits too long for int, see OversizedSizes
			continue
		}
		sizes = append(sizes, n)
	}
	slices.Sort(sizes)
	return slices.Compact(sizes)
}

// OversizedSizes returns the distinct digit strings of suffixes too long to
// fit an int, which Sizes leaves out.
func (r *Record) OversizedSizes() []string {
	var out []string
	for _, s := range r.SizeSuffixes {
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s[1:]); err != nil {
			out = append(out, s[1:])
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// HasBase reports whether an unsuffixed variant was found.
func (r *Record) HasBase() bool {
	return slices.Contains(r.SizeSuffixes, "")
}

// Index maps record names to records, preserving first-seen order.
type Index struct {
	records *orderedmap.OrderedMap[string, *Record]
}

// New returns an empty Index.
func New() *Index {
	return &Index{records: orderedmap.NewOrderedMap[string, *Record]()}
}

// Build folds every path of the sequence into a new Index.
//
// For records with several variants, RepresentativePath and Extension come
// from the variant whose original path sorts first, so the result does not
// depend on traversal order. SizeSuffixes keep the order paths arrived in.
func Build(paths iter.Seq[string]) *Index {
	idx := New()
	for p := range paths {
		idx.Add(p)
	}
	return idx
}

// Add folds a single path into the index.
func (idx *Index) Add(p string) {
	stem, ext := SplitExtension(p)

	name, suffix, ok := SplitSizeSuffix(stem)
	representative := p
	if ok {
		representative = name + ext
	} else {
		name = stem
	}

	rec, exists := idx.records.Get(name)
	if !exists {
		rec = &Record{Name: name}
		idx.records.Set(name, rec)
	}

	rec.SizeSuffixes = append(rec.SizeSuffixes, suffix)
	rec.Paths = append(rec.Paths, p)

	if !exists || p < rec.source {
		rec.source = p
		rec.RepresentativePath = representative
		rec.Extension = ext
	}
}

// SplitExtension splits p at the final "." of its last path element.
// Without such a dot the extension is empty.
func SplitExtension(p string) (stem, ext string) {
	dot := strings.LastIndexByte(p, '.')
	if dot < 0 || dot < strings.LastIndexAny(p, `/\`) {
		return p, ""
	}
	return p[:dot], p[dot:]
}

// SplitSizeSuffix removes a trailing "_<digits>" or "-<digits>" token from
// stem. The returned suffix includes its separator.
func SplitSizeSuffix(stem string) (name, suffix string, ok bool) {
	m := sizeSuffixPattern.FindStringSubmatch(stem)
	if m == nil {
		return stem, "", false
	}
	return m[1], m[2], true
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return idx.records.Len()
}

// Get returns the record for name.
func (idx *Index) Get(name string) (*Record, bool) {
	return idx.records.Get(name)
}

// Records returns all records in first-seen order.
func (idx *Index) Records() []*Record {
	out := make([]*Record, 0, idx.records.Len())
	for el := idx.records.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Names returns all record names in first-seen order.
func (idx *Index) Names() []string {
	out := make([]string, 0, idx.records.Len())
	for el := idx.records.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// PathCount returns the number of paths folded into the index.
func (idx *Index) PathCount() int {
	n := 0
	for el := idx.records.Front(); el != nil; el = el.Next() {
		n += len(el.Value.SizeSuffixes)
	}
	return n
}
