package index

import (
	"slices"
	"strings"
)

// Query narrows the records of an index.
type Query struct {
	Text       string   // case-insensitive substring of the record's base name
	Extensions []string // keep records with at least one variant of these extensions
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Text) == "" && len(q.Extensions) == 0
}

// Matches reports whether r satisfies the query.
func (q Query) Matches(r *Record) bool {
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		if !strings.Contains(strings.ToLower(BaseName(r.Name)), text) {
			return false
		}
	}
	if len(q.Extensions) > 0 {
		return slices.ContainsFunc(r.Paths, func(p string) bool {
			_, ext := SplitExtension(p)
			return slices.Contains(q.Extensions, ext)
		})
	}
	return true
}

// Filter returns the records matching q in index order.
func (idx *Index) Filter(q Query) []*Record {
	var out []*Record
	for el := idx.records.Front(); el != nil; el = el.Next() {
		if q.Matches(el.Value) {
			out = append(out, el.Value)
		}
	}
	return out
}

// BaseName returns the last path element of a record name.
func BaseName(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
