package index

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dbsmedya/goiconindex/internal/config"
)

// SortKey selects the record field SortedList orders by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByPath SortKey = "path"
)

// ParseSortKey maps "name" or "path" to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByName, SortByPath:
		return k, nil
	default:
		return "", config.ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("unknown sort key %q, expected 'name' or 'path'", s),
		}
	}
}

// SortedList returns the records ordered case-insensitively by exactly one
// key: SortByName orders by the base name (last path element) with the full
// name as tie-break, SortByPath by the representative path. Passing no key
// or more than one key is a configuration error.
func (idx *Index) SortedList(keys ...SortKey) ([]*Record, error) {
	if len(keys) != 1 {
		return nil, config.ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("exactly one sort key is required, got %d", len(keys)),
		}
	}
	return SortRecords(idx.Records(), keys[0])
}

// SortRecords sorts records in place by key and returns them.
func SortRecords(records []*Record, key SortKey) ([]*Record, error) {
	var field func(*Record) string
	switch key {
	case SortByName:
		field = func(r *Record) string { return BaseName(r.Name) }
	case SortByPath:
		field = func(r *Record) string { return r.RepresentativePath }
	default:
		return nil, config.ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("unknown sort key %q", key),
		}
	}

	slices.SortFunc(records, func(a, b *Record) int {
		fa, fb := field(a), field(b)
		if c := cmp.Compare(strings.ToLower(fa), strings.ToLower(fb)); c != 0 {
			return c
		}
		if c := cmp.Compare(fa, fb); c != 0 {
			return c
		}
		// same base name in different directories
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return records, nil
}
