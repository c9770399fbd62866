package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"strings"

	"github.com/dbsmedya/goiconindex/internal/config"
	"github.com/dbsmedya/goiconindex/internal/logger"
)

// errStop ends a walk when the consumer stops ranging over Paths.
var errStop = errors.New("enumeration stopped")

// Options selects which paths an enumeration yields.
type Options struct {
	ValidExt       []string // case-sensitive suffixes, each starting with "."
	PathExclusions []string // raw path prefixes that are never yielded; "" is ignored
}

// OptionsFromConfig builds Options from the index section of the configuration.
func OptionsFromConfig(cfg config.IndexConfig) Options {
	return Options{
		ValidExt:       cfg.ValidExt,
		PathExclusions: cfg.PathExclusions,
	}
}

// Validate rejects an empty extension list or entries without a leading ".".
func (o Options) Validate() error {
	if errs := config.ValidateExtensions("valid_ext", o.ValidExt); len(errs) > 0 {
		return errs
	}
	return nil
}

// Stats counts what the last enumeration pass saw.
type Stats struct {
	Visited  int
	Excluded int
	Matched  int
}

// Enumerator produces the resource paths of a Source that survive the
// exclusion and extension filters.
type Enumerator struct {
	src   Source
	opts  Options
	log   *logger.Logger
	stats Stats
	err   error
}

// NewEnumerator validates opts before any traversal happens.
func NewEnumerator(src Source, opts Options, log *logger.Logger) (*Enumerator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Enumerator{
		src:  src,
		opts: opts,
		log:  log.WithSource(src.Root()),
	}, nil
}

// Paths returns a lazy sequence of matching paths in traversal order. Each
// range over it walks the source again. A traversal failure ends the
// sequence and is reported by Err.
func (e *Enumerator) Paths(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		e.err = nil
		e.stats = Stats{}

		err := e.src.Walk(ctx, func(p string, isDir bool) error {
			if hasAnyPrefix(p, e.opts.PathExclusions) {
				e.stats.Excluded++
				e.log.Debugw("Excluded path", "path", p)
				if isDir {
					return fs.SkipDir
				}
				return nil
			}
			if isDir {
				return nil
			}
			e.stats.Visited++
			if !hasAnySuffix(p, e.opts.ValidExt) {
				return nil
			}
			e.stats.Matched++
			if !yield(p) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			e.err = fmt.Errorf("enumerate %s: %w", e.src.Root(), err)
		}
	}
}

// Err returns the traversal error of the last completed Paths range, if any.
func (e *Enumerator) Err() error {
	return e.err
}

// Stats returns counters for the last Paths range.
func (e *Enumerator) Stats() Stats {
	return e.stats
}

// Filter applies the enumeration rules to an externally supplied listing.
func Filter(paths iter.Seq[string], opts Options) (iter.Seq[string], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for p := range paths {
			if hasAnyPrefix(p, opts.PathExclusions) || !hasAnySuffix(p, opts.ValidExt) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, x := range suffixes {
		if strings.HasSuffix(s, x) {
			return true
		}
	}
	return false
}
