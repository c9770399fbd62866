// Package browser holds the state a resource browser works against: a
// source, the index built from it, and memoised search results.
package browser

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dbsmedya/goiconindex/internal/imagemeta"
	"github.com/dbsmedya/goiconindex/internal/index"
	"github.com/dbsmedya/goiconindex/internal/logger"
	"github.com/dbsmedya/goiconindex/internal/resource"
)

const searchCacheSize = 256

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session is closed")

// Session owns one source and the index most recently built from it.
type Session struct {
	mu      sync.RWMutex
	name    string
	src     resource.Source
	opts    resource.Options
	log     *logger.Logger
	idx     *index.Index
	stats   resource.Stats
	builtAt time.Time
	cache   *lru.Cache[string, []*index.Record]
}

// Variant is one size variant of a record with its image header.
type Variant struct {
	Path   string
	Suffix string
	Info   imagemeta.Info
	Err    error
}

// NewSession validates opts and returns a session with an empty index.
// Call Refresh to populate it.
func NewSession(name string, src resource.Source, opts resource.Options, log *logger.Logger) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	cache, err := lru.New[string, []*index.Record](searchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	return &Session{
		name:  name,
		src:   src,
		opts:  opts,
		log:   log.WithSession(name),
		idx:   index.New(),
		cache: cache,
	}, nil
}

// Name returns the session name.
func (s *Session) Name() string { return s.name }

// Refresh discards the current index and builds a new one from a full
// enumeration of the source. On a traversal error the previous index stays
// in place. If the source is replaced while the enumeration runs, the
// result is dropped and the index built by Replace is kept.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	src := s.src
	s.mu.RUnlock()
	if src == nil {
		return ErrClosed
	}

	start := time.Now()
	idx, stats, err := s.build(ctx, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.src != src {
		s.mu.Unlock()
		s.log.Debugw("Discarded index of replaced source", "source", src.Root())
		return nil
	}
	s.install(idx, stats)
	s.mu.Unlock()

	s.logRebuilt(idx, stats, start)
	return nil
}

// Replace builds an index from src and, only if that succeeds, swaps in src
// and its index together and closes the old source. On failure the session
// keeps its previous source and index, and src stays open for the caller.
func (s *Session) Replace(ctx context.Context, src resource.Source) error {
	s.mu.RLock()
	closed := s.src == nil
	s.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	start := time.Now()
	idx, stats, err := s.build(ctx, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.src
	if old == nil {
		s.mu.Unlock()
		return ErrClosed
	}
	s.src = src
	s.install(idx, stats)
	s.mu.Unlock()

	if old != src {
		if err := old.Close(); err != nil {
			s.log.Warnw("Failed to close replaced source", "source", old.Root(), "error", err)
		}
	}

	s.logRebuilt(idx, stats, start)
	return nil
}

func (s *Session) build(ctx context.Context, src resource.Source) (*index.Index, resource.Stats, error) {
	enum, err := resource.NewEnumerator(src, s.opts, s.log)
	if err != nil {
		return nil, resource.Stats{}, err
	}

	idx := index.Build(enum.Paths(ctx))
	if err := enum.Err(); err != nil {
		return nil, resource.Stats{}, fmt.Errorf("refresh %s: %w", s.name, err)
	}
	return idx, enum.Stats(), nil
}

// install must be called with s.mu held for writing.
func (s *Session) install(idx *index.Index, stats resource.Stats) {
	s.idx = idx
	s.stats = stats
	s.builtAt = time.Now()
	s.cache.Purge()
}

func (s *Session) logRebuilt(idx *index.Index, stats resource.Stats, start time.Time) {
	s.log.Infow("Index rebuilt",
		"records", idx.Len(),
		"paths", stats.Matched,
		"excluded", stats.Excluded,
		"duration", time.Since(start),
	)
}

// Index returns the current index.
func (s *Session) Index() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Source returns the current source.
func (s *Session) Source() resource.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src
}

// Stats returns enumeration counters of the last successful refresh and its time.
func (s *Session) Stats() (resource.Stats, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, s.builtAt
}

// Search filters the index and sorts the matches by key. Results are
// memoised until the next refresh; the returned slice is the caller's.
func (s *Session) Search(q index.Query, key index.SortKey) ([]*index.Record, error) {
	cacheKey := searchKey(q, key)

	s.mu.RLock()
	idx := s.idx
	cached, ok := s.cache.Get(cacheKey)
	s.mu.RUnlock()
	if ok {
		return slices.Clone(cached), nil
	}

	records, err := index.SortRecords(idx.Filter(q), key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// a refresh may have replaced the index while we were sorting
	if s.idx == idx {
		s.cache.Add(cacheKey, records)
	}
	s.mu.Unlock()

	return slices.Clone(records), nil
}

// Inspect looks up a record by name and reads the image header of each of
// its variants. Unreadable variants carry their error instead of failing
// the whole call.
func (s *Session) Inspect(ctx context.Context, name string) (*index.Record, []Variant, error) {
	s.mu.RLock()
	rec, ok := s.idx.Get(name)
	src := s.src
	s.mu.RUnlock()
	if src == nil {
		return nil, nil, ErrClosed
	}
	if !ok {
		return nil, nil, fmt.Errorf("record %q not found", name)
	}

	variants := make([]Variant, len(rec.Paths))
	for i, p := range rec.Paths {
		variants[i] = Variant{Path: p, Suffix: rec.SizeSuffixes[i]}
		variants[i].Info, variants[i].Err = inspectPath(ctx, src, p)
	}
	return rec, variants, nil
}

func inspectPath(ctx context.Context, src resource.Source, p string) (imagemeta.Info, error) {
	rc, err := src.Open(ctx, p)
	if err != nil {
		return imagemeta.Info{}, err
	}
	defer rc.Close()

	_, ext := index.SplitExtension(p)
	return imagemeta.Inspect(rc, ext)
}

// Close releases the session's source.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src == nil {
		return nil
	}
	err := s.src.Close()
	s.src = nil
	return err
}

func searchKey(q index.Query, key index.SortKey) string {
	return strings.Join([]string{
		string(key),
		strings.ToLower(strings.TrimSpace(q.Text)),
		strings.Join(q.Extensions, ","),
	}, "\x00")
}
