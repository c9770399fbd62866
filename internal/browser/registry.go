package browser

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dbsmedya/goiconindex/internal/logger"
	"github.com/dbsmedya/goiconindex/internal/resource"
)

// Registry keeps named sessions. Opening a name that is already in use
// replaces the previous session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	log      *logger.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNop()
	}
	return &Registry{sessions: make(map[string]*Session), log: log}
}

// Open creates a session for src, builds its index, and registers it under
// name. A session previously registered under name is closed. If the first
// refresh fails nothing is registered.
func (r *Registry) Open(ctx context.Context, name string, src resource.Source, opts resource.Options) (*Session, error) {
	s, err := NewSession(name, src, opts, r.log)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	old := r.sessions[name]
	r.sessions[name] = s
	r.mu.Unlock()

	if old != nil {
		r.log.Debugw("Replacing session", "session", name)
		if old.Source() != src {
			_ = old.Close()
		}
	}
	return s, nil
}

// Get returns the session registered under name.
func (r *Registry) Get(name string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[name]
	return s, ok
}

// Names returns the registered session names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.sessions))
	for name := range r.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every session and empties the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	var errs []error
	for _, s := range sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
