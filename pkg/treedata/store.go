package treedata

import (
	"context"
	"sync"

	"github.com/exilemind/arbor/pkg/errors"
	"github.com/exilemind/arbor/pkg/observability"
	"github.com/exilemind/arbor/pkg/tree"
)

// Resolved is the result of a Store lookup.
type Resolved struct {
	// Tree is the parsed tree. Its Version() may differ from Requested
	// when the fallback hop was taken.
	Tree *tree.Tree

	// Requested is the version the caller asked for.
	Requested string

	// FellBack reports whether the tree is for the fallback version rather
	// than the requested one. Callers must surface this distinctly: the
	// remediation (wait for upstream data) differs from data corruption.
	FellBack bool
}

// Store caches parsed trees keyed by data version.
//
// A parsed tree is immutable and shared across all queries for its version;
// Store mutation (insert and invalidation) is the only place requiring
// mutual exclusion, guarded by an internal mutex.
//
// When the source reports a version as missing, Store retries with the
// configured fallback version exactly once. There are no recursive fallback
// chains: if the fallback also fails, the result is a single
// VERSION_NOT_FOUND error naming both versions, wrapping the fallback
// failure as its cause.
type Store struct {
	mu       sync.RWMutex
	source   Source
	fallback string
	trees    map[string]*tree.Tree
}

// NewStore creates a store over the given source.
// fallback is the one-hop fallback version; empty disables the fallback.
func NewStore(source Source, fallback string) *Store {
	return &Store{
		source:   source,
		fallback: fallback,
		trees:    make(map[string]*tree.Tree),
	}
}

// Resolve returns the parsed tree for the version, fetching and parsing it
// on a cache miss. On an upstream "version not found" it retries with the
// fallback version once and marks the result accordingly.
func (s *Store) Resolve(ctx context.Context, version string) (Resolved, error) {
	t, err := s.resolveOne(ctx, version)
	if err == nil {
		return Resolved{Tree: t, Requested: version}, nil
	}

	if !errors.Is(err, errors.ErrCodeVersionNotFound) || s.fallback == "" || s.fallback == version {
		return Resolved{}, err
	}

	ft, ferr := s.resolveOne(ctx, s.fallback)
	if ferr != nil {
		// Report the original miss; the fallback failure is secondary.
		return Resolved{}, errors.Wrap(errors.ErrCodeVersionNotFound, ferr,
			"no tree data for version %s and fallback %s failed", version, s.fallback)
	}
	return Resolved{Tree: ft, Requested: version, FellBack: true}, nil
}

// resolveOne fetches and parses a single version with no fallback.
func (s *Store) resolveOne(ctx context.Context, version string) (*tree.Tree, error) {
	s.mu.RLock()
	t, ok := s.trees[version]
	s.mu.RUnlock()
	if ok {
		observability.Cache().OnCacheHit("tree")
		return t, nil
	}
	observability.Cache().OnCacheMiss("tree")

	raw, err := s.source.Fetch(ctx, version)
	if err != nil {
		return nil, err
	}

	t, err = Parse(raw, version)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another goroutine may have parsed the same version concurrently;
	// keep the first stored tree so shared pointers stay stable.
	if existing, ok := s.trees[version]; ok {
		t = existing
	} else {
		s.trees[version] = t
	}
	s.mu.Unlock()

	return t, nil
}

// Invalidate drops the parsed tree for one version.
func (s *Store) Invalidate(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trees, version)
}

// InvalidateAll drops every parsed tree.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees = make(map[string]*tree.Tree)
}

// Cached returns the versions currently held, for diagnostics.
func (s *Store) Cached() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions := make([]string, 0, len(s.trees))
	for v := range s.trees {
		versions = append(versions, v)
	}
	return versions
}
