// Package resolver maps dependency names to index entries by consulting an
// ordered list of strategies; the first strategy that knows the name wins.
package resolver

import (
	"os"

	"dreamcpp/internal/index"
	"dreamcpp/internal/logger"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned when no strategy knows the dependency name.
var ErrNotFound = eris.New("dependency not found")

// Strategy is one place a dependency name can be looked up.
// found is false (with a nil error) when the strategy simply does not know the name.
type Strategy interface {
	Name() string
	Lookup(name string) (entry index.Entry, found bool, err error)
}

// Resolver tries its strategies in order.
type Resolver struct {
	strategies []Strategy
}

// New returns a Resolver over the given strategies, consulted in order.
func New(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Resolve returns the entry for name from the first strategy that finds it.
// When nothing finds it the error is ErrNotFound, or the last strategy failure
// if one occurred (an unreachable index is reported, not disguised as a miss).
func (r *Resolver) Resolve(name string) (index.Entry, error) {
	var lastErr error
	for _, s := range r.strategies {
		entry, found, err := s.Lookup(name)
		if err != nil {
			logger.Warn("[WARN] %s lookup for '%s' failed: %v\n", s.Name(), name, err)
			lastErr = err
			continue
		}
		if found {
			logger.Debug("[DEBUG] Resolved '%s' via %s to %s\n", name, s.Name(), entry.SourceLocation)
			return entry, nil
		}
	}
	if lastErr != nil {
		return index.Entry{}, eris.Wrapf(lastErr, "could not resolve '%s'", name)
	}
	return index.Entry{}, eris.Wrapf(ErrNotFound, "'%s'", name)
}

// IsNotFound reports whether err means the name is unknown to every strategy.
func IsNotFound(err error) bool {
	return eris.Is(err, ErrNotFound)
}

// RemoteIndex looks names up in the remote index, fetched afresh on every lookup.
type RemoteIndex struct {
	Fetcher index.Fetcher
}

// Name identifies the strategy in logs.
func (r *RemoteIndex) Name() string { return "remote index" }

// Lookup loads the index and matches the name by key, then by alias.
func (r *RemoteIndex) Lookup(name string) (index.Entry, bool, error) {
	idx, err := index.Load(r.Fetcher)
	if err != nil {
		return index.Entry{}, false, err
	}
	entry, ok := idx.Lookup(name)
	return entry, ok, nil
}

// LocalIndex is the hook for index directories on the local machine. It notes
// which of its directories exist but does not match names yet, so it never finds anything.
type LocalIndex struct {
	Paths []string
}

// Name identifies the strategy in logs.
func (l *LocalIndex) Name() string { return "local index" }

// Lookup always reports not found.
func (l *LocalIndex) Lookup(name string) (index.Entry, bool, error) {
	for _, p := range l.Paths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			logger.Debug("[DEBUG] Local index %s present, not searched for '%s'\n", p, name)
		}
	}
	return index.Entry{}, false, nil
}
