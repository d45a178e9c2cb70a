package srcview

import (
	"fmt"
	"strings"
	"sync"
)

// rootSet memoizes the set of configured project roots. It is a
// compute-once cell: the first get computes and publishes, later gets reuse
// the published value, and reset discards it so tests can fabricate a fresh
// configuration.
type rootSet struct {
	mu    sync.Mutex
	done  bool
	roots []string
}

func newRootSet() *rootSet {
	return &rootSet{}
}

// get returns the memoized roots, invoking compute at most once until the
// next reset.
func (s *rootSet) get(compute func() []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.done {
		s.roots = compute()
		s.done = true
	}

	return s.roots
}

// reset discards the memoized roots.
func (s *rootSet) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.done = false
	s.roots = nil
}

// computeRoots enumerates every configured project mapping and collects the
// canonical root of each.
func (r *Resolver) computeRoots() []string {
	roots := make([]string, 0, len(r.projects))
	seen := make(map[string]struct{}, len(r.projects))

	for _, p := range r.projects {
		root := p.Target.Root()
		if root == "" {
			continue
		}

		if _, ok := seen[root]; ok {
			continue
		}

		seen[root] = struct{}{}
		roots = append(roots, root)
	}

	return roots
}

// resolveRoot finds the configured project root the given URI base belongs
// to. When several roots prefix the base, the longest one wins.
func (r *Resolver) resolveRoot(base string) (string, error) {
	roots := r.roots.get(r.computeRoots)

	var found string
	for _, root := range roots {
		if strings.HasPrefix(base, root) && len(root) > len(found) {
			found = root
		}
	}

	if found == "" {
		return "", fmt.Errorf("%w: %q is not under any configured project; options were: %s", ErrRootNotFound, base, sortedOptions(roots))
	}

	return found, nil
}
