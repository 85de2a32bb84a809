package snippet

import (
	"os"
	"path/filepath"
	"sync"
)

// Registry accumulates every source file a snippet referenced over the
// lifetime of a run. It deduplicates by resolved path, preserves first-seen
// order, and is safe for concurrent use since files are processed in
// parallel. External tooling reads it at the end, e.g. to declare the
// referenced files as build dependencies; nothing clears it.
type Registry struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add records a referenced file. The path is resolved to absolute before
// deduplication so the same file reached through different working
// directories counts once.
func (r *Registry) Add(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[abs]; ok {
		return
	}
	r.seen[abs] = struct{}{}
	r.order = append(r.order, abs)
}

// Len reports how many distinct files have been recorded.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Relative returns the recorded paths in first-seen order, relative to the
// current working directory. Paths that cannot be made relative are
// returned as recorded.
func (r *Registry) Relative() []string {
	cwd, err := os.Getwd()

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.order))
	for _, p := range r.order {
		if err == nil {
			if rel, rerr := filepath.Rel(cwd, p); rerr == nil {
				out = append(out, rel)
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
