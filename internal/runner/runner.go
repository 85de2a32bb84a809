package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gubarz/snipmd/internal/config"
	"github.com/gubarz/snipmd/internal/markdown"
	"github.com/gubarz/snipmd/internal/snippet"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner drives snippet synchronization over a markdown tree. Each markdown
// file is an independent unit of work; files are processed concurrently and
// one file's failure handling depends on the missing-file policy, never on
// its siblings.
type Runner struct {
	log      *zap.Logger
	registry *snippet.Registry
	missing  string
	limit    int
	debounce time.Duration
}

// New creates a runner using the configured policy and concurrency limit.
// The registry accumulates every referenced source file across runs.
func New(log *zap.Logger, registry *snippet.Registry) *Runner {
	return &Runner{
		log:      log,
		registry: registry,
		missing:  config.GetMissing(),
		limit:    config.GetConcurrency(),
		debounce: time.Duration(config.GetWatchDebounce()) * time.Millisecond,
	}
}

// WithMissing overrides the missing-file policy
func (r *Runner) WithMissing(policy string) *Runner {
	r.missing = policy
	return r
}

// FileStatus reports the outcome for one markdown file.
type FileStatus struct {
	Path    string
	Changed bool
}

// Summary collects per-file outcomes for a run.
type Summary struct {
	mu    sync.Mutex
	Files []FileStatus
}

func (s *Summary) add(fs FileStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files = append(s.Files, fs)
}

func (s *Summary) sort() {
	sort.Slice(s.Files, func(i, j int) bool { return s.Files[i].Path < s.Files[j].Path })
}

// DriftCount reports how many files were (or would be) rewritten.
func (s *Summary) DriftCount() int {
	n := 0
	for _, f := range s.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

// Sync rewrites every out-of-date snippet block under root in place.
func (r *Runner) Sync(root string) (*Summary, error) {
	return r.run(root, true)
}

// Check reports which files would change without writing anything.
func (r *Runner) Check(root string) (*Summary, error) {
	return r.run(root, false)
}

func (r *Runner) run(root string, write bool) (*Summary, error) {
	files, err := collectMarkdown(root)
	if err != nil {
		return nil, err
	}

	limit := r.limit
	if limit < 1 {
		limit = 1
	}
	summary := &Summary{}
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for _, path := range files {
		g.Go(func() error {
			changed, err := r.processFile(path, write)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			summary.add(FileStatus{Path: path, Changed: changed})
			r.log.Debug("processed file",
				zap.String("file", path),
				zap.Bool("changed", changed))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.sort()
	r.log.Info("run complete",
		zap.Int("files", len(summary.Files)),
		zap.Int("drift", summary.DriftCount()),
		zap.Bool("write", write))
	return summary, nil
}

func (r *Runner) processFile(path string, write bool) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	out, changed, err := markdown.Process(string(raw), r.resolver(filepath.Dir(path)))
	if err != nil {
		return false, err
	}

	if changed && write {
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// resolver builds the per-file callback that reads a directive's source and
// extracts its snippet. Target paths are resolved against the markdown
// file's directory and recorded in the registry whether or not the read
// succeeds, since the reference itself is what external tooling cares about.
func (r *Runner) resolver(dir string) markdown.Resolver {
	return func(d markdown.Directive) (string, error) {
		target := d.File
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, d.File)
		}
		r.registry.Add(target)

		data, err := os.ReadFile(target)
		if err != nil {
			if os.IsNotExist(err) && r.missing == config.MissingPlaceholder {
				r.log.Warn("snippet source missing",
					zap.String("file", target))
				return fmt.Sprintf("snippet source missing: %s", d.File), nil
			}
			return "", err
		}
		return snippet.Extract(string(data), d.Start, d.End)
	}
}

// collectMarkdown returns the markdown files under root, or root itself if
// it is a single file.
func collectMarkdown(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
