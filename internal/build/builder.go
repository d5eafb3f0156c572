// Package build runs the multi-file pipeline: read each source file, parse
// it (concurrently, through a content-addressed cache) and hand the tree to
// a backend generator.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rune-lang/rune/internal/ast"
	"github.com/rune-lang/rune/internal/backend"
	"github.com/rune-lang/rune/internal/config"
	rerrors "github.com/rune-lang/rune/internal/errors"
	"github.com/rune-lang/rune/internal/parser"
)

// ErrBuildFailed is returned when at least one file failed
var ErrBuildFailed = errors.New("build failed")

// FileError ties a failure to the file that caused it. Source is kept so
// diagnostics can quote the offending line.
type FileError struct {
	Path   string
	Source string
	Err    error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Result captures the outcome for one file.
type Result struct {
	Path       string
	Statements int
	Cached     bool
	Err        error
	Took       time.Duration
}

// Stats holds simple execution statistics.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	CacheHits int
	Took      time.Duration
}

// Builder parses files with a bounded number of workers and feeds each
// tree to a generator. One Builder may run many builds; the cache is
// shared between them.
type Builder struct {
	workers   int
	cache     Cache
	generator backend.Generator
	log       logrus.FieldLogger
}

// Option configures a Builder
type Option func(*Builder)

// WithWorkers bounds concurrent parses (<=0 => NumCPU)
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		b.workers = n
	}
}

// WithCache replaces the default in-memory cache
func WithCache(c Cache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithLogger sets the logger; by default nothing is logged
func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder constructs a Builder handing trees to gen
func NewBuilder(gen backend.Generator, opts ...Option) *Builder {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	b := &Builder{
		workers:   runtime.NumCPU(),
		cache:     NewLRUCache(0),
		generator: gen,
		log:       silent,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ForProject builds a Builder that emits into the project's target
// directory in its configured format.
func ForProject(cfg *config.Config, opts ...Option) *Builder {
	gen := backend.NewEmitter(cfg.SourceDir(), cfg.TargetDir(), cfg.OutputFormat())
	return NewBuilder(gen, append([]Option{WithWorkers(cfg.Build.Workers)}, opts...)...)
}

// Prune discards the output of every path that no longer exists, when the
// generator keeps per-file output. It returns the paths it pruned.
func (b *Builder) Prune(paths []string) ([]string, error) {
	remover, ok := b.generator.(backend.Remover)
	if !ok {
		return nil, nil
	}

	var pruned []string
	var errs []error
	for _, path := range paths {
		if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := remover.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		b.log.WithField("file", path).Debug("pruned output")
		pruned = append(pruned, path)
	}
	return pruned, errors.Join(errs...)
}

// Build processes files and returns one Result per file, sorted by path.
// A failing file does not stop the others; when any failed, the returned
// error wraps ErrBuildFailed and every *FileError. Only cancellation of
// ctx aborts the build early.
func (b *Builder) Build(ctx context.Context, files []string) ([]Result, Stats, error) {
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	var mu sync.Mutex
	results := make([]Result, 0, len(files))
	var fileErrs []error

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, ferr := b.buildFile(gctx, path)

			mu.Lock()
			results = append(results, res)
			if ferr != nil {
				fileErrs = append(fileErrs, ferr)
			}
			mu.Unlock()

			// cancellation is the only error that stops the group
			if errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded) {
				return res.Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	sort.Slice(fileErrs, func(i, j int) bool {
		return fileErrs[i].(*FileError).Path < fileErrs[j].(*FileError).Path
	})

	stats := Stats{Total: len(results), Took: time.Since(start)}
	for _, r := range results {
		if r.Err != nil {
			stats.Failed++
		} else {
			stats.Succeeded++
		}
		if r.Cached {
			stats.CacheHits++
		}
	}

	b.log.WithFields(logrus.Fields{
		"files":  stats.Total,
		"failed": stats.Failed,
		"cached": stats.CacheHits,
		"took":   stats.Took,
		"cache":  b.cache.Stats().Entries,
	}).Info("build finished")

	if len(fileErrs) > 0 {
		return results, stats, errors.Join(append([]error{ErrBuildFailed}, fileErrs...)...)
	}
	return results, stats, nil
}

func (b *Builder) buildFile(ctx context.Context, path string) (Result, *FileError) {
	start := time.Now()
	res := Result{Path: path}
	log := b.log.WithField("file", path)

	fail := func(source string, err error) (Result, *FileError) {
		res.Err = err
		res.Took = time.Since(start)
		log.WithError(err).Warn("file failed")
		return res, &FileError{Path: path, Source: source, Err: err}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fail("", rerrors.IO("read "+path, err))
	}

	key := KeyFor(content)
	stmts, hit := b.cache.Get(key)
	if !hit {
		stmts, err = parser.ParseString(string(content))
		if err != nil {
			return fail(string(content), err)
		}
		b.cache.Put(key, stmts)
	}
	res.Cached = hit
	res.Statements = len(stmts)

	if err := b.generate(ctx, path, stmts); err != nil {
		return fail(string(content), err)
	}

	res.Took = time.Since(start)
	log.WithFields(logrus.Fields{
		"statements": res.Statements,
		"cached":     res.Cached,
		"took":       res.Took,
	}).Debug("file built")
	return res, nil
}

func (b *Builder) generate(ctx context.Context, path string, stmts []ast.Expr) error {
	if b.generator == nil {
		return nil
	}
	if err := b.generator.Generate(ctx, backend.Unit{Path: path, Statements: stmts}); err != nil {
		return fmt.Errorf("%s: %w", b.generator.Name(), err)
	}
	return nil
}
