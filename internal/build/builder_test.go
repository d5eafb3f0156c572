package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-lang/rune/internal/backend"
	"github.com/rune-lang/rune/internal/config"
	rerrors "github.com/rune-lang/rune/internal/errors"
)

// recorder is a Generator that remembers every unit it was given
type recorder struct {
	mu    sync.Mutex
	units map[string]backend.Unit
	fail  string
}

func newRecorder() *recorder { return &recorder{units: make(map[string]backend.Unit)} }

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Generate(ctx context.Context, unit backend.Unit) error {
	if filepath.Base(unit.Path) == r.fail {
		return errors.New("backend rejected unit")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.units[filepath.Base(unit.Path)] = unit
	return nil
}

func writeSources(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestBuildSuccess(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"a.rn": "let x = 1; print(x)",
		"b.rn": "if true { 1 } else { 2 }",
		"c.rn": "",
	})

	rec := newRecorder()
	b := NewBuilder(rec, WithWorkers(2))

	results, stats, err := b.Build(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Stats{Total: 3, Succeeded: 3, Took: stats.Took}, stats)
	assert.Equal(t, 2, results[0].Statements)
	assert.Equal(t, 1, results[1].Statements)
	assert.Equal(t, 0, results[2].Statements)
	assert.Len(t, rec.units, 3)
	assert.Len(t, rec.units["a.rn"].Statements, 2)
}

func TestBuildUsesCache(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"a.rn": "1 + 2",
		"b.rn": "1 + 2", // same content, same key
	})

	b := NewBuilder(newRecorder(), WithWorkers(1))

	_, first, err := b.Build(context.Background(), paths[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, first.CacheHits)

	results, second, err := b.Build(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CacheHits)
	assert.True(t, results[0].Cached)
	assert.True(t, results[1].Cached)
}

func TestBuildCollectsFailures(t *testing.T) {
	_, paths := writeSources(t, map[string]string{
		"good.rn":    "let x = 1",
		"lexical.rn": "let x = @",
		"syntax.rn":  "let = 1",
		"reject.rn":  "1",
	})
	paths = append(paths, filepath.Join(filepath.Dir(paths[0]), "missing.rn"))

	rec := newRecorder()
	rec.fail = "reject.rn"
	results, stats, err := NewBuilder(rec).Build(context.Background(), paths)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBuildFailed))
	assert.True(t, errors.Is(err, rerrors.ErrUnexpectedCharacter))
	assert.True(t, errors.Is(err, rerrors.ErrExpectedAfter))
	assert.Len(t, results, 5)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 4, stats.Failed)

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.NotEmpty(t, fe.Path)

	// the missing file surfaces as an IO error
	for _, r := range results {
		if filepath.Base(r.Path) == "missing.rn" {
			assert.Equal(t, "C002", rerrors.Code(r.Err))
		}
	}
}

func TestBuildCancelled(t *testing.T) {
	_, paths := writeSources(t, map[string]string{"a.rn": "1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewBuilder(newRecorder()).Build(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildLogs(t *testing.T) {
	_, paths := writeSources(t, map[string]string{"a.rn": "1", "b.rn": "("})

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, _, err := NewBuilder(newRecorder(), WithLogger(logger)).Build(context.Background(), paths)
	require.Error(t, err)

	var sawDebug, sawWarn, sawInfo bool
	for _, entry := range hook.AllEntries() {
		switch entry.Level {
		case logrus.DebugLevel:
			sawDebug = true
			assert.Contains(t, entry.Data, "statements")
		case logrus.WarnLevel:
			sawWarn = true
			assert.Contains(t, entry.Data["file"], "b.rn")
		case logrus.InfoLevel:
			sawInfo = true
			assert.Equal(t, 1, entry.Data["failed"])
		}
	}
	assert.True(t, sawDebug)
	assert.True(t, sawWarn)
	assert.True(t, sawInfo)
}

func TestForProject(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.rn"), []byte("print(1)"), 0o644))

	cfg := config.Default()
	cfg.Root = root
	cfg.Build.Format = "json"

	files, err := config.FindSources(cfg.SourceDir(), config.SourceExt)
	require.NoError(t, err)

	_, _, err = ForProject(cfg).Build(context.Background(), files)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "target", "main.json"))
	assert.NoError(t, err)
}

func TestForProjectNestedSameName(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	for dir, content := range map[string]string{"a": "let x = 1", "b": "let y = 2"} {
		require.NoError(t, os.MkdirAll(filepath.Join(src, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, dir, "main.rn"), []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Root = root
	cfg.Build.Workers = 2

	files, err := config.FindSources(cfg.SourceDir(), config.SourceExt)
	require.NoError(t, err)
	require.Len(t, files, 2)

	_, stats, err := ForProject(cfg).Build(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Succeeded)

	got, err := os.ReadFile(filepath.Join(root, "target", "a", "main.tree"))
	require.NoError(t, err)
	assert.Equal(t, "let x = 1\n", string(got))

	got, err = os.ReadFile(filepath.Join(root, "target", "b", "main.tree"))
	require.NoError(t, err)
	assert.Equal(t, "let y = 2\n", string(got))

	_, err = os.Stat(filepath.Join(root, "target", "main.tree"))
	assert.True(t, os.IsNotExist(err))
}

func TestPruneRemovedSources(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	keep := filepath.Join(src, "keep.rn")
	gone := filepath.Join(src, "gone.rn")
	require.NoError(t, os.WriteFile(keep, []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(gone, []byte("2"), 0o644))

	cfg := config.Default()
	cfg.Root = root
	b := ForProject(cfg)

	_, _, err := b.Build(context.Background(), []string{gone, keep})
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(root, "target", "gone.tree"))

	require.NoError(t, os.Remove(gone))
	pruned, err := b.Prune([]string{gone, keep})
	require.NoError(t, err)
	assert.Equal(t, []string{gone}, pruned)

	assert.NoFileExists(t, filepath.Join(root, "target", "gone.tree"))
	assert.FileExists(t, filepath.Join(root, "target", "keep.tree"))
}

func TestPruneWithoutRemover(t *testing.T) {
	pruned, err := NewBuilder(newRecorder()).Prune([]string{filepath.Join(t.TempDir(), "gone.rn")})
	require.NoError(t, err)
	assert.Empty(t, pruned)
}
