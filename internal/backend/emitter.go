package backend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	rerrors "github.com/rune-lang/rune/internal/errors"
)

// Emitter is a Generator that writes each unit's tree into TargetDir. The
// layout below SourceRoot is mirrored, so src/a/main.rn and src/b/main.rn
// land in separate files.
type Emitter struct {
	SourceRoot string
	TargetDir  string
	Format     Format
}

// NewEmitter creates an emitter writing format into targetDir for sources
// found below sourceRoot
func NewEmitter(sourceRoot, targetDir string, format Format) *Emitter {
	return &Emitter{SourceRoot: sourceRoot, TargetDir: targetDir, Format: format}
}

// Name implements Generator
func (e *Emitter) Name() string { return "emit-" + string(e.Format) }

// OutputPath returns where the tree of the source at path is written.
// Sources outside SourceRoot are placed directly in TargetDir.
func (e *Emitter) OutputPath(path string) string {
	rel := filepath.Base(path)
	if e.SourceRoot != "" {
		if r, err := filepath.Rel(e.SourceRoot, path); err == nil && r != ".." && !strings.HasPrefix(r, ".."+string(filepath.Separator)) {
			rel = r
		}
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(e.TargetDir, rel+e.Format.Extension())
}

// Generate implements Generator. The tree is written to a temporary file
// in the destination directory and renamed so readers never see a partial
// tree.
func (e *Emitter) Generate(ctx context.Context, unit Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Marshal(unit.Statements, e.Format)
	if err != nil {
		return rerrors.Internal("encode "+unit.Path, err)
	}

	out := e.OutputPath(unit.Path)
	dir := filepath.Dir(out)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rerrors.IO("create target directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(out)+".*.tmp")
	if err != nil {
		return rerrors.IO("create temporary file", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return rerrors.IO("write "+tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return rerrors.IO("chmod "+tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		_ = os.Remove(tmp.Name())
		return rerrors.IO("rename "+tmp.Name(), err)
	}
	return nil
}

// Remove deletes the tree emitted for the source at path. A tree that was
// never written is not an error.
func (e *Emitter) Remove(path string) error {
	if err := os.Remove(e.OutputPath(path)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return rerrors.IO("remove stale tree", err)
	}
	return nil
}
