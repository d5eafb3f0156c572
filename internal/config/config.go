// Package config loads the Rune.toml project file and discovers the source
// files it describes.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/rune-lang/rune/internal/backend"
	rerrors "github.com/rune-lang/rune/internal/errors"
)

const (
	// FileName is the project file looked up in the project root
	FileName = "Rune.toml"
	// SourceExt is the extension of rune source files
	SourceExt = ".rn"
	// EnvPrefix prefixes environment overrides, e.g. RUNE_TARGET_DIR
	EnvPrefix = "RUNE_"
)

// Config is the decoded project file
type Config struct {
	Title    string `toml:"title"`
	Version  string `toml:"version"`
	Requires string `toml:"requires"` // semver constraint on the rune tool
	Build    Build  `toml:"build"`

	// Root is the directory the file was loaded from. Relative build
	// directories are resolved against it.
	Root string `toml:"-"`
}

// Build holds the [build] table
type Build struct {
	SourceDir string `toml:"source_dir"`
	TargetDir string `toml:"target_dir"`
	Format    string `toml:"format"`
	Workers   int    `toml:"workers"`
}

// Default returns the configuration used for absent keys
func Default() *Config {
	return &Config{
		Version: "0.1.0",
		Build: Build{
			SourceDir: "src",
			TargetDir: "target",
			Format:    string(backend.FormatText),
			Workers:   runtime.NumCPU(),
		},
	}
}

// Load reads FileName from dir, applies defaults and the RUNE_* environment
// overrides, and validates the result. A missing file is a C002 error;
// undecodable or invalid content is C001.
func Load(dir string) (*Config, error) {
	return load(dir, os.LookupEnv)
}

func load(dir string, lookup func(string) (string, bool)) (*Config, error) {
	path := filepath.Join(dir, FileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, rerrors.IO("read "+path, err)
	}

	cfg, err := decode(string(content))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Root = dir
	return cfg, nil
}

// Parse decodes and validates project file content. The environment is
// not consulted; Load applies the overrides.
func Parse(content string) (*Config, error) {
	cfg, err := decode(content)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(content string) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(content, cfg)
	if err != nil {
		return nil, rerrors.InvalidConfig("decode "+FileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, rerrors.InvalidConfig(fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", ")), nil)
	}
	return cfg, nil
}

// applyEnv overrides build settings from RUNE_SOURCE_DIR, RUNE_TARGET_DIR,
// RUNE_FORMAT and RUNE_WORKERS.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "SOURCE_DIR"); ok && v != "" {
		c.Build.SourceDir = v
	}
	if v, ok := lookup(EnvPrefix + "TARGET_DIR"); ok && v != "" {
		c.Build.TargetDir = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok && v != "" {
		c.Build.Format = v
	}
	if v, ok := lookup(EnvPrefix + "WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return rerrors.InvalidConfig(EnvPrefix+"WORKERS", err)
		}
		c.Build.Workers = n
	}
	return nil
}

// Validate checks every field
func (c *Config) Validate() error {
	if _, err := semver.NewVersion(c.Version); err != nil {
		return rerrors.InvalidConfig(fmt.Sprintf("version %q", c.Version), err)
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return rerrors.InvalidConfig(fmt.Sprintf("requires %q", c.Requires), err)
		}
	}
	if c.Build.SourceDir == "" {
		return rerrors.InvalidConfig("build.source_dir must not be empty", nil)
	}
	if c.Build.TargetDir == "" {
		return rerrors.InvalidConfig("build.target_dir must not be empty", nil)
	}
	if _, err := backend.ParseFormat(c.Build.Format); err != nil {
		return rerrors.InvalidConfig("build.format", err)
	}
	if c.Build.Workers < 1 {
		return rerrors.InvalidConfig(fmt.Sprintf("build.workers must be positive, got %d", c.Build.Workers), nil)
	}
	return nil
}

// CheckTool verifies the running tool version against Requires
func (c *Config) CheckTool(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return rerrors.InvalidConfig(fmt.Sprintf("requires %q", c.Requires), err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return rerrors.Internal(fmt.Sprintf("tool version %q", version), err)
	}
	if ok, reasons := constraint.Validate(v); !ok {
		return rerrors.InvalidConfig(fmt.Sprintf("rune %s does not satisfy %q", version, c.Requires), errors.Join(reasons...))
	}
	return nil
}

// OutputFormat returns the validated emitter format
func (c *Config) OutputFormat() backend.Format {
	f, _ := backend.ParseFormat(c.Build.Format)
	return f
}

// SourceDir returns the source directory resolved against Root
func (c *Config) SourceDir() string { return c.resolve(c.Build.SourceDir) }

// TargetDir returns the target directory resolved against Root
func (c *Config) TargetDir() string { return c.resolve(c.Build.TargetDir) }

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) || c.Root == "" {
		return dir
	}
	return filepath.Join(c.Root, dir)
}

// FindSources walks dir recursively and returns every file with extension
// ext, sorted. Hidden directories are skipped.
func FindSources(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, rerrors.IO("scan "+dir, err)
	}

	sort.Strings(files)
	return files, nil
}
