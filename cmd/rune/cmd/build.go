package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/build"
	"github.com/rune-lang/rune/internal/cli"
	"github.com/rune-lang/rune/internal/config"
)

func newBuildCmd(root *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Parse every source of a project and emit its trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(root.dir)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Build.Workers = workers
			}

			b := build.ForProject(cfg, build.WithLogger(root.log))
			return runBuild(cmd.Context(), cmd, cfg, b)
		},
	}

	cmd.Flags().IntVarP(&workers, "jobs", "j", 0, "number of files built in parallel (default from project)")
	return cmd
}

// loadProject reads the project file and checks it accepts this tool
func loadProject(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckTool(cli.Version); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBuild builds every source below the project's source directory and
// prints a summary.
func runBuild(ctx context.Context, cmd *cobra.Command, cfg *config.Config, b *build.Builder) error {
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := config.FindSources(cfg.SourceDir(), config.SourceExt)
	if err != nil {
		return err
	}

	_, stats, err := b.Build(ctx, files)
	if err != nil && stats.Failed > 0 {
		return report(cmd, "", "", err)
	}
	if err != nil {
		return err
	}

	p := cli.NewPrinter(cmd.OutOrStdout())
	title := cfg.Title
	if title == "" {
		title = filepath.Base(cfg.Root)
	}
	p.Section(title)
	p.Value("files", stats.Total)
	p.Value("cached", stats.CacheHits)
	p.Value("output", cfg.TargetDir())
	p.Success("built in %s", stats.Took.Round(time.Millisecond))
	return nil
}
