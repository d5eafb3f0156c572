package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/build"
	"github.com/rune-lang/rune/internal/config"
	"github.com/rune-lang/rune/internal/watch"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild a project whenever a source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProject(root.dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			b := build.ForProject(cfg, build.WithLogger(root.log))
			if err := runBuild(ctx, cmd, cfg, b); err != nil {
				root.log.WithError(err).Warn("initial build failed")
			}

			w, err := watch.New(cfg.SourceDir(),
				watch.WithDebounce(debounce),
				watch.WithExtension(config.SourceExt),
				watch.WithLogger(root.log),
			)
			if err != nil {
				return err
			}
			defer w.Close()

			root.log.WithField("dir", cfg.SourceDir()).Info("watching for changes")
			return w.Run(ctx, func(ctx context.Context, changed []string) error {
				root.log.WithField("files", len(changed)).Info("sources changed, rebuilding")
				return rebuild(ctx, cmd, cfg, b, changed)
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before rebuilding")
	return cmd
}

// rebuild drops the trees of deleted sources among changed, then builds the
// project again.
func rebuild(ctx context.Context, cmd *cobra.Command, cfg *config.Config, b *build.Builder, changed []string) error {
	if _, err := b.Prune(changed); err != nil {
		return err
	}
	return runBuild(ctx, cmd, cfg, b)
}
