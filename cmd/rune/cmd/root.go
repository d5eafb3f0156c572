// Package cmd implements the rune command line.
package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/cli"
)

// rootOptions holds the persistent flags and the state derived from them
type rootOptions struct {
	verbose bool
	quiet   bool
	dir     string

	log *logrus.Logger
}

// reportedError marks a failure whose diagnostics were already printed
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// NewRootCmd builds the full command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rune",
		Short: "Front end for the rune expression language",
		Long: `rune tokenizes, parses, formats and builds rune source files.

Commands:
  tokens   - print the token stream of a file
  parse    - print the syntax tree of a file
  fmt      - rewrite files in canonical form
  build    - parse every source of a project and emit its trees
  watch    - rebuild a project whenever a source changes
  version  - print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = cli.NewLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			if opts.verbose && opts.quiet {
				opts.log.Warn("both --verbose and --quiet given, using --verbose")
			}
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print warnings and errors")
	root.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project directory")

	root.AddCommand(
		newTokensCmd(),
		newParseCmd(),
		newFmtCmd(),
		newBuildCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line against os.Args
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			cli.NewPrinter(root.ErrOrStderr()).Error("%v", err)
		}
	}
	return err
}

// readSource reads the named file, or standard input for "-" or no name.
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return filepath.Clean(args[0]), string(data), nil
}

// report prints diagnostics for err and marks it as reported
func report(cmd *cobra.Command, name, src string, err error) error {
	cli.NewPrinter(cmd.ErrOrStderr()).PrintDiagnostics(name, src, err)
	return reportedError{err}
}
