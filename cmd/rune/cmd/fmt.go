package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/format"
)

// errUnformatted is returned by --check when a file is not canonical
var errUnformatted = errors.New("files are not formatted")

type fmtOptions struct {
	write bool
	list  bool
	diff  bool
	check bool
}

func newFmtCmd() *cobra.Command {
	opts := &fmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Rewrite files in canonical form",
		Long: `fmt parses each file and prints it in canonical form. With no files it
reads standard input and writes standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}

			unformatted := false
			for _, arg := range args {
				changed, err := opts.formatOne(cmd, arg)
				if err != nil {
					return err
				}
				unformatted = unformatted || changed
			}

			if opts.check && unformatted {
				return errUnformatted
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write result to the source file")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "print a diff instead of the formatted source")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit with an error if any file is not formatted")
	return cmd
}

// formatOne handles a single file and reports whether it changed
func (o *fmtOptions) formatOne(cmd *cobra.Command, arg string) (bool, error) {
	name, src, err := readSource(cmd, []string{arg})
	if err != nil {
		return false, err
	}

	res, diff, err := format.SourceWithDiff(name, src, format.DefaultDiffOptions())
	if err != nil {
		return false, report(cmd, name, src, err)
	}

	out := cmd.OutOrStdout()
	switch {
	case o.list:
		if res.Changed() {
			fmt.Fprintln(out, name)
		}
	case o.diff:
		fmt.Fprint(out, diff)
	case o.write && arg != "-":
		if res.Changed() {
			info, err := os.Stat(arg)
			if err != nil {
				return false, err
			}
			if err := os.WriteFile(arg, []byte(res.Formatted), info.Mode().Perm()); err != nil {
				return false, err
			}
		}
	case o.check:
	default:
		fmt.Fprint(out, res.Formatted)
	}
	return res.Changed(), nil
}
