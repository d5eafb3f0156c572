package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/backend"
	"github.com/rune-lang/rune/internal/parser"
)

func newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the syntax tree of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := backend.ParseFormat(format)
			if err != nil {
				return err
			}

			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			stmts, err := parser.ParseString(src)
			if err != nil {
				return report(cmd, name, src, err)
			}
			return backend.Write(cmd.OutOrStdout(), stmts, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(backend.FormatText), "output format: text, json, yaml or msgpack")
	return cmd
}
