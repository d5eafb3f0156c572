package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rune-lang/rune/internal/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			l := lexer.New(src)
			for {
				tok, err := l.NextToken()
				if err != nil {
					return report(cmd, name, src, err)
				}
				if tok.Type == lexer.TokenEOF {
					return nil
				}
				fmt.Fprintf(out, "%d:%d\t%s\t%s\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
			}
		},
	}
}
