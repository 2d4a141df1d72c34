package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/inscription-verification/utils/textmatch"
)

func newScoreCmd() *cobra.Command {
	var alnum bool

	cmd := &cobra.Command{
		Use:   "score A B",
		Short: "Print the similarity of two strings",
		Long: `Print the similarity ratio used by the fuzzy strategies, between 0 and 1.

With --alnum both strings are first reduced to upper-case ASCII letters and digits,
the way identity numbers are compared.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			a, b := textmatch.PrepareText(args[0]), textmatch.PrepareText(args[1])
			if alnum {
				a, b = textmatch.NormalizeAlnum(args[0]), textmatch.NormalizeAlnum(args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.4f\n", textmatch.Similarity(a, b))
		},
	}

	cmd.Flags().BoolVar(&alnum, "alnum", false, "compare letters and digits only")
	return cmd
}
