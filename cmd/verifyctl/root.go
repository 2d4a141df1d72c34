package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "verifyctl v0.3.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "verifyctl",
		Short: "Check inscription claims against recognized document text",
		Long: `verifyctl runs the inscription field verifier offline, on text that was
already recognized from the baccalaureate diploma and the national identity card.

It is meant for tuning matching rules and for reviewing a disputed submission.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newCheckCmd(), newScoreCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
