package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch|tag|commit>",
		Short: "Switch the working tree to a branch or commit",
		Args:  requireArgs(1, "checkout <branch|tag|commit>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			id, err := r.Checkout(args[0])
			if err != nil {
				return err
			}

			branch, err := r.CurrentBranch()
			if err != nil {
				return err
			}
			if branch != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to branch '%s'\n", branch)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "HEAD is now at %s\n", shortID(string(id)))
			}
			return nil
		},
	}
}
