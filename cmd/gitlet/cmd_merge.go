package main

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <branch|tag|commit>",
		Short: "Merge another line of history into HEAD",
		Args:  requireArgs(1, "merge <branch|tag|commit>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			res, err := r.Merge(args[0])
			if err != nil {
				var conflict *repo.MergeConflictError
				if errors.As(err, &conflict) {
					out := cmd.ErrOrStderr()
					for _, p := range conflict.Paths {
						fmt.Fprintf(out, "CONFLICT: %s\n", p)
					}
				}
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Kind {
			case repo.MergeUpToDate:
				fmt.Fprintln(out, "Already up to date.")
			case repo.MergeFastForward:
				fmt.Fprintf(out, "Fast-forward to %s\n", shortID(string(res.Commit)))
			case repo.MergeCommitted:
				fmt.Fprintf(out, "Merge made commit %s (base %s)\n", shortID(string(res.Commit)), shortID(string(res.Base)))
			}
			return nil
		},
	}
}

func newMergeBaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-base <a> <b>",
		Short: "Print the merge base of two commits",
		Args:  requireArgs(2, "merge-base <a> <b>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			a, err := r.ResolveName(args[0])
			if err != nil {
				return err
			}
			b, err := r.ResolveName(args[1])
			if err != nil {
				return err
			}
			base, err := r.MergeBase(a, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base)
			return nil
		},
	}
}
