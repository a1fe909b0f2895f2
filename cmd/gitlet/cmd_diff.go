package main

import (
	"errors"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	var staged bool

	cmd := &cobra.Command{
		Use:   "diff [--cached] [<from> <to>]",
		Short: "List changed paths between HEAD, the index, the working tree or two commits",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("usage: gitlet diff [--cached] [<from> <to>]")
			}
			if staged && len(args) == 2 {
				return errors.New("--cached cannot be combined with revisions")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}

			var changes []repo.PathChange
			if len(args) == 2 {
				changes, err = r.DiffRevisions(args[0], args[1])
			} else {
				changes, err = r.WorkingChanges(staged)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range changes {
				fmt.Fprintf(out, "%c\t%s\n", c.Kind, c.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&staged, "cached", false, "compare the index with HEAD")
	return cmd
}
