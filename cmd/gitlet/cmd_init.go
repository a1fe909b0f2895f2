package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty repository in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), logLevel(cmd, repo.DefaultConfig().Log.Level))
			r, err := repo.Init(cwd, repo.WithLogger(logger), repo.WithDefaultBranch(branch))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty gitlet repository in %s\n", r.MetaDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&branch, "initial-branch", "b", "", "name of the initial branch (default \"master\")")
	return cmd
}
