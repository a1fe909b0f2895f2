package main

import (
	"fmt"
	"strings"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit [message]",
		Short: "Record the staged files as a new commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if message != "" {
					return fmt.Errorf("give the message either as an argument or with -m, not both")
				}
				message = args[0]
			}

			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			id, err := r.Commit(message)
			if err != nil {
				return err
			}

			where, err := r.Head()
			if err != nil {
				return err
			}
			if where == string(id) {
				where = "detached HEAD"
			}
			summary, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
			fmt.Fprintf(cmd.OutOrStdout(), "[%s %s] %s\n", where, shortID(string(id)), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")
	return cmd
}

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log [name]",
		Short: "Show first-parent commit history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			start := repo.HeadRef
			if len(args) == 1 {
				start = args[0]
			}
			id, err := r.ResolveName(start)
			if err != nil {
				return err
			}
			entries, err := r.Log(id, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "commit %s\n", e.ID)
				if len(e.Commit.Parents) > 1 {
					short := make([]string, len(e.Commit.Parents))
					for i, p := range e.Commit.Parents {
						short[i] = shortID(string(p))
					}
					fmt.Fprintf(out, "Merge: %s\n", strings.Join(short, " "))
				}
				fmt.Fprintln(out)
				for _, line := range strings.Split(e.Commit.Message, "\n") {
					fmt.Fprintf(out, "    %s\n", line)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "max-count", "n", 0, "limit the number of commits shown")
	return cmd
}
