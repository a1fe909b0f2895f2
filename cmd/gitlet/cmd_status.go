package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged, unstaged and untracked changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			st, err := r.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if st.Detached {
				fmt.Fprintf(out, "HEAD detached at %s\n", shortID(string(st.Head)))
			} else {
				fmt.Fprintf(out, "on %s\n", st.Branch)
			}

			printSection(out, "staged:", map[string][]string{
				"+": st.Staged.New,
				"~": st.Staged.Modified,
				"-": st.Staged.Deleted,
			})
			printSection(out, "unstaged:", map[string][]string{
				"~": st.Unstaged.Modified,
				"-": st.Unstaged.Deleted,
			})
			printSection(out, "untracked:", map[string][]string{
				"?": st.Unstaged.Untracked,
			})

			if st.Clean() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "nothing to commit, working tree clean")
			}
			return nil
		},
	}
}

// printSection prints a heading followed by "  <marker> <path>" lines,
// markers in the fixed order + ~ - ?. Empty sections are omitted.
func printSection(out io.Writer, heading string, byMarker map[string][]string) {
	total := 0
	for _, paths := range byMarker {
		total += len(paths)
	}
	if total == 0 {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, heading)
	for _, marker := range []string{"+", "~", "-", "?"} {
		for _, p := range byMarker[marker] {
			fmt.Fprintf(out, "  %s %s\n", marker, p)
		}
	}
}
