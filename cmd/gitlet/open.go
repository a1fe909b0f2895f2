package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/odvcencio/gitlet/pkg/repo"
	"github.com/spf13/cobra"
)

// openRepo locates the repository containing the current directory, builds
// the command logger from its config, and opens it.
func openRepo(cmd *cobra.Command) (*repo.Repo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, ok := repo.FindRoot(cwd)
	if !ok {
		return nil, repo.ErrNotInitialized
	}
	cfg, err := repo.ReadConfig(filepath.Join(root, repo.MetaDirName))
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), logLevel(cmd, cfg.Log.Level))
	return repo.Open(root, repo.WithLogger(logger), repo.WithWorkDir(cwd))
}

func shortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func requireArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: gitlet %s", usage)
		}
		return nil
	}
}
