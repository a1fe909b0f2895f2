package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/gitlet/pkg/object"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Store a file as a blob and print its id",
		Args:  requireArgs(1, "hash-object <file>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			id := object.HashObject(object.TypeBlob, data)
			if !dryRun {
				if id, err = r.Store.PutBlob(&object.Blob{Data: data}); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "compute the id without storing the blob")
	return cmd
}

func newCatFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cat-file <type> <object>",
		Short: "Print the payload of an object, checking its type",
		Args:  requireArgs(2, "cat-file <blob|tree|commit> <object>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ := object.ObjectType(args[0])
			if !typ.Valid() {
				return fmt.Errorf("unknown object type %q", args[0])
			}
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			id, err := r.ResolveName(args[1])
			if err != nil {
				return err
			}
			data, err := r.Store.Get(id, typ)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newWriteTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write-tree",
		Short: "Write the index as tree objects and print the root tree id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			idx, err := r.ReadIndex()
			if err != nil {
				return err
			}
			id, err := r.WriteTree(idx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <tree-ish>",
		Short: "List the files of a tree or of a commit's tree",
		Args:  requireArgs(1, "ls-tree <tree-ish>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo(cmd)
			if err != nil {
				return err
			}
			id, err := r.ResolveName(args[0])
			if err != nil {
				return err
			}
			typ, _, err := r.Store.Read(id)
			if err != nil {
				return err
			}
			if typ == object.TypeCommit {
				c, err := r.ReadCommit(id)
				if err != nil {
					return err
				}
				id = c.TreeHash
			}

			lines, err := r.ListTree(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range lines {
				fmt.Fprintf(out, "%s %s\n", l.ID, l.Path)
			}
			return nil
		},
	}
}
