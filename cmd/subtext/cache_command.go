package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Transcript cache utilities",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete every cached transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openCache()
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Transcript cache is disabled")
				return nil
			}
			defer store.Close()

			removed, err := store.Purge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached transcript(s)\n", removed)
			return nil
		},
	})

	return cacheCmd
}
