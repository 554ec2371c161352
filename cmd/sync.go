package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Record that the memory bank was just synced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireOperatorApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.close()

			syncedAt, err := app.service.MarkSynced(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Memory sync recorded at %s\n", time.Unix(syncedAt, 0).Format(time.RFC3339))
			return err
		},
	}
}
