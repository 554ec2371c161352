package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the current behavior profile",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newProfileShowCmd(opts), newProfileSetCmd(opts))
	return cmd
}

func newProfileShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireOperatorApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.close()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), app.service.Profile(cmd.Context()))
			return err
		},
	}
}

func newProfileSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Switch to another profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := wireOperatorApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.service.SetProfile(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Profile set to %s\n", args[0])
			return err
		},
	}
}
