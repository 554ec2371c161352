package cmd

import (
	"fmt"

	"github.com/bnema/mini-coderbrain/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCmd(opts), newConfigInitCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireOperatorApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.close()

			data, err := config.Encode(app.cfg)
			if err != nil {
				return err
			}

			source := app.cfg.File
			if source == "" {
				source = "none (defaults)"
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "# config file: %s\n", source); err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.configFile
			if path == "" {
				projectDir, err := opts.projectDirFor("")
				if err != nil {
					return err
				}
				path = config.DefaultFile(projectDir)
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
