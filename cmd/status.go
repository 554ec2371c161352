package cmd

import (
	"encoding/json"
	"fmt"

	statusadapter "github.com/bnema/mini-coderbrain/internal/adapters/render/status"
	"github.com/bnema/mini-coderbrain/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the session signals the footer is built from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireOperatorApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.close()

			return writeStatusOutput(cmd, app, app.service.Signals(cmd.Context()), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print signals as JSON")
	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, signals application.Signals, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(signals)
	}

	rendered, err := app.statusRenderer(cmd.Context(), signals, statusadapter.RenderOptions{
		ProjectDir: app.cfg.ProjectDir,
		Branch:     app.service.Branch(cmd.Context()),
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func wireOperatorApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	projectDir, err := opts.projectDirFor("")
	if err != nil {
		return nil, err
	}
	return wireApp(projectDir, opts.configFile, cmd.ErrOrStderr())
}
